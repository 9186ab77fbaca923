package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-search-assistant/internal/extract"
	"github.com/justsurfingit/job-search-assistant/internal/models"
	"github.com/justsurfingit/job-search-assistant/internal/storage"
	"github.com/justsurfingit/job-search-assistant/internal/webhook"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Upload statuses.
const (
	UploadStored  = "stored"
	UploadSkipped = "skipped"
	UploadFailed  = "failed"
)

// UploadService archives resumes users send and keeps a record of them.
type UploadService struct {
	DB     *gorm.DB
	Store  storage.ObjectStore
	Logger *zap.Logger
}

func NewUploadService(db *gorm.DB, store storage.ObjectStore, logger *zap.Logger) *UploadService {
	if store == nil {
		store = storage.Noop{}
	}
	return &UploadService{DB: db, Store: store, Logger: logger}
}

// Save stores the file in object storage, extracts its text and records the
// upload. Storage and extraction problems are logged and reflected in the
// record; only a failed database write is an error.
func (s *UploadService) Save(ctx context.Context, clerkID string, f *webhook.File) (*models.ResumeUpload, error) {
	upload := &models.ResumeUpload{
		ID:               uuid.NewString(),
		ClerkID:          clerkID,
		OriginalFilename: pgText(f.Name),
		Mime:             pgText(f.ContentType),
		SizeBytes:        int64(len(f.Data)),
		StorageProvider:  s.Store.Provider(),
		Status:           UploadSkipped,
	}

	if _, noop := s.Store.(storage.Noop); !noop {
		key := storage.ResumeKey(clerkID, f.Name)
		location, err := s.Store.Put(ctx, key, f.ContentType, f.Data)
		if err != nil {
			s.Logger.Warn("failed to store resume", zap.String("user", clerkID), zap.String("key", key), zap.Error(err))
			upload.Status = UploadFailed
		} else {
			upload.ObjectKey = key
			upload.StorageURL = location
			upload.Status = UploadStored
		}
	}

	if extract.Supported(f.ContentType) {
		text, err := extract.ResumeText(f.ContentType, f.Data)
		if err != nil {
			s.Logger.Warn("resume text extraction failed", zap.String("user", clerkID), zap.Error(err))
		} else {
			text = pgText(text)
			upload.ExtractedText = text
			upload.TextLength = len([]rune(text))
		}
	} else {
		s.Logger.Debug("resume text extraction skipped", zap.String("user", clerkID), zap.String("mime", f.ContentType))
	}

	if err := s.DB.WithContext(ctx).Create(upload).Error; err != nil {
		return nil, fmt.Errorf("recording upload for %s: %w", clerkID, err)
	}
	return upload, nil
}

// List returns the user's uploads, newest first.
func (s *UploadService) List(ctx context.Context, clerkID string) ([]models.ResumeUpload, error) {
	uploads := []models.ResumeUpload{}
	err := s.DB.WithContext(ctx).
		Where("clerk_id = ?", clerkID).
		Order("created_at DESC").
		Find(&uploads).Error
	if err != nil {
		return nil, fmt.Errorf("listing uploads for %s: %w", clerkID, err)
	}
	return uploads, nil
}

// pgText drops what a postgres text column refuses: NUL bytes and invalid
// UTF-8.
func pgText(s string) string {
	return strings.ToValidUTF8(strings.ReplaceAll(s, "\x00", ""), "")
}
