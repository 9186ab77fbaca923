package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/justsurfingit/job-search-assistant/internal/document"
	"github.com/justsurfingit/job-search-assistant/internal/events"
	"github.com/justsurfingit/job-search-assistant/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserService struct {
	DB     *gorm.DB
	Events events.Publisher
	Logger *zap.Logger
}

func NewUserService(db *gorm.DB, publisher events.Publisher, logger *zap.Logger) *UserService {
	return &UserService{DB: db, Events: publisher, Logger: logger}
}

// Merge merge-writes data into the user's document, creating it when
// missing, and returns the stored result.
func (s *UserService) Merge(ctx context.Context, clerkID string, data document.Data) (document.Data, error) {
	var merged document.Data

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc models.UserDocument
		if err := lockOrCreate(tx, &doc, &models.UserDocument{ClerkID: clerkID, Data: "{}"}, "clerk_id = ?", clerkID); err != nil {
			return err
		}

		current, err := document.Decode(doc.Data)
		if err != nil {
			return err
		}
		merged = document.Merge(current, data)

		raw, err := document.Encode(merged)
		if err != nil {
			return err
		}
		return tx.Model(&doc).Update("data", raw).Error
	})
	if err != nil {
		return nil, fmt.Errorf("saving user %s: %w", clerkID, err)
	}
	return merged, nil
}

// SaveProfile merge-writes a profile update and announces it.
func (s *UserService) SaveProfile(ctx context.Context, clerkID string, data document.Data) (document.Data, error) {
	merged, err := s.Merge(ctx, clerkID, data)
	if err != nil {
		return nil, err
	}
	publish(ctx, s.Events, s.Logger, events.NewEvent(events.ProfileUpdated, clerkID, nil))
	return merged, nil
}

// Get returns the user's document or ErrNotFound.
func (s *UserService) Get(ctx context.Context, clerkID string) (document.Data, error) {
	var doc models.UserDocument
	err := s.DB.WithContext(ctx).Where("clerk_id = ?", clerkID).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %s: %w", clerkID, err)
	}
	return document.Decode(doc.Data)
}

// lockOrCreate makes sure the row exists, then loads it into dest holding a
// row lock for the rest of tx.
func lockOrCreate(tx *gorm.DB, dest any, seed any, query string, args ...any) error {
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(seed).Error; err != nil {
		return err
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where(query, args...).First(dest).Error
}

func publish(ctx context.Context, p events.Publisher, logger *zap.Logger, e events.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		logger.Warn("failed to publish event", zap.String("type", e.Type), zap.String("user", e.UserID), zap.Error(err))
	}
}
