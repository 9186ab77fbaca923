package services

import (
	"context"
	"encoding/json"

	"github.com/justsurfingit/job-search-assistant/internal/document"
	"github.com/justsurfingit/job-search-assistant/internal/dtos"
	"github.com/justsurfingit/job-search-assistant/internal/events"
	"github.com/justsurfingit/job-search-assistant/internal/webhook"
	"go.uber.org/zap"
)

// Relay hands work to the external workflow engine.
type Relay interface {
	ForwardOnboarding(ctx context.Context, o webhook.Onboarding) error
	ParseResume(ctx context.Context, f *webhook.File) (json.RawMessage, error)
}

type OnboardingService struct {
	Users   *UserService
	Uploads *UploadService
	Relay   Relay
	Events  events.Publisher
	Logger  *zap.Logger
}

func NewOnboardingService(users *UserService, uploads *UploadService, relay Relay, publisher events.Publisher, logger *zap.Logger) *OnboardingService {
	return &OnboardingService{
		Users:   users,
		Uploads: uploads,
		Relay:   relay,
		Events:  publisher,
		Logger:  logger,
	}
}

// Onboard saves the user's preferences and forwards them, with the resume
// when one was uploaded, to the job-matching workflow. A failing workflow
// does not fail onboarding.
func (s *OnboardingService) Onboard(ctx context.Context, clerkID string, p dtos.OnboardingPayload, f *webhook.File) error {
	doc := p.Document()

	if f != nil {
		upload, err := s.Uploads.Save(ctx, clerkID, f)
		if err != nil {
			return err
		}
		doc["resume"] = map[string]any{
			"id":              upload.ID,
			"fileName":        upload.OriginalFilename,
			"mimeType":        upload.Mime,
			"sizeBytes":       upload.SizeBytes,
			"storageProvider": upload.StorageProvider,
			"status":          upload.Status,
			"uploadedAt":      upload.CreatedAt,
		}
	}

	if _, err := s.Users.Merge(ctx, clerkID, doc); err != nil {
		return err
	}
	s.Logger.Info("onboarding data saved", zap.String("user", clerkID))

	err := s.Relay.ForwardOnboarding(ctx, webhook.Onboarding{
		UserID:          clerkID,
		Role:            p.Role,
		ExperienceLevel: p.ExperienceLevel,
		JobTypes:        p.JobTypes,
		Skills:          p.Skills,
		File:            f,
	})
	if err != nil {
		s.Logger.Warn("failed to contact n8n webhook", zap.String("user", clerkID), zap.Error(err))
	} else {
		s.Logger.Info("details forwarded to n8n webhook", zap.String("user", clerkID))
	}

	publish(ctx, s.Events, s.Logger, events.NewEvent(events.UserOnboarded, clerkID, document.Data{
		"role":      p.Role,
		"resume":    f != nil,
		"forwarded": err == nil,
	}))
	return nil
}

// ParseResume relays a resume to the parsing workflow and returns its answer.
func (s *OnboardingService) ParseResume(ctx context.Context, f *webhook.File) (json.RawMessage, error) {
	return s.Relay.ParseResume(ctx, f)
}
