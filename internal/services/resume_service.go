package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/justsurfingit/job-search-assistant/internal/models"
	"github.com/justsurfingit/job-search-assistant/internal/resume"
	"gorm.io/gorm"
)

// ResumeService persists the resume builder state of every user.
type ResumeService struct {
	DB *gorm.DB
}

func NewResumeService(db *gorm.DB) *ResumeService {
	return &ResumeService{DB: db}
}

// Get returns the user's builder, or a fresh one when nothing was saved yet.
func (s *ResumeService) Get(ctx context.Context, clerkID string) (*resume.Builder, error) {
	var draft models.ResumeDraft
	err := s.DB.WithContext(ctx).Where("clerk_id = ?", clerkID).First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return resume.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading resume draft for %s: %w", clerkID, err)
	}
	return decodeBuilder(draft.State)
}

// Update applies fn to the user's builder under a row lock and saves the
// result. Nothing is saved when fn fails.
func (s *ResumeService) Update(ctx context.Context, clerkID string, fn func(b *resume.Builder) error) (*resume.Builder, error) {
	var b *resume.Builder

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed, err := encodeBuilder(resume.New())
		if err != nil {
			return err
		}

		var draft models.ResumeDraft
		if err := lockOrCreate(tx, &draft, &models.ResumeDraft{ClerkID: clerkID, State: seed}, "clerk_id = ?", clerkID); err != nil {
			return err
		}

		b, err = decodeBuilder(draft.State)
		if err != nil {
			return err
		}
		if err := fn(b); err != nil {
			return err
		}

		state, err := encodeBuilder(b)
		if err != nil {
			return err
		}
		return tx.Model(&draft).Update("state", state).Error
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Delete discards the user's draft.
func (s *ResumeService) Delete(ctx context.Context, clerkID string) error {
	err := s.DB.WithContext(ctx).Where("clerk_id = ?", clerkID).Delete(&models.ResumeDraft{}).Error
	if err != nil {
		return fmt.Errorf("deleting resume draft for %s: %w", clerkID, err)
	}
	return nil
}

func decodeBuilder(state string) (*resume.Builder, error) {
	b := resume.New()
	if err := json.Unmarshal([]byte(state), b); err != nil {
		return nil, fmt.Errorf("decoding resume draft: %w", err)
	}
	b.Normalize()
	return b, nil
}

func encodeBuilder(b *resume.Builder) (string, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("encoding resume draft: %w", err)
	}
	return string(raw), nil
}
