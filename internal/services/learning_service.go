package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-search-assistant/internal/document"
	"github.com/justsurfingit/job-search-assistant/internal/events"
	"github.com/justsurfingit/job-search-assistant/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LearningService manages the learning roadmaps generated for a user.
type LearningService struct {
	DB     *gorm.DB
	Events events.Publisher
	Logger *zap.Logger
}

func NewLearningService(db *gorm.DB, publisher events.Publisher, logger *zap.Logger) *LearningService {
	return &LearningService{DB: db, Events: publisher, Logger: logger}
}

// List returns every roadmap of the user with its id folded into the data.
func (s *LearningService) List(ctx context.Context, clerkID string) ([]document.Data, error) {
	var rows []models.Learning
	err := s.DB.WithContext(ctx).
		Where("clerk_id = ?", clerkID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing learnings for %s: %w", clerkID, err)
	}

	out := make([]document.Data, 0, len(rows))
	for _, row := range rows {
		data, err := document.Decode(row.Data)
		if err != nil {
			return nil, fmt.Errorf("learning %s: %w", row.ID, err)
		}
		data["id"] = row.ID
		out = append(out, data)
	}
	return out, nil
}

// Create stores a roadmap. A non-empty string "id" in data is used as the
// learning id, otherwise one is generated. Existing roadmaps with the same
// id are replaced.
func (s *LearningService) Create(ctx context.Context, clerkID string, data document.Data) (string, error) {
	id, _ := data["id"].(string)
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}
	if len(id) > 64 {
		return "", fmt.Errorf("%w: learning id longer than 64 characters", ErrInvalidID)
	}

	body := make(document.Data, len(data))
	for k, v := range data {
		if k != "id" {
			body[k] = v
		}
	}
	raw, err := document.Encode(body)
	if err != nil {
		return "", err
	}

	row := models.Learning{ID: id, ClerkID: clerkID, Data: raw}
	err = s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}, {Name: "clerk_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return "", fmt.Errorf("saving learning %s for %s: %w", id, clerkID, err)
	}

	publish(ctx, s.Events, s.Logger, events.NewEvent(events.LearningCreated, clerkID, document.Data{"learningId": id}))
	return id, nil
}

// UpdateTask sets the completed flag of one roadmap item. Within
// skills_roadmap[skillIndex], taskIndex -1 targets the skill itself;
// otherwise tasks[taskIndex] is used, falling back to paths[taskIndex].
func (s *LearningService) UpdateTask(ctx context.Context, clerkID, learningID string, skillIndex, taskIndex int, completed bool) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Learning
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("clerk_id = ? AND id = ?", clerkID, learningID).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := document.Decode(row.Data)
		if err != nil {
			return err
		}
		if !setCompleted(data, skillIndex, taskIndex, completed) {
			return ErrTaskNotFound
		}

		raw, err := document.Encode(data)
		if err != nil {
			return err
		}
		return tx.Model(&row).Update("data", raw).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrTaskNotFound) {
			return err
		}
		return fmt.Errorf("updating learning %s for %s: %w", learningID, clerkID, err)
	}

	publish(ctx, s.Events, s.Logger, events.NewEvent(events.LearningUpdated, clerkID, document.Data{
		"learningId": learningID,
		"skillIndex": skillIndex,
		"taskIndex":  taskIndex,
		"completed":  completed,
	}))
	return nil
}

func setCompleted(data document.Data, skillIndex, taskIndex int, completed bool) bool {
	skill, ok := objectAt(data["skills_roadmap"], skillIndex)
	if !ok {
		return false
	}

	if taskIndex == -1 {
		skill["completed"] = completed
		return true
	}
	for _, key := range []string{"tasks", "paths"} {
		if item, ok := objectAt(skill[key], taskIndex); ok {
			item["completed"] = completed
			return true
		}
	}
	return false
}

// objectAt returns list[i] when list is an array and that element is an object.
func objectAt(list any, i int) (map[string]any, bool) {
	items, ok := list.([]any)
	if !ok || i < 0 || i >= len(items) {
		return nil, false
	}
	obj, ok := items[i].(map[string]any)
	return obj, ok
}
