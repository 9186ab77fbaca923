package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/justsurfingit/job-search-assistant/internal/database/dbtest"
	"github.com/justsurfingit/job-search-assistant/internal/events"
	"github.com/justsurfingit/job-search-assistant/internal/webhook"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fakeRelay records what would have been sent to the workflow engine.
type fakeRelay struct {
	mu          sync.Mutex
	onboardings []webhook.Onboarding
	parsed      []*webhook.File

	forwardErr error
	parseOut   json.RawMessage
	parseErr   error
}

func (f *fakeRelay) ForwardOnboarding(_ context.Context, o webhook.Onboarding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onboardings = append(f.onboardings, o)
	return f.forwardErr
}

func (f *fakeRelay) ParseResume(_ context.Context, file *webhook.File) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.parsed = append(f.parsed, file)
	return f.parseOut, f.parseErr
}

// fakeStore is an ObjectStore that keeps objects in memory.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
}

func (s *fakeStore) Put(_ context.Context, key, _ string, body []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = body
	return "mem://" + key, nil
}

func (s *fakeStore) Provider() string { return "memory" }

type fixture struct {
	db         *gorm.DB
	events     *events.Recorder
	relay      *fakeRelay
	store      *fakeStore
	users      *UserService
	uploads    *UploadService
	onboarding *OnboardingService
	learnings  *LearningService
	resumes    *ResumeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.New(t)
	log := zap.NewNop()
	rec := &events.Recorder{}
	relay := &fakeRelay{}
	store := &fakeStore{}

	users := NewUserService(db, rec, log)
	uploads := NewUploadService(db, store, log)

	return &fixture{
		db:         db,
		events:     rec,
		relay:      relay,
		store:      store,
		users:      users,
		uploads:    uploads,
		onboarding: NewOnboardingService(users, uploads, relay, rec, log),
		learnings:  NewLearningService(db, rec, log),
		resumes:    NewResumeService(db),
	}
}

var errBoom = errors.New("boom")
