package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/justsurfingit/job-search-assistant/internal/dtos"
	"github.com/justsurfingit/job-search-assistant/internal/events"
	"github.com/justsurfingit/job-search-assistant/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboard_SavesAndForwards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	payload := dtos.OnboardingPayload{
		Role:            "Backend Engineer",
		ExperienceLevel: "mid",
		JobTypes:        []string{"remote"},
		Skills:          []string{"Go", "SQL"},
	}
	require.NoError(t, f.onboarding.Onboard(ctx, "user_1", payload, nil))

	doc, err := f.users.Get(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", doc["role"])
	assert.Equal(t, "mid", doc["experienceLevel"])
	assert.Equal(t, []any{"remote"}, doc["jobTypes"])
	assert.Equal(t, []any{"Go", "SQL"}, doc["skills"])
	assert.Equal(t, []any{}, doc["companies"])
	assert.Equal(t, []any{}, doc["countries"])
	assert.NotContains(t, doc, "resume")

	require.Len(t, f.relay.onboardings, 1)
	sent := f.relay.onboardings[0]
	assert.Equal(t, "user_1", sent.UserID)
	assert.Equal(t, []string{"Go", "SQL"}, sent.Skills)
	assert.Nil(t, sent.File)

	evs := f.events.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, events.UserOnboarded, evs[0].Type)
}

func TestOnboard_KeepsExistingProfileFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Merge(ctx, "user_1", map[string]any{"fullName": "Alex Carter", "role": "old"})
	require.NoError(t, err)

	require.NoError(t, f.onboarding.Onboard(ctx, "user_1", dtos.OnboardingPayload{Role: "new"}, nil))

	doc, err := f.users.Get(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, "Alex Carter", doc["fullName"])
	assert.Equal(t, "new", doc["role"])
}

func TestOnboard_WebhookFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.relay.forwardErr = errBoom

	err := f.onboarding.Onboard(context.Background(), "user_1", dtos.OnboardingPayload{Role: "x"}, nil)
	require.NoError(t, err)

	_, err = f.users.Get(context.Background(), "user_1")
	assert.NoError(t, err)

	evs := f.events.Events()
	require.Len(t, evs, 1)
	data := evs[0].Data.(map[string]any)
	assert.Equal(t, false, data["forwarded"])
}

func TestOnboard_WithResume(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	file := &webhook.File{Name: "cv.txt", ContentType: "text/plain", Data: []byte("Alex Carter - Go developer")}
	require.NoError(t, f.onboarding.Onboard(ctx, "user_1", dtos.OnboardingPayload{}, file))

	require.Len(t, f.relay.onboardings, 1)
	assert.Same(t, file, f.relay.onboardings[0].File)

	doc, err := f.users.Get(ctx, "user_1")
	require.NoError(t, err)
	meta, ok := doc["resume"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "cv.txt", meta["fileName"])
	assert.Equal(t, "stored", meta["status"])
	assert.EqualValues(t, len(file.Data), meta["sizeBytes"])

	uploads, err := f.uploads.List(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	assert.Equal(t, "Alex Carter - Go developer", uploads[0].ExtractedText)
	assert.Len(t, f.store.objects, 1)
}

func TestParseResume_Relays(t *testing.T) {
	f := newFixture(t)
	f.relay.parseOut = json.RawMessage(`{"name":"Alex"}`)

	out, err := f.onboarding.ParseResume(context.Background(), &webhook.File{Name: "cv.pdf"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Alex"}`, string(out))
	require.Len(t, f.relay.parsed, 1)

	f.relay.parseErr = errBoom
	_, err = f.onboarding.ParseResume(context.Background(), &webhook.File{Name: "cv.pdf"})
	assert.ErrorIs(t, err, errBoom)
}
