package services

import (
	"context"
	"testing"

	"github.com/justsurfingit/job-search-assistant/internal/document"
	"github.com/justsurfingit/job-search-assistant/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.Get(context.Background(), "user_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_MergeCreatesThenMerges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Merge(ctx, "user_1", document.Data{
		"role":   "designer",
		"skills": []any{"Figma"},
		"prefs":  map[string]any{"remote": true, "relocate": false},
	})
	require.NoError(t, err)

	merged, err := f.users.Merge(ctx, "user_1", document.Data{
		"role":  "engineer",
		"prefs": map[string]any{"relocate": true},
	})
	require.NoError(t, err)

	got, err := f.users.Get(ctx, "user_1")
	require.NoError(t, err)
	assert.Equal(t, merged, got)
	assert.Equal(t, "engineer", got["role"])
	assert.Equal(t, []any{"Figma"}, got["skills"])
	assert.Equal(t, map[string]any{"remote": true, "relocate": true}, got["prefs"])
}

func TestUserService_SaveProfilePublishes(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.SaveProfile(context.Background(), "user_1", document.Data{"clerkId": "user_1", "name": "Alex"})
	require.NoError(t, err)

	evs := f.events.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, events.ProfileUpdated, evs[0].Type)
	assert.Equal(t, "user_1", evs[0].UserID)
}
