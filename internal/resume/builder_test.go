package resume

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	b := New()

	assert.Equal(t, 1, b.CurrentStep)
	assert.Equal(t, TotalSteps, b.TotalSteps)
	require.Len(t, b.Data.Experience, 1)
	assert.Equal(t, "exp-1", b.Data.Experience[0].ID)
	require.Len(t, b.Data.Education, 1)
	assert.Equal(t, "edu-1", b.Data.Education[0].ID)
	assert.Empty(t, b.Data.Skills)
	assert.NotNil(t, b.Data.Skills)
}

func TestStepNavigation(t *testing.T) {
	b := New()

	b.PrevStep()
	assert.Equal(t, 1, b.CurrentStep, "prev on first step stays put")

	for i := 0; i < TotalSteps+2; i++ {
		b.NextStep()
	}
	assert.Equal(t, TotalSteps, b.CurrentStep, "next past the end clamps")

	b.PrevStep()
	assert.Equal(t, TotalSteps-1, b.CurrentStep)

	tests := []struct {
		step, want int
	}{
		{step: 2, want: 2},
		{step: 0, want: 1},
		{step: -3, want: 1},
		{step: TotalSteps + 10, want: TotalSteps},
	}
	for _, tt := range tests {
		b.GoToStep(tt.step)
		assert.Equal(t, tt.want, b.CurrentStep, "GoToStep(%d)", tt.step)
	}
}

func TestUpdatePersonalInfo(t *testing.T) {
	b := New()

	require.NoError(t, b.UpdatePersonalInfo("fullName", "Alex Carter"))
	require.NoError(t, b.UpdatePersonalInfo("linkedin", "linkedin.com/in/alex"))
	assert.Equal(t, "Alex Carter", b.Data.PersonalInfo.FullName)
	assert.Equal(t, "linkedin.com/in/alex", b.Data.PersonalInfo.LinkedIn)

	err := b.UpdatePersonalInfo("nickname", "AC")
	assert.ErrorIs(t, err, ErrUnknownField)

	err = b.UpdatePersonalInfo("email", 42)
	assert.ErrorIs(t, err, ErrInvalidValue)

	require.NoError(t, b.UpdatePersonalInfo("summary", strings.Repeat("é", MaxSummaryLen+20)))
	assert.Equal(t, MaxSummaryLen, len([]rune(b.Data.PersonalInfo.Summary)))

	b.UpdateSummary("short")
	assert.Equal(t, "short", b.Data.PersonalInfo.Summary)
}

func TestExperienceCRUD(t *testing.T) {
	b := New()

	id := b.AddExperience()
	assert.True(t, strings.HasPrefix(id, "exp-"))
	require.Len(t, b.Data.Experience, 2)
	assert.Equal(t, Experience{ID: id}, b.Data.Experience[1])

	require.NoError(t, b.UpdateExperience(id, "company", "Acme"))
	require.NoError(t, b.UpdateExperience(id, "current", true))
	require.NoError(t, b.UpdateExperience(id, "description", strings.Repeat("x", MaxDescriptionLen+1)))
	assert.Equal(t, "Acme", b.Data.Experience[1].Company)
	assert.True(t, b.Data.Experience[1].Current)
	assert.Len(t, b.Data.Experience[1].Description, MaxDescriptionLen)
	assert.Equal(t, "", b.Data.Experience[0].Company, "other entries untouched")

	assert.ErrorIs(t, b.UpdateExperience(id, "current", "yes"), ErrInvalidValue)
	assert.ErrorIs(t, b.UpdateExperience(id, "salary", "1"), ErrUnknownField)
	assert.ErrorIs(t, b.UpdateExperience("exp-missing", "company", "x"), ErrEntryNotFound)

	b.RemoveExperience("exp-1")
	require.Len(t, b.Data.Experience, 1)
	assert.Equal(t, id, b.Data.Experience[0].ID)

	b.RemoveExperience("exp-missing")
	assert.Len(t, b.Data.Experience, 1)
}

func TestEducationCRUD(t *testing.T) {
	b := New()

	id := b.AddEducation()
	assert.True(t, strings.HasPrefix(id, "edu-"))

	require.NoError(t, b.UpdateEducation(id, "school", "Parsons"))
	require.NoError(t, b.UpdateEducation(id, "gpa", "3.8"))
	assert.Equal(t, "Parsons", b.Data.Education[1].School)
	assert.Equal(t, "3.8", b.Data.Education[1].GPA)

	assert.ErrorIs(t, b.UpdateEducation(id, "gpa", 3.8), ErrInvalidValue)
	assert.ErrorIs(t, b.UpdateEducation(id, "major", "x"), ErrUnknownField)
	assert.ErrorIs(t, b.UpdateEducation("nope", "school", "x"), ErrEntryNotFound)

	b.RemoveEducation(id)
	require.Len(t, b.Data.Education, 1)
	assert.Equal(t, "edu-1", b.Data.Education[0].ID)
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	b := New()
	seen := map[string]bool{"exp-1": true}
	for i := 0; i < 50; i++ {
		id := b.AddExperience()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestSkillsAndActivities(t *testing.T) {
	b := New()

	b.UpdateSkills(ParseSkills("Go, React ,,SQL"))
	assert.Equal(t, []string{"Go", "React", "", "SQL"}, b.Data.Skills)

	b.UpdateActivities(strings.Repeat("a", MaxActivitiesLen+5))
	assert.Len(t, b.Data.Activities, MaxActivitiesLen)
}

func TestResetAndDemo(t *testing.T) {
	b := New()
	b.LoadDemoData()
	b.GoToStep(3)

	assert.Equal(t, "Alex Carter", b.Data.PersonalInfo.FullName)
	assert.Len(t, b.Data.Experience, 2)
	assert.Equal(t, 3, b.CurrentStep, "demo data leaves the step alone")

	b.Reset()
	assert.Equal(t, New(), b)
}

func TestNormalize(t *testing.T) {
	var b Builder
	require.NoError(t, json.Unmarshal([]byte(`{"currentStep":9,"resumeData":{}}`), &b))

	b.Normalize()
	assert.Equal(t, TotalSteps, b.CurrentStep)
	assert.Equal(t, TotalSteps, b.TotalSteps)
	assert.NotNil(t, b.Data.Experience)
	assert.NotNil(t, b.Data.Education)
	assert.NotNil(t, b.Data.Skills)
}

func TestBuilderJSONShape(t *testing.T) {
	raw, err := json.Marshal(New())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.EqualValues(t, 1, got["currentStep"])
	assert.EqualValues(t, TotalSteps, got["totalSteps"])
	data := got["resumeData"].(map[string]any)
	assert.Contains(t, data, "personalInfo")
	assert.Contains(t, data, "experience")
	assert.Contains(t, data, "education")
	assert.Contains(t, data, "skills")
	assert.Contains(t, data, "activities")
}
