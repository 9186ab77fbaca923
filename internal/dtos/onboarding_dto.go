package dtos

import "fmt"

// OnboardingPayload is the preference set collected by the onboarding
// wizard. Nil slices mean the client did not send the field.
type OnboardingPayload struct {
	Role            string   `json:"role"`
	ExperienceLevel string   `json:"experienceLevel"`
	JobTypes        []string `json:"jobTypes"`
	Skills          []string `json:"skills"`
	Companies       []string `json:"companies"`
	Countries       []string `json:"countries"`
}

// Document returns the fields written to the user document, with empty
// defaults for anything missing.
func (p OnboardingPayload) Document() map[string]any {
	return map[string]any{
		"role":            p.Role,
		"experienceLevel": p.ExperienceLevel,
		"jobTypes":        orEmpty(p.JobTypes),
		"skills":          orEmpty(p.Skills),
		"companies":       orEmpty(p.Companies),
		"countries":       orEmpty(p.Countries),
	}
}

func orEmpty(v []string) []any {
	out := make([]any, len(v))
	for i, s := range v {
		out[i] = s
	}
	return out
}

// PayloadFromMap picks the known fields out of a decoded payload one by one.
// A field of the wrong shape is dropped without touching the others; numbers
// and booleans in text fields are kept as text.
func PayloadFromMap(m map[string]any) OnboardingPayload {
	return OnboardingPayload{
		Role:            text(m["role"]),
		ExperienceLevel: text(m["experienceLevel"]),
		JobTypes:        list(m["jobTypes"]),
		Skills:          list(m["skills"]),
		Companies:       list(m["companies"]),
		Countries:       list(m["countries"]),
	}
}

func text(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64, bool:
		return fmt.Sprint(v)
	}
	return ""
}

// list accepts an array of scalars or a single string.
func list(v any) []string {
	switch v := v.(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := text(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
