// Package resume implements the resume builder: a four-step wizard over a
// single resume document with per-field and per-entry mutations.
package resume

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TotalSteps is the number of wizard steps: personal info, experience,
// education, skills & extras.
const TotalSteps = 4

// Form limits, in runes. Longer input is truncated.
const (
	MaxSummaryLen     = 500
	MaxDescriptionLen = 800
	MaxActivitiesLen  = 400
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrInvalidValue  = errors.New("invalid value for field")
	ErrEntryNotFound = errors.New("entry not found")
)

type PersonalInfo struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
	Location  string `json:"location"`
	Summary   string `json:"summary"`
}

type Experience struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type Education struct {
	ID             string `json:"id"`
	School         string `json:"school"`
	Degree         string `json:"degree"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduationDate"`
	GPA            string `json:"gpa"`
}

// Data is the resume document edited by the wizard.
type Data struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Skills       []string     `json:"skills"`
	Activities   string       `json:"activities"`
}

// Builder is the wizard state. The zero value is not usable, use New.
type Builder struct {
	CurrentStep int  `json:"currentStep"`
	TotalSteps  int  `json:"totalSteps"`
	Data        Data `json:"resumeData"`
}

// New returns a builder on step 1 with one empty experience and one empty
// education entry.
func New() *Builder {
	return &Builder{
		CurrentStep: 1,
		TotalSteps:  TotalSteps,
		Data: Data{
			Experience: []Experience{{ID: "exp-1"}},
			Education:  []Education{{ID: "edu-1"}},
			Skills:     []string{},
		},
	}
}

// Normalize repairs a builder decoded from storage so that every invariant
// holds again.
func (b *Builder) Normalize() {
	b.TotalSteps = TotalSteps
	b.CurrentStep = clamp(b.CurrentStep, 1, TotalSteps)
	if b.Data.Experience == nil {
		b.Data.Experience = []Experience{}
	}
	if b.Data.Education == nil {
		b.Data.Education = []Education{}
	}
	if b.Data.Skills == nil {
		b.Data.Skills = []string{}
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// GoToStep jumps to step, clamped into [1, TotalSteps].
func (b *Builder) GoToStep(step int) {
	b.CurrentStep = clamp(step, 1, TotalSteps)
}

func (b *Builder) NextStep() {
	b.CurrentStep = clamp(b.CurrentStep+1, 1, TotalSteps)
}

func (b *Builder) PrevStep() {
	b.CurrentStep = clamp(b.CurrentStep-1, 1, TotalSteps)
}

// UpdatePersonalInfo sets one personal info field.
func (b *Builder) UpdatePersonalInfo(field string, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w %q: want string", ErrInvalidValue, field)
	}
	p := &b.Data.PersonalInfo
	switch field {
	case "fullName":
		p.FullName = s
	case "email":
		p.Email = s
	case "phone":
		p.Phone = s
	case "linkedin":
		p.LinkedIn = s
	case "portfolio":
		p.Portfolio = s
	case "location":
		p.Location = s
	case "summary":
		b.UpdateSummary(s)
	default:
		return fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	return nil
}

func (b *Builder) UpdateSummary(value string) {
	b.Data.PersonalInfo.Summary = truncate(value, MaxSummaryLen)
}

// AddExperience appends an empty experience entry and returns its id.
func (b *Builder) AddExperience() string {
	id := b.newID("exp", func(id string) bool { return b.experienceIndex(id) >= 0 })
	b.Data.Experience = append(b.Data.Experience, Experience{ID: id})
	return id
}

// UpdateExperience sets field on the experience entry with the given id.
func (b *Builder) UpdateExperience(id, field string, value any) error {
	i := b.experienceIndex(id)
	if i < 0 {
		return fmt.Errorf("experience %q: %w", id, ErrEntryNotFound)
	}
	exp := b.Data.Experience[i]

	if field == "current" {
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w %q: want bool", ErrInvalidValue, field)
		}
		exp.Current = v
		b.Data.Experience[i] = exp
		return nil
	}

	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w %q: want string", ErrInvalidValue, field)
	}
	switch field {
	case "company":
		exp.Company = s
	case "role":
		exp.Role = s
	case "location":
		exp.Location = s
	case "startDate":
		exp.StartDate = s
	case "endDate":
		exp.EndDate = s
	case "description":
		exp.Description = truncate(s, MaxDescriptionLen)
	default:
		return fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	b.Data.Experience[i] = exp
	return nil
}

// RemoveExperience drops the entry with the given id. Unknown ids are ignored.
func (b *Builder) RemoveExperience(id string) {
	kept := b.Data.Experience[:0]
	for _, exp := range b.Data.Experience {
		if exp.ID != id {
			kept = append(kept, exp)
		}
	}
	b.Data.Experience = kept
}

// AddEducation appends an empty education entry and returns its id.
func (b *Builder) AddEducation() string {
	id := b.newID("edu", func(id string) bool { return b.educationIndex(id) >= 0 })
	b.Data.Education = append(b.Data.Education, Education{ID: id})
	return id
}

// UpdateEducation sets field on the education entry with the given id.
func (b *Builder) UpdateEducation(id, field string, value any) error {
	i := b.educationIndex(id)
	if i < 0 {
		return fmt.Errorf("education %q: %w", id, ErrEntryNotFound)
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w %q: want string", ErrInvalidValue, field)
	}
	edu := b.Data.Education[i]
	switch field {
	case "school":
		edu.School = s
	case "degree":
		edu.Degree = s
	case "location":
		edu.Location = s
	case "graduationDate":
		edu.GraduationDate = s
	case "gpa":
		edu.GPA = s
	default:
		return fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	b.Data.Education[i] = edu
	return nil
}

// RemoveEducation drops the entry with the given id. Unknown ids are ignored.
func (b *Builder) RemoveEducation(id string) {
	kept := b.Data.Education[:0]
	for _, edu := range b.Data.Education {
		if edu.ID != id {
			kept = append(kept, edu)
		}
	}
	b.Data.Education = kept
}

// UpdateSkills replaces the skill list. Entries are trimmed; blanks are kept
// so a comma-separated input can be edited in place.
func (b *Builder) UpdateSkills(skills []string) {
	out := make([]string, len(skills))
	for i, s := range skills {
		out[i] = strings.TrimSpace(s)
	}
	b.Data.Skills = out
}

// ParseSkills splits comma-separated input into a skill list.
func ParseSkills(raw string) []string {
	return strings.Split(raw, ",")
}

func (b *Builder) UpdateActivities(value string) {
	b.Data.Activities = truncate(value, MaxActivitiesLen)
}

// Reset discards all data and returns to step 1.
func (b *Builder) Reset() {
	*b = *New()
}

func (b *Builder) experienceIndex(id string) int {
	for i, exp := range b.Data.Experience {
		if exp.ID == id {
			return i
		}
	}
	return -1
}

func (b *Builder) educationIndex(id string) int {
	for i, edu := range b.Data.Education {
		if edu.ID == id {
			return i
		}
	}
	return -1
}

func (b *Builder) newID(prefix string, taken func(string) bool) string {
	for {
		id := prefix + "-" + uuid.NewString()
		if !taken(id) {
			return id
		}
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
