package dtos

// StepRequest moves the resume wizard. Step is only read for "goto".
type StepRequest struct {
	Action string `json:"action" binding:"required,oneof=next prev goto"`
	Step   int    `json:"step"`
}

// FieldUpdateRequest sets one field of the personal info block or of an
// experience/education entry.
type FieldUpdateRequest struct {
	Field string `json:"field" binding:"required"`
	Value any    `json:"value"`
}

// SkillsRequest replaces the skill list. Raw is a comma-separated
// alternative to Skills.
type SkillsRequest struct {
	Skills []string `json:"skills"`
	Raw    *string  `json:"raw"`
}

type ActivitiesRequest struct {
	Value string `json:"value"`
}
