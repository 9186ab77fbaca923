package dtos

// UpdateTaskRequest toggles completion of one roadmap item. TaskIndex -1
// targets the skill itself.
type UpdateTaskRequest struct {
	SkillIndex *int  `json:"skillIndex"`
	TaskIndex  *int  `json:"taskIndex"`
	Completed  *bool `json:"completed"`
}

// Complete reports whether all three fields were sent.
func (r UpdateTaskRequest) Complete() bool {
	return r.SkillIndex != nil && r.TaskIndex != nil && r.Completed != nil
}
