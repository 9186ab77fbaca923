package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-assistant/internal/dtos"
	"github.com/justsurfingit/job-search-assistant/internal/resume"
	"github.com/justsurfingit/job-search-assistant/internal/services"
	"go.uber.org/zap"
)

// ResumeHandler exposes the resume builder wizard.
type ResumeHandler struct {
	Resumes *services.ResumeService
	Logger  *zap.Logger
}

func NewResumeHandler(resumes *services.ResumeService, log *zap.Logger) *ResumeHandler {
	return &ResumeHandler{Resumes: resumes, Logger: log}
}

// Get is the GET /resume/:clerkId endpoint
func (h *ResumeHandler) Get(c *gin.Context) {
	b, err := h.Resumes.Get(c.Request.Context(), c.Param("clerkId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Step is the PUT /resume/:clerkId/step endpoint
func (h *ResumeHandler) Step(c *gin.Context) {
	var req dtos.StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}
	h.update(c, func(b *resume.Builder) error {
		switch req.Action {
		case "next":
			b.NextStep()
		case "prev":
			b.PrevStep()
		case "goto":
			b.GoToStep(req.Step)
		}
		return nil
	})
}

// UpdatePersonalInfo is the PATCH /resume/:clerkId/personal-info endpoint
func (h *ResumeHandler) UpdatePersonalInfo(c *gin.Context) {
	var req dtos.FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}
	h.update(c, func(b *resume.Builder) error {
		return b.UpdatePersonalInfo(req.Field, req.Value)
	})
}

// AddExperience is the POST /resume/:clerkId/experience endpoint
func (h *ResumeHandler) AddExperience(c *gin.Context) {
	h.update(c, func(b *resume.Builder) error {
		b.AddExperience()
		return nil
	})
}

// UpdateExperience is the PATCH /resume/:clerkId/experience/:entryId endpoint
func (h *ResumeHandler) UpdateExperience(c *gin.Context) {
	var req dtos.FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}
	id := c.Param("entryId")
	h.update(c, func(b *resume.Builder) error {
		return b.UpdateExperience(id, req.Field, req.Value)
	})
}

// RemoveExperience is the DELETE /resume/:clerkId/experience/:entryId endpoint
func (h *ResumeHandler) RemoveExperience(c *gin.Context) {
	id := c.Param("entryId")
	h.update(c, func(b *resume.Builder) error {
		b.RemoveExperience(id)
		return nil
	})
}

// AddEducation is the POST /resume/:clerkId/education endpoint
func (h *ResumeHandler) AddEducation(c *gin.Context) {
	h.update(c, func(b *resume.Builder) error {
		b.AddEducation()
		return nil
	})
}

// UpdateEducation is the PATCH /resume/:clerkId/education/:entryId endpoint
func (h *ResumeHandler) UpdateEducation(c *gin.Context) {
	var req dtos.FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}
	id := c.Param("entryId")
	h.update(c, func(b *resume.Builder) error {
		return b.UpdateEducation(id, req.Field, req.Value)
	})
}

// RemoveEducation is the DELETE /resume/:clerkId/education/:entryId endpoint
func (h *ResumeHandler) RemoveEducation(c *gin.Context) {
	id := c.Param("entryId")
	h.update(c, func(b *resume.Builder) error {
		b.RemoveEducation(id)
		return nil
	})
}

// UpdateSkills is the PUT /resume/:clerkId/skills endpoint
func (h *ResumeHandler) UpdateSkills(c *gin.Context) {
	var req dtos.SkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}
	skills := req.Skills
	if req.Raw != nil {
		skills = resume.ParseSkills(*req.Raw)
	}
	h.update(c, func(b *resume.Builder) error {
		b.UpdateSkills(skills)
		return nil
	})
}

// UpdateActivities is the PUT /resume/:clerkId/activities endpoint
func (h *ResumeHandler) UpdateActivities(c *gin.Context) {
	var req dtos.ActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}
	h.update(c, func(b *resume.Builder) error {
		b.UpdateActivities(req.Value)
		return nil
	})
}

// LoadDemo is the POST /resume/:clerkId/demo endpoint
func (h *ResumeHandler) LoadDemo(c *gin.Context) {
	h.update(c, func(b *resume.Builder) error {
		b.LoadDemoData()
		return nil
	})
}

// Reset is the DELETE /resume/:clerkId endpoint
func (h *ResumeHandler) Reset(c *gin.Context) {
	if err := h.Resumes.Delete(c.Request.Context(), c.Param("clerkId")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resume.New())
}

// Preview is the GET /resume/:clerkId/preview endpoint. It answers with an
// HTML fragment, or markdown when format=markdown.
func (h *ResumeHandler) Preview(c *gin.Context) {
	b, err := h.Resumes.Get(c.Request.Context(), c.Param("clerkId"))
	if err != nil {
		h.fail(c, err)
		return
	}

	if c.Query("format") == "markdown" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(b.Data.Markdown()))
		return
	}

	html, err := b.Data.HTML()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *ResumeHandler) update(c *gin.Context, fn func(b *resume.Builder) error) {
	b, err := h.Resumes.Update(c.Request.Context(), c.Param("clerkId"), fn)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *ResumeHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, resume.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Entry not found", "error": err.Error()})
	case errors.Is(err, resume.ErrUnknownField), errors.Is(err, resume.ErrInvalidValue):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid field update", "error": err.Error()})
	default:
		h.Logger.Error("resume builder request failed", zap.String("user", c.Param("clerkId")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to update resume",
			"error":   err.Error(),
		})
	}
}
