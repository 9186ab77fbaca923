package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-assistant/internal/document"
	"github.com/justsurfingit/job-search-assistant/internal/dtos"
	"github.com/justsurfingit/job-search-assistant/internal/services"
	"go.uber.org/zap"
)

type LearningHandler struct {
	Learnings *services.LearningService
	Logger    *zap.Logger
}

func NewLearningHandler(learnings *services.LearningService, log *zap.Logger) *LearningHandler {
	return &LearningHandler{Learnings: learnings, Logger: log}
}

// List is the GET /user/learnings/:clerkId endpoint
func (h *LearningHandler) List(c *gin.Context) {
	clerkID := c.Param("clerkId")

	learnings, err := h.Learnings.List(c.Request.Context(), clerkID)
	if err != nil {
		h.Logger.Error("error fetching user learnings", zap.String("user", clerkID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch user learnings",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"learnings": learnings})
}

// Create is the POST /user/learnings/:clerkId endpoint the workflow engine
// calls with a generated roadmap.
func (h *LearningHandler) Create(c *gin.Context) {
	clerkID := c.Param("clerkId")

	var body document.Data
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}

	id, err := h.Learnings.Create(c.Request.Context(), clerkID, body)
	if errors.Is(err, services.ErrInvalidID) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid learning id", "error": err.Error()})
		return
	}
	if err != nil {
		h.Logger.Error("error saving learning path", zap.String("user", clerkID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to save learning path",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Learning path saved", "id": id})
}

// UpdateTask is the PUT /user/learnings/:clerkId/:learningId endpoint
func (h *LearningHandler) UpdateTask(c *gin.Context) {
	clerkID := c.Param("clerkId")
	learningID := c.Param("learningId")

	var req dtos.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Complete() || learningID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	err := h.Learnings.UpdateTask(c.Request.Context(), clerkID, learningID, *req.SkillIndex, *req.TaskIndex, *req.Completed)
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Learning path not found"})
	case errors.Is(err, services.ErrTaskNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Task not found to update"})
	case err != nil:
		h.Logger.Error("error updating learning task", zap.String("user", clerkID), zap.String("learning", learningID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to update learning task",
			"error":   err.Error(),
		})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully"})
	}
}
