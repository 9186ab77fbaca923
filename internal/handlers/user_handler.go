package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-assistant/internal/auth"
	"github.com/justsurfingit/job-search-assistant/internal/document"
	"github.com/justsurfingit/job-search-assistant/internal/dtos"
	"github.com/justsurfingit/job-search-assistant/internal/logger"
	"github.com/justsurfingit/job-search-assistant/internal/services"
	"go.uber.org/zap"
)

type UserHandler struct {
	Onboarder *services.OnboardingService
	Users     *services.UserService
	Uploads   *services.UploadService
	Logger    *zap.Logger
}

func NewUserHandler(onboarding *services.OnboardingService, users *services.UserService, uploads *services.UploadService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		Onboarder: onboarding,
		Users:     users,
		Uploads:   uploads,
		Logger:    log,
	}
}

// Onboarding is the POST /user/onboarding endpoint. It takes a multipart
// form (clerkId, payload JSON string, optional resume file) or a JSON body.
func (h *UserHandler) Onboarding(c *gin.Context) {
	var (
		clerkID string
		payload dtos.OnboardingPayload
	)

	if c.ContentType() == gin.MIMEJSON {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
			return
		}
		clerkID, _ = body["clerkId"].(string)
		if raw, ok := body["payload"].(string); ok {
			payload = h.parsePayload(raw)
		} else {
			// no payload string, the body itself carries the fields
			payload = dtos.PayloadFromMap(body)
		}
	} else {
		clerkID = c.PostForm("clerkId")
		if raw := c.PostForm("payload"); raw != "" {
			payload = h.parsePayload(raw)
		} else {
			payload = payloadFromForm(c)
		}
	}

	clerkID = strings.TrimSpace(clerkID)
	if clerkID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Clerk ID is required"})
		return
	}
	if !auth.ValidClerkID(clerkID) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid Clerk ID"})
		return
	}

	file, err := readUpload(c, "resume")
	if err != nil {
		c.JSON(uploadErrorStatus(err), gin.H{"message": "Invalid resume upload", "error": err.Error()})
		return
	}

	if err := h.Onboarder.Onboard(c.Request.Context(), clerkID, payload, file); err != nil {
		h.Logger.Error("error in onboarding", zap.String("user", clerkID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Onboarding failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User onboarding successful"})
}

// ParseResume is the POST /user/parse-resume endpoint
func (h *UserHandler) ParseResume(c *gin.Context) {
	file, err := readUpload(c, "file")
	if err != nil {
		c.JSON(uploadErrorStatus(err), gin.H{"message": "Invalid resume upload", "error": err.Error()})
		return
	}
	if file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No resume file provided"})
		return
	}

	parsed, err := h.Onboarder.ParseResume(c.Request.Context(), file)
	if err != nil {
		h.Logger.Error("error parsing resume via backend", zap.String("file", file.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to parse resume via backend",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, parsed)
}

// SaveProfile is the POST /user/user-profile endpoint. The whole body is
// merged into the user's document.
func (h *UserHandler) SaveProfile(c *gin.Context) {
	var body document.Data
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}

	clerkID, _ := body["clerkId"].(string)
	if clerkID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Clerk ID is required"})
		return
	}
	if !auth.ValidClerkID(clerkID) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid Clerk ID"})
		return
	}

	h.Logger.Info("saving user profile data", zap.String("user", clerkID))

	if _, err := h.Users.SaveProfile(c.Request.Context(), clerkID, body); err != nil {
		h.Logger.Error("error updating user profile", zap.String("user", clerkID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to update user profile",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User profile updated successfully",
		"data":    body,
	})
}

// GetProfile is the GET /user/user-profile/:clerkId endpoint
func (h *UserHandler) GetProfile(c *gin.Context) {
	clerkID := c.Param("clerkId")

	doc, err := h.Users.Get(c.Request.Context(), clerkID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User profile not found"})
		return
	}
	if err != nil {
		h.Logger.Error("error fetching user profile", zap.String("user", clerkID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch user profile",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, doc)
}

// ListResumes is the GET /user/resumes/:clerkId endpoint
func (h *UserHandler) ListResumes(c *gin.Context) {
	clerkID := c.Param("clerkId")

	uploads, err := h.Uploads.List(c.Request.Context(), clerkID)
	if err != nil {
		h.Logger.Error("error listing resumes", zap.String("user", clerkID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch resumes",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"resumes": uploads})
}

// parsePayload decodes the payload form field. Text that is not a JSON
// object is logged and treated as an empty payload.
func (h *UserHandler) parsePayload(raw string) dtos.OnboardingPayload {
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		h.Logger.Warn("could not parse payload string",
			zap.String("payload", logger.TruncateForLog(raw, 200)),
			zap.Error(err),
		)
		return dtos.OnboardingPayload{}
	}
	return dtos.PayloadFromMap(m)
}

func payloadFromForm(c *gin.Context) dtos.OnboardingPayload {
	p := dtos.OnboardingPayload{
		Role:            c.PostForm("role"),
		ExperienceLevel: c.PostForm("experienceLevel"),
	}
	p.JobTypes, _ = c.GetPostFormArray("jobTypes")
	p.Skills, _ = c.GetPostFormArray("skills")
	p.Companies, _ = c.GetPostFormArray("companies")
	p.Countries, _ = c.GetPostFormArray("countries")
	return p
}
