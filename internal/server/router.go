package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-search-assistant/internal/auth"
	"github.com/justsurfingit/job-search-assistant/internal/handlers"
	"go.uber.org/zap"
)

// Deps carries everything the router wires into routes.
type Deps struct {
	Users     *handlers.UserHandler
	Learnings *handlers.LearningHandler
	Resumes   *handlers.ResumeHandler

	Logger         *zap.Logger
	CORSOrigins    []string
	MaxUploadBytes int64
}

// NewRouter builds the gin engine with every API route.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(d.Logger), cors.New(corsConfig(d.CORSOrigins)))
	r.MaxMultipartMemory = d.MaxUploadBytes

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		user := api.Group("/user")
		{
			upload := limitBody(d.MaxUploadBytes)
			user.POST("/onboarding", upload, d.Users.Onboarding)
			user.POST("/parse-resume", upload, d.Users.ParseResume)
			user.POST("/user-profile", d.Users.SaveProfile)

			clerk := auth.RequireClerkID("clerkId")
			user.GET("/user-profile/:clerkId", clerk, d.Users.GetProfile)
			user.GET("/resumes/:clerkId", clerk, d.Users.ListResumes)
			user.GET("/learnings/:clerkId", clerk, d.Learnings.List)
			user.POST("/learnings/:clerkId", clerk, d.Learnings.Create)
			user.PUT("/learnings/:clerkId/:learningId", clerk, d.Learnings.UpdateTask)
		}

		res := api.Group("/resume/:clerkId", auth.RequireClerkID("clerkId"))
		{
			res.GET("", d.Resumes.Get)
			res.DELETE("", d.Resumes.Reset)
			res.GET("/preview", d.Resumes.Preview)
			res.PUT("/step", d.Resumes.Step)
			res.PATCH("/personal-info", d.Resumes.UpdatePersonalInfo)
			res.POST("/experience", d.Resumes.AddExperience)
			res.PATCH("/experience/:entryId", d.Resumes.UpdateExperience)
			res.DELETE("/experience/:entryId", d.Resumes.RemoveExperience)
			res.POST("/education", d.Resumes.AddEducation)
			res.PATCH("/education/:entryId", d.Resumes.UpdateEducation)
			res.DELETE("/education/:entryId", d.Resumes.RemoveEducation)
			res.PUT("/skills", d.Resumes.UpdateSkills)
			res.PUT("/activities", d.Resumes.UpdateActivities)
			res.POST("/demo", d.Resumes.LoadDemo)
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
		return config
	}
	config.AllowOrigins = origins
	return config
}

// limitBody caps the request body; multipart overhead gets 1 MiB of slack.
func limitBody(maxUpload int64) gin.HandlerFunc {
	limit := maxUpload + 1<<20
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"message": "Upload too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
