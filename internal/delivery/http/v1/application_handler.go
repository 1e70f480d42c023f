package v1

import (
	"net/http"
	"strconv"

	"go-unhired-backend/internal/delivery/http/response"
	"go-unhired-backend/internal/domain"
	"go-unhired-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applicants := r.Group("/applicants")
	{
		applicants.POST("/jobs/:jobId/apply", handler.ApplyToJob)
		applicants.GET("/applications", handler.GetMyApplications)
	}
}

// ApplyToJobRequest is the request payload for applying to a job
type ApplyToJobRequest struct {
	Answers   map[string]string `json:"answers" binding:"required"`
	CVText    string            `json:"cv_text"`
	AIConsent bool              `json:"ai_consent"`
}

func (h *ApplicationHandler) ApplyToJob(c *gin.Context) {
	// 1. Get user from context
	userID := c.GetString(string(domain.KeyUserID))

	// 2. Parse job ID
	jobIDStr := c.Param("jobId")
	jobID, err := strconv.ParseInt(jobIDStr, 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	// 3. Bind request
	var req ApplyToJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	// 4. Submit
	app, err := h.applicationUC.Submit(c.Request.Context(), userID, &domain.SubmitApplicationInput{
		JobID:     jobID,
		Answers:   req.Answers,
		CVText:    req.CVText,
		AIConsent: req.AIConsent,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	applications, err := h.applicationUC.GetMyApplications(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}
