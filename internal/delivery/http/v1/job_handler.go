package v1

import (
	"net/http"
	"strconv"

	"go-unhired-backend/internal/delivery/http/response"
	"go-unhired-backend/internal/domain"
	"go-unhired-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

// NewJobHandler registers job routes. Listing and detail are public,
// posting requires auth.
func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	public.GET("/jobs", handler.ListJobs)
	public.GET("/jobs/:id", handler.GetJobDetails)
	protected.POST("/jobs", handler.CreateJob)
}

// CreateJobRequest is the request payload for posting a job
type CreateJobRequest struct {
	Title        string   `json:"title" binding:"required"`
	CompanyName  string   `json:"company_name" binding:"required"`
	Location     string   `json:"location"`
	Description  string   `json:"description" binding:"required"`
	Requirements []string `json:"requirements"`
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	// 1. Get user from context
	userID := c.GetString(string(domain.KeyUserID))

	// 2. Bind request
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	// 3. Create
	job := &domain.Job{
		Title:        req.Title,
		CompanyName:  req.CompanyName,
		Location:     req.Location,
		Description:  req.Description,
		Requirements: req.Requirements,
	}
	if err := h.jobUC.CreateJob(c.Request.Context(), userID, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job posted successfully", job)
}

func (h *JobHandler) GetJobDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	job, err := h.jobUC.GetJobDetails(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job retrieved", job)
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	jobs, total, err := h.jobUC.ListJobs(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", gin.H{
		"jobs":  jobs,
		"total": total,
		"page":  page,
	})
}
