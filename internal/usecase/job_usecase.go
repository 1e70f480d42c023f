package usecase

import (
	"context"
	"regexp"
	"strings"

	"go-unhired-backend/internal/domain"
	"go-unhired-backend/pkg/apperror"
	"go-unhired-backend/pkg/logger"
)

type jobUsecase struct {
	jobRepo domain.JobRepository
	badgeUC domain.BadgeUsecase
}

// NewJobUsecase creates a new job usecase
func NewJobUsecase(jobRepo domain.JobRepository, badgeUC domain.BadgeUsecase) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo, badgeUC: badgeUC}
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a job title into a URL-friendly slug
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CreateJob creates a job posting and feeds the job-post badge counter
func (uc *jobUsecase) CreateJob(ctx context.Context, userID string, job *domain.Job) error {
	// 1. Validate
	if strings.TrimSpace(job.Title) == "" {
		return apperror.BadRequest("Job title is required")
	}
	if strings.TrimSpace(job.CompanyName) == "" {
		return apperror.BadRequest("Company name is required")
	}

	// 2. Create
	job.OwnerUserID = userID
	job.Slug = Slugify(job.Title)
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}

	// 3. Badge check; failure must not fail the posting
	count, err := uc.jobRepo.CountByOwner(ctx, userID)
	if err != nil {
		logger.Log.Warn("failed to count jobs for badges", "user_id", userID, "error", err)
		return nil
	}
	if err := uc.badgeUC.CheckAndAward(ctx, userID, domain.BadgeCategoryJobPost, count); err != nil {
		logger.Log.Warn("failed to award job-post badges", "user_id", userID, "error", err)
	}

	return nil
}

// GetJobDetails returns a single job
func (uc *jobUsecase) GetJobDetails(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}

// ListJobs returns a paginated list of jobs
func (uc *jobUsecase) ListJobs(ctx context.Context, page, pageSize int) ([]domain.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return uc.jobRepo.Fetch(ctx, pageSize, (page-1)*pageSize)
}
