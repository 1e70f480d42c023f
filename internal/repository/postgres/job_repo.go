package postgres

import (
	"context"
	"time"

	"go-unhired-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

// Create inserts a new job posting
func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (owner_user_id, title, slug, company_name, location, description, requirements, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	return r.db.QueryRow(ctx, query,
		job.OwnerUserID,
		job.Title,
		job.Slug,
		job.CompanyName,
		job.Location,
		job.Description,
		pq.Array(job.Requirements),
		job.CreatedAt,
		job.UpdatedAt,
	).Scan(&job.ID)
}

// GetByID retrieves a job by ID
func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `
		SELECT id, owner_user_id, title, slug, company_name, location, description, requirements, created_at, updated_at
		FROM jobs
		WHERE id = $1`

	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.OwnerUserID, &job.Title, &job.Slug, &job.CompanyName,
		&job.Location, &job.Description, pq.Array(&job.Requirements),
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Fetch retrieves a page of jobs, newest first, with the total count
func (r *jobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, owner_user_id, title, slug, company_name, location, description, requirements, created_at, updated_at
		FROM jobs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID, &job.OwnerUserID, &job.Title, &job.Slug, &job.CompanyName,
			&job.Location, &job.Description, pq.Array(&job.Requirements),
			&job.CreatedAt, &job.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	return jobs, total, rows.Err()
}

// CountByOwner counts the jobs posted by one user
func (r *jobRepo) CountByOwner(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM jobs WHERE owner_user_id = $1`
	var count int
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}
