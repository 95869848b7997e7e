package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/interviewqa/apiserver/types"
)

// JobRepository handles persistence for jobs.
type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) List(ctx context.Context) ([]types.Job, error) {
	const query = `
		SELECT id, title, image_url, created_date
		FROM jobs
		ORDER BY title, created_date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]types.Job, 0)
	for rows.Next() {
		var job types.Job
		if err := rows.Scan(&job.ID, &job.Title, &job.ImageURL, &job.CreatedDate); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepository) Get(ctx context.Context, id string) (types.Job, error) {
	jobID, err := parseID(id)
	if err != nil {
		return types.Job{}, err
	}

	const query = `
		SELECT id, title, image_url, created_date
		FROM jobs
		WHERE id = $1`
	var job types.Job
	err = r.db.QueryRowContext(ctx, query, jobID).Scan(&job.ID, &job.Title, &job.ImageURL, &job.CreatedDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Job{}, ErrNotFound
		}
		return types.Job{}, err
	}
	return job, nil
}

func (r *JobRepository) Create(ctx context.Context, job types.Job) (types.Job, error) {
	job.ID = uuid.NewString()
	job.CreatedDate = time.Now().UTC()

	const query = `
		INSERT INTO jobs (id, title, image_url, created_date)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, job.ID, job.Title, job.ImageURL, job.CreatedDate); err != nil {
		return types.Job{}, translatePQ(err)
	}
	return job, nil
}
