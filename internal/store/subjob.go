package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/interviewqa/apiserver/types"
)

// SubJobRepository handles persistence for sub-jobs.
type SubJobRepository struct {
	db *sql.DB
}

func NewSubJobRepository(db *sql.DB) *SubJobRepository {
	return &SubJobRepository{db: db}
}

const subJobColumns = `id, title, image_url, main_job_category, created_date`

func scanSubJob(row interface{ Scan(...any) error }) (types.SubJob, error) {
	var subJob types.SubJob
	err := row.Scan(
		&subJob.ID,
		&subJob.Title,
		&subJob.ImageURL,
		&subJob.MainJobCategory,
		&subJob.CreatedDate,
	)
	return subJob, err
}

func (r *SubJobRepository) ListByJob(ctx context.Context, jobID string) ([]types.SubJob, error) {
	parsed, err := parseID(jobID)
	if err != nil {
		return []types.SubJob{}, nil
	}

	query := `SELECT ` + subJobColumns + `
		FROM sub_jobs
		WHERE main_job_category = $1
		ORDER BY title, created_date`
	rows, err := r.db.QueryContext(ctx, query, parsed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subJobs := make([]types.SubJob, 0)
	for rows.Next() {
		subJob, err := scanSubJob(rows)
		if err != nil {
			return nil, err
		}
		subJobs = append(subJobs, subJob)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subJobs, nil
}

func (r *SubJobRepository) Get(ctx context.Context, jobID, subJobID string) (types.SubJob, error) {
	ids, err := parseIDs(jobID, subJobID)
	if err != nil {
		return types.SubJob{}, err
	}
	query := `SELECT ` + subJobColumns + ` FROM sub_jobs WHERE id = $1 AND main_job_category = $2`
	return r.getOne(ctx, query, ids[1], ids[0])
}

func (r *SubJobRepository) GetByID(ctx context.Context, id string) (types.SubJob, error) {
	parsed, err := parseID(id)
	if err != nil {
		return types.SubJob{}, err
	}
	query := `SELECT ` + subJobColumns + ` FROM sub_jobs WHERE id = $1`
	return r.getOne(ctx, query, parsed)
}

func (r *SubJobRepository) getOne(ctx context.Context, query string, args ...any) (types.SubJob, error) {
	subJob, err := scanSubJob(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.SubJob{}, ErrNotFound
		}
		return types.SubJob{}, err
	}
	return subJob, nil
}

func (r *SubJobRepository) Create(ctx context.Context, subJob types.SubJob) (types.SubJob, error) {
	jobID, err := parseID(subJob.MainJobCategory)
	if err != nil {
		return types.SubJob{}, err
	}
	subJob.ID = uuid.NewString()
	subJob.CreatedDate = time.Now().UTC()

	const query = `
		INSERT INTO sub_jobs (id, title, image_url, main_job_category, created_date)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query,
		subJob.ID,
		subJob.Title,
		subJob.ImageURL,
		jobID,
		subJob.CreatedDate,
	); err != nil {
		return types.SubJob{}, translatePQ(err)
	}
	return subJob, nil
}
