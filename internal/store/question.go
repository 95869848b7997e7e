package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/interviewqa/apiserver/types"
)

// QuestionRepository handles persistence for questions.
type QuestionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

const questionColumns = `id, title, description, created_date, created_by, main_job_category, main_sub_job_category`

func scanQuestion(row interface{ Scan(...any) error }) (types.Question, error) {
	var q types.Question
	err := row.Scan(
		&q.ID,
		&q.Title,
		&q.Description,
		&q.CreatedDate,
		&q.CreatedBy,
		&q.MainJobCategory,
		&q.MainSubJobCategory,
	)
	return q, err
}

func (r *QuestionRepository) List(ctx context.Context, jobID, subJobID string) ([]types.Question, error) {
	ids, err := parseIDs(jobID, subJobID)
	if err != nil {
		return []types.Question{}, nil
	}

	query := `SELECT ` + questionColumns + `
		FROM questions
		WHERE main_job_category = $1 AND main_sub_job_category = $2
		ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, ids[0], ids[1])
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]types.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepository) Get(ctx context.Context, jobID, subJobID, questionID string) (types.Question, error) {
	ids, err := parseIDs(jobID, subJobID, questionID)
	if err != nil {
		return types.Question{}, err
	}
	query := `SELECT ` + questionColumns + `
		FROM questions
		WHERE id = $1 AND main_job_category = $2 AND main_sub_job_category = $3`
	return r.getOne(ctx, query, ids[2], ids[0], ids[1])
}

func (r *QuestionRepository) GetByID(ctx context.Context, id string) (types.Question, error) {
	parsed, err := parseID(id)
	if err != nil {
		return types.Question{}, err
	}
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`
	return r.getOne(ctx, query, parsed)
}

func (r *QuestionRepository) getOne(ctx context.Context, query string, args ...any) (types.Question, error) {
	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Question{}, ErrNotFound
		}
		return types.Question{}, err
	}
	return q, nil
}

func (r *QuestionRepository) Create(ctx context.Context, question types.Question) (types.Question, error) {
	ids, err := parseIDs(question.CreatedBy, question.MainJobCategory, question.MainSubJobCategory)
	if err != nil {
		return types.Question{}, err
	}
	question.ID = uuid.NewString()
	question.CreatedDate = time.Now().UTC()

	const query = `
		INSERT INTO questions (id, title, description, created_date, created_by, main_job_category, main_sub_job_category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(ctx, query,
		question.ID,
		question.Title,
		question.Description,
		question.CreatedDate,
		ids[0],
		ids[1],
		ids[2],
	); err != nil {
		return types.Question{}, translatePQ(err)
	}
	return question, nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}

	const query = `DELETE FROM questions WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, parsed)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
