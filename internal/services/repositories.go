package services

import (
	"context"

	"github.com/interviewqa/apiserver/types"
)

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	// List returns every job ordered by title ascending.
	List(ctx context.Context) ([]types.Job, error)
	Get(ctx context.Context, id string) (types.Job, error)
	Create(ctx context.Context, job types.Job) (types.Job, error)
}

// SubJobRepository defines persistence operations for sub-jobs.
type SubJobRepository interface {
	// ListByJob returns the sub-jobs of jobID ordered by title ascending.
	ListByJob(ctx context.Context, jobID string) ([]types.SubJob, error)
	// Get matches on both the parent job and the sub-job id.
	Get(ctx context.Context, jobID, subJobID string) (types.SubJob, error)
	GetByID(ctx context.Context, id string) (types.SubJob, error)
	Create(ctx context.Context, subJob types.SubJob) (types.SubJob, error)
}

// QuestionRepository defines persistence operations for questions.
type QuestionRepository interface {
	// List returns the questions filed under jobID/subJobID in insertion order.
	List(ctx context.Context, jobID, subJobID string) ([]types.Question, error)
	// Get matches on all three ids.
	Get(ctx context.Context, jobID, subJobID, questionID string) (types.Question, error)
	GetByID(ctx context.Context, id string) (types.Question, error)
	Create(ctx context.Context, question types.Question) (types.Question, error)
	Delete(ctx context.Context, id string) error
}

// UserRepository defines persistence operations for users. The reference-set
// mutators return the user as it is after the update.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	AddQuestion(ctx context.Context, userID, questionID string) (types.User, error)
	AddFavorite(ctx context.Context, userID, questionID string) (types.User, error)
	RemoveFavorite(ctx context.Context, userID, questionID string) (types.User, error)
}

// Repositories bundles one implementation of each repository. Every store
// backend provides a constructor returning it.
type Repositories struct {
	Jobs      JobRepository
	SubJobs   SubJobRepository
	Questions QuestionRepository
	Users     UserRepository
}
