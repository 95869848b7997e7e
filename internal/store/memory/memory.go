// Package memory is an in-process store backend. It keeps every collection
// in maps guarded by a single lock and is used for local development and
// tests.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/interviewqa/apiserver/internal/store"
	"github.com/interviewqa/apiserver/types"
)

// Store holds all collections.
type Store struct {
	mu        sync.RWMutex
	jobs      map[string]types.Job
	subJobs   map[string]types.SubJob
	questions map[string]types.Question
	// questionOrder preserves insertion order for listings.
	questionOrder []string
	users         map[string]types.User
	now           func() time.Time
}

func NewStore() *Store {
	return &Store{
		jobs:      make(map[string]types.Job),
		subJobs:   make(map[string]types.SubJob),
		questions: make(map[string]types.Question),
		users:     make(map[string]types.User),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Jobs() *JobRepository           { return &JobRepository{s} }
func (s *Store) SubJobs() *SubJobRepository     { return &SubJobRepository{s} }
func (s *Store) Questions() *QuestionRepository { return &QuestionRepository{s} }
func (s *Store) Users() *UserRepository         { return &UserRepository{s} }

// JobRepository handles persistence for jobs.
type JobRepository struct{ s *Store }

func (r *JobRepository) List(ctx context.Context) ([]types.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	jobs := make([]types.Job, 0, len(r.s.jobs))
	for _, job := range r.s.jobs {
		jobs = append(jobs, job)
	}
	sort.SliceStable(jobs, func(i, j int) bool { return jobs[i].Title < jobs[j].Title })
	return jobs, nil
}

func (r *JobRepository) Get(ctx context.Context, id string) (types.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	job, ok := r.s.jobs[id]
	if !ok {
		return types.Job{}, store.ErrNotFound
	}
	return job, nil
}

func (r *JobRepository) Create(ctx context.Context, job types.Job) (types.Job, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	job.ID = uuid.NewString()
	job.CreatedDate = r.s.now()
	r.s.jobs[job.ID] = job
	return job, nil
}

// SubJobRepository handles persistence for sub-jobs.
type SubJobRepository struct{ s *Store }

func (r *SubJobRepository) ListByJob(ctx context.Context, jobID string) ([]types.SubJob, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	subJobs := make([]types.SubJob, 0)
	for _, subJob := range r.s.subJobs {
		if subJob.MainJobCategory == jobID {
			subJobs = append(subJobs, subJob)
		}
	}
	sort.SliceStable(subJobs, func(i, j int) bool { return subJobs[i].Title < subJobs[j].Title })
	return subJobs, nil
}

func (r *SubJobRepository) Get(ctx context.Context, jobID, subJobID string) (types.SubJob, error) {
	subJob, err := r.GetByID(ctx, subJobID)
	if err != nil {
		return types.SubJob{}, err
	}
	if subJob.MainJobCategory != jobID {
		return types.SubJob{}, store.ErrNotFound
	}
	return subJob, nil
}

func (r *SubJobRepository) GetByID(ctx context.Context, id string) (types.SubJob, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	subJob, ok := r.s.subJobs[id]
	if !ok {
		return types.SubJob{}, store.ErrNotFound
	}
	return subJob, nil
}

func (r *SubJobRepository) Create(ctx context.Context, subJob types.SubJob) (types.SubJob, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	subJob.ID = uuid.NewString()
	subJob.CreatedDate = r.s.now()
	r.s.subJobs[subJob.ID] = subJob
	return subJob, nil
}

// QuestionRepository handles persistence for questions.
type QuestionRepository struct{ s *Store }

func (r *QuestionRepository) List(ctx context.Context, jobID, subJobID string) ([]types.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	questions := make([]types.Question, 0)
	for _, id := range r.s.questionOrder {
		q := r.s.questions[id]
		if q.MainJobCategory == jobID && q.MainSubJobCategory == subJobID {
			questions = append(questions, q)
		}
	}
	return questions, nil
}

func (r *QuestionRepository) Get(ctx context.Context, jobID, subJobID, questionID string) (types.Question, error) {
	q, err := r.GetByID(ctx, questionID)
	if err != nil {
		return types.Question{}, err
	}
	if q.MainJobCategory != jobID || q.MainSubJobCategory != subJobID {
		return types.Question{}, store.ErrNotFound
	}
	return q, nil
}

func (r *QuestionRepository) GetByID(ctx context.Context, id string) (types.Question, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q, ok := r.s.questions[id]
	if !ok {
		return types.Question{}, store.ErrNotFound
	}
	return q, nil
}

func (r *QuestionRepository) Create(ctx context.Context, question types.Question) (types.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	question.ID = uuid.NewString()
	question.CreatedDate = r.s.now()
	r.s.questions[question.ID] = question
	r.s.questionOrder = append(r.s.questionOrder, question.ID)
	return question, nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.questions[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.s.questions, id)
	r.s.questionOrder = slices.DeleteFunc(r.s.questionOrder, func(v string) bool { return v == id })
	return nil
}

// UserRepository handles persistence for users. Username and email are
// unique.
type UserRepository struct{ s *Store }

func (r *UserRepository) GetByID(ctx context.Context, id string) (types.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.userExists(username, email), nil
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.userExists(user.Username, user.Email) {
		return types.User{}, store.ErrConflict
	}
	user.ID = uuid.NewString()
	user.CreatedDate = r.s.now()
	user.Questions = []string{}
	user.Favorites = []string{}
	r.s.users[user.ID] = user
	return cloneUser(user), nil
}

func (r *UserRepository) AddQuestion(ctx context.Context, userID, questionID string) (types.User, error) {
	return r.update(userID, func(u *types.User) {
		u.Questions = addToSet(u.Questions, questionID)
	})
}

func (r *UserRepository) AddFavorite(ctx context.Context, userID, questionID string) (types.User, error) {
	return r.update(userID, func(u *types.User) {
		u.Favorites = addToSet(u.Favorites, questionID)
	})
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, questionID string) (types.User, error) {
	return r.update(userID, func(u *types.User) {
		u.Favorites = slices.DeleteFunc(u.Favorites, func(v string) bool { return v == questionID })
	})
}

func (r *UserRepository) update(userID string, fn func(*types.User)) (types.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[userID]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	user = cloneUser(user)
	fn(&user)
	r.s.users[userID] = user
	return cloneUser(user), nil
}

// userExists must be called with mu held.
func (s *Store) userExists(username, email string) bool {
	for _, user := range s.users {
		if user.Username == username || user.Email == email {
			return true
		}
	}
	return false
}

func addToSet(set []string, value string) []string {
	if slices.Contains(set, value) {
		return set
	}
	return append(set, value)
}

func cloneUser(u types.User) types.User {
	u.Questions = slices.Clone(u.Questions)
	u.Favorites = slices.Clone(u.Favorites)
	if u.Questions == nil {
		u.Questions = []string{}
	}
	if u.Favorites == nil {
		u.Favorites = []string{}
	}
	return u
}
