package services

import (
	"context"
	"errors"

	"github.com/interviewqa/apiserver/internal/store"
	"github.com/interviewqa/apiserver/types"
)

// populator expands question references into documents. Lookups are
// memoized for the lifetime of one operation; a reference that no longer
// resolves becomes nil, and a question that no longer resolves is skipped.
type populator struct {
	repos   Repositories
	users   map[string]*types.User
	jobs    map[string]*types.Job
	subJobs map[string]*types.SubJob
}

func newPopulator(repos Repositories) *populator {
	return &populator{
		repos:   repos,
		users:   make(map[string]*types.User),
		jobs:    make(map[string]*types.Job),
		subJobs: make(map[string]*types.SubJob),
	}
}

func (p *populator) question(ctx context.Context, q types.Question) (types.PopulatedQuestion, error) {
	out := types.PopulatedQuestion{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		CreatedDate: q.CreatedDate,
	}

	var err error
	if out.CreatedBy, err = p.user(ctx, q.CreatedBy); err != nil {
		return types.PopulatedQuestion{}, err
	}
	if out.MainJobCategory, err = p.job(ctx, q.MainJobCategory); err != nil {
		return types.PopulatedQuestion{}, err
	}
	if out.MainSubJobCategory, err = p.subJob(ctx, q.MainSubJobCategory); err != nil {
		return types.PopulatedQuestion{}, err
	}
	return out, nil
}

func (p *populator) questions(ctx context.Context, questions []types.Question) ([]types.PopulatedQuestion, error) {
	out := make([]types.PopulatedQuestion, 0, len(questions))
	for _, q := range questions {
		pq, err := p.question(ctx, q)
		if err != nil {
			return nil, err
		}
		out = append(out, pq)
	}
	return out, nil
}

// questionSet resolves a reference set in order.
func (p *populator) questionSet(ctx context.Context, ids []string) ([]types.PopulatedQuestion, error) {
	out := make([]types.PopulatedQuestion, 0, len(ids))
	for _, id := range ids {
		q, err := p.repos.Questions.GetByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		pq, err := p.question(ctx, q)
		if err != nil {
			return nil, err
		}
		out = append(out, pq)
	}
	return out, nil
}

func (p *populator) user(ctx context.Context, id string) (*types.User, error) {
	if u, ok := p.users[id]; ok {
		return u, nil
	}
	u, err := p.repos.Users.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		p.users[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.users[id] = &u
	return &u, nil
}

func (p *populator) job(ctx context.Context, id string) (*types.Job, error) {
	if j, ok := p.jobs[id]; ok {
		return j, nil
	}
	j, err := p.repos.Jobs.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		p.jobs[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.jobs[id] = &j
	return &j, nil
}

func (p *populator) subJob(ctx context.Context, id string) (*types.SubJob, error) {
	if s, ok := p.subJobs[id]; ok {
		return s, nil
	}
	s, err := p.repos.SubJobs.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		p.subJobs[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.subJobs[id] = &s
	return &s, nil
}
