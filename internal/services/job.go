package services

import (
	"context"
	"strings"

	"github.com/interviewqa/apiserver/internal/validation"
	"github.com/interviewqa/apiserver/types"
)

// JobService encapsulates job use-cases.
type JobService struct {
	repo JobRepository
}

func NewJobService(repo JobRepository) *JobService {
	return &JobService{repo: repo}
}

func (s *JobService) List(ctx context.Context) ([]types.Job, error) {
	jobs, err := s.repo.List(ctx)
	if err != nil {
		return nil, translate(err, msgNoJob)
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id string) (types.Job, error) {
	job, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Job{}, translate(err, msgNoJob)
	}
	return job, nil
}

func (s *JobService) Create(ctx context.Context, input types.JobInput) (types.Job, error) {
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	if err := validation.Validate(input); err != nil {
		return types.Job{}, err
	}

	job, err := s.repo.Create(ctx, types.Job{
		Title:    input.Title,
		ImageURL: input.ImageURL,
	})
	if err != nil {
		return types.Job{}, translate(err, msgNoJob)
	}
	return job, nil
}
