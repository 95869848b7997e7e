package services

import (
	"context"
	"strings"

	"github.com/interviewqa/apiserver/internal/validation"
	"github.com/interviewqa/apiserver/types"
)

// SubJobService encapsulates sub-job use-cases. Every operation is scoped to
// the parent job taken from the route.
type SubJobService struct {
	repo SubJobRepository
}

func NewSubJobService(repo SubJobRepository) *SubJobService {
	return &SubJobService{repo: repo}
}

func (s *SubJobService) List(ctx context.Context, jobID string) ([]types.SubJob, error) {
	subJobs, err := s.repo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, translate(err, msgNoSubJob)
	}
	return subJobs, nil
}

// Get returns NotFound when subJobID exists but belongs to another job.
func (s *SubJobService) Get(ctx context.Context, jobID, subJobID string) (types.SubJob, error) {
	subJob, err := s.repo.Get(ctx, jobID, subJobID)
	if err != nil {
		return types.SubJob{}, translate(err, msgNoSubJob)
	}
	return subJob, nil
}

func (s *SubJobService) Create(ctx context.Context, jobID string, input types.SubJobInput) (types.SubJob, error) {
	input.ImageURL = strings.TrimSpace(input.ImageURL)
	if err := validation.Validate(input); err != nil {
		return types.SubJob{}, err
	}

	subJob, err := s.repo.Create(ctx, types.SubJob{
		Title:           input.Title,
		ImageURL:        input.ImageURL,
		MainJobCategory: jobID,
	})
	if err != nil {
		return types.SubJob{}, translate(err, msgNoJob)
	}
	return subJob, nil
}
