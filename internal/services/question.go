package services

import (
	"context"
	"strings"

	"github.com/interviewqa/apiserver/internal/apperr"
	"github.com/interviewqa/apiserver/internal/validation"
	"github.com/interviewqa/apiserver/types"
)

// CreatedQuestion is the result of QuestionService.Create.
type CreatedQuestion struct {
	Question      types.Question            `json:"question"`
	UserQuestions []types.PopulatedQuestion `json:"userQuestions"`
}

// QuestionService encapsulates question use-cases, including the caller's
// authored and favorite reference sets.
type QuestionService struct {
	repos Repositories
}

func NewQuestionService(repos Repositories) *QuestionService {
	return &QuestionService{repos: repos}
}

func (s *QuestionService) List(ctx context.Context, jobID, subJobID string) ([]types.PopulatedQuestion, error) {
	questions, err := s.repos.Questions.List(ctx, jobID, subJobID)
	if err != nil {
		return nil, translate(err, msgNoQuestion)
	}
	populated, err := newPopulator(s.repos).questions(ctx, questions)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return populated, nil
}

func (s *QuestionService) Get(ctx context.Context, jobID, subJobID, questionID string) (types.PopulatedQuestion, error) {
	question, err := s.resolve(ctx, jobID, subJobID, questionID)
	if err != nil {
		return types.PopulatedQuestion{}, err
	}
	populated, err := newPopulator(s.repos).question(ctx, question)
	if err != nil {
		return types.PopulatedQuestion{}, apperr.Store(err)
	}
	return populated, nil
}

// Create files a new question under jobID/subJobID on behalf of callerID and
// records it in the caller's authored set.
func (s *QuestionService) Create(ctx context.Context, jobID, subJobID, callerID string, input types.QuestionInput) (CreatedQuestion, error) {
	input.Description = strings.TrimSpace(input.Description)
	if err := validation.Validate(input); err != nil {
		return CreatedQuestion{}, err
	}

	question, err := s.repos.Questions.Create(ctx, types.Question{
		Title:              input.Title,
		Description:        input.Description,
		CreatedBy:          callerID,
		MainJobCategory:    jobID,
		MainSubJobCategory: subJobID,
	})
	if err != nil {
		return CreatedQuestion{}, translate(err, msgNoSubJob)
	}

	user, err := s.repos.Users.AddQuestion(ctx, callerID, question.ID)
	if err != nil {
		return CreatedQuestion{}, translate(err, msgNoUser)
	}

	authored, err := newPopulator(s.repos).questionSet(ctx, user.Questions)
	if err != nil {
		return CreatedQuestion{}, apperr.Store(err)
	}
	return CreatedQuestion{Question: question, UserQuestions: authored}, nil
}

// Like adds the question to the caller's favorites. Liking twice is a no-op.
func (s *QuestionService) Like(ctx context.Context, jobID, subJobID, questionID, callerID string) ([]types.PopulatedQuestion, error) {
	question, err := s.resolve(ctx, jobID, subJobID, questionID)
	if err != nil {
		return nil, err
	}
	user, err := s.repos.Users.AddFavorite(ctx, callerID, question.ID)
	if err != nil {
		return nil, translate(err, msgNoUser)
	}
	return s.favorites(ctx, user)
}

// Unlike removes the question from the caller's favorites. Unliking a
// question that was never liked is a no-op.
func (s *QuestionService) Unlike(ctx context.Context, jobID, subJobID, questionID, callerID string) ([]types.PopulatedQuestion, error) {
	question, err := s.resolve(ctx, jobID, subJobID, questionID)
	if err != nil {
		return nil, err
	}
	user, err := s.repos.Users.RemoveFavorite(ctx, callerID, question.ID)
	if err != nil {
		return nil, translate(err, msgNoUser)
	}
	return s.favorites(ctx, user)
}

// Delete removes a question owned by callerID. References held in users'
// reference sets are left in place.
func (s *QuestionService) Delete(ctx context.Context, jobID, subJobID, questionID, callerID string) error {
	question, err := s.resolve(ctx, jobID, subJobID, questionID)
	if err != nil {
		return err
	}
	if question.CreatedBy != callerID {
		return apperr.Forbidden(msgNotOwner)
	}
	if err := s.repos.Questions.Delete(ctx, question.ID); err != nil {
		return translate(err, msgNoQuestion)
	}
	return nil
}

func (s *QuestionService) resolve(ctx context.Context, jobID, subJobID, questionID string) (types.Question, error) {
	question, err := s.repos.Questions.Get(ctx, jobID, subJobID, questionID)
	if err != nil {
		return types.Question{}, translate(err, msgNoQuestion)
	}
	return question, nil
}

func (s *QuestionService) favorites(ctx context.Context, user types.User) ([]types.PopulatedQuestion, error) {
	favorites, err := newPopulator(s.repos).questionSet(ctx, user.Favorites)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return favorites, nil
}
