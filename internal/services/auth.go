package services

import (
	"context"
	"errors"
	"strings"

	"github.com/interviewqa/apiserver/internal/apperr"
	"github.com/interviewqa/apiserver/internal/auth"
	"github.com/interviewqa/apiserver/internal/store"
	"github.com/interviewqa/apiserver/internal/validation"
	"github.com/interviewqa/apiserver/types"
)

// AuthService handles account creation, credential checks and token
// verification.
type AuthService struct {
	repos  Repositories
	tokens *auth.TokenManager
}

func NewAuthService(repos Repositories, tokens *auth.TokenManager) *AuthService {
	return &AuthService{repos: repos, tokens: tokens}
}

func (s *AuthService) Signup(ctx context.Context, input types.SignupInput) (types.AuthResult, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := validation.Validate(input); err != nil {
		return types.AuthResult{}, err
	}

	exists, err := s.repos.Users.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		return types.AuthResult{}, apperr.Store(err)
	}
	if exists {
		return types.AuthResult{}, apperr.Conflict(msgDuplicate)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return types.AuthResult{}, apperr.Store(err)
	}

	user, err := s.repos.Users.Create(ctx, types.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return types.AuthResult{}, translate(err, msgNoUser)
	}
	return s.issue(user.ID)
}

// Login reports the same error for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, input types.LoginInput) (types.AuthResult, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := validation.Validate(input); err != nil {
		return types.AuthResult{}, err
	}

	user, err := s.repos.Users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.AuthResult{}, apperr.Unauthorized(msgBadLogin)
		}
		return types.AuthResult{}, apperr.Store(err)
	}
	if !auth.VerifyPassword(input.Password, user.PasswordHash) {
		return types.AuthResult{}, apperr.Unauthorized(msgBadLogin)
	}
	return s.issue(user.ID)
}

// VerifyToken returns the user id embedded in token.
func (s *AuthService) VerifyToken(token string) (string, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrMissingToken) {
			return "", apperr.Unauthorized(msgNoToken)
		}
		return "", &apperr.Error{Kind: apperr.KindUnauthorized, Message: msgBadToken, Err: err}
	}
	return userID, nil
}

// Me returns the caller with both reference sets populated.
func (s *AuthService) Me(ctx context.Context, userID string) (types.UserProfile, error) {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return types.UserProfile{}, translate(err, msgNoUser)
	}

	p := newPopulator(s.repos)
	questions, err := p.questionSet(ctx, user.Questions)
	if err != nil {
		return types.UserProfile{}, apperr.Store(err)
	}
	favorites, err := p.questionSet(ctx, user.Favorites)
	if err != nil {
		return types.UserProfile{}, apperr.Store(err)
	}

	return types.UserProfile{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Questions:   questions,
		Favorites:   favorites,
		CreatedDate: user.CreatedDate,
	}, nil
}

func (s *AuthService) issue(userID string) (types.AuthResult, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return types.AuthResult{}, apperr.Store(err)
	}
	return types.AuthResult{Auth: true, Token: token}, nil
}
