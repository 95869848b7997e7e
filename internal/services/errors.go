package services

import (
	"errors"

	"github.com/interviewqa/apiserver/internal/apperr"
	"github.com/interviewqa/apiserver/internal/store"
)

const (
	msgNoJob      = "No job found."
	msgNoSubJob   = "No subjob found."
	msgNoQuestion = "No question found."
	msgNoUser     = "No user found."
	msgDuplicate  = "This email or username already exists. Please choose another one."
	msgBadLogin   = "The Email or Password you entered is incorrect."
	msgNotOwner   = "You can only delete questions you created."
	msgNoToken    = "No token provided."
	msgBadToken   = "Failed to authenticate token."
)

// translate maps a store error onto the caller-facing taxonomy. notFound is
// the message used when the record does not exist.
func translate(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return apperr.NotFound(notFound)
	case errors.Is(err, store.ErrConflict):
		return apperr.Conflict(msgDuplicate)
	default:
		return apperr.Store(err)
	}
}
