package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("taken"), http.StatusConflict},
		{Unauthorized("who"), http.StatusUnauthorized},
		{Forbidden("nope"), http.StatusForbidden},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestUnknownErrorsUseGenericMessage(t *testing.T) {
	err := errors.New("dial tcp 10.0.0.1:27017: i/o timeout")
	assert.Equal(t, GenericMessage, Message(err))
	assert.ErrorIs(t, From(err), err)
}

func TestWrappedDomainErrorKeepsMessage(t *testing.T) {
	err := fmt.Errorf("create question: %w", NotFound("No question found."))
	assert.Equal(t, "No question found.", Message(err))
	assert.Equal(t, http.StatusNotFound, Status(err))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindForbidden))
}
