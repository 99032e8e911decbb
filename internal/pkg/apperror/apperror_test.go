package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Unauthorized("who"), http.StatusUnauthorized},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("taken"), http.StatusConflict},
		{Upstream("provider down", errors.New("503")), http.StatusInternalServerError},
		{Internal("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Kind.Status())
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("create note: %w", NotFound("notebook not found"))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(err, KindConflict))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestUpstreamUnwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := Upstream("embedding failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "embedding failed: timeout", err.Error())
}
