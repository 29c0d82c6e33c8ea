package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
		sentinel   error
	}{
		{"not found", NotFound("product", "p1"), http.StatusNotFound, ErrNotFound},
		{"already exists", AlreadyExists("product", "slug", "kartvizit"), http.StatusConflict, ErrAlreadyExists},
		{"invalid input", InvalidInput("bad quantity"), http.StatusBadRequest, ErrInvalidInput},
		{"unauthorized", Unauthorized("missing token"), http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", Forbidden("admin only"), http.StatusForbidden, ErrForbidden},
		{"conflict", Conflict("version mismatch"), http.StatusConflict, ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestInternal_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.True(t, errors.Is(err, cause))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrNotFound))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrConflict))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(fmt.Errorf("outer: %w", ErrInvalidInput)))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("order", "o1")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestWrap(t *testing.T) {
	base := errors.New("redis down")
	wrapped := Wrap(base, "load cart")

	assert.True(t, errors.Is(wrapped, base))
	assert.Contains(t, wrapped.Error(), "load cart")
}
