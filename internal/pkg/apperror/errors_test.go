package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, 400},
		{KindAuthentication, 401},
		{KindAuthorization, 403},
		{KindNotFound, 404},
		{KindConflict, 409},
		{KindInternal, 500},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.kind, "x").StatusCode())
	}
}

func TestOperational(t *testing.T) {
	assert.True(t, Validation("bad input").Operational())
	assert.True(t, Conflict("exists").Operational())
	assert.False(t, Internal("boom", nil).Operational())
}

func TestAsUnwrapsChain(t *testing.T) {
	base := Conflict("email already registered")
	wrapped := fmt.Errorf("register: %w", base)

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindConflict, appErr.Kind)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("query failed", cause)
	assert.ErrorIs(t, err, cause)
}
