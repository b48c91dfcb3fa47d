package apperror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		err     *AppError
		code    int
		errType string
		hasBody bool
	}{
		{NewValidation("bad field"), 400, "validation_error", true},
		{NewAuth("please authenticate"), 401, "auth_error", true},
		{NewNotFound(), 404, "not_found", false},
		{NewPayload("too big"), 400, "payload_error", true},
		{NewInternal(errors.New("db down")), 500, "internal_error", true},
	}

	for _, tt := range tests {
		t.Run(tt.errType, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.errType, tt.err.Type)
			if tt.hasBody {
				assert.NotEmpty(t, tt.err.Message)
			} else {
				assert.Empty(t, tt.err.Message)
			}
		})
	}
}

func TestInternalNeverLeaksCause(t *testing.T) {
	cause := errors.New("pq: connection refused to 10.0.0.7")
	err := NewInternal(cause)

	assert.NotContains(t, err.Message, "10.0.0.7")
	assert.Contains(t, err.Error(), "connection refused", "the logged form keeps the cause")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewInternal(cause)

	require.ErrorIs(t, err, cause)

	var appErr *AppError
	require.ErrorAs(t, error(err), &appErr)
	assert.Equal(t, 500, appErr.Code)
}
