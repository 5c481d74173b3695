package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWillowError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *WillowError
		want string
	}{
		{
			name: "without cause",
			err:  NewError(CONFIG_LOAD_FAILED, "failed to load configuration"),
			want: "[CONFIG_LOAD_FAILED] failed to load configuration",
		},
		{
			name: "with cause",
			err:  WrapError(IO_READ_FAILED, "read organogram", errors.New("permission denied")),
			want: "[IO_READ_FAILED] read organogram: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWillowError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapError(CONFIG_PARSE_FAILED, "parse", cause)

	assert.Same(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
}

func TestWillowError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", WrapError(CONFIG_NOT_FOUND, "missing", errors.New("stat")))

	assert.True(t, errors.Is(err, NewError(CONFIG_NOT_FOUND, "")))
	assert.False(t, errors.Is(err, NewError(CONFIG_LOAD_FAILED, "")))
}

func TestRetryable(t *testing.T) {
	assert.False(t, NewError(IO_WRITE_FAILED, "x").Retryable)
	assert.True(t, NewRetryableError(IO_WRITE_FAILED, "x").Retryable)

	wrapped := fmt.Errorf("ctx: %w", WrapRetryableError(IO_READ_FAILED, "x", errors.New("eof")))
	assert.True(t, IsRetryable(wrapped))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestGetErrorCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewError(CONFIG_VALIDATION_FAILED, "bad"))
	require.Error(t, err)

	assert.Equal(t, CONFIG_VALIDATION_FAILED, GetErrorCode(err))
	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
}
