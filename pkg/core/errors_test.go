package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lunahealth/cyclecare-go/pkg/core"
)

func TestErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "ErrInvalidConfig",
			err:      core.ErrInvalidConfig,
			expected: "invalid configuration",
		},
		{
			name:     "ErrUnknownProvider",
			err:      core.ErrUnknownProvider,
			expected: "unknown storage provider",
		},
		{
			name:     "ErrRequestInFlight",
			err:      core.ErrRequestInFlight,
			expected: "request already in flight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestSessionError(t *testing.T) {
	originalErr := errors.New("original error")
	sessErr := core.NewSessionError("AnalyzeFood", originalErr)

	assert.Error(t, sessErr)
	assert.Contains(t, sessErr.Error(), "cyclecare:")
	assert.Contains(t, sessErr.Error(), "AnalyzeFood")
	assert.Contains(t, sessErr.Error(), "original error")

	var target *core.SessionError
	if assert.True(t, errors.As(sessErr, &target)) {
		assert.Equal(t, "AnalyzeFood", target.Op)
		assert.Equal(t, originalErr, target.Err)
	}
}

func TestSessionErrorUnwrap(t *testing.T) {
	sessErr := core.NewSessionError("SendMessage", core.ErrRequestInFlight)

	assert.True(t, errors.Is(sessErr, core.ErrRequestInFlight))
	assert.Equal(t, core.ErrRequestInFlight, errors.Unwrap(sessErr))
}

func TestNewSessionErrorNil(t *testing.T) {
	assert.Nil(t, core.NewSessionError("AnalyzeFood", nil))
}
