package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReason(t *testing.T) {
	assert.Equal(t, "tooFar", Reason(fmt.Errorf("invalid turn: %w", ErrTooFar)))
	assert.Equal(t, "roomFull", Reason(ErrRoomFull))
	assert.Equal(t, "unknownCode", Reason(ErrUnknownCode))
	assert.Equal(t, "internal", Reason(errors.New("boom")))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(fmt.Errorf("failed to make turn: %w", ErrNotYourTurn)))
	assert.False(t, IsClientError(ErrCodeSpaceExhausted))
	assert.False(t, IsClientError(ErrNotFound))
}
