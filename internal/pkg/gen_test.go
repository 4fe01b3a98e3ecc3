package pkg

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRoomCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)

	for range 200 {
		code, err := GenerateRoomCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}

func TestGenerateRoomID(t *testing.T) {
	first, second := GenerateRoomID(), GenerateRoomID()

	_, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
