package pkg

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const (
	roomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	RoomCodeLength   = 6
)

// GenerateRoomCode - generates a human readable invite code over [A-Z0-9].
func GenerateRoomCode() (string, error) {
	code := make([]byte, RoomCodeLength)
	limit := big.NewInt(int64(len(roomCodeAlphabet)))

	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to read random index: %w", err)
		}
		code[i] = roomCodeAlphabet[n.Int64()]
	}

	return string(code), nil
}

// GenerateRoomID - generates an opaque identifier for anonymous rooms.
func GenerateRoomID() string {
	return uuid.NewString()
}

// GenerateConnectionID - generates an identifier for a live connection.
func GenerateConnectionID() string {
	return uuid.NewString()
}

// GenerateMatchID - generates an identifier for a history record.
func GenerateMatchID() string {
	return uuid.NewString()
}
