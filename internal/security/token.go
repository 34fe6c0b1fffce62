package security

import (
	"time"

	"github.com/google/uuid"
	"github.com/joefazee/sportsbook/models"
)

// Config holds the key used to verify bearer tokens.
type Config struct {
	SymmetricKey string `env:"TOKEN_SYMMETRIC_KEY"`
}

// Maker makes a new token
type Maker interface {
	// CreateToken creates a new token for a specific user and duration
	CreateToken(userID uuid.UUID, role models.Role, duration time.Duration) (string, *Payload, error)

	// VerifyToken checks if the token is valid or not
	VerifyToken(token string) (*Payload, error)
}
