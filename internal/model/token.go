package model

import "github.com/google/uuid"

// TokenManager issues and verifies bearer tokens.
type TokenManager interface {
	Issue(userID uuid.UUID) (string, error)
	Verify(token string) (uuid.UUID, error)
}
