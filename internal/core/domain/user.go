package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string `validate:"required,email,max=255"`
	Name         string `validate:"max=100"`
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the verified caller extracted from a token. It lives for a
// single request and is never persisted.
type Identity struct {
	ID    uuid.UUID
	Email string
	Name  string
}
