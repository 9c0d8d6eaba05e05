package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskapp/internal/core/domain"
)

const DefaultPassword = "12345678"

func NewUser(customData ...map[string]any) domain.User {
	instance := fab.New(domain.User{})

	hashed, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	now := time.Now().UTC()

	defaults := map[string]any{
		"ID":           uuid.New(),
		"PasswordHash": string(hashed),
		"CreatedAt":    now,
		"UpdatedAt":    now,
	}

	// fabricator's Build only reads the first overrides map, so merge
	// customData into the defaults with later maps taking priority.
	for _, data := range customData {
		for key, value := range data {
			defaults[key] = value
		}
	}

	return instance.Build(defaults)
}
