package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"

	"taskapp/internal/core/domain"
)

func NewTask(ownerID uuid.UUID, customData ...map[string]any) domain.Task {
	instance := fab.New(domain.Task{})

	now := time.Now().UTC()

	defaults := map[string]any{
		"ID":        0,
		"UserID":    ownerID,
		"Completed": false,
		"CreatedAt": now,
		"UpdatedAt": now,
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
