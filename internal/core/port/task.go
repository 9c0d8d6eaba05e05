package port

import (
	"context"

	"github.com/google/uuid"

	"taskapp/internal/core/domain"
)

type TaskRepository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID, opts domain.ListOptions) ([]domain.Task, error)
	GetByID(ctx context.Context, id int, ownerID uuid.UUID) (domain.Task, bool, error)
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	Update(ctx context.Context, id int, ownerID uuid.UUID, patch domain.TaskPatch) (domain.Task, error)
	ToggleComplete(ctx context.Context, id int, ownerID uuid.UUID) (domain.Task, error)
	Delete(ctx context.Context, id int, ownerID uuid.UUID) error
}

type TaskService interface {
	List(ctx context.Context, ownerID uuid.UUID, opts domain.ListOptions) ([]domain.Task, error)
	Get(ctx context.Context, id int, ownerID uuid.UUID) (domain.Task, error)
	Create(ctx context.Context, ownerID uuid.UUID, title, description string) (domain.Task, error)
	Update(ctx context.Context, id int, ownerID uuid.UUID, patch domain.TaskPatch) (domain.Task, error)
	ToggleComplete(ctx context.Context, id int, ownerID uuid.UUID) (domain.Task, error)
	Delete(ctx context.Context, id int, ownerID uuid.UUID) error
}
