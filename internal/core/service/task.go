package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	tel "taskapp/internal/core/telemetry"
)

type TaskService struct {
	repo      port.TaskRepository
	telemetry port.Telemetry
}

func NewTaskService(repo port.TaskRepository, telemetry port.Telemetry) *TaskService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TaskService{repo: repo, telemetry: telemetry}
}

func (ts *TaskService) List(ctx context.Context, ownerID uuid.UUID, opts domain.ListOptions) ([]domain.Task, error) {
	if opts.Status == "" {
		opts.Status = domain.StatusAll
	}

	if opts.Sort == "" {
		opts.Sort = domain.SortCreated
	}

	return ts.repo.ListByOwner(ctx, ownerID, opts)
}

func (ts *TaskService) Get(ctx context.Context, id int, ownerID uuid.UUID) (domain.Task, error) {
	task, found, err := ts.repo.GetByID(ctx, id, ownerID)

	if err != nil {
		return domain.Task{}, err
	}

	if !found {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	return task, nil
}

func (ts *TaskService) Create(ctx context.Context, ownerID uuid.UUID, title, description string) (domain.Task, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, "task", "Create", map[string]interface{}{
		"user.id": ownerID.String(),
	})
	defer span.End()

	trimmed, ok := domain.NormalizeTitle(title)

	if !ok {
		return domain.Task{}, &domain.ValidationError{Field: "title", Message: "title cannot be empty or whitespace only"}
	}

	if utf8.RuneCountInString(trimmed) > domain.TitleMaxLength {
		return domain.Task{}, &domain.ValidationError{Field: "title", Message: "title must be at most 200 characters"}
	}

	if utf8.RuneCountInString(description) > domain.DescriptionMaxLength {
		return domain.Task{}, &domain.ValidationError{Field: "description", Message: "description must be at most 1000 characters"}
	}

	now := time.Now().UTC()

	task, err := ts.repo.Create(ctx, domain.Task{
		UserID:      ownerID,
		Title:       trimmed,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	})

	if err != nil {
		span.RecordError(err)
		return domain.Task{}, err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "task_created", "task", trimmed, map[string]interface{}{
		"user.id": ownerID.String(),
	})

	return task, nil
}

func (ts *TaskService) Update(ctx context.Context, id int, ownerID uuid.UUID, patch domain.TaskPatch) (domain.Task, error) {
	if patch.Empty() {
		return domain.Task{}, &domain.ValidationError{Message: "at least one field (title or description) must be provided"}
	}

	if patch.Title != nil {
		trimmed, ok := domain.NormalizeTitle(*patch.Title)

		if !ok {
			return domain.Task{}, &domain.ValidationError{Field: "title", Message: "title cannot be empty or whitespace only"}
		}

		if utf8.RuneCountInString(trimmed) > domain.TitleMaxLength {
			return domain.Task{}, &domain.ValidationError{Field: "title", Message: "title must be at most 200 characters"}
		}

		patch.Title = &trimmed
	}

	if patch.Description != nil && utf8.RuneCountInString(*patch.Description) > domain.DescriptionMaxLength {
		return domain.Task{}, &domain.ValidationError{Field: "description", Message: "description must be at most 1000 characters"}
	}

	return ts.repo.Update(ctx, id, ownerID, patch)
}

func (ts *TaskService) ToggleComplete(ctx context.Context, id int, ownerID uuid.UUID) (domain.Task, error) {
	return ts.repo.ToggleComplete(ctx, id, ownerID)
}

func (ts *TaskService) Delete(ctx context.Context, id int, ownerID uuid.UUID) error {
	err := ts.repo.Delete(ctx, id, ownerID)

	if err != nil {
		return err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "task_deleted", "task", "", map[string]interface{}{
		"user.id": ownerID.String(),
		"task.id": id,
	})

	return nil
}
