package repository

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"taskapp/internal/adapter/database/postgres"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	tel "taskapp/internal/core/telemetry"
)

var taskColumns = []string{"id", "user_id", "title", "description", "completed", "created_at", "updated_at"}

type TaskRepository struct {
	db        *postgres.DB
	telemetry port.Telemetry
}

func NewTaskRepository(db *postgres.DB, telemetry port.Telemetry) port.TaskRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TaskRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func (tr *TaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, opts domain.ListOptions) ([]domain.Task, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "ListByOwner", "task", map[string]interface{}{
		"db.system": "postgresql",
		"db.table":  "tasks",
		"user.id":   ownerID.String(),
		"filter":    string(opts.Status),
		"sort":      string(opts.Sort),
	})
	defer span.End()

	startTime := time.Now()

	query := tr.db.QueryBuilder.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"user_id": ownerID})

	switch opts.Status {
	case domain.StatusPending:
		query = query.Where(sq.Eq{"completed": false})
	case domain.StatusCompleted:
		query = query.Where(sq.Eq{"completed": true})
	}

	switch opts.Sort {
	case domain.SortTitle:
		query = query.OrderBy("title ASC")
	case domain.SortUpdated:
		query = query.OrderBy("updated_at DESC")
	default:
		query = query.OrderBy("created_at DESC")
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		return nil, &domain.DatabaseError{Op: "list tasks", Err: err}
	}

	rows, err := tr.db.Query(ctx, stmt, args...)

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		tr.telemetry.RecordRepositoryOperation(ctx, "ListByOwner", "task", time.Since(startTime), err)
		return nil, &domain.DatabaseError{Op: "list tasks", Err: err}
	}

	defer rows.Close()

	tasks := []domain.Task{}

	for rows.Next() {
		var task domain.Task

		err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)

		if err != nil {
			return nil, &domain.DatabaseError{Op: "scan task", Err: err}
		}

		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.DatabaseError{Op: "list tasks", Err: err}
	}

	span.SetAttributes(map[string]interface{}{"db.rows_returned": len(tasks)})
	span.SetStatus("ok", "")
	tr.telemetry.RecordRepositoryOperation(ctx, "ListByOwner", "task", time.Since(startTime), nil)

	return tasks, nil
}

func (tr *TaskRepository) GetByID(ctx context.Context, id int, ownerID uuid.UUID) (domain.Task, bool, error) {
	query := tr.db.QueryBuilder.Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"user_id": ownerID}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, false, &domain.DatabaseError{Op: "get task", Err: err}
	}

	task, err := tr.scanRow(tr.db.QueryRow(ctx, stmt, args...))

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, false, nil
	}

	if err != nil {
		return domain.Task{}, false, &domain.DatabaseError{Op: "get task", Err: err}
	}

	return task, true, nil
}

func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "Create", "task", map[string]interface{}{
		"db.system": "postgresql",
		"db.table":  "tasks",
		"user.id":   task.UserID.String(),
	})
	defer span.End()

	query := tr.db.QueryBuilder.Insert("tasks").
		Columns("user_id", "title", "description", "completed", "created_at", "updated_at").
		Values(task.UserID, task.Title, task.Description, task.Completed, task.CreatedAt, task.UpdatedAt).
		Suffix("RETURNING id, user_id, title, description, completed, created_at, updated_at")

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, &domain.DatabaseError{Op: "create task", Err: err}
	}

	saved, err := tr.scanRow(tr.db.QueryRow(ctx, stmt, args...))

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		return domain.Task{}, &domain.DatabaseError{Op: "create task", Err: err}
	}

	span.SetStatus("ok", "")

	return saved, nil
}

func (tr *TaskRepository) Update(ctx context.Context, id int, ownerID uuid.UUID, patch domain.TaskPatch) (domain.Task, error) {
	values := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}

	if patch.Title != nil {
		values["title"] = *patch.Title
	}

	if patch.Description != nil {
		values["description"] = *patch.Description
	}

	query := tr.db.QueryBuilder.Update("tasks").
		SetMap(values).
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"user_id": ownerID}).
		Suffix("RETURNING id, user_id, title, description, completed, created_at, updated_at")

	return tr.execReturning(ctx, query, "update task")
}

func (tr *TaskRepository) ToggleComplete(ctx context.Context, id int, ownerID uuid.UUID) (domain.Task, error) {
	stmt := `UPDATE tasks SET completed = NOT completed, updated_at = $1
	         WHERE id = $2 AND user_id = $3
	         RETURNING id, user_id, title, description, completed, created_at, updated_at`

	task, err := tr.scanRow(tr.db.QueryRow(ctx, stmt, time.Now().UTC(), id, ownerID))

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	if err != nil {
		return domain.Task{}, &domain.DatabaseError{Op: "toggle task", Err: err}
	}

	return task, nil
}

func (tr *TaskRepository) Delete(ctx context.Context, id int, ownerID uuid.UUID) error {
	query := tr.db.QueryBuilder.Delete("tasks").
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"user_id": ownerID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return &domain.DatabaseError{Op: "delete task", Err: err}
	}

	tag, err := tr.db.Exec(ctx, stmt, args...)

	if err != nil {
		return &domain.DatabaseError{Op: "delete task", Err: err}
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func (tr *TaskRepository) execReturning(ctx context.Context, query sq.UpdateBuilder, op string) (domain.Task, error) {
	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, &domain.DatabaseError{Op: op, Err: err}
	}

	task, err := tr.scanRow(tr.db.QueryRow(ctx, stmt, args...))

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	if err != nil {
		return domain.Task{}, &domain.DatabaseError{Op: op, Err: err}
	}

	return task, nil
}

func (tr *TaskRepository) scanRow(row pgx.Row) (domain.Task, error) {
	var task domain.Task

	err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return domain.Task{}, err
	}

	return task, nil
}
