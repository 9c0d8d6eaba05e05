package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	tel "taskapp/internal/core/telemetry"
)

const taskColumns = "id, user_id, title, description, completed, created_at, updated_at"

type TaskRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewTaskRepository(db *sqlite.DB, telemetry port.Telemetry) port.TaskRepository {
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
		"db.system": "sqlite",
		"db.table":  "tasks",
		"user.id":   ownerID.String(),
		"filter":    string(opts.Status),
		"sort":      string(opts.Sort),
	})
	defer span.End()

	startTime := time.Now()

	query := tr.db.QueryBuilder.Select(taskColumns).
		From("tasks").
		Where(sq.Eq{"user_id": ownerID.String()})

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

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		tr.telemetry.RecordRepositoryOperation(ctx, "ListByOwner", "task", time.Since(startTime), err)
		return nil, &domain.DatabaseError{Op: "list tasks", Err: err}
	}

	defer rows.Close()

	tasks := []domain.Task{}

	for rows.Next() {
		task, err := scanTask(rows)

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
	query := tr.db.QueryBuilder.Select(taskColumns).
		From("tasks").
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"user_id": ownerID.String()}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, false, &domain.DatabaseError{Op: "get task", Err: err}
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.Task{}, false, &domain.DatabaseError{Op: "get task", Err: err}
	}

	defer rows.Close()

	if !rows.Next() {
		return domain.Task{}, false, rows.Err()
	}

	task, err := scanTask(rows)

	if err != nil {
		return domain.Task{}, false, &domain.DatabaseError{Op: "scan task", Err: err}
	}

	return task, true, nil
}

func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "Create", "task", map[string]interface{}{
		"db.system": "sqlite",
		"db.table":  "tasks",
		"user.id":   task.UserID.String(),
	})
	defer span.End()

	query := tr.db.QueryBuilder.Insert("tasks").
		Columns("user_id", "title", "description", "completed", "created_at", "updated_at").
		Values(task.UserID.String(), task.Title, task.Description, task.Completed, task.CreatedAt, task.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, &domain.DatabaseError{Op: "create task", Err: err}
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		return domain.Task{}, &domain.DatabaseError{Op: "create task", Err: err}
	}

	lastID, err := result.LastInsertId()

	if err != nil {
		return domain.Task{}, &domain.DatabaseError{Op: "create task", Err: err}
	}

	saved, found, err := tr.GetByID(ctx, int(lastID), task.UserID)

	if err != nil {
		return domain.Task{}, err
	}

	if !found {
		return domain.Task{}, &domain.DatabaseError{Op: "create task", Err: fmt.Errorf("inserted row %d not found", lastID)}
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
		Where(sq.Eq{"user_id": ownerID.String()})

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, &domain.DatabaseError{Op: "update task", Err: err}
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return domain.Task{}, &domain.DatabaseError{Op: "update task", Err: err}
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return domain.Task{}, &domain.DatabaseError{Op: "update task", Err: err}
	}

	if affected == 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	return tr.mustGet(ctx, id, ownerID)
}

func (tr *TaskRepository) ToggleComplete(ctx context.Context, id int, ownerID uuid.UUID) (domain.Task, error) {
	stmt := "UPDATE tasks SET completed = NOT completed, updated_at = ? WHERE id = ? AND user_id = ?"

	result, err := tr.db.ExecContext(ctx, stmt, time.Now().UTC(), id, ownerID.String())

	if err != nil {
		return domain.Task{}, &domain.DatabaseError{Op: "toggle task", Err: err}
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return domain.Task{}, &domain.DatabaseError{Op: "toggle task", Err: err}
	}

	if affected == 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	return tr.mustGet(ctx, id, ownerID)
}

func (tr *TaskRepository) Delete(ctx context.Context, id int, ownerID uuid.UUID) error {
	query := tr.db.QueryBuilder.Delete("tasks").
		Where(sq.Eq{"id": id}).
		Where(sq.Eq{"user_id": ownerID.String()})

	stmt, args, err := query.ToSql()

	if err != nil {
		return &domain.DatabaseError{Op: "delete task", Err: err}
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		return &domain.DatabaseError{Op: "delete task", Err: err}
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return &domain.DatabaseError{Op: "delete task", Err: err}
	}

	if affected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func (tr *TaskRepository) mustGet(ctx context.Context, id int, ownerID uuid.UUID) (domain.Task, error) {
	task, found, err := tr.GetByID(ctx, id, ownerID)

	if err != nil {
		return domain.Task{}, err
	}

	if !found {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	return task, nil
}

func scanTask(rows *sql.Rows) (domain.Task, error) {
	var task domain.Task
	var rawUserID string

	err := rows.Scan(&task.ID, &rawUserID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return domain.Task{}, err
	}

	task.UserID, err = uuid.Parse(rawUserID)

	if err != nil {
		return domain.Task{}, fmt.Errorf("malformed user_id in row: %w", err)
	}

	return task, nil
}
