package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	tel "taskapp/internal/core/telemetry"
)

const userColumns = "id, email, name, password_hash, created_at, updated_at"

type UserRepository struct {
	db        *sqlite.DB
	telemetry port.Telemetry
}

func NewUserRepository(db *sqlite.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func (ur *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(userColumns).
		From("users").
		Where(sq.Eq{"id": id.String()}).
		Limit(1)

	return ur.getOne(ctx, query, "get user")
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(userColumns).
		From("users").
		Where(sq.Eq{"email": email}).
		Limit(1)

	return ur.getOne(ctx, query, "get user by email")
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, span := ur.telemetry.StartRepositorySpan(ctx, "Create", "user", map[string]interface{}{
		"db.system": "sqlite",
		"db.table":  "users",
	})
	defer span.End()

	startTime := time.Now()

	query := ur.db.QueryBuilder.Insert("users").
		Columns(userColumns).
		Values(user.ID.String(), user.Email, user.Name, user.PasswordHash, user.CreatedAt, user.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, &domain.DatabaseError{Op: "create user", Err: err}
	}

	_, err = ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		ur.telemetry.RecordRepositoryOperation(ctx, "Create", "user", time.Since(startTime), err)

		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrEmailTaken
		}

		return domain.User{}, &domain.DatabaseError{Op: "create user", Err: err}
	}

	span.SetStatus("ok", "")
	ur.telemetry.RecordRepositoryOperation(ctx, "Create", "user", time.Since(startTime), nil)

	return user, nil
}

func (ur *UserRepository) getOne(ctx context.Context, query sq.SelectBuilder, op string) (domain.User, error) {
	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, &domain.DatabaseError{Op: op, Err: err}
	}

	rows, err := ur.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.User{}, &domain.DatabaseError{Op: op, Err: err}
	}

	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.User{}, &domain.DatabaseError{Op: op, Err: err}
		}

		return domain.User{}, domain.ErrUserNotFound
	}

	user, err := scanUser(rows)

	if err != nil {
		return domain.User{}, &domain.DatabaseError{Op: op, Err: err}
	}

	return user, nil
}

func scanUser(rows *sql.Rows) (domain.User, error) {
	var user domain.User
	var rawID string

	err := rows.Scan(&rawID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return domain.User{}, err
	}

	user.ID, err = uuid.Parse(rawID)

	if err != nil {
		return domain.User{}, fmt.Errorf("malformed user id in row: %w", err)
	}

	return user, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error

	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}
