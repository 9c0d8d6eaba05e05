package repository

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"taskapp/internal/adapter/database/postgres"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	tel "taskapp/internal/core/telemetry"
)

const uniqueViolationCode = "23505"

var userColumns = []string{"id", "email", "name", "password_hash", "created_at", "updated_at"}

type UserRepository struct {
	db        *postgres.DB
	telemetry port.Telemetry
}

func NewUserRepository(db *postgres.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:        db,
		telemetry: telemetry,
	}
}

func (ur *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		Limit(1)

	return ur.getOne(ctx, query, "get user")
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(sq.Eq{"email": email}).
		Limit(1)

	return ur.getOne(ctx, query, "get user by email")
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, span := ur.telemetry.StartRepositorySpan(ctx, "Create", "user", map[string]interface{}{
		"db.system": "postgresql",
		"db.table":  "users",
	})
	defer span.End()

	startTime := time.Now()

	query := ur.db.QueryBuilder.Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt, user.UpdatedAt)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.User{}, &domain.DatabaseError{Op: "create user", Err: err}
	}

	_, err = ur.db.Exec(ctx, stmt, args...)

	if err != nil {
		span.RecordError(err)
		span.SetStatus("error", err.Error())
		ur.telemetry.RecordRepositoryOperation(ctx, "Create", "user", time.Since(startTime), err)

		var pgErr *pgconn.PgError

		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
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

	var user domain.User

	err = ur.db.QueryRow(ctx, stmt, args...).
		Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		return domain.User{}, &domain.DatabaseError{Op: op, Err: err}
	}

	return user, nil
}
