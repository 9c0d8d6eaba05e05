package http

import (
	"log/slog"

	"taskapp/internal/adapter/database/postgres"
	pgrepository "taskapp/internal/adapter/database/postgres/repository"
	"taskapp/internal/adapter/database/sqlite"
	repository "taskapp/internal/adapter/database/sqlite/repository"

	"taskapp/internal/adapter/http/handler"
	"taskapp/internal/core/port"
	"taskapp/internal/core/service"
	"taskapp/internal/core/telemetry"
	"taskapp/pkg/auth"
	"taskapp/pkg/config"
)

type Container struct {
	UserRepo port.UserRepository
	TaskRepo port.TaskRepository

	TaskUseCase port.TaskService
	AuthUseCase port.AuthService

	Verifier *auth.JWT
	Guard    *auth.Guard

	AuthHandler   *handler.AuthHandler
	TaskHandler   *handler.TaskHandler
	HealthHandler *handler.HealthHandler
}

func NewContainer(db *sqlite.DB, cfg *config.AppConfig, logger *config.AppLogger, metrics *config.AppMetrics) *Container {
	probe := telemetry.NewOTELProbe(slog.Default(), metrics)

	return assemble(
		repository.NewUserRepository(db, probe),
		repository.NewTaskRepository(db, probe),
		db,
		probe,
		cfg,
		logger,
		metrics,
	)
}

func NewPostgresContainer(db *postgres.DB, cfg *config.AppConfig, logger *config.AppLogger, metrics *config.AppMetrics) *Container {
	probe := telemetry.NewOTELProbe(slog.Default(), metrics)

	return assemble(
		pgrepository.NewUserRepository(db, probe),
		pgrepository.NewTaskRepository(db, probe),
		db,
		probe,
		cfg,
		logger,
		metrics,
	)
}

func assemble(userRepo port.UserRepository, taskRepo port.TaskRepository, pinger interface{ Ping() error }, probe port.Telemetry, cfg *config.AppConfig, logger *config.AppLogger, metrics *config.AppMetrics) *Container {
	securityLogger := config.NewSecurityLogger(logger.ServiceName)

	authSvc := service.NewAuthService(userRepo)
	taskSvc := service.NewTaskService(taskRepo, probe)

	verifier := auth.NewJWT(cfg.JWTSecret, cfg.TokenTTL, securityLogger)
	guard := auth.NewGuard(securityLogger)

	return &Container{
		UserRepo: userRepo,
		TaskRepo: taskRepo,

		TaskUseCase: taskSvc,
		AuthUseCase: authSvc,

		Verifier: verifier,
		Guard:    guard,

		AuthHandler:   handler.NewAuthHandler(authSvc, verifier, metrics),
		TaskHandler:   handler.NewTaskHandler(taskSvc, guard, logger, metrics),
		HealthHandler: handler.NewHealthHandler(pinger),
	}
}
