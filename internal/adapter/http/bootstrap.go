package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"taskapp/internal/adapter/database/postgres"
	"taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/adapter/http/routes"
	"taskapp/pkg/config"

	"go.uber.org/zap"
)

// Server owns the HTTP listener and the database handle behind it.
type Server struct {
	srv     *http.Server
	closeDB func() error
}

func NewServer(cfg *config.AppConfig, metrics *config.AppMetrics, logger *config.AppLogger) (*Server, error) {
	container, closeDB, err := buildContainer(cfg, logger, metrics)

	if err != nil {
		return nil, err
	}

	router := routes.SetupRouter(routes.HandlersConfig{
		AuthHandler:   container.AuthHandler,
		TaskHandler:   container.TaskHandler,
		HealthHandler: container.HealthHandler,
		Verifier:      container.Verifier,
	}, metrics, logger, cfg)

	logger.Logger.Info("server configured",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.Bool("rate_limit_enabled", cfg.RateLimitEnabled),
		zap.Bool("https_enforced", cfg.EnforceHTTPS),
	)

	return &Server{
		srv: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		closeDB: closeDB,
	}, nil
}

// buildContainer picks the storage adapter: DATABASE_URL selects postgres,
// anything else falls back to the sqlite file at DatabasePath.
func buildContainer(cfg *config.AppConfig, logger *config.AppLogger, metrics *config.AppMetrics) (*Container, func() error, error) {
	if cfg.DatabaseURL != "" {
		db, err := postgres.NewDB(context.Background(), cfg.DatabaseURL, cfg.PostgresMigrationsPath)

		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres database: %w", err)
		}

		closeDB := func() error {
			db.Pool.Close()
			return nil
		}

		return NewPostgresContainer(db, cfg, logger, metrics), closeDB, nil
	}

	securityLogger := config.NewSecurityLogger(logger.ServiceName)

	db, err := sqlite.Open(cfg.DatabasePath, cfg.MigrationsPath, securityLogger)

	if err != nil {
		return nil, nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	return NewContainer(db, cfg, logger, metrics), db.Close, nil
}

func (s *Server) ListenAndServe() error {
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.srv.Shutdown(ctx)

	if closeErr := s.closeDB(); err == nil {
		err = closeErr
	}

	return err
}
