package http

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"taskhub/internal/adapter/database/postgres"
	pgrepository "taskhub/internal/adapter/database/postgres/repository"
	"taskhub/internal/adapter/database/sqlite"
	"taskhub/internal/adapter/database/sqlite/repository"
	"taskhub/pkg/config"
	"taskhub/pkg/logging"
	"taskhub/pkg/metrics"
)

// StartServer opens the configured store, wires the container and runs
// the HTTP server until ctx is cancelled.
func StartServer(ctx context.Context, cfg *config.Config, logger *logging.AppLogger, appMetrics *metrics.AppMetrics) error {
	var (
		repos   Repositories
		ping    func(context.Context) error
		closeDB func()
	)

	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database.URL, filepath.Join(cfg.Database.MigrationsPath, "postgres"))

		if err != nil {
			return err
		}

		repos = Repositories{
			Users: pgrepository.NewUserRepository(db),
			Tasks: pgrepository.NewTaskRepository(db),
			Lists: pgrepository.NewListRepository(db),
		}
		ping = db.Ping
		closeDB = db.Close
	default:
		db, err := sqlite.NewDB(cfg.Database.Path, cfg.Database.MigrationsPath)

		if err != nil {
			return err
		}

		repos = Repositories{
			Users: repository.NewUserRepository(db),
			Tasks: repository.NewTaskRepository(db),
			Lists: repository.NewListRepository(db),
		}
		ping = db.PingContext
		closeDB = func() { db.Close() }
	}

	defer closeDB()

	container := NewContainer(repos, cfg, logger, appMetrics, ping)
	router := SetupRouter(container, cfg, logger, appMetrics)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("Server starting",
			zap.String("port", cfg.Server.Port),
			zap.String("environment", cfg.Server.Environment),
			zap.String("database_driver", cfg.Database.Driver),
			zap.Bool("rate_limit_enabled", cfg.Server.RateLimitEnabled))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}
}
