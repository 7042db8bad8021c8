package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/fixdict/config"
	"github.com/guttosm/fixdict/internal/api"
	"github.com/guttosm/fixdict/internal/ingestion"
	"github.com/guttosm/fixdict/internal/logger"
	"github.com/guttosm/fixdict/internal/service"
	"github.com/guttosm/fixdict/internal/storage"
)

// IngestOptions builds ingestion options from the spec configuration.
func IngestOptions(cfg config.Config) ingestion.Options {
	return ingestion.Options{
		Dir:      cfg.Spec.Dir,
		Pattern:  cfg.Spec.Pattern,
		Parallel: cfg.Spec.Parallel,
		Strict:   cfg.Spec.StrictRequired,
	}
}

// OpenStorage connects to PostgreSQL and applies migrations when storage is
// enabled. With storage disabled it returns a nil db and repository.
func OpenStorage(cfg config.Config) (*sql.DB, storage.DictionaryRepository, error) {
	if !cfg.Storage.Enabled {
		return nil, nil, nil
	}
	conn, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}
	if err := migrator(conn); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, storage.NewDictionaryRepository(conn), nil
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL and migrates it when storage is enabled.
//   - Imports every spec file in the configured directory into the registry.
//   - Starts the directory watcher when SPEC_WATCH is set.
//   - Creates the service, handler and router, and registers health checks.
//   - Provides a cleanup function that stops the watcher and closes the DB.
func InitializeApp(ctx context.Context) (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	conn, repo, err := OpenStorage(cfg)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if conn != nil {
			_ = conn.Close()
		}
	}

	registry := service.NewRegistry()
	opts := IngestOptions(cfg)
	if err := ingestion.ProcessDirectory(ctx, opts, registry, repo); err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("failed to load dictionaries: %w", err)
	}

	svc := service.NewDictionaryService(registry)
	handler := api.NewHandler(svc, repo)
	router := api.NewRouter(handler, api.RouterOptions{RateLimitPerMinute: cfg.Server.RateLimitPerMinute})

	var ping func() error
	if conn != nil {
		ping = conn.Ping
	}
	api.NewHealthHandler(registry.Len, ping).Register(router)

	stopWatch := func() {}
	if cfg.Spec.Watch {
		w, err := ingestion.NewWatcher(opts, registry, repo)
		if err != nil {
			closeDB()
			return nil, nil, fmt.Errorf("failed to watch %s: %w", opts.Dir, err)
		}
		wctx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := w.Run(wctx); err != nil {
				logger.L().Error().Err(err).Msg("watcher stopped")
			}
		}()
		logger.L().Info().Str("dir", opts.Dir).Msg("watching spec directory")
		stopWatch = func() {
			cancel()
			<-done
			_ = w.Close()
		}
	}

	cleanup := func() {
		stopWatch()
		closeDB()
	}

	return router, cleanup, nil
}
