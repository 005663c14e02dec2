package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"coachdemo/internal/coach"
	"coachdemo/internal/config"
	"coachdemo/internal/container"
	"coachdemo/internal/database"
	"coachdemo/internal/database/migration"
	"coachdemo/internal/logger"
	"coachdemo/internal/otel"
	"coachdemo/internal/runner"
)

const shutdownTimeout = 10 * time.Second

// @title Coach Demo API
// @version 1.0
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from the properties file and environment (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	c, err := startContainer(ctx, cfg, log)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg, log)
	if err != nil {
		closeContainer(c, log)
		return err
	}

	app, err := wireApp(cfg, c, db, log)
	if err != nil {
		closeContainer(c, log)
		return fmt.Errorf("build app: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", ":"+cfg.Port))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err = <-errCh:
		if err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if sErr := app.ShutdownWithContext(shutdownCtx); sErr != nil {
		errs = append(errs, fmt.Errorf("shutdown server: %w", sErr))
	}
	if cErr := c.Close(shutdownCtx); cErr != nil {
		errs = append(errs, cErr)
	}
	if db != nil {
		if dErr := db.Close(); dErr != nil {
			errs = append(errs, fmt.Errorf("close database: %w", dErr))
		}
	}
	if tErr := shutdownTracing(shutdownCtx); tErr != nil {
		errs = append(errs, fmt.Errorf("shutdown tracing: %w", tErr))
	}

	return errors.Join(append([]error{err}, errs...)...)
}

// startContainer scans the configured component packages and runs the
// construct, init and runner phases.
func startContainer(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*container.Container, error) {
	bases := cfg.Components.BasePackages
	if len(bases) == 0 {
		bases = []string{coach.PackagePath}
	}

	c := container.New(
		container.WithLogger(log),
		container.WithCatalog(coach.Catalog(os.Stdout), runner.Catalog(os.Stdout)),
	)
	if err := c.Scan(bases...); err != nil {
		return nil, fmt.Errorf("scan components: %w", err)
	}
	if err := c.Start(ctx, os.Args[1:]); err != nil {
		return nil, fmt.Errorf("start container: %w", err)
	}
	return c, nil
}

func closeContainer(c *container.Container, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := c.Close(ctx); err != nil {
		log.Error("container close failed", zap.Error(err))
	}
}

// openDatabase returns a nil handle when no database host is configured.
func openDatabase(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*sql.DB, error) {
	if !cfg.Database.Enabled() {
		log.Info("database disabled, student routes not registered")
		return nil, nil
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}
	return db, nil
}
