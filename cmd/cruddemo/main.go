// Command cruddemo starts the component container over the runner package,
// prints its greeting once and exits.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"coachdemo/internal/config"
	"coachdemo/internal/container"
	"coachdemo/internal/logger"
	"coachdemo/internal/runner"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	c := container.New(
		container.WithLogger(log),
		container.WithCatalog(runner.Catalog(out)),
	)
	if err := c.Scan(runner.PackagePath); err != nil {
		return err
	}
	if err := c.Start(ctx, args); err != nil {
		return err
	}

	log.Debug("startup complete", zap.Strings("args", args))
	return c.Close(ctx)
}
