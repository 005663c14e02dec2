//go:build wireinject
// +build wireinject

package main

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/google/wire"
	"go.uber.org/zap"

	"coachdemo/internal/config"
	"coachdemo/internal/container"
)

// wireApp assembles the HTTP application from the started container.
func wireApp(*config.AppConfig, *container.Container, *sql.DB, *zap.Logger) (*fiber.App, error) {
	panic(wire.Build(providerSet))
}
