package main

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"coachdemo/docs"
	"coachdemo/internal/coach"
	"coachdemo/internal/config"
	"coachdemo/internal/container"
	handlers "coachdemo/internal/http/handler"
	"coachdemo/internal/http/middleware"
	"coachdemo/internal/repository"
	"coachdemo/internal/repository/postgres"
	"coachdemo/internal/service"
)

var providerSet = wire.NewSet(
	provideTeam,
	provideCoach,
	provideStudentRepository,
	provideStudentService,
	provideRegistry,
	wire.Struct(new(handlers.Dependencies), "*"),
	newApp,
)

func provideTeam(cfg *config.AppConfig) config.TeamProperties {
	return cfg.Team
}

// provideCoach returns nil when no coach package was scanned.
func provideCoach(cfg *config.AppConfig, c *container.Container, log *zap.Logger) (coach.Coach, error) {
	co, err := coach.Resolve(c, cfg.Components.CoachType)
	if errors.Is(err, container.ErrComponentNotFound) {
		log.Warn("no coach component, workout routes disabled", zap.Error(err))
		return nil, nil
	}
	return co, err
}

func provideStudentRepository(db *sql.DB) repository.StudentRepository {
	if db == nil {
		return nil
	}
	return postgres.NewStudentPostgres(db)
}

func provideStudentService(repo repository.StudentRepository) service.StudentService {
	if repo == nil {
		return nil
	}
	return service.NewStudentService(repo)
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newApp(log *zap.Logger, deps handlers.Dependencies, reg *prometheus.Registry) (*fiber.App, error) {
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(log),
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath
	})))
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())

	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, deps)

	return app, nil
}
