package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"coachdemo/internal/coach"
	"coachdemo/internal/config"
	"coachdemo/internal/service"
)

// Dependencies are the collaborators the routes are built from.
// DB and Students may be nil when no database is configured.
type Dependencies struct {
	DB       *sql.DB
	Team     config.TeamProperties
	Coach    coach.Coach
	Students service.StudentService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/health", HealthCheck(deps.DB))
	app.Get("/healthz", LivenessProbe())

	app.Get("/", Home())
	app.Get("/teaminfo", TeamInfo(deps.Team))
	app.Get("/fortune", Fortune())
	if deps.Coach != nil {
		app.Get("/workout", DailyWorkout(deps.Coach))
		app.Get("/dailyworkout", DailyWorkout(deps.Coach))
	}

	if deps.Students != nil {
		students := app.Group("/students")
		students.Get("/", ListStudents(deps.Students))
		students.Post("/", CreateStudent(deps.Students))
		students.Delete("/", DeleteAllStudents(deps.Students))
		students.Get("/:id", GetStudent(deps.Students))
		students.Put("/:id", UpdateStudent(deps.Students))
		students.Delete("/:id", DeleteStudent(deps.Students))
	}
}
