package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"coachdemo/internal/coach"
	"coachdemo/internal/config"
)

// Home godoc
// @Summary Greeting
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func Home() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString("Hello World!")
	}
}

// TeamInfo godoc
// @Summary Coach and team names from the application properties
// @Produce plain
// @Success 200 {string} string "Coach: Virat, Team: India"
// @Router /teaminfo [get]
func TeamInfo(p config.TeamProperties) fiber.Handler {
	body := "Coach: " + p.CoachName + ", Team: " + p.TeamName
	return func(c *fiber.Ctx) error {
		return c.SendString(body)
	}
}

// DailyWorkout godoc
// @Summary Daily workout of the configured coach
// @Produce plain
// @Success 200 {string} string
// @Router /dailyworkout [get]
// @Router /workout [get]
func DailyWorkout(co coach.Coach) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString(co.GetDailyWorkout())
	}
}

// Fortune godoc
// @Summary Today's fortune
// @Produce plain
// @Success 200 {string} string
// @Router /fortune [get]
func Fortune() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString("Today is your lucky day")
	}
}

// HealthCheck godoc
// @Summary Readiness, pings the database when one is configured
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return c.JSON(fiber.Map{"status": "healthy", "database": "disabled"})
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 as long as the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
