package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"coachdemo/internal/model"
	"coachdemo/internal/service"
)

// studentList is the response body of the student listing.
type studentList struct {
	Items []model.Student `json:"data"`
	Total int             `json:"total"`
}

func studentID(c *fiber.Ctx) (int, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, service.ErrInvalidID
	}
	return id, nil
}

// studentError maps service errors to the standardized error payload.
func studentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, service.ErrInvalidInput):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "student not found")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ListStudents godoc
// @Summary List students, optionally filtered by last name
// @Produce json
// @Param last_name query string false "exact last name"
// @Success 200 {object} studentList
// @Router /students [get]
func ListStudents(svc service.StudentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext(), c.Query("last_name"))
		if err != nil {
			return studentError(c, err)
		}
		return c.JSON(studentList{Items: items, Total: len(items)})
	}
}

// GetStudent godoc
// @Summary Get a student by ID
// @Produce json
// @Param id path int true "student id"
// @Success 200 {object} model.Student
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /students/{id} [get]
func GetStudent(svc service.StudentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := studentID(c)
		if err != nil {
			return studentError(c, err)
		}
		st, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return studentError(c, err)
		}
		return c.JSON(st)
	}
}

// CreateStudent godoc
// @Summary Create a student
// @Accept json
// @Produce json
// @Param student body service.StudentInput true "student"
// @Success 201 {object} model.Student
// @Failure 400 {object} errorPayload
// @Router /students [post]
func CreateStudent(svc service.StudentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.StudentInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		st, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return studentError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(st)
	}
}

// UpdateStudent godoc
// @Summary Replace a student's fields
// @Accept json
// @Produce json
// @Param id path int true "student id"
// @Param student body service.StudentInput true "student"
// @Success 200 {object} model.Student
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /students/{id} [put]
func UpdateStudent(svc service.StudentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := studentID(c)
		if err != nil {
			return studentError(c, err)
		}
		var in service.StudentInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		st, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return studentError(c, err)
		}
		return c.JSON(st)
	}
}

// DeleteStudent godoc
// @Summary Delete a student
// @Param id path int true "student id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /students/{id} [delete]
func DeleteStudent(svc service.StudentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := studentID(c)
		if err != nil {
			return studentError(c, err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return studentError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteAllStudents godoc
// @Summary Delete every student
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /students [delete]
func DeleteAllStudents(svc service.StudentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := svc.DeleteAll(c.UserContext())
		if err != nil {
			return studentError(c, err)
		}
		return c.JSON(fiber.Map{"deleted": n})
	}
}
