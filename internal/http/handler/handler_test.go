package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coachdemo/internal/coach"
	"coachdemo/internal/config"
	"coachdemo/internal/model"
	"coachdemo/internal/service"
	serviceMocks "coachdemo/internal/service/mocks"
)

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func jsonRequest(method, target string, v any) *http.Request {
	b, _ := json.Marshal(v)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func TestTeamInfo(t *testing.T) {
	tests := []struct {
		name  string
		props config.TeamProperties
		want  string
	}{
		{name: "both values", props: config.TeamProperties{CoachName: "X", TeamName: "Y"}, want: "Coach: X, Team: Y"},
		{name: "properties file values", props: config.TeamProperties{CoachName: "Virat", TeamName: "India"}, want: "Coach: Virat, Team: India"},
		{name: "empty coach", props: config.TeamProperties{TeamName: "Y"}, want: "Coach: , Team: Y"},
		{name: "empty team", props: config.TeamProperties{CoachName: "X"}, want: "Coach: X, Team: "},
		{name: "nothing configured", want: "Coach: , Team: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/teaminfo", TeamInfo(tt.props))

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/teaminfo", nil))
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, readBody(t, resp))
		})
	}
}

func TestTeamInfo_FromPropertiesFile(t *testing.T) {
	path := t.TempDir() + "/application.properties"
	require.NoError(t, os.WriteFile(path, []byte("coach.name=Virat\nteam.name=India\n"), 0o600))
	t.Setenv("APP_PROPERTIES", path)
	t.Setenv("COACH_NAME", "")
	t.Setenv("TEAM_NAME", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	app := fiber.New()
	RegisterRoutes(app, Dependencies{Team: cfg.Team})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/teaminfo", nil))
	require.NoError(t, err)
	assert.Equal(t, "Coach: Virat, Team: India", readBody(t, resp))
}

func TestDemoRoutes(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, Dependencies{Coach: coach.NewTrackCoach(io.Discard)})

	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: "Hello World!"},
		{path: "/fortune", want: "Today is your lucky day"},
		{path: "/workout", want: "Run a hard 5k!"},
		{path: "/dailyworkout", want: "Run a hard 5k!"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, readBody(t, resp))
		})
	}
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})

	t.Run("no database", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", HealthCheck(nil))

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "disabled", body["database"])
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListStudents(t *testing.T) {
	mockSvc := new(serviceMocks.MockStudentService)
	app := fiber.New()
	app.Get("/students", ListStudents(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "").Return([]model.Student{{ID: 1, LastName: "Doe"}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result studentList
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
	})

	t.Run("filter by last name", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "Doe").Return([]model.Student{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students?last_name=Doe", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "").Return(nil, errors.New("db fail")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp).Error.Code)
	})

	mockSvc.AssertExpectations(t)
}

func TestGetStudent(t *testing.T) {
	mockSvc := new(serviceMocks.MockStudentService)
	app := fiber.New()
	app.Get("/students/:id", GetStudent(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, 1).Return(&model.Student{ID: 1, FirstName: "Paul"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students/1", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Student
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "Paul", result.FirstName)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, 2).Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students/2", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	for _, id := range []string{"abc", "0", "-4"} {
		t.Run("invalid id "+id, func(t *testing.T) {
			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students/"+id, nil))

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
		})
	}

	mockSvc.AssertExpectations(t)
}

func TestCreateStudent(t *testing.T) {
	mockSvc := new(serviceMocks.MockStudentService)
	app := fiber.New()
	app.Post("/students", CreateStudent(mockSvc))

	in := service.StudentInput{FirstName: "Paul", LastName: "Doe", Email: "paul@example.com"}

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, in).
			Return(&model.Student{ID: 5, FirstName: "Paul", LastName: "Doe", Email: "paul@example.com"}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/students", in))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var result model.Student
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, 5, result.ID)
	})

	t.Run("validation error", func(t *testing.T) {
		bad := service.StudentInput{FirstName: "Paul"}
		mockSvc.On("Create", mock.Anything, bad).
			Return(nil, fmt.Errorf("%w: last_name (required)", service.ErrInvalidInput)).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/students", bad))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
		assert.Contains(t, body.Error.Message, "last_name")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/students", strings.NewReader("{"))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})

	mockSvc.AssertExpectations(t)
}

func TestUpdateStudent(t *testing.T) {
	mockSvc := new(serviceMocks.MockStudentService)
	app := fiber.New()
	app.Put("/students/:id", UpdateStudent(mockSvc))

	in := service.StudentInput{FirstName: "Scooby", LastName: "Doe", Email: "scooby@example.com"}

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, 1, in).
			Return(&model.Student{ID: 1, FirstName: "Scooby", LastName: "Doe", Email: "scooby@example.com"}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/students/1", in))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, 8, in).Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/students/8", in))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/students/x", in))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	mockSvc.AssertExpectations(t)
}

func TestDeleteStudent(t *testing.T) {
	mockSvc := new(serviceMocks.MockStudentService)
	app := fiber.New()
	app.Delete("/students/:id", DeleteStudent(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, 1).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/students/1", nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, 2).Return(service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/students/2", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, 3).Return(errors.New("delete error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/students/3", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestDeleteAllStudents(t *testing.T) {
	mockSvc := new(serviceMocks.MockStudentService)
	app := fiber.New()
	app.Delete("/students", DeleteAllStudents(mockSvc))

	mockSvc.On("DeleteAll", mock.Anything).Return(int64(3), nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/students", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]int64
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, int64(3), body["deleted"])
	mockSvc.AssertExpectations(t)
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(zap.NewNop()),
	})

	mockSvc := new(serviceMocks.MockStudentService)
	RegisterRoutes(app, Dependencies{Students: mockSvc})

	t.Run("not found route", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/non-existent", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/teaminfo", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("student routes registered", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "").Return([]model.Student{}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("workout routes need a coach", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/workout", nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRouting_WithoutDatabase(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	RegisterRoutes(app, Dependencies{})

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/students", nil))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
