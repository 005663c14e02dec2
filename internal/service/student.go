package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"coachdemo/internal/model"
	"coachdemo/internal/repository"
)

var (
	ErrInvalidID    = errors.New("id must be a positive integer")
	ErrInvalidInput = errors.New("invalid student")
	ErrNotFound     = errors.New("student not found")
)

// StudentInput is the writable part of a student.
type StudentInput struct {
	FirstName string `json:"first_name" validate:"required,max=45"`
	LastName  string `json:"last_name" validate:"required,max=45"`
	Email     string `json:"email" validate:"required,email,max=45"`
}

// StudentService defines the use cases for handling students.
type StudentService interface {
	// Create validates the input and stores a new student.
	Create(ctx context.Context, in StudentInput) (*model.Student, error)

	// Get returns a single student by ID.
	Get(ctx context.Context, id int) (*model.Student, error)

	// List returns all students ordered by last name, or only those with lastName when it is not empty.
	List(ctx context.Context, lastName string) ([]model.Student, error)

	// Update replaces the fields of an existing student.
	Update(ctx context.Context, id int, in StudentInput) (*model.Student, error)

	// Delete removes a student by ID.
	Delete(ctx context.Context, id int) error

	// DeleteAll removes every student and reports how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}

type studentService struct {
	repo     repository.StudentRepository
	validate *validator.Validate
}

// NewStudentService constructs a new StudentService.
func NewStudentService(repo repository.StudentRepository) StudentService {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names in validation errors.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &studentService{repo: repo, validate: v}
}

func (s *studentService) check(in StudentInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(fields, ", "))
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *studentService) Create(ctx context.Context, in StudentInput) (*model.Student, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	stored, err := s.repo.Save(ctx, &model.Student{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("save student: %w", err)
	}
	return stored, nil
}

func (s *studentService) Get(ctx context.Context, id int) (*model.Student, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	st, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return st, nil
}

func (s *studentService) List(ctx context.Context, lastName string) ([]model.Student, error) {
	if lastName != "" {
		return s.repo.FindByLastName(ctx, lastName)
	}
	return s.repo.FindAll(ctx)
}

func (s *studentService) Update(ctx context.Context, id int, in StudentInput) (*model.Student, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	if err := s.check(in); err != nil {
		return nil, err
	}
	st, err := s.repo.Update(ctx, &model.Student{
		ID:        id,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	})
	if err != nil {
		return nil, notFound(err)
	}
	return st, nil
}

func (s *studentService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return notFound(s.repo.Delete(ctx, id))
}

func (s *studentService) DeleteAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}
