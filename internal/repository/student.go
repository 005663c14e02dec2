package repository

import (
	"context"

	"coachdemo/internal/model"
)

// StudentRepository defines data access for students. Persistence only, no business rules.
type StudentRepository interface {
	// Save inserts a student and returns the stored row with its generated ID.
	Save(ctx context.Context, s *model.Student) (*model.Student, error)

	// FindByID returns sql.ErrNoRows when no student has the ID.
	FindByID(ctx context.Context, id int) (*model.Student, error)

	// FindAll returns every student ordered by last name.
	FindAll(ctx context.Context) ([]model.Student, error)

	// FindByLastName returns the students with exactly this last name.
	FindByLastName(ctx context.Context, lastName string) ([]model.Student, error)

	// Update overwrites the row with s.ID and returns sql.ErrNoRows if it does not exist.
	Update(ctx context.Context, s *model.Student) (*model.Student, error)

	// Delete removes a student by ID and returns sql.ErrNoRows if it does not exist.
	Delete(ctx context.Context, id int) error

	// DeleteAll removes every student and returns how many rows were deleted.
	DeleteAll(ctx context.Context) (int64, error)
}
