package postgres

import (
	"context"
	"database/sql"

	"coachdemo/internal/model"
	"coachdemo/internal/repository"
)

const studentColumns = `id, first_name, last_name, email`

// StudentPostgres is a PostgreSQL implementation of repository.StudentRepository.
type StudentPostgres struct {
	db *sql.DB
}

// NewStudentPostgres creates a new StudentPostgres repository.
func NewStudentPostgres(db *sql.DB) *StudentPostgres {
	return &StudentPostgres{db: db}
}

var _ repository.StudentRepository = (*StudentPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudent(row rowScanner) (*model.Student, error) {
	var s model.Student
	if err := row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save inserts a new student row and returns it with the generated ID.
func (r *StudentPostgres) Save(ctx context.Context, s *model.Student) (*model.Student, error) {
	const q = `
		INSERT INTO students (first_name, last_name, email)
		VALUES ($1, $2, $3)
		RETURNING ` + studentColumns
	return scanStudent(r.db.QueryRowContext(ctx, q, s.FirstName, s.LastName, s.Email))
}

// FindByID fetches a single student by its ID.
func (r *StudentPostgres) FindByID(ctx context.Context, id int) (*model.Student, error) {
	const q = `SELECT ` + studentColumns + ` FROM students WHERE id = $1`
	return scanStudent(r.db.QueryRowContext(ctx, q, id))
}

// FindAll returns all students sorted by last name.
func (r *StudentPostgres) FindAll(ctx context.Context) ([]model.Student, error) {
	const q = `SELECT ` + studentColumns + ` FROM students ORDER BY last_name, id`
	return r.list(ctx, q)
}

// FindByLastName returns the students whose last name matches exactly.
func (r *StudentPostgres) FindByLastName(ctx context.Context, lastName string) ([]model.Student, error) {
	const q = `SELECT ` + studentColumns + ` FROM students WHERE last_name = $1 ORDER BY id`
	return r.list(ctx, q, lastName)
}

func (r *StudentPostgres) list(ctx context.Context, q string, args ...any) ([]model.Student, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update overwrites every column of the student with s.ID.
func (r *StudentPostgres) Update(ctx context.Context, s *model.Student) (*model.Student, error) {
	const q = `
		UPDATE students
		SET first_name = $2, last_name = $3, email = $4
		WHERE id = $1
		RETURNING ` + studentColumns
	return scanStudent(r.db.QueryRowContext(ctx, q, s.ID, s.FirstName, s.LastName, s.Email))
}

// Delete removes a student by ID.
func (r *StudentPostgres) Delete(ctx context.Context, id int) error {
	const q = `DELETE FROM students WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteAll removes every student.
func (r *StudentPostgres) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
