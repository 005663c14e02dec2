package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"coachdemo/internal/model"
	"coachdemo/internal/service"
)

type MockStudentService struct {
	mock.Mock
}

func (m *MockStudentService) Create(ctx context.Context, in service.StudentInput) (*model.Student, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentService) Get(ctx context.Context, id int) (*model.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentService) List(ctx context.Context, lastName string) ([]model.Student, error) {
	args := m.Called(ctx, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Student), args.Error(1)
}

func (m *MockStudentService) Update(ctx context.Context, id int, in service.StudentInput) (*model.Student, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Student), args.Error(1)
}

func (m *MockStudentService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStudentService) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
