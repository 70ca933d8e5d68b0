package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"toolrental/internal/domain"
)

// MockToolRepo
type MockToolRepo struct {
	mock.Mock
}

func (m *MockToolRepo) Create(ctx context.Context, tool *domain.ToolSpec) error {
	args := m.Called(ctx, tool)
	return args.Error(0)
}
func (m *MockToolRepo) GetByCode(ctx context.Context, code string) (*domain.ToolSpec, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolSpec), args.Error(1)
}
func (m *MockToolRepo) Delete(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}
func (m *MockToolRepo) List(ctx context.Context) ([]domain.ToolSpec, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ToolSpec), args.Error(1)
}
