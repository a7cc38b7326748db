package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"contractflow.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	m.Called(ctx)
	return ctx
}

// Mock BlueprintRepository
type MockBlueprintRepository struct {
	mock.Mock
}

func (m *MockBlueprintRepository) Create(ctx context.Context, blueprint *entities.Blueprint) error {
	args := m.Called(ctx, blueprint)
	return args.Error(0)
}

func (m *MockBlueprintRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Blueprint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Blueprint), args.Error(1)
}

func (m *MockBlueprintRepository) List(ctx context.Context) ([]*entities.Blueprint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Blueprint), args.Error(1)
}

func (m *MockBlueprintRepository) Update(ctx context.Context, blueprint *entities.Blueprint) error {
	args := m.Called(ctx, blueprint)
	return args.Error(0)
}

func (m *MockBlueprintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock ContractRepository
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) Create(ctx context.Context, contract *entities.Contract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contract), args.Error(1)
}

func (m *MockContractRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Contract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contract), args.Error(1)
}

func (m *MockContractRepository) List(ctx context.Context, filter entities.ContractFilter) ([]*entities.Contract, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Contract), args.Get(1).(int64), args.Error(2)
}

func (m *MockContractRepository) SaveStatus(ctx context.Context, id uuid.UUID, expected, target entities.ContractStatus, entry *entities.HistoryEntry) error {
	args := m.Called(ctx, id, expected, target, entry)
	return args.Error(0)
}
