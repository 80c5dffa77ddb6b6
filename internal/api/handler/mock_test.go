package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sanosuguru/go-seat-hold-inventory/internal/application"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/domain/event"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/infrastructure/memory"
)

// MockInventoryService はInventoryServiceInterfaceのモック
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) CreateEvent(ctx context.Context, input application.CreateEventInput) (*application.CreateEventResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.CreateEventResult), args.Error(1)
}

func (m *MockInventoryService) CreateHold(ctx context.Context, input application.CreateHoldInput) (*application.HoldResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.HoldResult), args.Error(1)
}

func (m *MockInventoryService) Book(ctx context.Context, input application.BookInput) (*application.BookResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*application.BookResult), args.Error(1)
}

func (m *MockInventoryService) GetSnapshot(ctx context.Context, eventID string) (event.Snapshot, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(event.Snapshot), args.Error(1)
}

func (m *MockInventoryService) GetMetrics(ctx context.Context) (memory.Counters, error) {
	args := m.Called(ctx)
	return args.Get(0).(memory.Counters), args.Error(1)
}
