package handler

import (
	"context"

	"github.com/sanosuguru/go-seat-hold-inventory/internal/application"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/domain/event"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/infrastructure/memory"
)

// InventoryServiceInterface は在庫サービスのインターフェース
type InventoryServiceInterface interface {
	CreateEvent(ctx context.Context, input application.CreateEventInput) (*application.CreateEventResult, error)
	CreateHold(ctx context.Context, input application.CreateHoldInput) (*application.HoldResult, error)
	Book(ctx context.Context, input application.BookInput) (*application.BookResult, error)
	GetSnapshot(ctx context.Context, eventID string) (event.Snapshot, error)
	GetMetrics(ctx context.Context) (memory.Counters, error)
}
