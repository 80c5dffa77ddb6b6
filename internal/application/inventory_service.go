package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-hold-inventory/internal/domain/booking"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/domain/event"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/domain/hold"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/infrastructure/memory"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/pkg/clock"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/pkg/logger"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/pkg/metrics"
)

// DefaultHoldTimeout は仮押さえの有効期限のデフォルト値
const DefaultHoldTimeout = 120 * time.Second

const (
	opCreateEvent = "create_event"
	opCreateHold  = "create_hold"
	opBook        = "book"
	opSnapshot    = "snapshot"
	opMetrics     = "metrics"
	opSweep       = "sweep"
)

// AvailabilityPublisher はイベントの座席状況を外部へ反映する
// seq は反映順序の判定に使う単調増加の値
type AvailabilityPublisher interface {
	PublishAvailability(ctx context.Context, snapshot event.Snapshot, seq uint64) error
}

// InventoryService は座席在庫の仮押さえ・確定・期限切れ解放を行う
//
// 全操作は1つのミューテックス（ゲート）で直列化される。イベントごとのロックは持たない。
// sync.Mutex は厳密なFIFOではないが、1ms以上待たされた待機者がいると
// 飢餓モードに切り替わり到着順に引き渡される。
// ゲート内ではI/Oを行わず、ログ出力とミラー反映はゲート解放後に行う。
type InventoryService struct {
	mu          sync.Mutex
	store       *memory.Store
	clock       clock.Clock
	holdTimeout time.Duration
	metrics     *metrics.Metrics
	publisher   AvailabilityPublisher
	seq         uint64
}

type InventoryServiceOption func(*InventoryService)

// WithHoldTimeout は仮押さえの有効期限を上書きする
func WithHoldTimeout(d time.Duration) InventoryServiceOption {
	return func(s *InventoryService) {
		if d > 0 {
			s.holdTimeout = d
		}
	}
}

// WithClock は時刻の取得元を差し替える
func WithClock(c clock.Clock) InventoryServiceOption {
	return func(s *InventoryService) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithMetrics はPrometheusメトリクスを設定する
func WithMetrics(m *metrics.Metrics) InventoryServiceOption {
	return func(s *InventoryService) {
		s.metrics = m
	}
}

// WithAvailabilityPublisher は座席状況のミラー先を設定する
func WithAvailabilityPublisher(p AvailabilityPublisher) InventoryServiceOption {
	return func(s *InventoryService) {
		s.publisher = p
	}
}

func NewInventoryService(store *memory.Store, opts ...InventoryServiceOption) *InventoryService {
	s := &InventoryService{
		store:       store,
		clock:       clock.NewSystem(),
		holdTimeout: DefaultHoldTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HoldTimeout は仮押さえの有効期限を返す
func (s *InventoryService) HoldTimeout() time.Duration {
	return s.holdTimeout
}

type CreateEventInput struct {
	Name       string
	TotalSeats int
}

type CreateEventResult struct {
	EventID    string
	Name       string
	TotalSeats int
	CreatedAt  time.Time
}

func (s *InventoryService) CreateEvent(ctx context.Context, input CreateEventInput) (*CreateEventResult, error) {
	var res *CreateEventResult
	err := s.transact(ctx, opCreateEvent, func(tx *txn) error {
		s.reclaim(tx)

		e := event.NewEvent(input.Name, input.TotalSeats, tx.now)
		if err := e.Validate(); err != nil {
			return fmt.Errorf("バリデーションエラー: %w", err)
		}
		s.store.CreateEvent(e)
		tx.touch(e)

		res = &CreateEventResult{EventID: e.ID, Name: e.Name, TotalSeats: e.TotalSeats, CreatedAt: e.CreatedAt}
		return nil
	})

	log := logger.WithContext(ctx)
	if err != nil {
		log.Warn("イベント作成に失敗", zap.String("name", input.Name), zap.Error(err))
		return nil, err
	}
	log.Info("イベントを作成", zap.String("event_id", res.EventID), zap.Int("total_seats", res.TotalSeats))
	return res, nil
}

type CreateHoldInput struct {
	EventID  string
	Quantity int
}

type HoldResult struct {
	HoldID       string
	EventID      string
	Quantity     int // 実際に確保できた座席数
	Requested    int
	ExpiresAt    time.Time
	PaymentToken string
}

// CreateHold は座席を仮押さえする
// 空席が要求数に満たない場合は空席分だけ確保する（0席にはならない）
func (s *InventoryService) CreateHold(ctx context.Context, input CreateHoldInput) (*HoldResult, error) {
	log := logger.WithContext(ctx).With(zap.String("event_id", input.EventID))
	if err := hold.ValidateQuantity(input.Quantity); err != nil {
		log.Warn("仮押さえ作成に失敗", zap.Error(err))
		return nil, err
	}

	var res *HoldResult
	err := s.transact(ctx, opCreateHold, func(tx *txn) error {
		e, err := s.store.GetEvent(input.EventID)
		if err != nil {
			return err
		}
		s.reclaim(tx)

		available := e.Available()
		if available == 0 {
			return event.ErrNoSeatsAvailable
		}
		qty := min(input.Quantity, available)

		h := hold.NewHold(e.ID, qty, uuid.NewString(), tx.now, s.holdTimeout)
		s.store.CreateHold(h)
		e.AddHold(h.ID, h.Quantity)
		mustHoldInvariant(s.store, e)
		tx.touch(e)
		tx.heldSeats += qty

		res = &HoldResult{
			HoldID:       h.ID,
			EventID:      e.ID,
			Quantity:     h.Quantity,
			Requested:    input.Quantity,
			ExpiresAt:    h.ExpiresAt,
			PaymentToken: h.PaymentToken,
		}
		return nil
	})
	if err != nil {
		log.Warn("仮押さえ作成に失敗", zap.Int("qty", input.Quantity), zap.Error(err))
		return nil, err
	}
	log.Info("仮押さえを作成",
		zap.String("hold_id", res.HoldID),
		zap.Int("qty_requested", res.Requested),
		zap.Int("qty_held", res.Quantity),
	)
	return res, nil
}

type BookInput struct {
	HoldID       string
	PaymentToken string
}

type BookResult struct {
	BookingID     string
	HoldID        string
	EventID       string
	Quantity      int
	AlreadyBooked bool // 同じ仮押さえの再送で既存の予約を返した
}

// Book は仮押さえを確定予約に変える
// 確定済みの仮押さえに同じトークンで再送した場合は既存の予約IDを返す
func (s *InventoryService) Book(ctx context.Context, input BookInput) (*BookResult, error) {
	var res *BookResult
	err := s.transact(ctx, opBook, func(tx *txn) error {
		h, err := s.store.GetHold(input.HoldID)
		if err != nil {
			return err
		}
		if !h.TokenMatches(input.PaymentToken) {
			return hold.ErrInvalidPaymentToken
		}
		if h.Booked {
			res = &BookResult{BookingID: h.BookingID, HoldID: h.ID, EventID: h.EventID, Quantity: h.Quantity, AlreadyBooked: true}
			return nil
		}
		if h.IsExpired(tx.now) {
			return hold.ErrHoldExpired
		}

		e, err := s.store.GetEvent(h.EventID)
		if err != nil {
			return fmt.Errorf("仮押さえのイベント取得に失敗: %w", err)
		}
		s.reclaim(tx)
		if !e.HasActiveHold(h.ID) {
			return hold.ErrHoldExpiredOrInvalid
		}

		b := booking.NewBooking(e.ID, h.ID, h.Quantity, tx.now)
		s.store.CreateBooking(b)
		if err := h.MarkBooked(b.ID); err != nil {
			panic(err)
		}
		e.ConvertHold(h.ID, h.Quantity)
		mustHoldInvariant(s.store, e)
		tx.touch(e)
		tx.bookedSeats += h.Quantity

		res = &BookResult{BookingID: b.ID, HoldID: h.ID, EventID: e.ID, Quantity: b.Quantity}
		return nil
	})

	log := logger.WithContext(ctx).With(zap.String("hold_id", input.HoldID))
	if err != nil {
		log.Warn("予約確定に失敗", zap.Error(err))
		return nil, err
	}
	log = log.With(zap.String("event_id", res.EventID), zap.String("booking_id", res.BookingID))
	if res.AlreadyBooked {
		log.Info("予約は既に確定済み")
	} else {
		log.Info("予約を確定", zap.Int("qty", res.Quantity))
	}
	return res, nil
}

// GetSnapshot はイベントの座席状況を返す
func (s *InventoryService) GetSnapshot(ctx context.Context, eventID string) (event.Snapshot, error) {
	var snap event.Snapshot
	err := s.transact(ctx, opSnapshot, func(tx *txn) error {
		e, err := s.store.GetEvent(eventID)
		if err != nil {
			return err
		}
		s.reclaim(tx)
		tx.touch(e)
		snap = e.Snapshot()
		return nil
	})

	log := logger.WithContext(ctx).With(zap.String("event_id", eventID))
	if err != nil {
		log.Warn("座席状況の取得に失敗", zap.Error(err))
		return event.Snapshot{}, err
	}
	log.Debug("座席状況を取得", zap.Int("available", snap.Available))
	return snap, nil
}

// GetMetrics は累積カウンタを返す（期限切れは反映済み）
func (s *InventoryService) GetMetrics(ctx context.Context) (memory.Counters, error) {
	var counters memory.Counters
	err := s.transact(ctx, opMetrics, func(tx *txn) error {
		s.reclaim(tx)
		counters = s.store.Counters()
		return nil
	})
	if err != nil {
		return memory.Counters{}, err
	}
	logger.WithContext(ctx).Debug("メトリクスを取得")
	return counters, nil
}

// SweepExpired は期限切れの仮押さえを解放し、解放した件数を返す
func (s *InventoryService) SweepExpired(ctx context.Context) (int, error) {
	var n int
	err := s.transact(ctx, opSweep, func(tx *txn) error {
		s.reclaim(tx)
		n = len(tx.expired)
		return nil
	})
	return n, err
}

// txn はゲート内で1つの操作が積み上げる情報
type txn struct {
	op          string
	now         time.Time
	touched     map[string]*event.Event
	expired     []*hold.Hold
	heldSeats   int
	bookedSeats int

	// ゲート解放直前に確定する値
	snapshots   []event.Snapshot
	activeHolds int64
	seq         uint64
}

func (t *txn) touch(e *event.Event) {
	t.touched[e.ID] = e
}

// transact はゲートを取得して fn を実行する
// fn が panic してもゲートは解放される。ログとミラー反映は解放後に行う
func (s *InventoryService) transact(ctx context.Context, op string, fn func(tx *txn) error) error {
	start := time.Now()
	s.mu.Lock()
	tx := &txn{op: op, now: s.clock.Now(), touched: make(map[string]*event.Event)}
	s.metrics.ObserveGateWait(op, time.Since(start))

	var err error
	func() {
		defer s.release(tx)
		err = fn(tx)
	}()

	s.afterRelease(ctx, tx, err)
	return err
}

// reclaim は期限切れの仮押さえを解放し、影響したイベントを記録する
func (s *InventoryService) reclaim(tx *txn) {
	released := reclaimExpired(s.store, tx.now)
	for _, h := range released {
		if e, err := s.store.GetEvent(h.EventID); err == nil {
			tx.touch(e)
		}
	}
	tx.expired = append(tx.expired, released...)
}

func (s *InventoryService) release(tx *txn) {
	defer s.mu.Unlock()

	if s.publisher != nil {
		for _, e := range tx.touched {
			tx.snapshots = append(tx.snapshots, e.Snapshot())
		}
	}
	c := s.store.Counters()
	tx.activeHolds = c.TotalHolds - c.TotalBookings - c.TotalExpiries
	s.seq++
	tx.seq = s.seq
}

func (s *InventoryService) afterRelease(ctx context.Context, tx *txn, err error) {
	s.metrics.ObserveOperation(tx.op, resultLabel(err))
	s.metrics.AddExpiries(len(tx.expired))
	s.metrics.AddSeats("held", tx.heldSeats)
	s.metrics.AddSeats("booked", tx.bookedSeats)
	s.metrics.SetActiveHolds(tx.activeHolds)

	log := logger.WithContext(ctx)
	for _, h := range tx.expired {
		log.Info("期限切れの仮押さえを解放",
			zap.String("event_id", h.EventID),
			zap.String("hold_id", h.ID),
			zap.Int("qty", h.Quantity),
		)
	}

	for _, snap := range tx.snapshots {
		if perr := s.publisher.PublishAvailability(ctx, snap, tx.seq); perr != nil {
			log.Warn("座席状況のミラー反映に失敗", zap.String("event_id", snap.EventID), zap.Error(perr))
		}
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, event.ErrEventNotFound), errors.Is(err, hold.ErrHoldNotFound):
		return "not_found"
	case errors.Is(err, event.ErrNoSeatsAvailable):
		return "no_seats"
	case errors.Is(err, hold.ErrInvalidPaymentToken):
		return "invalid_token"
	case hold.IsExpired(err):
		return "expired"
	case errors.Is(err, event.ErrEventNameRequired), errors.Is(err, event.ErrInvalidTotalSeats), errors.Is(err, hold.ErrInvalidQuantity):
		return "invalid"
	default:
		return "error"
	}
}
