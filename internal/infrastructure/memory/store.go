package memory

import (
	"github.com/google/uuid"

	"github.com/sanosuguru/go-seat-hold-inventory/internal/domain/booking"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/domain/event"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/domain/hold"
)

// Counters はプロセス全体の累積カウンタ
type Counters struct {
	TotalEvents   int64
	TotalHolds    int64
	TotalBookings int64
	TotalExpiries int64
}

// Store はイベント・仮押さえ・予約のインメモリテーブル
// 排他制御は行わないため、呼び出し側のロック内でのみ使用すること
type Store struct {
	events   map[string]*event.Event
	holds    map[string]*hold.Hold
	bookings map[string]*booking.Booking
	counters Counters
}

// NewStore は空のStoreを作成する
func NewStore() *Store {
	return &Store{
		events:   make(map[string]*event.Event),
		holds:    make(map[string]*hold.Hold),
		bookings: make(map[string]*booking.Booking),
	}
}

// CreateEvent はIDを採番してイベントを登録する
func (s *Store) CreateEvent(e *event.Event) {
	e.ID = uuid.NewString()
	s.events[e.ID] = e
	s.counters.TotalEvents++
}

// GetEvent はIDからイベントを取得する
func (s *Store) GetEvent(id string) (*event.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, event.ErrEventNotFound
	}
	return e, nil
}

// Events は全イベントを返す（順序は不定）
func (s *Store) Events() []*event.Event {
	events := make([]*event.Event, 0, len(s.events))
	for _, e := range s.events {
		events = append(events, e)
	}
	return events
}

// CreateHold はIDを採番して仮押さえを登録する
func (s *Store) CreateHold(h *hold.Hold) {
	h.ID = uuid.NewString()
	s.holds[h.ID] = h
	s.counters.TotalHolds++
}

// GetHold はIDから仮押さえを取得する
func (s *Store) GetHold(id string) (*hold.Hold, error) {
	h, ok := s.holds[id]
	if !ok {
		return nil, hold.ErrHoldNotFound
	}
	return h, nil
}

// ExpireHold は期限切れの仮押さえを削除し、期限切れカウンタを増やす
func (s *Store) ExpireHold(id string) {
	if _, ok := s.holds[id]; !ok {
		return
	}
	delete(s.holds, id)
	s.counters.TotalExpiries++
}

// CreateBooking はIDを採番して予約を登録する
func (s *Store) CreateBooking(b *booking.Booking) {
	b.ID = uuid.NewString()
	s.bookings[b.ID] = b
	s.counters.TotalBookings++
}

// GetBooking はIDから予約を取得する
func (s *Store) GetBooking(id string) (*booking.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return b, nil
}

// Counters は累積カウンタのコピーを返す
func (s *Store) Counters() Counters {
	return s.counters
}
