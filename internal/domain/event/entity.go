package event

import (
	"fmt"
	"time"
)

// Event は1つの座席在庫プールを表す
type Event struct {
	ID            string
	Name          string
	TotalSeats    int
	HeldSeats     int
	BookedSeats   int
	ActiveHoldIDs map[string]struct{} // HeldSeats に計上されている仮押さえ
	CreatedAt     time.Time
}

// NewEvent は新しいイベントを作成する
func NewEvent(name string, totalSeats int, createdAt time.Time) *Event {
	return &Event{
		Name:          name,
		TotalSeats:    totalSeats,
		ActiveHoldIDs: make(map[string]struct{}),
		CreatedAt:     createdAt,
	}
}

// Validate はイベントの検証を行う
func (e *Event) Validate() error {
	if e.Name == "" {
		return ErrEventNameRequired
	}
	if e.TotalSeats <= 0 {
		return ErrInvalidTotalSeats
	}
	return nil
}

// Available は仮押さえ・確定のどちらにも使われていない座席数を返す
func (e *Event) Available() int {
	return e.TotalSeats - e.HeldSeats - e.BookedSeats
}

// HasActiveHold は仮押さえが有効集合に含まれるかを返す
func (e *Event) HasActiveHold(holdID string) bool {
	_, ok := e.ActiveHoldIDs[holdID]
	return ok
}

// AddHold は仮押さえを有効集合に加え、held を増やす
func (e *Event) AddHold(holdID string, qty int) {
	e.ActiveHoldIDs[holdID] = struct{}{}
	e.HeldSeats += qty
}

// ReleaseHold は期限切れの仮押さえを有効集合から外し、座席を戻す
func (e *Event) ReleaseHold(holdID string, qty int) {
	delete(e.ActiveHoldIDs, holdID)
	e.HeldSeats -= qty
}

// ConvertHold は仮押さえの座席を held から booked へ移す
func (e *Event) ConvertHold(holdID string, qty int) {
	delete(e.ActiveHoldIDs, holdID)
	e.HeldSeats -= qty
	e.BookedSeats += qty
}

// CheckInvariant は held + booked <= total が保たれているかを検査する
func (e *Event) CheckInvariant() error {
	if e.HeldSeats < 0 || e.BookedSeats < 0 || e.HeldSeats+e.BookedSeats > e.TotalSeats {
		return fmt.Errorf("%w: event=%s total=%d held=%d booked=%d",
			ErrInvariantViolated, e.ID, e.TotalSeats, e.HeldSeats, e.BookedSeats)
	}
	return nil
}

// Snapshot はイベントの座席状況を表す
type Snapshot struct {
	EventID   string
	Total     int
	Available int
	Held      int
	Booked    int
}

// Snapshot は現在の座席状況のコピーを返す
func (e *Event) Snapshot() Snapshot {
	return Snapshot{
		EventID:   e.ID,
		Total:     e.TotalSeats,
		Available: e.Available(),
		Held:      e.HeldSeats,
		Booked:    e.BookedSeats,
	}
}
