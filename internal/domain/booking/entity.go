package booking

import "time"

// Booking は確定した座席割り当てを表す（プロセス存続中は不変）
type Booking struct {
	ID        string
	EventID   string
	HoldID    string
	Quantity  int
	CreatedAt time.Time
}

// NewBooking は仮押さえから確定予約を作成する
func NewBooking(eventID, holdID string, qty int, now time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		HoldID:    holdID,
		Quantity:  qty,
		CreatedAt: now,
	}
}
