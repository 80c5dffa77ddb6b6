package hold

import (
	"crypto/subtle"
	"time"
)

// Hold はイベント座席の期限付き仮押さえを表す
type Hold struct {
	ID           string
	EventID      string
	Quantity     int // 実際に確保できた座席数（要求数以下）
	ExpiresAt    time.Time
	PaymentToken string
	Booked       bool
	BookingID    string
	CreatedAt    time.Time
}

// NewHold は新しい仮押さえを作成する
func NewHold(eventID string, qty int, paymentToken string, now time.Time, timeout time.Duration) *Hold {
	return &Hold{
		EventID:      eventID,
		Quantity:     qty,
		ExpiresAt:    now.Add(timeout),
		PaymentToken: paymentToken,
		CreatedAt:    now,
	}
}

// IsExpired は now 時点で期限切れかを返す
func (h *Hold) IsExpired(now time.Time) bool {
	return now.After(h.ExpiresAt)
}

// TokenMatches は支払いトークンが一致するかを返す
func (h *Hold) TokenMatches(token string) bool {
	return subtle.ConstantTimeCompare([]byte(h.PaymentToken), []byte(token)) == 1
}

// MarkBooked は仮押さえを確定済みにする
func (h *Hold) MarkBooked(bookingID string) error {
	if h.Booked {
		return ErrHoldAlreadyBooked
	}
	h.Booked = true
	h.BookingID = bookingID
	return nil
}

// ValidateQuantity は要求座席数の検証を行う
func ValidateQuantity(qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}
