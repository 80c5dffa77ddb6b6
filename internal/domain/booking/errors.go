package booking

import "errors"

var ErrBookingNotFound = errors.New("予約が見つかりません")
