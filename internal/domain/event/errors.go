package event

import "errors"

// Event ドメインのエラー定義
var (
	ErrEventNotFound     = errors.New("イベントが見つかりません")
	ErrEventNameRequired = errors.New("イベント名は必須です")
	ErrInvalidTotalSeats = errors.New("座席数は1以上である必要があります")
	ErrNoSeatsAvailable  = errors.New("空席がありません")
	ErrInvariantViolated = errors.New("座席数の不変条件が破られました")
)
