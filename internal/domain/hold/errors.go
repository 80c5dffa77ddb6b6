package hold

import "errors"

// Hold ドメインのエラー定義
var (
	ErrHoldNotFound         = errors.New("仮押さえが見つかりません")
	ErrInvalidPaymentToken  = errors.New("支払いトークンが不正です")
	ErrHoldExpired          = errors.New("仮押さえの有効期限が切れています")
	ErrHoldExpiredOrInvalid = errors.New("仮押さえは期限切れか無効です")
	ErrHoldAlreadyBooked    = errors.New("仮押さえは既に確定されています")
	ErrInvalidQuantity      = errors.New("座席数は1以上である必要があります")
	ErrEventIDRequired      = errors.New("イベントIDは必須です")
)

// IsExpired は期限切れ系のエラーかを返す
func IsExpired(err error) bool {
	return errors.Is(err, ErrHoldExpired) || errors.Is(err, ErrHoldExpiredOrInvalid)
}
