package application

import (
	"fmt"
	"time"

	"github.com/sanosuguru/go-seat-hold-inventory/internal/domain/event"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/domain/hold"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/infrastructure/memory"
)

// reclaimExpired は全イベントの有効な仮押さえのうち now 時点で期限切れのものを解放する
// 解放した仮押さえは Store から削除され、期限切れカウンタが加算される
// 同じ now で二度呼んでも二度目は何もしない
func reclaimExpired(store *memory.Store, now time.Time) []*hold.Hold {
	var released []*hold.Hold
	for _, e := range store.Events() {
		for holdID := range e.ActiveHoldIDs {
			h, err := store.GetHold(holdID)
			if err != nil {
				panic(fmt.Sprintf("有効な仮押さえがテーブルに存在しません: event=%s hold=%s", e.ID, holdID))
			}
			if !h.IsExpired(now) {
				continue
			}
			e.ReleaseHold(holdID, h.Quantity)
			store.ExpireHold(holdID)
			released = append(released, h)
		}
	}
	return released
}

// mustHoldInvariant は座席数の不変条件を検査し、破られていれば panic する
// 正しい手順で操作していれば起こり得ないため、利用者向けのエラーにはしない
func mustHoldInvariant(store *memory.Store, e *event.Event) {
	if err := e.CheckInvariant(); err != nil {
		panic(err)
	}
	held := 0
	for holdID := range e.ActiveHoldIDs {
		h, err := store.GetHold(holdID)
		if err != nil {
			panic(fmt.Sprintf("有効な仮押さえがテーブルに存在しません: event=%s hold=%s", e.ID, holdID))
		}
		held += h.Quantity
	}
	if held != e.HeldSeats {
		panic(fmt.Errorf("%w: event=%s held=%d active_sum=%d", event.ErrInvariantViolated, e.ID, e.HeldSeats, held))
	}
}
