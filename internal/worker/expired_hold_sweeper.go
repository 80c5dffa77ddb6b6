package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-hold-inventory/internal/pkg/logger"
)

// HoldSweeper は期限切れの仮押さえを解放するインターフェース
type HoldSweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// ExpiredHoldSweeper は期限切れの仮押さえを定期的に解放するワーカー
// 解放は各操作の冒頭でも行われるため、このワーカーは操作のないイベントの
// 座席状況を進めるためだけに使う
type ExpiredHoldSweeper struct {
	service  HoldSweeper
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewExpiredHoldSweeper は新しいスイーパーを作成
func NewExpiredHoldSweeper(s HoldSweeper, interval time.Duration) *ExpiredHoldSweeper {
	return &ExpiredHoldSweeper{
		service:  s,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はスイーパーを開始
func (w *ExpiredHoldSweeper) Start(ctx context.Context) {
	logger.Info("期限切れ仮押さえスイーパー開始", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("期限切れ仮押さえスイーパー停止（コンテキストキャンセル）")
			return
		case <-w.stopCh:
			logger.Info("期限切れ仮押さえスイーパー停止（シグナル受信）")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// Stop はスイーパーを停止し、終了を待つ
func (w *ExpiredHoldSweeper) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.doneCh
}

func (w *ExpiredHoldSweeper) sweep(ctx context.Context) {
	log := logger.Get()

	count, err := w.service.SweepExpired(ctx)
	if err != nil {
		log.Error("期限切れ仮押さえの解放に失敗", zap.Error(err))
		return
	}

	if count > 0 {
		log.Info("期限切れ仮押さえを解放", zap.Int("count", count))
	} else {
		log.Debug("期限切れ仮押さえなし")
	}
}
