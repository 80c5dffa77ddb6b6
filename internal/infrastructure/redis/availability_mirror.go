package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanosuguru/go-seat-hold-inventory/internal/domain/event"
)

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// 保存済みの seq より新しい場合だけ書き込む
// KEYS[1]: ハッシュキー
// ARGV: seq, ttl(ms), total, available, held, booked
var setIfNewerScript = redis.NewScript(`
local current = redis.call("HGET", KEYS[1], "seq")
if current and tonumber(current) >= tonumber(ARGV[1]) then
	return 0
end
redis.call("HSET", KEYS[1],
	"seq", ARGV[1],
	"total", ARGV[3],
	"available", ARGV[4],
	"held", ARGV[5],
	"booked", ARGV[6])
redis.call("PEXPIRE", KEYS[1], ARGV[2])
return 1
`)

// Availability はミラーされた座席状況
type Availability struct {
	event.Snapshot
	Seq uint64
}

// AvailabilityMirror はイベントの座席状況をRedisハッシュに書き出す
// 読み取り専用のミラーであり、在庫の判定には使わない
type AvailabilityMirror struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAvailabilityMirror は新しいAvailabilityMirrorインスタンスを作成する
func NewAvailabilityMirror(client *redis.Client, ttl time.Duration) *AvailabilityMirror {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AvailabilityMirror{client: client, ttl: ttl}
}

// PublishAvailability は座席状況を書き込む
// 既に同じかより新しい seq が保存されていれば何もしない
func (m *AvailabilityMirror) PublishAvailability(ctx context.Context, snapshot event.Snapshot, seq uint64) error {
	key := availabilityKey(snapshot.EventID)
	err := setIfNewerScript.Run(ctx, m.client, []string{key},
		seq,
		m.ttl.Milliseconds(),
		snapshot.Total,
		snapshot.Available,
		snapshot.Held,
		snapshot.Booked,
	).Err()
	if err != nil {
		return fmt.Errorf("座席状況の書き込みに失敗: %w", err)
	}
	return nil
}

// GetAvailability はミラーされた座席状況を取得する
func (m *AvailabilityMirror) GetAvailability(ctx context.Context, eventID string) (*Availability, error) {
	values, err := m.client.HGetAll(ctx, availabilityKey(eventID)).Result()
	if err != nil {
		return nil, fmt.Errorf("座席状況の取得に失敗: %w", err)
	}
	if len(values) == 0 {
		return nil, ErrCacheMiss
	}

	a := &Availability{Snapshot: event.Snapshot{EventID: eventID}}
	fields := []struct {
		name string
		dst  *int
	}{
		{"total", &a.Total},
		{"available", &a.Available},
		{"held", &a.Held},
		{"booked", &a.Booked},
	}
	for _, f := range fields {
		n, err := strconv.Atoi(values[f.name])
		if err != nil {
			return nil, fmt.Errorf("座席状況の値が不正です (%s): %w", f.name, err)
		}
		*f.dst = n
	}
	seq, err := strconv.ParseUint(values["seq"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("座席状況の値が不正です (seq): %w", err)
	}
	a.Seq = seq
	return a, nil
}

// Invalidate はイベントのミラーを削除する
func (m *AvailabilityMirror) Invalidate(ctx context.Context, eventID string) error {
	if err := m.client.Del(ctx, availabilityKey(eventID)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func availabilityKey(eventID string) string {
	return fmt.Sprintf("availability:%s", eventID)
}
