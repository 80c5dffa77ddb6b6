package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// 在庫操作の総数（operation: create_event/create_hold/book/snapshot/metrics/sweep, result）
	InventoryOperationsTotal *prometheus.CounterVec

	// ゲート取得までの待ち時間（operation）
	GateWaitDuration *prometheus.HistogramVec

	// 期限切れで解放された仮押さえの総数
	HoldExpiriesTotal prometheus.Counter

	// 仮押さえ・確定された座席数の総数（state: held, booked）
	SeatsTotal *prometheus.CounterVec

	// 現在有効な仮押さえ数
	ActiveHolds prometheus.Gauge
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		InventoryOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_operations_total",
				Help: "Total number of inventory operations by result",
			},
			[]string{"operation", "result"},
		),
		GateWaitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "inventory_gate_wait_seconds",
				Help:    "Time spent waiting to acquire the inventory gate",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"},
		),
		HoldExpiriesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "hold_expiries_total",
				Help: "Total number of holds released by expiry",
			},
		),
		SeatsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seats_total",
				Help: "Total number of seats held or booked",
			},
			[]string{"state"},
		),
		ActiveHolds: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_holds",
				Help: "Current number of active holds",
			},
		),
	}

	// レジストリに登録
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.InventoryOperationsTotal,
		m.GateWaitDuration,
		m.HoldExpiriesTotal,
		m.SeatsTotal,
		m.ActiveHolds,
	)

	return m
}

// 以下のメソッドは nil レシーバでも安全に呼べる

// ObserveOperation は在庫操作の結果を記録する
func (m *Metrics) ObserveOperation(operation, result string) {
	if m == nil {
		return
	}
	m.InventoryOperationsTotal.WithLabelValues(operation, result).Inc()
}

// ObserveGateWait はゲート待ち時間を記録する
func (m *Metrics) ObserveGateWait(operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.GateWaitDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// AddExpiries は期限切れ件数を加算する
func (m *Metrics) AddExpiries(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.HoldExpiriesTotal.Add(float64(n))
}

// AddSeats は状態別の座席数を加算する
func (m *Metrics) AddSeats(state string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SeatsTotal.WithLabelValues(state).Add(float64(n))
}

// SetActiveHolds は有効な仮押さえ数を設定する
func (m *Metrics) SetActiveHolds(n int64) {
	if m == nil {
		return
	}
	m.ActiveHolds.Set(float64(n))
}

// デフォルトのメトリクスインスタンス
var defaultMetrics *Metrics

// Init はデフォルトのメトリクスインスタンスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

// Get はデフォルトのメトリクスインスタンスを返す
func Get() *Metrics {
	return defaultMetrics
}
