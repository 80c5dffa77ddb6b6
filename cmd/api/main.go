package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-seat-hold-inventory/internal/api"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/api/handler"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/api/middleware"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/application"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/config"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/infrastructure/memory"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/infrastructure/redis"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/pkg/logger"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/pkg/metrics"
	"github.com/sanosuguru/go-seat-hold-inventory/internal/worker"
)

func main() {
	cfg := config.Load()

	// ロガー初期化
	logger.Set(logger.NewLogger(cfg.AppEnv))
	defer logger.Sync()

	m := metrics.Init()

	opts := []application.InventoryServiceOption{
		application.WithHoldTimeout(cfg.Inventory.HoldTimeout),
		application.WithMetrics(m),
	}

	// 座席状況のミラー（任意）
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("Redis接続に失敗しました", zap.String("addr", cfg.Redis.Addr()), zap.Error(err))
		}
		defer client.Close()
		opts = append(opts, application.WithAvailabilityPublisher(redis.NewAvailabilityMirror(client, cfg.Redis.MirrorTTL)))
		logger.Info("座席状況のミラーを有効化", zap.String("addr", cfg.Redis.Addr()))
	}

	svc := application.NewInventoryService(memory.NewStore(), opts...)

	// Echo インスタンス作成
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// ミドルウェア設定
	middleware.SetupMiddleware(e)
	e.Use(middleware.PrometheusMiddleware(m))

	handler.RegisterRoutes(e, svc)
	e.GET("/metrics/prometheus", echo.WrapHandler(promhttp.Handler()), middleware.MetricsBasicAuth(cfg.Metrics))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 期限切れ仮押さえの定期解放（任意）
	var sweeper *worker.ExpiredHoldSweeper
	if cfg.Inventory.SweepInterval > 0 {
		sweeper = worker.NewExpiredHoldSweeper(svc, cfg.Inventory.SweepInterval)
		go sweeper.Start(ctx)
	}

	// サーバー起動
	go func() {
		logger.Info("サーバーを起動します",
			zap.String("port", cfg.Server.Port),
			zap.Duration("hold_timeout", svc.HoldTimeout()),
		)
		if err := e.Start(fmt.Sprintf(":%s", cfg.Server.Port)); err != nil && err != http.ErrServerClosed {
			logger.Error("サーバー起動エラー", zap.Error(err))
			os.Exit(1)
		}
	}()

	// シグナル待機
	<-ctx.Done()

	logger.Info("サーバーをシャットダウンしています...")

	if sweeper != nil {
		sweeper.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
