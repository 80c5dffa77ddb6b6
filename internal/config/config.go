package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultHoldTimeoutSeconds は HOLD_TIMEOUT 未設定時の仮押さえ有効期限（秒）
const DefaultHoldTimeoutSeconds = 120

// Config はアプリケーション設定を表す
type Config struct {
	AppEnv    string
	Server    ServerConfig
	Inventory InventoryConfig
	Redis     RedisConfig
	Metrics   MetricsConfig
}

// ServerConfig はサーバー設定
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// InventoryConfig は在庫管理の設定
type InventoryConfig struct {
	HoldTimeout   time.Duration
	SweepInterval time.Duration // 0 なら定期解放は行わない
}

// RedisConfig はRedis設定
type RedisConfig struct {
	Enabled   bool
	Host      string
	Port      string
	Password  string
	DB        int
	MirrorTTL time.Duration
}

// MetricsConfig はPrometheusエンドポイントの認証設定
type MetricsConfig struct {
	User     string
	Password string
}

// Load は環境変数から設定を読み込む
func Load() *Config {
	cfg := &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Inventory: InventoryConfig{
			HoldTimeout:   holdTimeout(),
			SweepInterval: getDurationEnv("HOLD_SWEEP_INTERVAL", 0),
		},
		Redis: RedisConfig{
			Enabled:   getBoolEnv("REDIS_ENABLED", false),
			Host:      getEnv("REDIS_HOST", "localhost"),
			Port:      getEnv("REDIS_PORT", "6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getIntEnv("REDIS_DB", 0),
			MirrorTTL: getDurationEnv("AVAILABILITY_MIRROR_TTL", time.Hour),
		},
		Metrics: MetricsConfig{
			User:     getEnv("METRICS_USER", ""),
			Password: getEnv("METRICS_PASSWORD", ""),
		},
	}

	// REDIS_URL が設定されていれば個別の値より優先する
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cfg.Redis.applyURL(redisURL)
	}

	return cfg
}

// IsProduction は本番環境かを返す
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Addr はRedis接続アドレスを返す
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// applyURL は redis://[:password@]host:port[/db] 形式のURLを反映する
// パースできない場合は何も変更しない
func (c *RedisConfig) applyURL(raw string) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return
	}
	if host := u.Hostname(); host != "" {
		c.Host = host
	}
	if port := u.Port(); port != "" {
		c.Port = port
	}
	if password, ok := u.User.Password(); ok {
		c.Password = password
	}
	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			c.DB = n
		}
	}
}

// holdTimeout は HOLD_TIMEOUT（秒）を読み込む。0以下や不正値はデフォルトに戻す
func holdTimeout() time.Duration {
	seconds := getIntEnv("HOLD_TIMEOUT", DefaultHoldTimeoutSeconds)
	if seconds <= 0 {
		seconds = DefaultHoldTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// IsEnabled は認証が有効かどうかを返す
func (c *MetricsConfig) IsEnabled() bool {
	return c.User != "" && c.Password != ""
}
