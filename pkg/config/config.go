package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "stockalert"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv         = "STOCKALERT_APP_ENV"
	EnvPort           = "STOCKALERT_APP_PORT"
	EnvDBPath         = "STOCKALERT_DB_PATH"
	EnvLowStockLevel  = "STOCKALERT_LOW_STOCK_THRESHOLD"
	EnvAlertCooldown  = "STOCKALERT_ALERT_COOLDOWN"
	EnvWatchInterval  = "STOCKALERT_WATCH_INTERVAL"
	EnvAutoMigrate    = "STOCKALERT_AUTO_MIGRATE"
	EnvAllowedOrigins = "STOCKALERT_UI_ORIGINS"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Alerts       AlertsConfig
	Watch        WatchConfig
	UI           UIConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Alerts.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOCKALERT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOCKALERT_APP_PORT" default:"8477"`
	LogLevel     string `envconfig:"STOCKALERT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKALERT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	// Path is the on-disk SQLite file backing the transaction log. The
	// default keeps everything inside the working directory so the app
	// stays usable with no setup and no network.
	Path            string        `envconfig:"STOCKALERT_DB_PATH" default:"stockalert.db"`
	BusyTimeout     time.Duration `envconfig:"STOCKALERT_DB_BUSY_TIMEOUT" default:"5s"`
	MaxOpenConns    int           `envconfig:"STOCKALERT_DB_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"STOCKALERT_DB_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKALERT_DB_CONN_MAX_LIFETIME" default:"0"`
}

type AlertsConfig struct {
	// LowStockThreshold is the global default; products may carry their own.
	LowStockThreshold int           `envconfig:"STOCKALERT_LOW_STOCK_THRESHOLD" default:"5"`
	Cooldown          time.Duration `envconfig:"STOCKALERT_ALERT_COOLDOWN" default:"6h"`
	MaxNamedProducts  int           `envconfig:"STOCKALERT_ALERT_MAX_NAMED" default:"3"`
}

func (a AlertsConfig) validate() error {
	if a.LowStockThreshold < 0 {
		return fmt.Errorf("%s must not be negative", EnvLowStockLevel)
	}
	if a.MaxNamedProducts < 1 {
		return fmt.Errorf("STOCKALERT_ALERT_MAX_NAMED must be at least 1")
	}
	return nil
}

type WatchConfig struct {
	Interval time.Duration `envconfig:"STOCKALERT_WATCH_INTERVAL" default:"1m"`
}

type UIConfig struct {
	// Origins the local UI shell is served from.
	AllowedOrigins []string `envconfig:"STOCKALERT_UI_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOCKALERT_AUTO_MIGRATE" default:"true"`
}
