// Package config provides application configuration management using Viper.
// Configuration is loaded from YAML files and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	YouTube  YouTubeConfig  `mapstructure:"youtube"`
	Curation CurationConfig `mapstructure:"curation"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Refresh  RefreshConfig  `mapstructure:"refresh"`
	Cron     CronConfig     `mapstructure:"cron"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name  string `mapstructure:"name"`
	Env   string `mapstructure:"env"` // development, staging, production
	Port  int    `mapstructure:"port"`
	Debug bool   `mapstructure:"debug"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Name         string        `mapstructure:"name"`
	User         string        `mapstructure:"user"`
	Password     string        `mapstructure:"password"`
	SSLMode      string        `mapstructure:"ssl_mode"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	MaxLifetime  time.Duration `mapstructure:"max_lifetime"`
}

// YouTubeConfig holds Data API client settings.
type YouTubeConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Region   string        `mapstructure:"region"`
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Retry    RetryConfig   `mapstructure:"retry"`
	CB       CBConfig      `mapstructure:"circuit_breaker"`
}

// RetryConfig holds retry settings.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	WaitTime    time.Duration `mapstructure:"wait_time"`
	MaxWaitTime time.Duration `mapstructure:"max_wait_time"`
}

// CBConfig holds circuit breaker settings.
type CBConfig struct {
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
}

// CurationConfig holds the curation pipeline settings.
type CurationConfig struct {
	SearchQuery       string        `mapstructure:"search_query"`
	SearchMaxResults  int           `mapstructure:"search_max_results"`
	MinDurationSec    int           `mapstructure:"min_duration_sec"`
	MaxDurationSec    int           `mapstructure:"max_duration_sec"`
	MaxVideosPerLevel int           `mapstructure:"max_videos_per_level"`
	LockTTL           time.Duration `mapstructure:"lock_ttl"`
}

// ScoringConfig holds the ranking weights.
type ScoringConfig struct {
	ViewWeight     float64 `mapstructure:"view_weight"`
	AgeWeight      float64 `mapstructure:"age_weight"`
	AgeDecayPerDay float64 `mapstructure:"age_decay_per_day"`
}

// RefreshConfig holds background refresh scheduler settings.
type RefreshConfig struct {
	Interval  time.Duration `mapstructure:"interval"`
	OnStartup bool          `mapstructure:"on_startup"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// CronConfig holds the trigger endpoint settings.
type CronConfig struct {
	Secret string `mapstructure:"secret"` // shared bearer secret
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, file path
}

// SentryConfig holds Sentry error tracking settings.
type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig holds caching settings for level listings.
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	VideosTTL time.Duration `mapstructure:"videos_ttl"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

// Load reads configuration from file and environment variables.
// Priority: env vars > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Config file not found, continue with defaults + env vars
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "quickfit")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.debug", true)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "quickfit")
	v.SetDefault("database.user", "app")
	v.SetDefault("database.password", "secret")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_lifetime", "5m")

	// YouTube defaults
	v.SetDefault("youtube.api_key", "")
	v.SetDefault("youtube.base_url", "https://www.googleapis.com/youtube/v3")
	v.SetDefault("youtube.region", "JP")
	v.SetDefault("youtube.language", "ja")
	v.SetDefault("youtube.timeout", "10s")
	v.SetDefault("youtube.retry.max_attempts", 3)
	v.SetDefault("youtube.retry.wait_time", "1s")
	v.SetDefault("youtube.retry.max_wait_time", "5s")
	v.SetDefault("youtube.circuit_breaker.max_requests", 3)
	v.SetDefault("youtube.circuit_breaker.interval", "60s")
	v.SetDefault("youtube.circuit_breaker.timeout", "30s")
	v.SetDefault("youtube.circuit_breaker.failure_ratio", 0.5)

	// Curation defaults
	v.SetDefault("curation.search_query", "サーキットトレーニング 自重 OR 自重トレーニング OR 器具なし OR 自宅トレーニング")
	v.SetDefault("curation.search_max_results", 50)
	v.SetDefault("curation.min_duration_sec", 300)
	v.SetDefault("curation.max_duration_sec", 1200)
	v.SetDefault("curation.max_videos_per_level", 50)
	v.SetDefault("curation.lock_ttl", "10m")

	// Scoring defaults
	v.SetDefault("scoring.view_weight", 0.1)
	v.SetDefault("scoring.age_weight", 1000)
	v.SetDefault("scoring.age_decay_per_day", 1)

	// Refresh defaults
	v.SetDefault("refresh.interval", "24h")
	v.SetDefault("refresh.on_startup", false)
	v.SetDefault("refresh.timeout", "5m")

	// Cron defaults
	v.SetDefault("cron.secret", "")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stdout")

	// Sentry defaults
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.sample_rate", 1.0)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.videos_ttl", "10m")
	v.SetDefault("cache.key_prefix", "quickfit")
}
