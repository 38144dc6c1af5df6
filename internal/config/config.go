// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Store backends.
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
//
// ============================================================
// DEVELOPER: Add new configuration fields here.
// ============================================================
// Use struct tags to define:
// - `env:"VAR_NAME"` - the environment variable name
// - `env:",required"` - make it required
// - `envDefault:"value"` - set a default value
//
// After adding fields here, update loader.go Validate() if custom
// validation is needed.
// ============================================================
type Config struct {
	// ============================================================
	// Server configuration
	// ============================================================
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8000"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"ExtendConditionalActions"`

	// ============================================================
	// Logging configuration
	// ============================================================
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// ============================================================
	// Redis configuration
	// ============================================================
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`

	// ============================================================
	// Rule set configuration
	// ============================================================
	// StoreBackend selects where the rule set and execution records live.
	StoreBackend           string        `env:"STORE_BACKEND" envDefault:"redis"`
	RulesetSeedPath        string        `env:"RULESET_SEED_PATH"`
	RulesetRefreshInterval time.Duration `env:"RULESET_REFRESH_INTERVAL" envDefault:"10s"`
	ExecutorTimeout        time.Duration `env:"EXECUTOR_TIMEOUT" envDefault:"5s"`
	SchedulerTickInterval  time.Duration `env:"SCHEDULER_TICK_INTERVAL" envDefault:"10s"`

	// ============================================================
	// Game server configuration
	// ============================================================
	// An empty GameAPIURL runs against a no-op game server that only logs.
	GameAPIURL     string        `env:"GAME_API_URL"`
	GameAPIToken   string        `env:"GAME_API_TOKEN"`
	GameAPITimeout time.Duration `env:"GAME_API_TIMEOUT" envDefault:"5s"`

	DiscordWebhookTimeout time.Duration `env:"DISCORD_WEBHOOK_TIMEOUT" envDefault:"5s"`
	DiscordWebhookRetries uint64        `env:"DISCORD_WEBHOOK_RETRIES" envDefault:"3"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled    bool   `env:"OTEL_ENABLED" envDefault:"false"`
	ZipkinEndpoint string `env:"ZIPKIN_ENDPOINT"`
}

// RedisAddr returns the host:port of the redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// RedisRetryDelay returns the initial delay between connection attempts.
func (c *Config) RedisRetryDelay() time.Duration {
	return time.Duration(c.RedisRetryDelayMs) * time.Millisecond
}
