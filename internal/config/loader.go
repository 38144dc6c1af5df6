// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	// In production (Docker/K8s), environment variables are injected directly
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration.
//
// ============================================================
// DEVELOPER: Add custom validation logic here.
// ============================================================
// This function is called after environment variables are parsed.
// ============================================================
func (c *Config) Validate() error {
	// Validate server ports
	for name, port := range map[string]int{
		"GRPC_PORT":    c.GRPCPort,
		"HTTP_PORT":    c.HTTPPort,
		"METRICS_PORT": c.MetricsPort,
	} {
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid %s: %d (must be 1-65535)", name, port)
		}
	}
	if c.GRPCPort == c.HTTPPort || c.GRPCPort == c.MetricsPort || c.HTTPPort == c.MetricsPort {
		return fmt.Errorf("GRPC_PORT, HTTP_PORT and METRICS_PORT must differ")
	}

	switch c.StoreBackend {
	case BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("invalid STORE_BACKEND: %q (must be %s or %s)", c.StoreBackend, BackendRedis, BackendMemory)
	}

	if c.RulesetRefreshInterval <= 0 {
		return fmt.Errorf("RULESET_REFRESH_INTERVAL must be positive")
	}
	if c.SchedulerTickInterval <= 0 {
		return fmt.Errorf("SCHEDULER_TICK_INTERVAL must be positive")
	}
	if c.ExecutorTimeout <= 0 {
		return fmt.Errorf("EXECUTOR_TIMEOUT must be positive")
	}
	if c.GameAPITimeout <= 0 {
		return fmt.Errorf("GAME_API_TIMEOUT must be positive")
	}
	if c.DiscordWebhookTimeout <= 0 {
		return fmt.Errorf("DISCORD_WEBHOOK_TIMEOUT must be positive")
	}
	if c.RedisMaxRetries < 0 {
		return fmt.Errorf("REDIS_MAX_RETRIES must not be negative")
	}

	return nil
}
