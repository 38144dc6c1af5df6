// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6565, cfg.GRPCPort)
	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, 8080, cfg.MetricsPort)
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, 10*time.Second, cfg.RulesetRefreshInterval)
	assert.Equal(t, 5*time.Second, cfg.ExecutorTimeout)
	assert.Equal(t, 10*time.Second, cfg.SchedulerTickInterval)
	assert.Equal(t, uint64(3), cfg.DiscordWebhookRetries)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, time.Second, cfg.RedisRetryDelay())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("EXECUTOR_TIMEOUT", "750ms")
	t.Setenv("GAME_API_URL", "http://game:8010")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, 750*time.Millisecond, cfg.ExecutorTimeout)
	assert.Equal(t, "http://game:8010", cfg.GameAPIURL)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("RULESET_REFRESH_INTERVAL", "often")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			GRPCPort: 6565, HTTPPort: 8000, MetricsPort: 8080,
			StoreBackend:           BackendRedis,
			RulesetRefreshInterval: time.Second,
			ExecutorTimeout:        time.Second,
			SchedulerTickInterval:  time.Second,
			GameAPITimeout:         time.Second,
			DiscordWebhookTimeout:  time.Second,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"port out of range", func(c *Config) { c.HTTPPort = 70000 }},
		{"port clash", func(c *Config) { c.MetricsPort = c.GRPCPort }},
		{"unknown backend", func(c *Config) { c.StoreBackend = "etcd" }},
		{"zero refresh", func(c *Config) { c.RulesetRefreshInterval = 0 }},
		{"zero executor timeout", func(c *Config) { c.ExecutorTimeout = 0 }},
		{"zero scheduler tick", func(c *Config) { c.SchedulerTickInterval = 0 }},
		{"negative redis retries", func(c *Config) { c.RedisMaxRetries = -1 }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
