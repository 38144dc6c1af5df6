// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RedisService provides redis health check functionality.
type RedisService struct {
	client redis.UniversalClient
	cfg    RedisServiceConfig
}

type RedisServiceConfig struct {
	PingTimeout time.Duration
}

func NewRedisService(
	client redis.UniversalClient,
	cfg RedisServiceConfig,
) *RedisService {
	if cfg.PingTimeout <= 0 {
		cfg.PingTimeout = 2 * time.Second
	}
	return &RedisService{
		client: client,
		cfg:    cfg,
	}
}

// Check performs a redis health check.
func (s *RedisService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.PingTimeout)
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		logrus.Errorf("Redis health check failed: %v", err)
		return err
	}

	logrus.Debugf("Redis health check passed")
	return nil
}

// IsHealthy returns true if redis is accessible.
func (s *RedisService) IsHealthy(ctx context.Context) bool {
	return s.Check(ctx) == nil
}
