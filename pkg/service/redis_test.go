// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func TestRedisService_Check(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	svc := NewRedisService(client, RedisServiceConfig{})

	if !svc.IsHealthy(context.Background()) {
		t.Error("IsHealthy() = false, expected true")
	}

	mr.Close()
	if err := svc.Check(context.Background()); err == nil {
		t.Error("Check() error = nil after redis stopped")
	}
}
