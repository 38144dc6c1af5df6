// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-conditional-actions/internal/config"
	"github.com/AccelByte/extend-conditional-actions/pkg/pipeline"
	"github.com/AccelByte/extend-conditional-actions/pkg/ruleset"
	"github.com/AccelByte/extend-conditional-actions/pkg/service"
	"github.com/AccelByte/extend-conditional-actions/pkg/service/mock"
	"github.com/AccelByte/extend-conditional-actions/pkg/tracker"
)

func TestInitActionExecutor(t *testing.T) {
	deps := service.NewDependencies().
		WithGameServer(mock.NewGameServer()).
		WithWebhook(&mock.Webhook{})

	executor, registry, broadcasts, err := InitActionExecutor(deps)
	require.NoError(t, err)
	defer broadcasts.Stop()

	assert.NotNil(t, executor)
	assert.Empty(t, registry.Missing())
}

func TestInitActionExecutor_RequiresGameServer(t *testing.T) {
	_, _, _, err := InitActionExecutor(service.NewDependencies())
	assert.Error(t, err)
}

func TestInitSignalProcessor(t *testing.T) {
	processor := InitSignalProcessor(mock.NewFactProvider())
	assert.Equal(t, 8, processor.GetMapperRegistry().Count())
}

func TestWiringValidates(t *testing.T) {
	deps := service.NewDependencies().WithGameServer(mock.NewGameServer())
	_, registry, broadcasts, err := InitActionExecutor(deps)
	require.NoError(t, err)
	defer broadcasts.Stop()

	processor := InitSignalProcessor(service.NoopFactProvider{})
	assert.NoError(t, pipeline.ValidateWiring(registry, processor.GetMapperRegistry()))
}

func TestInitStores(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, tr, err := InitStores(config.BackendMemory, nil)
		require.NoError(t, err)
		assert.IsType(t, &ruleset.MemoryStore{}, store)
		assert.IsType(t, &tracker.MemoryTracker{}, tr)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()

		store, tr, err := InitStores(config.BackendRedis, client)
		require.NoError(t, err)
		assert.IsType(t, &tracker.RedisTracker{}, tr)

		_, err = store.Load(context.Background())
		assert.ErrorIs(t, err, ruleset.ErrNotFound)
	})

	t.Run("redis without client", func(t *testing.T) {
		_, _, err := InitStores(config.BackendRedis, nil)
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, _, err := InitStores("etcd", nil)
		assert.Error(t, err)
	})
}
