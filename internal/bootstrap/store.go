// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-conditional-actions/internal/config"
	"github.com/AccelByte/extend-conditional-actions/pkg/ruleset"
	"github.com/AccelByte/extend-conditional-actions/pkg/tracker"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// InitStores creates the rule set store and the execution tracker for the
// configured backend. The redis backend shares state across replicas; the
// memory backend is for local runs and tests.
//
// ============================================================
// DEVELOPER: Add new storage backends here.
// ============================================================
// A backend needs a ruleset.Store and a tracker.Tracker. The tracker
// must reserve executions atomically if several replicas share it.
// ============================================================
func InitStores(backend string, client *redis.Client) (ruleset.Store, tracker.Tracker, error) {
	switch backend {
	case config.BackendRedis:
		if client == nil {
			return nil, nil, fmt.Errorf("redis backend requires a redis client")
		}
		logrus.Infof("using redis rule set store and execution tracker")
		return ruleset.NewRedisStore(client), tracker.NewRedisTracker(client, tracker.RedisTrackerConfig{}), nil
	case config.BackendMemory:
		logrus.Warnf("using in-memory rule set store and execution tracker, state is lost on restart")
		return ruleset.NewMemoryStore(), tracker.NewMemoryTracker(tracker.MemoryTrackerConfig{}), nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}
