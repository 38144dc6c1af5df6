// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package tracker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cespare/xxhash/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func trackers(t *testing.T) map[string]Tracker {
	client, mr := setupTestRedis(t)
	t.Cleanup(mr.Close)

	return map[string]Tracker{
		"memory": NewMemoryTracker(MemoryTrackerConfig{Shards: 4}),
		"redis":  NewRedisTracker(client, RedisTrackerConfig{}),
	}
}

// fire reserves and records like the engine does.
func fire(t *testing.T, tr Tracker, key Key, limits Limits, now time.Time) bool {
	t.Helper()
	ctx := context.Background()
	ok, err := tr.Reserve(ctx, key, limits, now)
	require.NoError(t, err)
	if ok {
		require.NoError(t, tr.RecordExecution(ctx, key, now))
	}
	return ok
}

func TestTracker_Cooldown(t *testing.T) {
	t0 := time.Unix(1_700_000_000, 0)
	key := Key{RuleID: "r1", PlayerID: "p1"}
	limits := Limits{Cooldown: 60 * time.Second}

	for name, tr := range trackers(t) {
		t.Run(name, func(t *testing.T) {
			assert.True(t, fire(t, tr, key, limits, t0))
			assert.False(t, fire(t, tr, key, limits, t0.Add(30*time.Second)))
			assert.False(t, fire(t, tr, key, limits, t0.Add(59999*time.Millisecond)))
			assert.True(t, fire(t, tr, key, limits, t0.Add(60*time.Second)))

			// other players are not affected
			assert.True(t, fire(t, tr, Key{RuleID: "r1", PlayerID: "p2"}, limits, t0.Add(61*time.Second)))
		})
	}
}

func TestTracker_MaxExecutions(t *testing.T) {
	t0 := time.Unix(1_700_000_000, 0)
	key := Key{RuleID: "r1", PlayerID: "p1"}
	limits := Limits{MaxExecutions: 2}

	for name, tr := range trackers(t) {
		t.Run(name, func(t *testing.T) {
			assert.True(t, fire(t, tr, key, limits, t0))
			assert.True(t, fire(t, tr, key, limits, t0.Add(time.Second)))
			assert.False(t, fire(t, tr, key, limits, t0.Add(24*time.Hour)))

			rec, ok, err := tr.Get(context.Background(), key)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, 2, rec.ExecutionCount)
			assert.Equal(t, 0, rec.Pending)
			assert.Equal(t, t0.Add(time.Second).UnixMilli(), rec.LastExecutedAt.UnixMilli())
		})
	}
}

func TestTracker_MayExecuteDoesNotReserve(t *testing.T) {
	t0 := time.Unix(1_700_000_000, 0)
	key := Key{RuleID: "r1", PlayerID: "p1"}
	limits := Limits{MaxExecutions: 1}
	ctx := context.Background()

	for name, tr := range trackers(t) {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				ok, err := tr.MayExecute(ctx, key, limits, t0)
				require.NoError(t, err)
				assert.True(t, ok)
			}
			_, exists, err := tr.Get(ctx, key)
			require.NoError(t, err)
			assert.False(t, exists)

			assert.True(t, fire(t, tr, key, limits, t0))
			ok, err := tr.MayExecute(ctx, key, limits, t0)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestTracker_PendingReservationGates(t *testing.T) {
	t0 := time.Unix(1_700_000_000, 0)
	key := Key{RuleID: "r1", PlayerID: "p1"}
	limits := Limits{MaxExecutions: 1}
	ctx := context.Background()

	for name, tr := range trackers(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := tr.Reserve(ctx, key, limits, t0)
			require.NoError(t, err)
			require.True(t, ok)

			// dispatch still in flight
			ok, err = tr.Reserve(ctx, key, limits, t0)
			require.NoError(t, err)
			assert.False(t, ok)

			// an abandoned reservation is dropped after the lease
			ok, err = tr.Reserve(ctx, key, limits, t0.Add(DefaultLease))
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestTracker_Forget(t *testing.T) {
	t0 := time.Unix(1_700_000_000, 0)
	ctx := context.Background()

	for name, tr := range trackers(t) {
		t.Run(name, func(t *testing.T) {
			for _, p := range []string{"p1", "p2", "p3"} {
				require.True(t, fire(t, tr, Key{RuleID: "gone", PlayerID: p}, Limits{}, t0))
			}
			require.True(t, fire(t, tr, Key{RuleID: "kept", PlayerID: "p1"}, Limits{}, t0))

			require.NoError(t, tr.Forget(ctx, "gone"))

			for _, p := range []string{"p1", "p2", "p3"} {
				_, ok, err := tr.Get(ctx, Key{RuleID: "gone", PlayerID: p})
				require.NoError(t, err)
				assert.False(t, ok)
			}
			_, ok, err := tr.Get(ctx, Key{RuleID: "kept", PlayerID: "p1"})
			require.NoError(t, err)
			assert.True(t, ok)

			// forgetting an unknown rule is fine
			assert.NoError(t, tr.Forget(ctx, "never-existed"))
		})
	}
}

func TestTracker_ConcurrentCap(t *testing.T) {
	t0 := time.Unix(1_700_000_000, 0)
	key := Key{RuleID: "r1", PlayerID: "p1"}
	limits := Limits{MaxExecutions: 3}
	ctx := context.Background()

	for name, tr := range trackers(t) {
		t.Run(name, func(t *testing.T) {
			var granted atomic.Int32
			var wg sync.WaitGroup
			for i := 0; i < 32; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					ok, err := tr.Reserve(ctx, key, limits, t0)
					if err != nil {
						t.Errorf("Reserve() error = %v", err)
						return
					}
					if ok {
						granted.Add(1)
						if err := tr.RecordExecution(ctx, key, t0); err != nil {
							t.Errorf("RecordExecution() error = %v", err)
						}
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, int32(3), granted.Load())
			rec, _, err := tr.Get(ctx, key)
			require.NoError(t, err)
			assert.Equal(t, 3, rec.ExecutionCount)
		})
	}
}

func TestMemoryTracker_StripesKeys(t *testing.T) {
	tr := NewMemoryTracker(MemoryTrackerConfig{})
	assert.Len(t, tr.shards, defaultShards)

	t0 := time.Unix(1_700_000_000, 0)
	for i := 0; i < 100; i++ {
		fire(t, tr, Key{RuleID: "r", PlayerID: string(rune('a' + i%26)) + string(rune('0'+i/26))}, Limits{}, t0)
	}
	assert.Equal(t, 100, tr.Len())

	used := 0
	for _, s := range tr.shards {
		if len(s.records) > 0 {
			used++
		}
	}
	assert.Greater(t, used, 1)
}

func TestMemoryTracker_ShardIndex(t *testing.T) {
	tr := NewMemoryTracker(MemoryTrackerConfig{Shards: 8})
	key := Key{RuleID: "welcome", PlayerID: "76561198000000001"}

	want := int(xxhash.Sum64String("welcome\x0076561198000000001") % 8)
	assert.Equal(t, want, shardIndex(key, 8))
	assert.Same(t, tr.shards[want], tr.shardFor(key))
	assert.Same(t, tr.shardFor(key), tr.shardFor(Key{RuleID: "welcome", PlayerID: "76561198000000001"}))

	for i := 0; i < 1000; i++ {
		idx := shardIndex(Key{RuleID: "r", PlayerID: string(rune('a' + i%26)) + string(rune('0'+i/26))}, 8)
		assert.True(t, idx >= 0 && idx < 8)
	}
}

func TestRedisTracker_KeyLayout(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	tr := NewRedisTracker(client, RedisTrackerConfig{})
	t0 := time.Unix(1_700_000_000, 0)
	require.True(t, fire(t, tr, Key{RuleID: "r1", PlayerID: "765"}, Limits{}, t0))

	hash := KeyPrefix + "r1:765"
	assert.True(t, mr.Exists(hash))
	assert.Zero(t, mr.TTL(hash))
	assert.Equal(t, "1", mr.HGet(hash, "count"))
	assert.Equal(t, "1700000000000", mr.HGet(hash, "last"))

	members, err := mr.Members(IndexPrefix + "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{hash}, members)
}
