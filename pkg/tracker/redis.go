// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package tracker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// KeyPrefix is the prefix for execution record hashes.
	KeyPrefix = "conditional_action:exec:"
	// IndexPrefix is the prefix for the per-rule set of record keys.
	IndexPrefix = "conditional_action:players:"
)

// Records carry no TTL; they live until the rule is removed.
var reserveScript = redis.NewScript(`
local count = tonumber(redis.call('HGET', KEYS[1], 'count') or '0')
local last = tonumber(redis.call('HGET', KEYS[1], 'last') or '0')
local pending = tonumber(redis.call('HGET', KEYS[1], 'pending') or '0')
local pendingAt = tonumber(redis.call('HGET', KEYS[1], 'pending_at') or '0')
local now = tonumber(ARGV[1])
local cooldown = tonumber(ARGV[2])
local max = tonumber(ARGV[3])
local lease = tonumber(ARGV[4])

if pending > 0 and now - pendingAt >= lease then
  pending = 0
  pendingAt = 0
end
if max > 0 and count + pending >= max then
  return 0
end
if cooldown > 0 then
  if last > 0 and now - last < cooldown then
    return 0
  end
  if pending > 0 and now - pendingAt < cooldown then
    return 0
  end
end

redis.call('HSET', KEYS[1], 'pending', tostring(pending + 1))
if now > pendingAt then
  redis.call('HSET', KEYS[1], 'pending_at', ARGV[1])
end
redis.call('SADD', KEYS[2], KEYS[1])
return 1
`)

var recordScript = redis.NewScript(`
local last = tonumber(redis.call('HGET', KEYS[1], 'last') or '0')
local pending = tonumber(redis.call('HGET', KEYS[1], 'pending') or '0')
local now = tonumber(ARGV[1])

redis.call('HINCRBY', KEYS[1], 'count', 1)
if now > last then
  redis.call('HSET', KEYS[1], 'last', ARGV[1])
end
if pending > 1 then
  redis.call('HSET', KEYS[1], 'pending', tostring(pending - 1))
else
  redis.call('HDEL', KEYS[1], 'pending', 'pending_at')
end
redis.call('SADD', KEYS[2], KEYS[1])
return 1
`)

// RedisTracker keeps records in redis hashes. Check-and-reserve runs as a
// Lua script, so it is atomic per key across every replica.
type RedisTracker struct {
	client *redis.Client
	lease  time.Duration
}

// RedisTrackerConfig configures a RedisTracker.
type RedisTrackerConfig struct {
	Lease time.Duration
}

// NewRedisTracker creates a redis-backed tracker.
func NewRedisTracker(client *redis.Client, cfg RedisTrackerConfig) *RedisTracker {
	if cfg.Lease <= 0 {
		cfg.Lease = DefaultLease
	}
	return &RedisTracker{client: client, lease: cfg.Lease}
}

func makeKey(key Key) string {
	return fmt.Sprintf("%s%s:%s", KeyPrefix, key.RuleID, key.PlayerID)
}

func makeIndexKey(ruleID string) string {
	return IndexPrefix + ruleID
}

func millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func (t *RedisTracker) MayExecute(ctx context.Context, key Key, limits Limits, now time.Time) (bool, error) {
	rec, _, err := t.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return Eligible(Settle(rec, now, t.lease), limits, now), nil
}

func (t *RedisTracker) Reserve(ctx context.Context, key Key, limits Limits, now time.Time) (bool, error) {
	res, err := reserveScript.Run(ctx, t.client,
		[]string{makeKey(key), makeIndexKey(key.RuleID)},
		millis(now),
		limits.Cooldown.Milliseconds(),
		limits.MaxExecutions,
		t.lease.Milliseconds(),
	).Int()
	if err != nil {
		logrus.Errorf("failed to reserve execution for rule %s player %s: %v", key.RuleID, key.PlayerID, err)
		return false, fmt.Errorf("failed to reserve execution: %w", err)
	}
	return res == 1, nil
}

func (t *RedisTracker) RecordExecution(ctx context.Context, key Key, now time.Time) error {
	err := recordScript.Run(ctx, t.client,
		[]string{makeKey(key), makeIndexKey(key.RuleID)},
		millis(now),
	).Err()
	if err != nil {
		logrus.Errorf("failed to record execution for rule %s player %s: %v", key.RuleID, key.PlayerID, err)
		return fmt.Errorf("failed to record execution: %w", err)
	}
	return nil
}

func (t *RedisTracker) Get(ctx context.Context, key Key) (Record, bool, error) {
	fields, err := t.client.HGetAll(ctx, makeKey(key)).Result()
	if err != nil {
		return Record{}, false, fmt.Errorf("failed to get execution record: %w", err)
	}
	if len(fields) == 0 {
		return Record{}, false, nil
	}

	rec := Record{
		ExecutionCount: atoi(fields["count"]),
		Pending:        atoi(fields["pending"]),
		LastExecutedAt: fromMillis(fields["last"]),
		PendingAt:      fromMillis(fields["pending_at"]),
	}
	return rec, true, nil
}

func (t *RedisTracker) Forget(ctx context.Context, ruleID string) error {
	index := makeIndexKey(ruleID)
	keys, err := t.client.SMembers(ctx, index).Result()
	if err != nil {
		return fmt.Errorf("failed to list execution records: %w", err)
	}

	keys = append(keys, index)
	if err := t.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete execution records: %w", err)
	}

	logrus.Infof("forgot %d execution record(s) of rule %s", len(keys)-1, ruleID)
	return nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func fromMillis(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
