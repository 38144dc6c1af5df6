// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

const defaultShards = 64

type shard struct {
	mu      sync.Mutex
	records map[Key]Record
}

// MemoryTracker keeps records in process memory. Keys are striped over
// independently locked shards, so unrelated rules and players do not
// contend on one lock.
type MemoryTracker struct {
	shards []*shard
	lease  time.Duration
}

// MemoryTrackerConfig configures a MemoryTracker.
type MemoryTrackerConfig struct {
	Shards int
	Lease  time.Duration
}

// NewMemoryTracker creates an in-memory tracker.
func NewMemoryTracker(cfg MemoryTrackerConfig) *MemoryTracker {
	if cfg.Shards <= 0 {
		cfg.Shards = defaultShards
	}
	if cfg.Lease <= 0 {
		cfg.Lease = DefaultLease
	}

	t := &MemoryTracker{shards: make([]*shard, cfg.Shards), lease: cfg.Lease}
	for i := range t.shards {
		t.shards[i] = &shard{records: make(map[Key]Record)}
	}
	return t
}

func (t *MemoryTracker) shardFor(key Key) *shard {
	return t.shards[shardIndex(key, len(t.shards))]
}

func shardIndex(key Key, n int) int {
	return int(xxhash.Sum64String(key.RuleID+"\x00"+key.PlayerID) % uint64(n))
}

func (t *MemoryTracker) MayExecute(ctx context.Context, key Key, limits Limits, now time.Time) (bool, error) {
	s := t.shardFor(key)
	s.mu.Lock()
	rec := s.records[key]
	s.mu.Unlock()

	return Eligible(Settle(rec, now, t.lease), limits, now), nil
}

func (t *MemoryTracker) Reserve(ctx context.Context, key Key, limits Limits, now time.Time) (bool, error) {
	s := t.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Settle(s.records[key], now, t.lease)
	if !Eligible(rec, limits, now) {
		return false, nil
	}
	s.records[key] = Reserved(rec, now)
	return true, nil
}

func (t *MemoryTracker) RecordExecution(ctx context.Context, key Key, now time.Time) error {
	s := t.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[key] = Recorded(s.records[key], now)
	return nil
}

func (t *MemoryTracker) Get(ctx context.Context, key Key) (Record, bool, error) {
	s := t.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	return rec, ok, nil
}

func (t *MemoryTracker) Forget(ctx context.Context, ruleID string) error {
	for _, s := range t.shards {
		s.mu.Lock()
		for k := range s.records {
			if k.RuleID == ruleID {
				delete(s.records, k)
			}
		}
		s.mu.Unlock()
	}
	return nil
}

// Len returns the number of records held.
func (t *MemoryTracker) Len() int {
	n := 0
	for _, s := range t.shards {
		s.mu.Lock()
		n += len(s.records)
		s.mu.Unlock()
	}
	return n
}
