// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ruleset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// ConfigKey is the redis key holding the rule set document.
const ConfigKey = "conditional_actions:config"

// Store persists the rule set as one document.
type Store interface {
	// Load returns ErrNotFound when nothing has been saved yet.
	Load(ctx context.Context) (*RuleSet, error)
	// Save replaces the stored document as a whole.
	Save(ctx context.Context, rs *RuleSet) error
}

// RedisStore keeps the rule set in a single redis string.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a store under ConfigKey.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, key: ConfigKey}
}

func (s *RedisStore) Load(ctx context.Context) (*RuleSet, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		logrus.Errorf("failed to get rule set: %v", err)
		return nil, fmt.Errorf("failed to get rule set: %w", err)
	}

	rs, err := Parse(data)
	if err != nil {
		logrus.Errorf("stored rule set is invalid: %v", err)
		return nil, err
	}

	logrus.Debugf("loaded rule set with %d rules from redis", len(rs.Rules))
	return rs, nil
}

func (s *RedisStore) Save(ctx context.Context, rs *RuleSet) error {
	data, err := json.Marshal(rs)
	if err != nil {
		return fmt.Errorf("failed to marshal rule set: %w", err)
	}

	// A single SET replaces the document atomically; no expiry.
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		logrus.Errorf("failed to save rule set: %v", err)
		return fmt.Errorf("failed to save rule set: %w", err)
	}

	logrus.Infof("saved rule set with %d rules to redis", len(rs.Rules))
	return nil
}

// MemoryStore keeps the encoded document in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*RuleSet, error) {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()

	if data == nil {
		return nil, ErrNotFound
	}
	return Parse(data)
}

func (s *MemoryStore) Save(ctx context.Context, rs *RuleSet) error {
	data, err := json.Marshal(rs)
	if err != nil {
		return fmt.Errorf("failed to marshal rule set: %w", err)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}
