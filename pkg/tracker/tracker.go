// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package tracker keeps per (rule, player) execution accounting and
// enforces cooldowns and execution caps.
package tracker

import (
	"context"
	"time"
)

// DefaultLease bounds how long a reservation may stay uncommitted before
// it is treated as abandoned.
const DefaultLease = 2 * time.Minute

// Key identifies one execution record.
type Key struct {
	RuleID   string
	PlayerID string
}

// Limits are the gating parameters of a rule.
type Limits struct {
	Cooldown      time.Duration
	MaxExecutions int
}

// Record is the accounting state of one key. Pending counts reservations
// whose dispatch has not been recorded yet.
type Record struct {
	LastExecutedAt time.Time
	ExecutionCount int
	Pending        int
	PendingAt      time.Time
}

// Tracker gates rule executions. Reserve and RecordExecution bracket a
// dispatch: eligibility is decided and a slot taken in one critical
// section per key, the dispatch runs unlocked, then the attempt is
// recorded.
type Tracker interface {
	// MayExecute reports eligibility without reserving anything.
	MayExecute(ctx context.Context, key Key, limits Limits, now time.Time) (bool, error)
	// Reserve atomically checks eligibility and takes a pending slot.
	Reserve(ctx context.Context, key Key, limits Limits, now time.Time) (bool, error)
	// RecordExecution counts an attempted execution and releases one
	// pending slot if any.
	RecordExecution(ctx context.Context, key Key, now time.Time) error
	// Get returns the record for key, if one exists.
	Get(ctx context.Context, key Key) (Record, bool, error)
	// Forget drops every record of a rule.
	Forget(ctx context.Context, ruleID string) error
}
