// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package engine

import (
	"errors"
	"fmt"

	"github.com/AccelByte/extend-conditional-actions/pkg/action"
)

var (
	// ErrMissingPlayerContext is returned when a player-scoped trigger
	// arrives without a player in its snapshot.
	ErrMissingPlayerContext = action.ErrMissingPlayerContext

	// ErrTrackerUnavailable wraps execution tracker failures. The rule is
	// skipped rather than dispatched ungated.
	ErrTrackerUnavailable = errors.New("execution tracker unavailable")
)

// EvaluationError is a failure scoped to one rule of one event. Other rules
// of the same event are still evaluated.
type EvaluationError struct {
	RuleID string
	Err    error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("rule %s: %v", e.RuleID, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

// ExecutorError reports that a batch as a whole could not be dispatched.
// The attempt is still recorded against the rule's limits.
type ExecutorError struct {
	RuleID  string
	BatchID string
	Err     error
}

func (e *ExecutorError) Error() string {
	return fmt.Sprintf("rule %s: dispatch of batch %s failed: %v", e.RuleID, e.BatchID, e.Err)
}

func (e *ExecutorError) Unwrap() error { return e.Err }
