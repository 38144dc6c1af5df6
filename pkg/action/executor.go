// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Batch is the ordered list of actions produced by one rule firing.
// PlayerID is empty for server scoped triggers.
type Batch struct {
	ID         string
	RuleID     string
	RuleName   string
	Trigger    string
	PlayerID   string
	PlayerName string
	Actions    []Action
}

// NewBatch creates a batch with a fresh id.
func NewBatch(ruleID, ruleName, trigger, playerID, playerName string, actions []Action) *Batch {
	return &Batch{
		ID:         uuid.NewString(),
		RuleID:     ruleID,
		RuleName:   ruleName,
		Trigger:    trigger,
		PlayerID:   playerID,
		PlayerName: playerName,
		Actions:    actions,
	}
}

// Result is the outcome of one action within a batch.
type Result struct {
	Index   int
	Type    Type
	Success bool
	Err     error
}

// BatchResult holds per-action outcomes in batch order.
type BatchResult struct {
	BatchID string
	Results []*Result
}

// Failed returns the number of failed actions.
func (r *BatchResult) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Success {
			n++
		}
	}
	return n
}

// AllSucceeded reports whether every action succeeded.
func (r *BatchResult) AllSucceeded() bool {
	return r.Failed() == 0
}

// Executor carries out action batches. Implementations report per-action
// outcomes; a returned error means the batch as a whole could not complete.
type Executor interface {
	Dispatch(ctx context.Context, batch *Batch) (*BatchResult, error)
}

// CommandExecutor runs each action of a batch through its registered
// handler, in order. A failing action does not stop later ones.
type CommandExecutor struct {
	registry *Registry
}

// NewCommandExecutor creates an executor over a handler registry.
func NewCommandExecutor(registry *Registry) *CommandExecutor {
	return &CommandExecutor{
		registry: registry,
	}
}

// Dispatch runs the batch. If ctx ends, remaining actions fail with
// ErrBatchAborted and the context error is returned.
func (e *CommandExecutor) Dispatch(ctx context.Context, batch *Batch) (*BatchResult, error) {
	out := &BatchResult{BatchID: batch.ID, Results: make([]*Result, 0, len(batch.Actions))}

	for i, a := range batch.Actions {
		res := &Result{Index: i, Type: a.Type()}
		out.Results = append(out.Results, res)

		if err := ctx.Err(); err != nil {
			res.Err = fmt.Errorf("%w: %v", ErrBatchAborted, err)
			continue
		}

		if TargetsPlayer(a.Type()) && batch.PlayerID == "" {
			res.Err = ErrMissingPlayerContext
			logrus.Errorf("[%s] action %s skipped: %v", batch.RuleName, a.Type(), res.Err)
			continue
		}

		h := e.registry.Get(a.Type())
		if h == nil {
			res.Err = fmt.Errorf("%w: %s", ErrHandlerNotFound, a.Type())
			logrus.Errorf("[%s] %v", batch.RuleName, res.Err)
			continue
		}

		logrus.Debugf("[%s] executing action %s (batch: %s, player: %s)", batch.RuleName, a.Type(), batch.ID, batch.PlayerID)

		if err := h.Handle(ctx, batch, a); err != nil {
			res.Err = err
			logrus.Errorf("[%s] failed to execute action %s: %v", batch.RuleName, a.Type(), err)
			continue
		}
		res.Success = true
	}

	return out, ctx.Err()
}
