// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package engine selects the rules matching a trigger event, gates them
// through the execution tracker and dispatches their action batches.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-conditional-actions/pkg/action"
	"github.com/AccelByte/extend-conditional-actions/pkg/common"
	"github.com/AccelByte/extend-conditional-actions/pkg/condition"
	"github.com/AccelByte/extend-conditional-actions/pkg/metrics"
	"github.com/AccelByte/extend-conditional-actions/pkg/ruleset"
	"github.com/AccelByte/extend-conditional-actions/pkg/tracker"
)

// DefaultExecutorTimeout bounds a single batch dispatch.
const DefaultExecutorTimeout = 5 * time.Second

// Config configures an Engine.
type Config struct {
	ExecutorTimeout time.Duration
	// Clock defaults to time.Now.
	Clock   func() time.Time
	Metrics *metrics.Metrics
}

// Engine evaluates trigger events against the active rule set.
type Engine struct {
	rules    *ruleset.Holder
	tracker  tracker.Tracker
	executor action.Executor
	cfg      Config
}

// New creates an engine.
func New(rules *ruleset.Holder, tr tracker.Tracker, executor action.Executor, cfg Config) *Engine {
	if cfg.ExecutorTimeout <= 0 {
		cfg.ExecutorTimeout = DefaultExecutorTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Engine{
		rules:    rules,
		tracker:  tr,
		executor: executor,
		cfg:      cfg,
	}
}

// Dispatch is one batch handed to the executor for one matching rule.
type Dispatch struct {
	RuleID string
	Batch  *action.Batch
	// Result is nil when the executor returned no per-action outcomes.
	Result *action.BatchResult
	// Err is an *ExecutorError when the batch as a whole failed.
	Err error
}

// Result is the outcome of one event.
type Result struct {
	Trigger        ruleset.Trigger
	RuleSetVersion int64
	Dispatches     []*Dispatch
	Errors         []*EvaluationError
}

// Filter restricts which candidate rules an evaluation considers.
type Filter func(r *ruleset.Rule) bool

// OnEvent evaluates every enabled rule for the trigger, in declaration
// order, and dispatches one batch per rule that matches and passes gating.
func (e *Engine) OnEvent(ctx context.Context, trigger ruleset.Trigger, snap *condition.Snapshot) *Result {
	return e.OnEventFiltered(ctx, trigger, snap, nil)
}

// OnEventFiltered is OnEvent restricted to the rules accepted by filter.
func (e *Engine) OnEventFiltered(ctx context.Context, trigger ruleset.Trigger, snap *condition.Snapshot, filter Filter) *Result {
	// The event runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	scope := common.ChildScopeFromRemoteScope(ctx, "engine.OnEvent")
	defer scope.Finish()
	scope.TraceTag("trigger", string(trigger))

	// One snapshot of the rules for the whole event.
	active := e.rules.Load()
	res := &Result{Trigger: trigger, RuleSetVersion: active.Version}
	e.cfg.Metrics.RecordEvent(string(trigger))

	if !active.RuleSet.Enabled {
		scope.Log.Debugf("conditional actions disabled, ignoring %s", trigger)
		return res
	}

	if snap == nil {
		snap = condition.NewSnapshot("", "")
	}
	now := e.cfg.Clock()

	for _, rule := range active.RuleSet.Candidates(trigger) {
		if filter != nil && !filter(rule) {
			continue
		}
		d, err := e.evaluateRule(scope, trigger, rule, snap, now)
		if err != nil {
			scope.Log.Errorf("%v", err)
			scope.TraceError(err)
			e.cfg.Metrics.RecordEvaluation(rule.ID, metrics.ResultError)
			res.Errors = append(res.Errors, err)
			continue
		}
		if d != nil {
			res.Dispatches = append(res.Dispatches, d)
		}
	}

	return res
}

func (e *Engine) evaluateRule(
	scope *common.Scope,
	trigger ruleset.Trigger,
	rule *ruleset.Rule,
	snap *condition.Snapshot,
	now time.Time,
) (*Dispatch, *EvaluationError) {
	matched, err := condition.EvaluateAll(rule.LogicalOperator, rule.Conditions, snap)
	if err != nil {
		scope.Log.WithField("facts", snap.Facts()).Debugf("rule %s could not be evaluated: %v", rule.ID, err)
		return nil, &EvaluationError{RuleID: rule.ID, Err: err}
	}
	if !matched {
		scope.Log.Debugf("rule %s conditions not met", rule.ID)
		e.cfg.Metrics.RecordEvaluation(rule.ID, metrics.ResultNotMatched)
		return nil, nil
	}

	identity := ruleset.ServerIdentity
	var playerID, playerName string
	if trigger.PlayerScoped() {
		if !snap.HasPlayer() {
			return nil, &EvaluationError{RuleID: rule.ID, Err: ErrMissingPlayerContext}
		}
		identity = snap.PlayerID
		playerID, playerName = snap.PlayerID, snap.PlayerName
	}

	key := tracker.Key{RuleID: rule.ID, PlayerID: identity}
	limits := tracker.Limits{Cooldown: rule.Cooldown(), MaxExecutions: rule.MaxExecutionsPerPlayer}

	ok, err := e.tracker.Reserve(scope.Ctx, key, limits, now)
	if err != nil {
		return nil, &EvaluationError{RuleID: rule.ID, Err: fmt.Errorf("%w: %v", ErrTrackerUnavailable, err)}
	}
	if !ok {
		scope.Log.Debugf("rule %s gated for %s", rule.ID, identity)
		scope.TraceEvent("rule " + rule.ID + " gated")
		e.cfg.Metrics.RecordEvaluation(rule.ID, metrics.ResultGated)
		return nil, nil
	}
	e.cfg.Metrics.RecordEvaluation(rule.ID, metrics.ResultMatched)

	batch := action.NewBatch(rule.ID, rule.DisplayName(), string(trigger), playerID, playerName, rule.Actions)
	d := e.dispatch(scope, batch)

	// Every attempt counts, whatever the executor reported.
	if err := e.tracker.RecordExecution(scope.Ctx, key, now); err != nil {
		scope.Log.Errorf("failed to record execution of rule %s for %s: %v", rule.ID, identity, err)
	}

	return d, nil
}

func (e *Engine) dispatch(parent *common.Scope, batch *action.Batch) *Dispatch {
	scope := parent.NewChildScope("engine.Dispatch")
	defer scope.Finish()
	scope.TraceTag("rule_id", batch.RuleID)
	scope.TraceTag("batch_id", batch.ID)

	ctx, cancel := context.WithTimeout(scope.Ctx, e.cfg.ExecutorTimeout)
	defer cancel()

	start := time.Now()
	result, err := e.executor.Dispatch(ctx, batch)
	e.cfg.Metrics.RecordDispatch(batch.RuleID, time.Since(start))

	d := &Dispatch{RuleID: batch.RuleID, Batch: batch, Result: result}
	if err != nil {
		d.Err = &ExecutorError{RuleID: batch.RuleID, BatchID: batch.ID, Err: err}
		scope.Log.Errorf("%v", d.Err)
		scope.TraceError(d.Err)
	}

	if result != nil {
		for _, r := range result.Results {
			if !r.Success {
				e.cfg.Metrics.RecordActionFailure(string(r.Type))
			}
		}
		scope.Log.Infof("rule %s dispatched %d action(s) for %s, %d failed (batch: %s)",
			batch.RuleID, len(result.Results), batchTarget(batch), result.Failed(), batch.ID)
	}

	return d
}

func batchTarget(b *action.Batch) string {
	if b.PlayerID == "" {
		return ruleset.ServerIdentity
	}
	return b.PlayerName + " (" + b.PlayerID + ")"
}
