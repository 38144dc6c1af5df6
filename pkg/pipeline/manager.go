// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package pipeline wires game events through signal processing into the
// rule engine and serves the rule set configuration commands.
package pipeline

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-conditional-actions/pkg/engine"
	"github.com/AccelByte/extend-conditional-actions/pkg/ruleset"
	"github.com/AccelByte/extend-conditional-actions/pkg/signal"
	"github.com/sirupsen/logrus"
)

// Manager orchestrates the complete conditional actions pipeline:
// Game event → Signals → Engine → Actions
type Manager struct {
	processor *signal.Processor
	engine    *engine.Engine
}

// NewManager creates a new pipeline manager.
func NewManager(processor *signal.Processor, eng *engine.Engine) *Manager {
	return &Manager{
		processor: processor,
		engine:    eng,
	}
}

// ProcessGameEvent runs one raw game event through the pipeline and returns
// one engine result per emitted trigger.
func (m *Manager) ProcessGameEvent(ctx context.Context, event *signal.GameEvent) ([]*engine.Result, error) {
	// Step 1: Convert event to signals
	signals, err := m.processor.Process(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("signal processing failed: %w", err)
	}

	if len(signals) == 0 {
		logrus.Debugf("game event %s did not generate a signal, skipping pipeline", event.Type)
		return nil, nil
	}

	// Step 2: Evaluate rules and dispatch actions
	return m.evaluate(ctx, signals, nil), nil
}

// ProcessPeriodic evaluates the periodic rules accepted by filter for every
// online player.
func (m *Manager) ProcessPeriodic(ctx context.Context, filter engine.Filter) ([]*engine.Result, error) {
	signals, err := m.processor.ForOnlinePlayers(ctx, ruleset.TriggerPeriodic)
	if err != nil {
		return nil, err
	}
	return m.evaluate(ctx, signals, filter), nil
}

func (m *Manager) evaluate(ctx context.Context, signals []signal.Signal, filter engine.Filter) []*engine.Result {
	results := make([]*engine.Result, 0, len(signals))
	for _, sig := range signals {
		res := m.engine.OnEventFiltered(ctx, sig.Trigger, sig.Snapshot, filter)
		results = append(results, res)

		if len(res.Dispatches) == 0 {
			continue
		}

		failed := 0
		for _, d := range res.Dispatches {
			if d.Err != nil || (d.Result != nil && !d.Result.AllSucceeded()) {
				failed++
			}
		}
		logrus.Infof("trigger %s for player %q dispatched %d batch(es), %d with failures",
			sig.Trigger, sig.Snapshot.PlayerID, len(res.Dispatches), failed)
	}
	return results
}
