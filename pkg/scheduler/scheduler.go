// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package scheduler fires the periodic trigger for rules whose interval
// has elapsed.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/AccelByte/extend-conditional-actions/pkg/engine"
	"github.com/AccelByte/extend-conditional-actions/pkg/ruleset"
	"github.com/sirupsen/logrus"
)

// DefaultTickInterval is the granularity of periodic rules.
const DefaultTickInterval = 10 * time.Second

// Runner evaluates the periodic rules accepted by filter for every online
// player.
type Runner interface {
	ProcessPeriodic(ctx context.Context, filter engine.Filter) ([]*engine.Result, error)
}

// Config configures a Scheduler.
type Config struct {
	TickInterval time.Duration
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Scheduler tracks when each periodic rule last ran.
type Scheduler struct {
	rules  *ruleset.Holder
	runner Runner
	cfg    Config

	mu      sync.Mutex
	lastRun map[string]time.Time
}

// New creates a scheduler.
func New(rules *ruleset.Holder, runner Runner, cfg Config) *Scheduler {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Scheduler{
		rules:   rules,
		runner:  runner,
		cfg:     cfg,
		lastRun: make(map[string]time.Time),
	}
}

// Run ticks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	logrus.Infof("periodic scheduler started, tick interval %s", s.cfg.TickInterval)
	for {
		select {
		case <-ctx.Done():
			logrus.Info("periodic scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs every periodic rule that is due and returns how many were.
// A rule is due on the first tick it is seen, then once per interval. When
// the run fails the due rules keep their previous stamps and are retried on
// the next tick.
func (s *Scheduler) Tick(ctx context.Context) int {
	now := s.cfg.Clock()
	due, prev := s.due(now)
	if len(due) == 0 {
		return 0
	}

	logrus.Debugf("running %d periodic rule(s)", len(due))
	filter := func(r *ruleset.Rule) bool { return due[r.ID] }
	if _, err := s.runner.ProcessPeriodic(ctx, filter); err != nil {
		logrus.Warnf("periodic evaluation failed, retrying next tick: %v", err)
		s.rollback(now, due, prev)
	}
	return len(due)
}

// due stamps the rules that are due at now. prev holds the stamps they
// replaced, absent for rules never run.
func (s *Scheduler) due(now time.Time) (due map[string]bool, prev map[string]time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := s.rules.Load().RuleSet.Candidates(ruleset.TriggerPeriodic)

	seen := make(map[string]bool, len(candidates))
	due = make(map[string]bool)
	prev = make(map[string]time.Time)
	for _, r := range candidates {
		seen[r.ID] = true
		last, ok := s.lastRun[r.ID]
		if ok && now.Sub(last) < r.TriggerInterval() {
			continue
		}
		due[r.ID] = true
		if ok {
			prev[r.ID] = last
		}
		s.lastRun[r.ID] = now
	}

	// Rules that were removed or disabled start over when they come back.
	for id := range s.lastRun {
		if !seen[id] {
			delete(s.lastRun, id)
		}
	}
	return due, prev
}

// rollback restores the stamps written at now, leaving any a later tick
// wrote in the meantime.
func (s *Scheduler) rollback(now time.Time, due map[string]bool, prev map[string]time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range due {
		if stamp, ok := s.lastRun[id]; !ok || !stamp.Equal(now) {
			continue
		}
		if last, ok := prev[id]; ok {
			s.lastRun[id] = last
		} else {
			delete(s.lastRun, id)
		}
	}
}
