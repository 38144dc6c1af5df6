// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AccelByte/extend-conditional-actions/pkg/metrics"
	"github.com/AccelByte/extend-conditional-actions/pkg/ruleset"
	"github.com/AccelByte/extend-conditional-actions/pkg/tracker"
	"github.com/sirupsen/logrus"
)

// Configurator serves the rule set configuration commands and keeps the
// engine's active rule set in sync with the store.
type Configurator struct {
	holder  *ruleset.Holder
	store   ruleset.Store
	tracker tracker.Tracker
	metrics *metrics.Metrics

	// Serializes writers. Readers go through the holder.
	mu sync.Mutex
}

// NewConfigurator creates a configurator.
func NewConfigurator(holder *ruleset.Holder, store ruleset.Store, tr tracker.Tracker, m *metrics.Metrics) *Configurator {
	return &Configurator{
		holder:  holder,
		store:   store,
		tracker: tr,
		metrics: m,
	}
}

// Describe returns the JSON schema of the rule set document.
func (c *Configurator) Describe() map[string]interface{} {
	return ruleset.Describe()
}

// Get returns the active rule set document.
func (c *Configurator) Get() (json.RawMessage, error) {
	data, err := json.Marshal(c.holder.Load().RuleSet)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rule set: %w", err)
	}
	return data, nil
}

// Validate checks a rule set document without activating it. A rejected
// document yields a *ruleset.ValidationError.
func (c *Configurator) Validate(data []byte) error {
	_, err := ruleset.Parse(data)
	return err
}

// Set validates, persists and activates a rule set document. Nothing is
// persisted or activated unless the whole document is valid.
func (c *Configurator) Set(ctx context.Context, data []byte) error {
	rs, err := ruleset.Parse(data)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Save(ctx, rs); err != nil {
		return fmt.Errorf("failed to persist rule set: %w", err)
	}

	prev := c.activate(rs)
	logrus.Infof("rule set version %d activated with %d rule(s), enabled=%v",
		c.holder.Load().Version, len(rs.Rules), rs.Enabled)

	c.forgetRemoved(ctx, rs, prev)
	return nil
}

// Load activates the stored rule set. When the store is empty and seed is
// set, the seed is persisted and activated instead.
func (c *Configurator) Load(ctx context.Context, seedPath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rs, err := c.store.Load(ctx)
	switch {
	case err == nil:
		logrus.Infof("loaded rule set with %d rule(s) from store", len(rs.Rules))
	case errors.Is(err, ruleset.ErrNotFound) && seedPath != "":
		rs, err = ruleset.LoadSeed(seedPath)
		if err != nil {
			return err
		}
		if err := c.store.Save(ctx, rs); err != nil {
			return fmt.Errorf("failed to persist seed rule set: %w", err)
		}
		logrus.Infof("seeded rule set with %d rule(s) from %s", len(rs.Rules), seedPath)
	case errors.Is(err, ruleset.ErrNotFound):
		logrus.Info("no rule set stored, conditional actions disabled until one is set")
		rs = ruleset.Empty()
	default:
		return fmt.Errorf("failed to load rule set: %w", err)
	}

	c.activate(rs)
	return nil
}

// Refresh reloads the stored rule set, picking up changes made by other
// replicas. An unchanged document is not re-activated.
func (c *Configurator) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rs, err := c.store.Load(ctx)
	if errors.Is(err, ruleset.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to refresh rule set: %w", err)
	}

	current, err := json.Marshal(c.holder.Load().RuleSet)
	if err != nil {
		return err
	}
	stored, err := json.Marshal(rs)
	if err != nil {
		return err
	}
	if string(current) == string(stored) {
		return nil
	}

	c.activate(rs)
	logrus.Infof("rule set refreshed from store, version %d", c.holder.Load().Version)
	return nil
}

// RunRefresher calls Refresh every interval until ctx is done.
func (c *Configurator) RunRefresher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Refresh(ctx); err != nil {
				logrus.Warnf("%v", err)
			}
		}
	}
}

func (c *Configurator) activate(rs *ruleset.RuleSet) *ruleset.RuleSet {
	prev := c.holder.Swap(rs)
	c.metrics.SetRulesetVersion(c.holder.Load().Version)
	if prev == nil {
		return nil
	}
	return prev.RuleSet
}

// forgetRemoved drops the execution records of rules no longer configured.
func (c *Configurator) forgetRemoved(ctx context.Context, rs, prev *ruleset.RuleSet) {
	for _, id := range rs.Removed(prev) {
		if err := c.tracker.Forget(ctx, id); err != nil {
			logrus.Warnf("failed to forget execution records of removed rule %s: %v", id, err)
			continue
		}
		logrus.Debugf("forgot execution records of removed rule %s", id)
	}
}
