// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package ruleset holds the rule configuration model, its validation and
// the stores that persist it.
package ruleset

import (
	"math"
	"time"

	"github.com/AccelByte/extend-conditional-actions/pkg/action"
	"github.com/AccelByte/extend-conditional-actions/pkg/condition"
)

const (
	// DefaultTriggerInterval applies to periodic rules that omit one.
	DefaultTriggerInterval = 60
	// MinTriggerInterval is the shortest interval a periodic rule may use.
	MinTriggerInterval = 10
	// MaxSeconds bounds cooldown_seconds and trigger_interval_seconds
	// (ten years), keeping their durations far from int64 overflow.
	MaxSeconds = 10 * 365 * 24 * 60 * 60
	// MaxExecutions bounds max_executions_per_player.
	MaxExecutions = math.MaxInt32
)

// Rule is one "when trigger fires and conditions hold, run actions" entry.
// Rules are immutable once part of an active RuleSet.
type Rule struct {
	ID                     string
	Name                   string
	Description            string
	Enabled                bool
	TriggerEvent           Trigger
	LogicalOperator        condition.LogicalOperator
	Conditions             []condition.Condition
	Actions                []action.Action
	CooldownSeconds        int
	MaxExecutionsPerPlayer int

	// TriggerIntervalSeconds is only used by periodic rules.
	TriggerIntervalSeconds int
}

// Cooldown returns the cooldown as a duration.
func (r *Rule) Cooldown() time.Duration {
	return time.Duration(r.CooldownSeconds) * time.Second
}

// TriggerInterval returns the periodic interval as a duration.
func (r *Rule) TriggerInterval() time.Duration {
	if r.TriggerIntervalSeconds <= 0 {
		return DefaultTriggerInterval * time.Second
	}
	return time.Duration(r.TriggerIntervalSeconds) * time.Second
}

// DisplayName returns the rule name, falling back to its id.
func (r *Rule) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

// RuleSet is the whole configuration document: a kill switch and the
// ordered rules. Declaration order is execution order.
type RuleSet struct {
	Enabled bool
	Rules   []*Rule
}

// Empty returns a disabled rule set with no rules.
func Empty() *RuleSet {
	return &RuleSet{}
}

// Rule returns the rule with the given id, or nil.
func (rs *RuleSet) Rule(id string) *Rule {
	for _, r := range rs.Rules {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// IDs returns the rule ids in declaration order.
func (rs *RuleSet) IDs() []string {
	ids := make([]string, len(rs.Rules))
	for i, r := range rs.Rules {
		ids[i] = r.ID
	}
	return ids
}

// Candidates returns the enabled rules for a trigger in declaration order.
// A disabled rule set has no candidates.
func (rs *RuleSet) Candidates(t Trigger) []*Rule {
	if rs == nil || !rs.Enabled {
		return nil
	}
	var out []*Rule
	for _, r := range rs.Rules {
		if r.Enabled && r.TriggerEvent == t {
			out = append(out, r)
		}
	}
	return out
}

// Removed returns the ids present in prev but not in rs.
func (rs *RuleSet) Removed(prev *RuleSet) []string {
	if prev == nil {
		return nil
	}
	var out []string
	for _, r := range prev.Rules {
		if rs.Rule(r.ID) == nil {
			out = append(out, r.ID)
		}
	}
	return out
}
