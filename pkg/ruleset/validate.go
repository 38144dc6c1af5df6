// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ruleset

import (
	"fmt"

	"github.com/AccelByte/extend-conditional-actions/pkg/action"
	"github.com/AccelByte/extend-conditional-actions/pkg/condition"
)

// Validate checks a rule set before activation and returns every problem
// found. An empty result means the set is valid. The input is not modified.
func Validate(rs *RuleSet) []FieldError {
	if rs == nil {
		return []FieldError{{Message: "rule set is missing"}}
	}

	var errs []FieldError
	seen := make(map[string]int, len(rs.Rules))

	for i, r := range rs.Rules {
		path := fmt.Sprintf("rules[%d]", i)
		if r == nil {
			errs = append(errs, fieldErr(path, "rule is missing"))
			continue
		}

		if r.ID == "" {
			errs = append(errs, fieldErr(path+".id", "must not be empty"))
		} else if first, dup := seen[r.ID]; dup {
			errs = append(errs, fieldErr(path+".id", "duplicate rule id %q (also rules[%d])", r.ID, first))
		} else {
			seen[r.ID] = i
		}

		errs = append(errs, validateRule(path, r)...)
	}

	return errs
}

func validateRule(path string, r *Rule) []FieldError {
	var errs []FieldError

	if !r.TriggerEvent.Known() {
		errs = append(errs, fieldErr(path+".trigger_event", "unknown trigger event %q", r.TriggerEvent))
	}
	if !knownLogicalOperator(r.LogicalOperator) {
		errs = append(errs, fieldErr(path+".logical_operator", "must be one of and, or, nand, nor"))
	}

	if len(r.Conditions) == 0 {
		errs = append(errs, fieldErr(path+".conditions", "at least one condition is required"))
	}
	for j, c := range r.Conditions {
		if err := c.Check(); err != nil {
			errs = append(errs, fieldErr(fmt.Sprintf("%s.conditions[%d]", path, j), "%v", err))
		}
	}

	if len(r.Actions) == 0 {
		errs = append(errs, fieldErr(path+".actions", "at least one action is required"))
	}
	for j, a := range r.Actions {
		apath := fmt.Sprintf("%s.actions[%d]", path, j)
		if a == nil {
			errs = append(errs, fieldErr(apath, "action is missing"))
			continue
		}
		if _, perrs := action.Decode(action.Encode(a)); len(perrs) > 0 {
			for _, pe := range perrs {
				errs = append(errs, paramErr(apath, pe))
			}
		}
	}

	switch {
	case r.CooldownSeconds < 0:
		errs = append(errs, fieldErr(path+".cooldown_seconds", "must be a non-negative integer"))
	case r.CooldownSeconds > MaxSeconds:
		errs = append(errs, fieldErr(path+".cooldown_seconds", "must be at most %d", MaxSeconds))
	}
	switch {
	case r.MaxExecutionsPerPlayer < 0:
		errs = append(errs, fieldErr(path+".max_executions_per_player", "must be a non-negative integer"))
	case r.MaxExecutionsPerPlayer > MaxExecutions:
		errs = append(errs, fieldErr(path+".max_executions_per_player", "must be at most %d", MaxExecutions))
	}
	switch {
	case r.TriggerIntervalSeconds > MaxSeconds:
		errs = append(errs, fieldErr(path+".trigger_interval_seconds", "must be at most %d", MaxSeconds))
	case r.TriggerEvent == TriggerPeriodic && r.TriggerIntervalSeconds < MinTriggerInterval:
		errs = append(errs, fieldErr(path+".trigger_interval_seconds", "must be at least %d for periodic rules", MinTriggerInterval))
	}

	return errs
}

func paramErr(actionPath string, pe action.ParamError) FieldError {
	if pe.Param == "" {
		return fieldErr(actionPath+".action_type", "%s", pe.Message)
	}
	return fieldErr(actionPath+".parameters."+pe.Param, "%s", pe.Message)
}

func knownLogicalOperator(op condition.LogicalOperator) bool {
	for _, k := range condition.LogicalOperators() {
		if k == op {
			return true
		}
	}
	return false
}
