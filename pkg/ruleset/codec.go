// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ruleset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/AccelByte/extend-conditional-actions/pkg/action"
	"github.com/AccelByte/extend-conditional-actions/pkg/condition"
)

// Wire documents. Pointers distinguish omitted fields from zero values.
type ruleSetDoc struct {
	Enabled *bool     `json:"enabled"`
	Rules   []ruleDoc `json:"rules"`
}

type ruleDoc struct {
	ID                     string         `json:"id"`
	Name                   string         `json:"name"`
	Description            string         `json:"description"`
	Enabled                *bool          `json:"enabled"`
	TriggerEvent           string         `json:"trigger_event"`
	LogicalOperator        string         `json:"logical_operator"`
	Conditions             []conditionDoc `json:"conditions"`
	Actions                []action.Spec  `json:"actions"`
	CooldownSeconds        *json.Number   `json:"cooldown_seconds"`
	MaxExecutionsPerPlayer *json.Number   `json:"max_executions_per_player"`
	TriggerIntervalSeconds *json.Number   `json:"trigger_interval_seconds"`
}

type conditionDoc struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator"`
	Value    interface{} `json:"value"`
}

// Parse decodes a JSON rule set document and validates it. Any problem
// yields a *ValidationError listing every offending location.
func Parse(data []byte) (*RuleSet, error) {
	rs, errs := decode(data)
	if len(errs) == 0 {
		errs = Validate(rs)
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return rs, nil
}

// decode builds the typed model. Problems that prevent building a typed
// value are reported here; semantic checks are left to Validate.
func decode(data []byte) (*RuleSet, []FieldError) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc ruleSetDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, []FieldError{{Message: fmt.Sprintf("malformed JSON document: %v", err)}}
	}

	rs := &RuleSet{Enabled: doc.Enabled != nil && *doc.Enabled}
	var errs []FieldError

	for i, rd := range doc.Rules {
		path := fmt.Sprintf("rules[%d]", i)
		r, rerrs := decodeRule(path, rd)
		errs = append(errs, rerrs...)
		rs.Rules = append(rs.Rules, r)
	}

	return rs, errs
}

func decodeRule(path string, rd ruleDoc) (*Rule, []FieldError) {
	var errs []FieldError

	r := &Rule{
		ID:           rd.ID,
		Name:         rd.Name,
		Description:  rd.Description,
		Enabled:      rd.Enabled == nil || *rd.Enabled,
		TriggerEvent: Trigger(rd.TriggerEvent),
	}

	r.LogicalOperator = condition.And
	if rd.LogicalOperator != "" {
		if op, ok := condition.ParseLogicalOperator(rd.LogicalOperator); ok {
			r.LogicalOperator = op
		} else {
			r.LogicalOperator = condition.LogicalOperator(rd.LogicalOperator)
		}
	}

	for j, cd := range rd.Conditions {
		c := condition.Condition{Field: condition.Field(cd.Field), Operator: condition.Operator(cd.Operator)}
		if cd.Value != nil {
			v, err := condition.ValueOf(cd.Value)
			if err != nil {
				errs = append(errs, fieldErr(fmt.Sprintf("%s.conditions[%d].value", path, j), "%v", err))
			}
			c.Value = v
		}
		r.Conditions = append(r.Conditions, c)
	}

	for j, spec := range rd.Actions {
		a, perrs := action.Decode(spec)
		for _, pe := range perrs {
			errs = append(errs, paramErr(fmt.Sprintf("%s.actions[%d]", path, j), pe))
		}
		if a != nil {
			r.Actions = append(r.Actions, a)
		}
	}

	var err *FieldError
	if r.CooldownSeconds, err = count(path+".cooldown_seconds", rd.CooldownSeconds, 0, MaxSeconds); err != nil {
		errs = append(errs, *err)
	}
	if r.MaxExecutionsPerPlayer, err = count(path+".max_executions_per_player", rd.MaxExecutionsPerPlayer, 0, MaxExecutions); err != nil {
		errs = append(errs, *err)
	}
	if r.TriggerIntervalSeconds, err = count(path+".trigger_interval_seconds", rd.TriggerIntervalSeconds, DefaultTriggerInterval, MaxSeconds); err != nil {
		errs = append(errs, *err)
	}

	return r, errs
}

// count decodes an integer no larger than limit in magnitude. Negative values
// within range are left for Validate to report.
func count(path string, n *json.Number, def, limit int) (int, *FieldError) {
	if n == nil {
		return def, nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) {
		fe := fieldErr(path, "must be an integer, got %s", n.String())
		return 0, &fe
	}
	if f < -float64(limit) {
		fe := fieldErr(path, "must be a non-negative integer, got %s", n.String())
		return 0, &fe
	}
	if f > float64(limit) {
		fe := fieldErr(path, "must be at most %d, got %s", limit, n.String())
		return 0, &fe
	}
	return int(f), nil
}

// MarshalJSON writes the wire document.
func (rs *RuleSet) MarshalJSON() ([]byte, error) {
	doc := struct {
		Enabled bool            `json:"enabled"`
		Rules   []*wireRuleDump `json:"rules"`
	}{Enabled: rs.Enabled, Rules: make([]*wireRuleDump, 0, len(rs.Rules))}

	for _, r := range rs.Rules {
		doc.Rules = append(doc.Rules, dumpRule(r))
	}
	return json.Marshal(doc)
}

type wireRuleDump struct {
	ID                     string                `json:"id"`
	Name                   string                `json:"name"`
	Description            string                `json:"description"`
	Enabled                bool                  `json:"enabled"`
	TriggerEvent           Trigger               `json:"trigger_event"`
	LogicalOperator        string                `json:"logical_operator"`
	Conditions             []condition.Condition `json:"conditions"`
	Actions                []action.Spec         `json:"actions"`
	CooldownSeconds        int                   `json:"cooldown_seconds"`
	MaxExecutionsPerPlayer int                   `json:"max_executions_per_player"`
	TriggerIntervalSeconds int                   `json:"trigger_interval_seconds"`
}

func dumpRule(r *Rule) *wireRuleDump {
	d := &wireRuleDump{
		ID:                     r.ID,
		Name:                   r.Name,
		Description:            r.Description,
		Enabled:                r.Enabled,
		TriggerEvent:           r.TriggerEvent,
		LogicalOperator:        string(r.LogicalOperator),
		Conditions:             r.Conditions,
		Actions:                make([]action.Spec, 0, len(r.Actions)),
		CooldownSeconds:        r.CooldownSeconds,
		MaxExecutionsPerPlayer: r.MaxExecutionsPerPlayer,
		TriggerIntervalSeconds: r.TriggerIntervalSeconds,
	}
	if d.Conditions == nil {
		d.Conditions = []condition.Condition{}
	}
	for _, a := range r.Actions {
		d.Actions = append(d.Actions, action.Encode(a))
	}
	return d
}
