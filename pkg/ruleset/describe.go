// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ruleset

import (
	"github.com/AccelByte/extend-conditional-actions/pkg/action"
	"github.com/AccelByte/extend-conditional-actions/pkg/condition"
)

// Describe returns a JSON schema of the rule set document, enriched with
// the field catalogue so that clients can build forms from it.
func Describe() map[string]interface{} {
	return map[string]interface{}{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"title":                "ConditionalActionsConfig",
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]interface{}{
			"enabled": map[string]interface{}{
				"type":        "boolean",
				"default":     false,
				"description": "Master switch for every conditional action",
			},
			"rules": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"$ref": "#/definitions/rule"},
			},
		},
		"definitions": map[string]interface{}{
			"rule":      ruleSchema(),
			"condition": conditionSchema(),
			"action":    actionSchema(),
		},
		"x-fields": fieldCatalogue(),
	}
}

func ruleSchema() map[string]interface{} {
	ops := make([]string, 0, 4)
	for _, op := range condition.LogicalOperators() {
		ops = append(ops, string(op))
	}
	trig := make([]string, 0, len(triggers))
	for _, t := range triggers {
		trig = append(trig, string(t))
	}

	return map[string]interface{}{
		"type":     "object",
		"required": []string{"id", "trigger_event", "conditions", "actions"},
		"properties": map[string]interface{}{
			"id":               map[string]interface{}{"type": "string", "minLength": 1},
			"name":             map[string]interface{}{"type": "string"},
			"description":      map[string]interface{}{"type": "string"},
			"enabled":          map[string]interface{}{"type": "boolean", "default": true},
			"trigger_event":    map[string]interface{}{"type": "string", "enum": trig},
			"logical_operator": map[string]interface{}{"type": "string", "enum": ops, "default": string(condition.And)},
			"conditions": map[string]interface{}{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]interface{}{"$ref": "#/definitions/condition"},
			},
			"actions": map[string]interface{}{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]interface{}{"$ref": "#/definitions/action"},
			},
			"cooldown_seconds":          map[string]interface{}{"type": "integer", "minimum": 0, "maximum": MaxSeconds, "default": 0},
			"max_executions_per_player": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": MaxExecutions, "default": 0},
			"trigger_interval_seconds": map[string]interface{}{
				"type":        "integer",
				"minimum":     MinTriggerInterval,
				"maximum":     MaxSeconds,
				"default":     DefaultTriggerInterval,
				"description": "Only used by periodic rules",
			},
		},
	}
}

func conditionSchema() map[string]interface{} {
	fields := make([]string, 0)
	for _, f := range condition.Fields() {
		fields = append(fields, string(f))
	}
	ops := make([]string, 0)
	for _, op := range condition.AllOperators() {
		ops = append(ops, string(op))
	}

	return map[string]interface{}{
		"type":     "object",
		"required": []string{"field", "operator", "value"},
		"properties": map[string]interface{}{
			"field":    map[string]interface{}{"type": "string", "enum": fields},
			"operator": map[string]interface{}{"type": "string", "enum": ops},
			"value":    map[string]interface{}{"type": []string{"string", "number", "boolean"}},
		},
	}
}

func actionSchema() map[string]interface{} {
	variants := make([]interface{}, 0)
	for _, s := range action.Schemas() {
		props := map[string]interface{}{}
		required := []string{}
		for _, p := range s.Params {
			prop := map[string]interface{}{"type": "string"}
			switch p.Kind {
			case action.KindInteger:
				prop = map[string]interface{}{"type": "integer", "minimum": 1}
			case action.KindURL:
				prop["format"] = "uri"
			}
			if p.Description != "" {
				prop["description"] = p.Description
			}
			props[p.Name] = prop
			if p.Required {
				required = append(required, p.Name)
			}
		}

		variants = append(variants, map[string]interface{}{
			"title":       string(s.Type),
			"description": s.Description,
			"properties": map[string]interface{}{
				"action_type": map[string]interface{}{"const": string(s.Type)},
				"parameters": map[string]interface{}{
					"type":       "object",
					"properties": props,
					"required":   required,
				},
			},
			"required": []string{"action_type", "parameters"},
		})
	}
	return map[string]interface{}{"type": "object", "oneOf": variants}
}

func fieldCatalogue() map[string]interface{} {
	out := map[string]interface{}{}
	for _, f := range condition.Fields() {
		t, _ := condition.TypeOf(f)
		ops := []string{}
		for _, op := range condition.OperatorsFor(t) {
			ops = append(ops, string(op))
		}
		out[string(f)] = map[string]interface{}{"type": string(t), "operators": ops}
	}
	return out
}
