// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package condition

import "strings"

// Operator is a comparison applied between a fact and a configured value.
type Operator string

const (
	OpEqual              Operator = "equal"
	OpNotEqual           Operator = "not_equal"
	OpGreaterThan        Operator = "greater_than"
	OpGreaterThanOrEqual Operator = "greater_than_or_equal"
	OpLessThan           Operator = "less_than"
	OpLessThanOrEqual    Operator = "less_than_or_equal"
	OpContains           Operator = "contains"
	OpNotContains        Operator = "not_contains"
	OpStartsWith         Operator = "starts_with"
	OpEndsWith           Operator = "ends_with"
	OpRegexMatch         Operator = "regex_match"
)

var operatorsByType = map[ValueType][]Operator{
	TypeString: {OpEqual, OpNotEqual, OpContains, OpNotContains, OpStartsWith, OpEndsWith, OpRegexMatch},
	TypeNumber: {OpEqual, OpNotEqual, OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual},
	TypeBool:   {OpEqual, OpNotEqual},
}

// OperatorsFor lists the operators valid for a value type.
func OperatorsFor(t ValueType) []Operator {
	ops := operatorsByType[t]
	out := make([]Operator, len(ops))
	copy(out, ops)
	return out
}

// AllOperators lists every operator once.
func AllOperators() []Operator {
	return []Operator{
		OpEqual, OpNotEqual,
		OpGreaterThan, OpGreaterThanOrEqual, OpLessThan, OpLessThanOrEqual,
		OpContains, OpNotContains, OpStartsWith, OpEndsWith, OpRegexMatch,
	}
}

// Supports reports whether op may be used with values of type t.
func Supports(t ValueType, op Operator) bool {
	for _, o := range operatorsByType[t] {
		if o == op {
			return true
		}
	}
	return false
}

// LogicalOperator combines the results of a rule's conditions.
type LogicalOperator string

const (
	And  LogicalOperator = "and"
	Or   LogicalOperator = "or"
	Nand LogicalOperator = "nand"
	Nor  LogicalOperator = "nor"
)

// ParseLogicalOperator accepts either case.
func ParseLogicalOperator(s string) (LogicalOperator, bool) {
	op := LogicalOperator(strings.ToLower(strings.TrimSpace(s)))
	switch op {
	case And, Or, Nand, Nor:
		return op, true
	}
	return "", false
}

// LogicalOperators lists the supported combinators.
func LogicalOperators() []LogicalOperator {
	return []LogicalOperator{And, Or, Nand, Nor}
}

// Combine folds condition results. NAND and NOR negate AND and OR.
func Combine(op LogicalOperator, results []bool) bool {
	switch op {
	case Or:
		return anyTrue(results)
	case Nand:
		return !allTrue(results)
	case Nor:
		return !anyTrue(results)
	default:
		return allTrue(results)
	}
}

func allTrue(results []bool) bool {
	for _, r := range results {
		if !r {
			return false
		}
	}
	return true
}

func anyTrue(results []bool) bool {
	for _, r := range results {
		if r {
			return true
		}
	}
	return false
}
