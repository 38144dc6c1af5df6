// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package condition

import (
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Condition is a single comparison of a fact against a configured value.
type Condition struct {
	Field    Field    `json:"field"`
	Operator Operator `json:"operator"`
	Value    Value    `json:"value"`
}

// Check verifies that the field is known, the operator fits the field type
// and the value has the field's type.
func (c Condition) Check() error {
	declared, ok := TypeOf(c.Field)
	if !ok {
		return &UnknownFieldError{Field: c.Field}
	}
	if c.Field == FieldAlwaysTrue {
		return nil
	}
	if !Supports(declared, c.Operator) {
		return &UnsupportedOperatorError{Field: c.Field, Operator: c.Operator, Type: declared}
	}
	if c.Value.Type() != declared {
		return &TypeMismatchError{Field: c.Field, Expected: declared, Actual: c.Value.Type()}
	}
	if c.Operator == OpRegexMatch {
		if _, err := compilePattern(c.Value.AsString()); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate compares the snapshot's fact with the condition value.
// always_true matches regardless of operator and value.
func Evaluate(c Condition, s *Snapshot) (bool, error) {
	if c.Field == FieldAlwaysTrue {
		return true, nil
	}

	declared, ok := TypeOf(c.Field)
	if !ok {
		return false, &UnknownFieldError{Field: c.Field}
	}
	if c.Value.Type() != declared {
		return false, &TypeMismatchError{Field: c.Field, Expected: declared, Actual: c.Value.Type()}
	}

	fact, ok := s.Lookup(c.Field)
	if !ok {
		return false, &UnknownFieldError{Field: c.Field}
	}
	if fact.Type() != declared {
		return false, &TypeMismatchError{Field: c.Field, Expected: declared, Actual: fact.Type()}
	}

	switch declared {
	case TypeString:
		return compareString(c, fact.AsString(), c.Value.AsString())
	case TypeNumber:
		return compareNumber(c, fact.AsNumber(), c.Value.AsNumber())
	default:
		return compareBool(c, fact.AsBool(), c.Value.AsBool())
	}
}

// EvaluateAll evaluates every condition and folds the results with op.
// A malformed regex pattern counts as a non-match; any other error aborts.
func EvaluateAll(op LogicalOperator, conditions []Condition, s *Snapshot) (bool, error) {
	results := make([]bool, len(conditions))
	for i, c := range conditions {
		matched, err := Evaluate(c, s)
		if err != nil {
			var patternErr *InvalidPatternError
			if errors.As(err, &patternErr) {
				logrus.Warnf("condition %s %s treated as false: %v", c.Field, c.Operator, err)
				results[i] = false
				continue
			}
			return false, err
		}
		results[i] = matched
	}
	return Combine(op, results), nil
}

func compareString(c Condition, fact, want string) (bool, error) {
	switch c.Operator {
	case OpEqual:
		return fact == want, nil
	case OpNotEqual:
		return fact != want, nil
	case OpContains:
		return strings.Contains(strings.ToLower(fact), strings.ToLower(want)), nil
	case OpNotContains:
		return !strings.Contains(strings.ToLower(fact), strings.ToLower(want)), nil
	case OpStartsWith:
		return strings.HasPrefix(strings.ToLower(fact), strings.ToLower(want)), nil
	case OpEndsWith:
		return strings.HasSuffix(strings.ToLower(fact), strings.ToLower(want)), nil
	case OpRegexMatch:
		re, err := compilePattern(want)
		if err != nil {
			return false, err
		}
		return re.MatchString(fact), nil
	}
	return false, &UnsupportedOperatorError{Field: c.Field, Operator: c.Operator, Type: TypeString}
}

func compareNumber(c Condition, fact, want float64) (bool, error) {
	switch c.Operator {
	case OpEqual:
		return fact == want, nil
	case OpNotEqual:
		return fact != want, nil
	case OpGreaterThan:
		return fact > want, nil
	case OpGreaterThanOrEqual:
		return fact >= want, nil
	case OpLessThan:
		return fact < want, nil
	case OpLessThanOrEqual:
		return fact <= want, nil
	}
	return false, &UnsupportedOperatorError{Field: c.Field, Operator: c.Operator, Type: TypeNumber}
}

func compareBool(c Condition, fact, want bool) (bool, error) {
	switch c.Operator {
	case OpEqual:
		return fact == want, nil
	case OpNotEqual:
		return fact != want, nil
	}
	return false, &UnsupportedOperatorError{Field: c.Field, Operator: c.Operator, Type: TypeBool}
}

type compiled struct {
	re  *regexp.Regexp
	err error
}

var patternCache sync.Map

// compilePattern anchors the pattern at the start of the input.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(pattern); ok {
		c := cached.(compiled)
		return c.re, c.err
	}
	re, err := regexp.Compile("^(?:" + pattern + ")")
	var c compiled
	if err != nil {
		c.err = &InvalidPatternError{Pattern: pattern, Err: err}
	} else {
		c.re = re
	}
	patternCache.Store(pattern, c)
	return c.re, c.err
}
