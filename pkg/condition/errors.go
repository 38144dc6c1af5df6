// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package condition

import "fmt"

// UnknownFieldError reports a field that is not declared or has no fact in
// the snapshot.
type UnknownFieldError struct {
	Field Field
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// TypeMismatchError reports a value whose type differs from the field's
// declared type.
type TypeMismatchError struct {
	Field    Field
	Expected ValueType
	Actual   ValueType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q expects %s value, got %s", e.Field, e.Expected, e.Actual)
}

// UnsupportedOperatorError reports an operator that is not valid for the
// field's type.
type UnsupportedOperatorError struct {
	Field    Field
	Operator Operator
	Type     ValueType
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("operator %q is not valid for %s field %q", e.Operator, e.Type, e.Field)
}

// InvalidPatternError reports a regex_match pattern that does not compile.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }
