// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ruleset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by stores that hold no rule set yet.
var ErrNotFound = errors.New("rule set not found")

// FieldError is a problem with one location in a rule set document.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationError rejects a rule set. It is never partially applied.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return "invalid rule set: " + strings.Join(msgs, "; ")
}

func fieldErr(path, format string, args ...interface{}) FieldError {
	return FieldError{Path: path, Message: fmt.Sprintf(format, args...)}
}
