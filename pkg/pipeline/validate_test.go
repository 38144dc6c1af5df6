// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"strings"
	"testing"

	"github.com/AccelByte/extend-conditional-actions/pkg/action"
	"github.com/AccelByte/extend-conditional-actions/pkg/signal"
)

func TestValidateWiring_Valid(t *testing.T) {
	f := newFixture(t)

	if err := ValidateWiring(f.actions, f.processor.GetMapperRegistry()); err != nil {
		t.Errorf("expected wiring to be valid, got: %v", err)
	}
}

func TestValidateWiring_MissingHandlersAndMappers(t *testing.T) {
	err := ValidateWiring(action.NewRegistry(), signal.NewMapperRegistry())
	if err == nil {
		t.Fatal("expected wiring validation to fail")
	}

	if !strings.Contains(err.Error(), "action type 'message_player' has no registered handler") {
		t.Errorf("expected missing handler in error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "game event 'KILL' has no registered mapper") {
		t.Errorf("expected missing mapper in error, got: %v", err)
	}
}
