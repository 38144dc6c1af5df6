// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"fmt"
	"strings"

	"github.com/AccelByte/extend-conditional-actions/pkg/action"
	"github.com/AccelByte/extend-conditional-actions/pkg/signal"
)

// ValidateWiring validates that the pipeline is correctly wired.
// It checks that:
// - Every action type has a registered handler
// - Every raw game event type has a registered mapper
//
// This catches mistakes like forgetting to register a handler for a newly
// added action type, which would otherwise only surface at dispatch time.
func ValidateWiring(actions *action.Registry, mappers *signal.MapperRegistry) error {
	var errors []string

	for _, t := range actions.Missing() {
		errors = append(errors, fmt.Sprintf("action type '%s' has no registered handler", t))
	}

	for _, eventType := range []string{
		signal.EventConnected, signal.EventDisconnected, signal.EventKill, signal.EventTeamKill,
		signal.EventChat, signal.EventTeamSwitch, signal.EventMatchStart, signal.EventMatchEnd,
	} {
		if mappers.Get(eventType) == nil {
			errors = append(errors, fmt.Sprintf("game event '%s' has no registered mapper", eventType))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("pipeline wiring validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}
