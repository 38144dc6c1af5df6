// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"fmt"
	"strings"

	"github.com/AccelByte/extend-conditional-actions/pkg/action"
)

// render substitutes {player_name}, {player_id} and {rule_name} in s.
func render(s string, batch *action.Batch) string {
	if !strings.Contains(s, "{") {
		return s
	}
	return strings.NewReplacer(
		"{player_name}", batch.PlayerName,
		"{player_id}", batch.PlayerID,
		"{rule_name}", batch.RuleName,
	).Replace(s)
}

// actor is the attribution recorded with moderation commands.
func actor(batch *action.Batch) string {
	return fmt.Sprintf("ConditionalAction[%s]", batch.RuleName)
}
