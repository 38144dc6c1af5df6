// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"context"
	"testing"

	"github.com/AccelByte/extend-conditional-actions/pkg/ruleset"
	"github.com/AccelByte/extend-conditional-actions/pkg/signal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const welcomeDoc = `{
  "enabled": true,
  "rules": [{
    "id": "welcome",
    "trigger_event": "player_connected",
    "logical_operator": "and",
    "conditions": [{"field": "always_true", "operator": "equal", "value": true}],
    "actions": [{"action_type": "message_player", "parameters": {"message": "Welcome!"}}],
    "cooldown_seconds": 0,
    "max_executions_per_player": 0
  }]
}`

func TestProcessGameEvent_Welcome(t *testing.T) {
	f := newFixture(t)
	f.set(t, welcomeDoc)

	results, err := f.manager.ProcessGameEvent(context.Background(), &signal.GameEvent{
		Type: signal.EventConnected, PlayerID1: "p1", PlayerName1: "Alice",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Len(t, results[0].Dispatches, 1)
	assert.True(t, results[0].Dispatches[0].Result.AllSucceeded())

	calls := f.game.CallsTo("MessagePlayer")
	require.Len(t, calls, 1)
	assert.Equal(t, "p1", calls[0].PlayerID)
	assert.Equal(t, "Welcome!", calls[0].Args["message"])
}

func TestProcessGameEvent_KillFansOutToVictim(t *testing.T) {
	f := newFixture(t)
	f.set(t, `{
  "enabled": true,
  "rules": [
    {
      "id": "struggling",
      "trigger_event": "player_death",
      "conditions": [{"field": "deaths", "operator": "greater_than_or_equal", "value": 5}],
      "actions": [{"action_type": "message_player", "parameters": {"message": "Hang in there"}}]
    },
    {
      "id": "hot-streak",
      "trigger_event": "player_kill",
      "conditions": [{"field": "kill_death_ratio", "operator": "greater_than", "value": 5}],
      "actions": [{"action_type": "message_all_players", "parameters": {"message": "{player_name} is on fire"}}]
    }
  ]
}`)

	results, err := f.manager.ProcessGameEvent(context.Background(), &signal.GameEvent{
		Type: signal.EventKill, PlayerID1: "p1", PlayerName1: "Alice", PlayerID2: "p2", PlayerName2: "Bob",
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, ruleset.TriggerPlayerKill, results[0].Trigger)
	assert.Equal(t, ruleset.TriggerPlayerDeath, results[1].Trigger)

	victim := f.game.CallsTo("MessagePlayer")
	require.Len(t, victim, 1)
	assert.Equal(t, "p2", victim[0].PlayerID)

	all := f.game.CallsTo("MessageAllPlayers")
	require.Len(t, all, 1)
	assert.Equal(t, "Alice is on fire", all[0].Args["message"])
}

func TestProcessGameEvent_ServerScopedMatchStart(t *testing.T) {
	f := newFixture(t)
	f.set(t, `{
  "enabled": true,
  "rules": [{
    "id": "announce",
    "trigger_event": "match_start",
    "conditions": [{"field": "map_name", "operator": "starts_with", "value": "STMARIE"}],
    "actions": [{"action_type": "broadcast_message", "parameters": {"message": "Good luck"}}],
    "max_executions_per_player": 1
  }]
}`)

	for i := 0; i < 2; i++ {
		_, err := f.manager.ProcessGameEvent(context.Background(), &signal.GameEvent{Type: signal.EventMatchStart})
		require.NoError(t, err)
	}

	// The cap applies to the server identity.
	assert.Len(t, f.game.CallsTo("SetBroadcast"), 1)
}

func TestProcessGameEvent_UnknownEventType(t *testing.T) {
	f := newFixture(t)

	_, err := f.manager.ProcessGameEvent(context.Background(), &signal.GameEvent{Type: "VOTE KICK"})
	assert.ErrorIs(t, err, signal.ErrUnknownEventType)
}

func TestProcessGameEvent_DisabledRuleSet(t *testing.T) {
	f := newFixture(t)

	results, err := f.manager.ProcessGameEvent(context.Background(), &signal.GameEvent{
		Type: signal.EventConnected, PlayerID1: "p1",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Dispatches)
	assert.Empty(t, f.game.Calls())
}

func TestProcessPeriodic(t *testing.T) {
	f := newFixture(t)
	f.set(t, `{
  "enabled": true,
  "rules": [
    {
      "id": "reminder",
      "trigger_event": "periodic",
      "trigger_interval_seconds": 30,
      "conditions": [{"field": "player_team", "operator": "equal", "value": "axis"}],
      "actions": [{"action_type": "message_player", "parameters": {"message": "Push the point"}}]
    },
    {
      "id": "other",
      "trigger_event": "periodic",
      "conditions": [{"field": "always_true", "operator": "equal", "value": true}],
      "actions": [{"action_type": "message_player", "parameters": {"message": "Filtered out"}}]
    }
  ]
}`)

	only := func(r *ruleset.Rule) bool { return r.ID == "reminder" }
	results, err := f.manager.ProcessPeriodic(context.Background(), only)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	calls := f.game.CallsTo("MessagePlayer")
	require.Len(t, calls, 1)
	assert.Equal(t, "p2", calls[0].PlayerID)
	assert.Equal(t, "Push the point", calls[0].Args["message"])
}
