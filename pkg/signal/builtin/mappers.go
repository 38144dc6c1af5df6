// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package builtin holds the mappers for the game server's log event types.
package builtin

import (
	"github.com/AccelByte/extend-conditional-actions/pkg/condition"
	"github.com/AccelByte/extend-conditional-actions/pkg/ruleset"
	"github.com/AccelByte/extend-conditional-actions/pkg/signal"
)

// ActorMapper emits a single player scoped trigger for player 1.
type ActorMapper struct {
	Type    string
	Trigger ruleset.Trigger
}

func (m *ActorMapper) EventType() string {
	return m.Type
}

func (m *ActorMapper) Map(ev *signal.GameEvent) []signal.Emission {
	if ev.PlayerID1 == "" {
		return nil
	}
	return []signal.Emission{{Trigger: m.Trigger, PlayerID: ev.PlayerID1, PlayerName: ev.PlayerName1}}
}

// KillMapper emits player_kill for the killer and player_death for the victim.
type KillMapper struct{}

func (m *KillMapper) EventType() string {
	return signal.EventKill
}

func (m *KillMapper) Map(ev *signal.GameEvent) []signal.Emission {
	var out []signal.Emission
	if ev.PlayerID1 != "" {
		out = append(out, signal.Emission{Trigger: ruleset.TriggerPlayerKill, PlayerID: ev.PlayerID1, PlayerName: ev.PlayerName1})
	}
	if ev.PlayerID2 != "" {
		out = append(out, signal.Emission{Trigger: ruleset.TriggerPlayerDeath, PlayerID: ev.PlayerID2, PlayerName: ev.PlayerName2})
	}
	return out
}

// ChatMapper emits player_chat with the message as a fact.
type ChatMapper struct{}

func (m *ChatMapper) EventType() string {
	return signal.EventChat
}

func (m *ChatMapper) Map(ev *signal.GameEvent) []signal.Emission {
	if ev.PlayerID1 == "" {
		return nil
	}
	return []signal.Emission{{
		Trigger:    ruleset.TriggerPlayerChat,
		PlayerID:   ev.PlayerID1,
		PlayerName: ev.PlayerName1,
		Facts:      map[condition.Field]condition.Value{condition.FieldChatMessage: condition.StringValue(ev.Message)},
	}}
}

// TeamSwitchMapper emits player_team_switch. The new team from the log line
// wins over the possibly stale team in the player list.
type TeamSwitchMapper struct{}

func (m *TeamSwitchMapper) EventType() string {
	return signal.EventTeamSwitch
}

func (m *TeamSwitchMapper) Map(ev *signal.GameEvent) []signal.Emission {
	if ev.PlayerID1 == "" {
		return nil
	}
	em := signal.Emission{Trigger: ruleset.TriggerPlayerTeamSwitch, PlayerID: ev.PlayerID1, PlayerName: ev.PlayerName1}
	if ev.Team != "" {
		em.Facts = map[condition.Field]condition.Value{condition.FieldPlayerTeam: condition.StringValue(ev.Team)}
	}
	return []signal.Emission{em}
}

// ServerMapper emits a single server scoped trigger.
type ServerMapper struct {
	Type    string
	Trigger ruleset.Trigger
}

func (m *ServerMapper) EventType() string {
	return m.Type
}

func (m *ServerMapper) Map(ev *signal.GameEvent) []signal.Emission {
	return []signal.Emission{{Trigger: m.Trigger}}
}

// RegisterBuiltinMappers registers all built-in mappers with the registry.
func RegisterBuiltinMappers(registry *signal.MapperRegistry) {
	registry.Register(&ActorMapper{Type: signal.EventConnected, Trigger: ruleset.TriggerPlayerConnected})
	registry.Register(&ActorMapper{Type: signal.EventDisconnected, Trigger: ruleset.TriggerPlayerDisconnected})
	registry.Register(&ActorMapper{Type: signal.EventTeamKill, Trigger: ruleset.TriggerPlayerTeamKill})
	registry.Register(&KillMapper{})
	registry.Register(&ChatMapper{})
	registry.Register(&TeamSwitchMapper{})
	registry.Register(&ServerMapper{Type: signal.EventMatchStart, Trigger: ruleset.TriggerMatchStart})
	registry.Register(&ServerMapper{Type: signal.EventMatchEnd, Trigger: ruleset.TriggerMatchEnd})
}
