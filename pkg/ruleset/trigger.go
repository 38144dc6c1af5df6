// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ruleset

// Trigger names the game occurrence that causes a rule to be evaluated.
type Trigger string

const (
	TriggerPlayerConnected    Trigger = "player_connected"
	TriggerPlayerDisconnected Trigger = "player_disconnected"
	TriggerPlayerKill         Trigger = "player_kill"
	TriggerPlayerDeath        Trigger = "player_death"
	TriggerPlayerTeamKill     Trigger = "player_team_kill"
	TriggerMatchStart         Trigger = "match_start"
	TriggerMatchEnd           Trigger = "match_end"
	TriggerPlayerChat         Trigger = "player_chat"
	TriggerPlayerTeamSwitch   Trigger = "player_team_switch"
	TriggerPeriodic           Trigger = "periodic"
)

// ServerIdentity is the tracker identity used by triggers that have no
// single player.
const ServerIdentity = "server"

var triggers = []Trigger{
	TriggerPlayerConnected,
	TriggerPlayerDisconnected,
	TriggerPlayerKill,
	TriggerPlayerDeath,
	TriggerPlayerTeamKill,
	TriggerMatchStart,
	TriggerMatchEnd,
	TriggerPlayerChat,
	TriggerPlayerTeamSwitch,
	TriggerPeriodic,
}

// Triggers lists every known trigger.
func Triggers() []Trigger {
	out := make([]Trigger, len(triggers))
	copy(out, triggers)
	return out
}

// Known reports whether t is a recognised trigger.
func (t Trigger) Known() bool {
	for _, k := range triggers {
		if k == t {
			return true
		}
	}
	return false
}

// PlayerScoped reports whether the trigger concerns a single player.
// match_start and match_end are gated under ServerIdentity instead.
func (t Trigger) PlayerScoped() bool {
	return t != TriggerMatchStart && t != TriggerMatchEnd
}
