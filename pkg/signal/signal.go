// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package signal turns raw game log events into trigger events with fact
// snapshots for the rule engine.
package signal

import (
	"time"

	"github.com/AccelByte/extend-conditional-actions/pkg/condition"
	"github.com/AccelByte/extend-conditional-actions/pkg/ruleset"
)

// Raw game log event types.
const (
	EventConnected    = "CONNECTED"
	EventDisconnected = "DISCONNECTED"
	EventKill         = "KILL"
	EventTeamKill     = "TEAM KILL"
	EventChat         = "CHAT"
	EventTeamSwitch   = "TEAMSWITCH"
	EventMatchStart   = "MATCH START"
	EventMatchEnd     = "MATCH ENDED"
)

// GameEvent is a structured game log line. Player 1 is the actor (killer,
// chatter, connecting player); player 2 is the victim of a kill.
type GameEvent struct {
	Type        string
	Timestamp   time.Time
	PlayerID1   string
	PlayerName1 string
	PlayerID2   string
	PlayerName2 string
	Message     string
	Team        string
}

// Emission is one trigger produced by a mapper before fact enrichment.
// An empty PlayerID marks a server scoped trigger.
type Emission struct {
	Trigger    ruleset.Trigger
	PlayerID   string
	PlayerName string
	// Facts carried by the event itself. They override fetched facts.
	Facts map[condition.Field]condition.Value
}

// Signal represents a normalized trigger event with its fact snapshot.
// Signals are produced by the Processor from raw game events and are
// consumed by the rule engine for evaluation.
type Signal struct {
	Trigger   ruleset.Trigger
	Snapshot  *condition.Snapshot
	Timestamp time.Time
}
