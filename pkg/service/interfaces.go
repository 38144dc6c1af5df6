// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
)

// Service interfaces for the game server and other external systems that
// the rule pipeline reads facts from or sends commands to.
//
// Having interfaces allows easier mocking for unit tests.

// GameServer issues commands to the game server.
type GameServer interface {
	MessagePlayer(ctx context.Context, playerID, message string) error
	MessageAllPlayers(ctx context.Context, message string) error
	Kick(ctx context.Context, playerID, playerName, reason, by string) error
	Punish(ctx context.Context, playerID, reason string) error
	TempBan(ctx context.Context, playerID, playerName string, durationHours int, reason, by string) error
	PermaBan(ctx context.Context, playerID, playerName, reason, by string) error
	FlagPlayer(ctx context.Context, playerID, playerName, flag, comment string) error
	UnflagPlayer(ctx context.Context, playerID, flag string) error
	WatchPlayer(ctx context.Context, playerID, playerName, reason, by string) error
	SetBroadcast(ctx context.Context, message string) error
	GetBroadcast(ctx context.Context) (string, error)
	SwitchPlayerNow(ctx context.Context, playerID string) error
}

// FactProvider reads player and match state used to build fact snapshots.
type FactProvider interface {
	// GetDetailedPlayers returns online players keyed by player id.
	GetDetailedPlayers(ctx context.Context) (map[string]*PlayerInfo, error)

	GetGameState(ctx context.Context) (*GameState, error)

	// GetPlayerProfile returns long term history for a player.
	GetPlayerProfile(ctx context.Context, playerID string) (*PlayerProfile, error)
}

// WebhookSender posts a message to a chat webhook.
type WebhookSender interface {
	Send(ctx context.Context, webhookURL, content string) error
}
