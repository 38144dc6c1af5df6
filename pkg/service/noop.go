// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// NoopGameServer logs commands instead of sending them. It is used when no
// game API is configured.
type NoopGameServer struct {
	mu        sync.Mutex
	broadcast string
}

func NewNoopGameServer() *NoopGameServer {
	return &NoopGameServer{}
}

func (n *NoopGameServer) MessagePlayer(ctx context.Context, playerID, message string) error {
	logrus.Infof("[NO-OP] message player %s: %s", playerID, message)
	return nil
}

func (n *NoopGameServer) MessageAllPlayers(ctx context.Context, message string) error {
	logrus.Infof("[NO-OP] message all players: %s", message)
	return nil
}

func (n *NoopGameServer) Kick(ctx context.Context, playerID, playerName, reason, by string) error {
	logrus.Infof("[NO-OP] kick %s (%s) by %s: %s", playerName, playerID, by, reason)
	return nil
}

func (n *NoopGameServer) Punish(ctx context.Context, playerID, reason string) error {
	logrus.Infof("[NO-OP] punish %s: %s", playerID, reason)
	return nil
}

func (n *NoopGameServer) TempBan(ctx context.Context, playerID, playerName string, durationHours int, reason, by string) error {
	logrus.Infof("[NO-OP] temp ban %s (%s) for %dh by %s: %s", playerName, playerID, durationHours, by, reason)
	return nil
}

func (n *NoopGameServer) PermaBan(ctx context.Context, playerID, playerName, reason, by string) error {
	logrus.Infof("[NO-OP] perma ban %s (%s) by %s: %s", playerName, playerID, by, reason)
	return nil
}

func (n *NoopGameServer) FlagPlayer(ctx context.Context, playerID, playerName, flag, comment string) error {
	logrus.Infof("[NO-OP] flag %s (%s) with %s: %s", playerName, playerID, flag, comment)
	return nil
}

func (n *NoopGameServer) UnflagPlayer(ctx context.Context, playerID, flag string) error {
	logrus.Infof("[NO-OP] unflag %s: %s", playerID, flag)
	return nil
}

func (n *NoopGameServer) WatchPlayer(ctx context.Context, playerID, playerName, reason, by string) error {
	logrus.Infof("[NO-OP] watch %s (%s) by %s: %s", playerName, playerID, by, reason)
	return nil
}

func (n *NoopGameServer) SetBroadcast(ctx context.Context, message string) error {
	n.mu.Lock()
	n.broadcast = message
	n.mu.Unlock()
	logrus.Infof("[NO-OP] set broadcast: %s", message)
	return nil
}

func (n *NoopGameServer) GetBroadcast(ctx context.Context) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.broadcast, nil
}

func (n *NoopGameServer) SwitchPlayerNow(ctx context.Context, playerID string) error {
	logrus.Infof("[NO-OP] switch team for %s", playerID)
	return nil
}

// NoopFactProvider reports an empty server.
type NoopFactProvider struct{}

func (NoopFactProvider) GetDetailedPlayers(ctx context.Context) (map[string]*PlayerInfo, error) {
	return map[string]*PlayerInfo{}, nil
}

func (NoopFactProvider) GetGameState(ctx context.Context) (*GameState, error) {
	return &GameState{}, nil
}

func (NoopFactProvider) GetPlayerProfile(ctx context.Context, playerID string) (*PlayerProfile, error) {
	return &PlayerProfile{PlayerID: playerID}, nil
}
