// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mock

import (
	"context"
	"sync"
)

// GameServerCall records one command sent to the mock game server.
type GameServerCall struct {
	Method   string
	PlayerID string
	Args     map[string]interface{}
}

// GameServer is a mock implementation of service.GameServer for testing.
type GameServer struct {
	// Errors maps a method name to the error it should return.
	Errors map[string]error

	mu        sync.Mutex
	calls     []GameServerCall
	broadcast string
}

// NewGameServer creates a new mock GameServer.
func NewGameServer() *GameServer {
	return &GameServer{Errors: make(map[string]error)}
}

// WithError makes method fail with err.
func (m *GameServer) WithError(method string, err error) *GameServer {
	m.Errors[method] = err
	return m
}

// WithBroadcast sets the current broadcast message.
func (m *GameServer) WithBroadcast(msg string) *GameServer {
	m.broadcast = msg
	return m
}

// Calls returns a copy of the recorded calls.
func (m *GameServer) Calls() []GameServerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GameServerCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsTo returns the recorded calls for one method.
func (m *GameServer) CallsTo(method string) []GameServerCall {
	var out []GameServerCall
	for _, c := range m.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears recorded calls.
func (m *GameServer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *GameServer) record(method, playerID string, args map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, GameServerCall{Method: method, PlayerID: playerID, Args: args})
	return m.Errors[method]
}

func (m *GameServer) MessagePlayer(ctx context.Context, playerID, message string) error {
	return m.record("MessagePlayer", playerID, map[string]interface{}{"message": message})
}

func (m *GameServer) MessageAllPlayers(ctx context.Context, message string) error {
	return m.record("MessageAllPlayers", "", map[string]interface{}{"message": message})
}

func (m *GameServer) Kick(ctx context.Context, playerID, playerName, reason, by string) error {
	return m.record("Kick", playerID, map[string]interface{}{"player_name": playerName, "reason": reason, "by": by})
}

func (m *GameServer) Punish(ctx context.Context, playerID, reason string) error {
	return m.record("Punish", playerID, map[string]interface{}{"reason": reason})
}

func (m *GameServer) TempBan(ctx context.Context, playerID, playerName string, durationHours int, reason, by string) error {
	return m.record("TempBan", playerID, map[string]interface{}{
		"player_name": playerName, "duration_hours": durationHours, "reason": reason, "by": by,
	})
}

func (m *GameServer) PermaBan(ctx context.Context, playerID, playerName, reason, by string) error {
	return m.record("PermaBan", playerID, map[string]interface{}{"player_name": playerName, "reason": reason, "by": by})
}

func (m *GameServer) FlagPlayer(ctx context.Context, playerID, playerName, flag, comment string) error {
	return m.record("FlagPlayer", playerID, map[string]interface{}{"player_name": playerName, "flag": flag, "comment": comment})
}

func (m *GameServer) UnflagPlayer(ctx context.Context, playerID, flag string) error {
	return m.record("UnflagPlayer", playerID, map[string]interface{}{"flag": flag})
}

func (m *GameServer) WatchPlayer(ctx context.Context, playerID, playerName, reason, by string) error {
	return m.record("WatchPlayer", playerID, map[string]interface{}{"player_name": playerName, "reason": reason, "by": by})
}

func (m *GameServer) SetBroadcast(ctx context.Context, message string) error {
	if err := m.record("SetBroadcast", "", map[string]interface{}{"message": message}); err != nil {
		return err
	}
	m.mu.Lock()
	m.broadcast = message
	m.mu.Unlock()
	return nil
}

func (m *GameServer) GetBroadcast(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.broadcast, m.Errors["GetBroadcast"]
}

func (m *GameServer) SwitchPlayerNow(ctx context.Context, playerID string) error {
	return m.record("SwitchPlayerNow", playerID, nil)
}

// Webhook is a mock implementation of service.WebhookSender.
type Webhook struct {
	Err error

	mu   sync.Mutex
	sent []WebhookMessage
}

// WebhookMessage records one webhook post.
type WebhookMessage struct {
	URL     string
	Content string
}

func (w *Webhook) Send(ctx context.Context, webhookURL, content string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sent = append(w.sent, WebhookMessage{URL: webhookURL, Content: content})
	return w.Err
}

// Sent returns a copy of the recorded posts.
func (w *Webhook) Sent() []WebhookMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]WebhookMessage, len(w.sent))
	copy(out, w.sent)
	return out
}
