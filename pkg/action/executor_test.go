// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import (
	"context"
	"errors"
	"testing"
)

// recordingHandler records handled actions and optionally fails.
type recordingHandler struct {
	handled []Action
	fail    error
}

func (h *recordingHandler) Handle(ctx context.Context, batch *Batch, a Action) error {
	h.handled = append(h.handled, a)
	return h.fail
}

func TestCommandExecutor_RunsActionsInOrder(t *testing.T) {
	registry := NewRegistry()
	h := &recordingHandler{}
	if err := registry.Register(TypeMessagePlayer, h); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := registry.Register(TypeBroadcastMessage, h); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	executor := NewCommandExecutor(registry)
	batch := NewBatch("r1", "Welcome", "player_connected", "p1", "Alice", []Action{
		MessagePlayer{Message: "first"},
		BroadcastMessage{Message: "second"},
		MessagePlayer{Message: "third"},
	})

	res, err := executor.Dispatch(context.Background(), batch)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if !res.AllSucceeded() {
		t.Fatalf("expected all actions to succeed, %d failed", res.Failed())
	}
	if res.BatchID != batch.ID {
		t.Errorf("BatchID = %s, expected %s", res.BatchID, batch.ID)
	}
	if len(h.handled) != 3 {
		t.Fatalf("handled %d actions, expected 3", len(h.handled))
	}
	if m := h.handled[2].(MessagePlayer).Message; m != "third" {
		t.Errorf("third action message = %q", m)
	}
}

func TestCommandExecutor_IsolatesFailures(t *testing.T) {
	registry := NewRegistry()
	failing := &recordingHandler{fail: errors.New("rcon timeout")}
	ok := &recordingHandler{}
	_ = registry.Register(TypeKickPlayer, failing)
	_ = registry.Register(TypeMessageAllPlayers, ok)

	batch := NewBatch("r1", "Kick", "player_kill", "p1", "Alice", []Action{
		KickPlayer{Reason: "bad"},
		MessageAllPlayers{Message: "kicked"},
		PunishPlayer{Reason: "no handler"},
	})

	res, err := NewCommandExecutor(registry).Dispatch(context.Background(), batch)
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if res.Failed() != 2 {
		t.Fatalf("Failed() = %d, expected 2", res.Failed())
	}
	if res.Results[0].Success || !res.Results[1].Success {
		t.Errorf("unexpected results: %+v %+v", res.Results[0], res.Results[1])
	}
	if !errors.Is(res.Results[2].Err, ErrHandlerNotFound) {
		t.Errorf("expected ErrHandlerNotFound, got %v", res.Results[2].Err)
	}
	if len(ok.handled) != 1 {
		t.Errorf("later action should still run")
	}
}

func TestCommandExecutor_PlayerTargetedWithoutPlayer(t *testing.T) {
	registry := NewRegistry()
	h := &recordingHandler{}
	_ = registry.Register(TypeMessagePlayer, h)
	_ = registry.Register(TypeMessageAllPlayers, h)

	batch := NewBatch("r1", "Match", "match_start", "", "", []Action{
		MessagePlayer{Message: "hi"},
		MessageAllPlayers{Message: "gl hf"},
	})

	res, _ := NewCommandExecutor(registry).Dispatch(context.Background(), batch)
	if !errors.Is(res.Results[0].Err, ErrMissingPlayerContext) {
		t.Errorf("expected ErrMissingPlayerContext, got %v", res.Results[0].Err)
	}
	if !res.Results[1].Success {
		t.Errorf("server wide action should succeed: %v", res.Results[1].Err)
	}
}

func TestCommandExecutor_CancelledContext(t *testing.T) {
	registry := NewRegistry()
	_ = registry.Register(TypeMessagePlayer, &recordingHandler{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := NewBatch("r1", "Welcome", "player_connected", "p1", "Alice", []Action{MessagePlayer{Message: "hi"}})
	res, err := NewCommandExecutor(registry).Dispatch(ctx, batch)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !errors.Is(res.Results[0].Err, ErrBatchAborted) {
		t.Errorf("expected ErrBatchAborted, got %v", res.Results[0].Err)
	}
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()
	h := &recordingHandler{}

	if err := registry.Register(TypeMessagePlayer, h); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := registry.Register(TypeMessagePlayer, h); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if err := registry.Register("launch_rocket", h); !errors.Is(err, ErrUnknownActionType) {
		t.Errorf("expected ErrUnknownActionType, got %v", err)
	}
	if registry.Get(TypeMessagePlayer) == nil {
		t.Error("Get() returned nil for registered type")
	}
	if got := len(registry.Missing()); got != len(Types())-1 {
		t.Errorf("Missing() = %d types, expected %d", got, len(Types())-1)
	}
}
