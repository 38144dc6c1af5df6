// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AccelByte/extend-conditional-actions/pkg/action"
	"github.com/AccelByte/extend-conditional-actions/pkg/service/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupExecutor(t *testing.T) (*action.CommandExecutor, *mock.GameServer, *mock.Webhook) {
	t.Helper()
	gs := mock.NewGameServer()
	hook := &mock.Webhook{}
	registry := action.NewRegistry()
	require.NoError(t, RegisterActions(registry, &Dependencies{GameServer: gs, Webhook: hook}))
	require.Empty(t, registry.Missing())
	return action.NewCommandExecutor(registry), gs, hook
}

func TestRegisterActions_RequiresGameServer(t *testing.T) {
	assert.Error(t, RegisterActions(action.NewRegistry(), &Dependencies{}))
}

func TestHandlers_ModerationAttribution(t *testing.T) {
	executor, gs, _ := setupExecutor(t)

	batch := action.NewBatch("r1", "No TK", "player_team_kill", "p1", "Alice", []action.Action{
		action.KickPlayer{Reason: "Teamkilling is not allowed, {player_name}"},
		action.TempBanPlayer{Reason: "tk", DurationHours: 2},
		action.PermaBanPlayer{Reason: "cheat"},
		action.AddToWatchlist{Reason: "suspicious"},
	})

	res, err := executor.Dispatch(context.Background(), batch)
	require.NoError(t, err)
	require.True(t, res.AllSucceeded())

	kicks := gs.CallsTo("Kick")
	require.Len(t, kicks, 1)
	assert.Equal(t, "p1", kicks[0].PlayerID)
	assert.Equal(t, "Teamkilling is not allowed, Alice", kicks[0].Args["reason"])
	assert.Equal(t, "ConditionalAction[No TK]", kicks[0].Args["by"])

	bans := gs.CallsTo("TempBan")
	require.Len(t, bans, 1)
	assert.Equal(t, 2, bans[0].Args["duration_hours"])

	assert.Len(t, gs.CallsTo("PermaBan"), 1)
	assert.Equal(t, "ConditionalAction[No TK]", gs.CallsTo("WatchPlayer")[0].Args["by"])
}

func TestHandlers_FlagCommentDefault(t *testing.T) {
	executor, gs, _ := setupExecutor(t)

	batch := action.NewBatch("r1", "Flagger", "player_connected", "p1", "Alice", []action.Action{
		action.AddPlayerFlag{Flag: "🚩"},
		action.AddPlayerFlag{Flag: "⭐", Comment: "vip"},
		action.RemovePlayerFlag{Flag: "🚩"},
	})

	_, err := executor.Dispatch(context.Background(), batch)
	require.NoError(t, err)

	flags := gs.CallsTo("FlagPlayer")
	require.Len(t, flags, 2)
	assert.Equal(t, "Added by conditional action: Flagger", flags[0].Args["comment"])
	assert.Equal(t, "vip", flags[1].Args["comment"])
	assert.Len(t, gs.CallsTo("UnflagPlayer"), 1)
}

func TestHandlers_MessagesAndTeamSwitch(t *testing.T) {
	executor, gs, _ := setupExecutor(t)

	batch := action.NewBatch("r1", "Welcome", "player_connected", "p1", "Alice", []action.Action{
		action.MessagePlayer{Message: "Welcome {player_name}!"},
		action.MessageAllPlayers{Message: "{player_name} joined"},
		action.BroadcastMessage{Message: "Rule {rule_name} fired"},
		action.PunishPlayer{Reason: "x"},
		action.SwitchPlayerTeam{},
	})

	_, err := executor.Dispatch(context.Background(), batch)
	require.NoError(t, err)

	assert.Equal(t, "Welcome Alice!", gs.CallsTo("MessagePlayer")[0].Args["message"])
	assert.Equal(t, "Alice joined", gs.CallsTo("MessageAllPlayers")[0].Args["message"])
	assert.Equal(t, "Rule Welcome fired", gs.CallsTo("SetBroadcast")[0].Args["message"])
	assert.Len(t, gs.CallsTo("Punish"), 1)
	assert.Equal(t, "p1", gs.CallsTo("SwitchPlayerNow")[0].PlayerID)
}

func TestHandlers_GameServerErrorFailsOnlyThatAction(t *testing.T) {
	executor, gs, _ := setupExecutor(t)
	gs.WithError("Kick", errors.New("rcon down"))

	batch := action.NewBatch("r1", "Kick", "player_kill", "p1", "Alice", []action.Action{
		action.KickPlayer{Reason: "x"},
		action.MessageAllPlayers{Message: "y"},
	})

	res, err := executor.Dispatch(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed())
	assert.True(t, res.Results[1].Success)
}

func TestHandlers_DiscordWebhook(t *testing.T) {
	executor, _, hook := setupExecutor(t)

	batch := action.NewBatch("r1", "Report", "player_team_kill", "p1", "Alice", []action.Action{
		action.SendDiscordWebhook{WebhookURL: "https://discord.com/api/webhooks/1/x", Message: "{player_name} teamkilled"},
	})

	_, err := executor.Dispatch(context.Background(), batch)
	require.NoError(t, err)

	sent := hook.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Alice teamkilled", sent[0].Content)
}

func TestBroadcastRestorer_RestoresPrevious(t *testing.T) {
	gs := mock.NewGameServer().WithBroadcast("Welcome to the server")
	r := NewBroadcastRestorer(gs)
	ctx := context.Background()

	require.NoError(t, r.Show(ctx, "Match point!", 20*time.Millisecond))
	current, _ := gs.GetBroadcast(ctx)
	assert.Equal(t, "Match point!", current)
	assert.True(t, r.Active())

	// overlapping call keeps the original message for the restore
	require.NoError(t, r.Show(ctx, "Final minute!", 20*time.Millisecond))

	assert.Eventually(t, func() bool {
		msg, _ := gs.GetBroadcast(ctx)
		return msg == "Welcome to the server" && !r.Active()
	}, time.Second, 5*time.Millisecond)
}

func TestBroadcastRestorer_StopRestoresImmediately(t *testing.T) {
	gs := mock.NewGameServer().WithBroadcast("base")
	r := NewBroadcastRestorer(gs)
	ctx := context.Background()

	require.NoError(t, r.Show(ctx, "temp", time.Hour))
	r.Stop()

	msg, _ := gs.GetBroadcast(ctx)
	assert.Equal(t, "base", msg)
	assert.False(t, r.Active())
}

func TestRender(t *testing.T) {
	b := &action.Batch{RuleName: "r", PlayerID: "id", PlayerName: "name"}
	assert.Equal(t, "name/id/r", render("{player_name}/{player_id}/{rule_name}", b))
	assert.Equal(t, "plain", render("plain", b))
}
