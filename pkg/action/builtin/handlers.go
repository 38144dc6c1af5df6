// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-conditional-actions/pkg/action"
	"github.com/sirupsen/logrus"
)

type handlers struct {
	deps *Dependencies
}

func mismatch(want action.Type, got action.Action) error {
	return fmt.Errorf("handler for %s received %T", want, got)
}

func (h *handlers) messagePlayer(ctx context.Context, b *action.Batch, a action.Action) error {
	act, ok := a.(action.MessagePlayer)
	if !ok {
		return mismatch(action.TypeMessagePlayer, a)
	}
	msg := render(act.Message, b)
	if err := h.deps.GameServer.MessagePlayer(ctx, b.PlayerID, msg); err != nil {
		return err
	}
	logrus.Infof("[%s] messaged player %s: %s", b.RuleName, b.PlayerName, msg)
	return nil
}

func (h *handlers) messageAllPlayers(ctx context.Context, b *action.Batch, a action.Action) error {
	act, ok := a.(action.MessageAllPlayers)
	if !ok {
		return mismatch(action.TypeMessageAllPlayers, a)
	}
	msg := render(act.Message, b)
	if err := h.deps.GameServer.MessageAllPlayers(ctx, msg); err != nil {
		return err
	}
	logrus.Infof("[%s] messaged all players: %s", b.RuleName, msg)
	return nil
}

func (h *handlers) kickPlayer(ctx context.Context, b *action.Batch, a action.Action) error {
	act, ok := a.(action.KickPlayer)
	if !ok {
		return mismatch(action.TypeKickPlayer, a)
	}
	reason := render(act.Reason, b)
	if err := h.deps.GameServer.Kick(ctx, b.PlayerID, b.PlayerName, reason, actor(b)); err != nil {
		return err
	}
	logrus.Infof("[%s] kicked player %s: %s", b.RuleName, b.PlayerName, reason)
	return nil
}

func (h *handlers) punishPlayer(ctx context.Context, b *action.Batch, a action.Action) error {
	act, ok := a.(action.PunishPlayer)
	if !ok {
		return mismatch(action.TypePunishPlayer, a)
	}
	reason := render(act.Reason, b)
	if err := h.deps.GameServer.Punish(ctx, b.PlayerID, reason); err != nil {
		return err
	}
	logrus.Infof("[%s] punished player %s: %s", b.RuleName, b.PlayerName, reason)
	return nil
}

func (h *handlers) tempBanPlayer(ctx context.Context, b *action.Batch, a action.Action) error {
	act, ok := a.(action.TempBanPlayer)
	if !ok {
		return mismatch(action.TypeTempBanPlayer, a)
	}
	reason := render(act.Reason, b)
	if err := h.deps.GameServer.TempBan(ctx, b.PlayerID, b.PlayerName, act.DurationHours, reason, actor(b)); err != nil {
		return err
	}
	logrus.Infof("[%s] temp banned player %s for %dh: %s", b.RuleName, b.PlayerName, act.DurationHours, reason)
	return nil
}

func (h *handlers) permaBanPlayer(ctx context.Context, b *action.Batch, a action.Action) error {
	act, ok := a.(action.PermaBanPlayer)
	if !ok {
		return mismatch(action.TypePermaBanPlayer, a)
	}
	reason := render(act.Reason, b)
	if err := h.deps.GameServer.PermaBan(ctx, b.PlayerID, b.PlayerName, reason, actor(b)); err != nil {
		return err
	}
	logrus.Infof("[%s] perma banned player %s: %s", b.RuleName, b.PlayerName, reason)
	return nil
}

func (h *handlers) addPlayerFlag(ctx context.Context, b *action.Batch, a action.Action) error {
	act, ok := a.(action.AddPlayerFlag)
	if !ok {
		return mismatch(action.TypeAddPlayerFlag, a)
	}
	comment := render(act.Comment, b)
	if comment == "" {
		comment = fmt.Sprintf("Added by conditional action: %s", b.RuleName)
	}
	if err := h.deps.GameServer.FlagPlayer(ctx, b.PlayerID, b.PlayerName, act.Flag, comment); err != nil {
		return err
	}
	logrus.Infof("[%s] added flag '%s' to player %s", b.RuleName, act.Flag, b.PlayerName)
	return nil
}

func (h *handlers) removePlayerFlag(ctx context.Context, b *action.Batch, a action.Action) error {
	act, ok := a.(action.RemovePlayerFlag)
	if !ok {
		return mismatch(action.TypeRemovePlayerFlag, a)
	}
	if err := h.deps.GameServer.UnflagPlayer(ctx, b.PlayerID, act.Flag); err != nil {
		return err
	}
	logrus.Infof("[%s] removed flag '%s' from player %s", b.RuleName, act.Flag, b.PlayerName)
	return nil
}

func (h *handlers) addToWatchlist(ctx context.Context, b *action.Batch, a action.Action) error {
	act, ok := a.(action.AddToWatchlist)
	if !ok {
		return mismatch(action.TypeAddToWatchlist, a)
	}
	reason := render(act.Reason, b)
	if err := h.deps.GameServer.WatchPlayer(ctx, b.PlayerID, b.PlayerName, reason, actor(b)); err != nil {
		return err
	}
	logrus.Infof("[%s] added player %s to watchlist", b.RuleName, b.PlayerName)
	return nil
}

func (h *handlers) broadcastMessage(ctx context.Context, b *action.Batch, a action.Action) error {
	act, ok := a.(action.BroadcastMessage)
	if !ok {
		return mismatch(action.TypeBroadcastMessage, a)
	}
	msg := render(act.Message, b)
	if err := h.deps.GameServer.SetBroadcast(ctx, msg); err != nil {
		return err
	}
	logrus.Infof("[%s] set broadcast: %s", b.RuleName, msg)
	return nil
}

func (h *handlers) temporaryBroadcast(ctx context.Context, b *action.Batch, a action.Action) error {
	act, ok := a.(action.TemporaryBroadcast)
	if !ok {
		return mismatch(action.TypeTemporaryBroadcast, a)
	}
	msg := render(act.Message, b)
	if err := h.deps.Broadcasts.Show(ctx, msg, act.Duration()); err != nil {
		return err
	}
	logrus.Infof("[%s] set temporary broadcast for %ds: %s", b.RuleName, act.DurationSeconds, msg)
	return nil
}

func (h *handlers) sendDiscordWebhook(ctx context.Context, b *action.Batch, a action.Action) error {
	act, ok := a.(action.SendDiscordWebhook)
	if !ok {
		return mismatch(action.TypeSendDiscordWebhook, a)
	}
	if h.deps.Webhook == nil {
		logrus.Infof("[NO-OP] [%s] discord webhook: %s", b.RuleName, act.Message)
		return nil
	}
	msg := render(act.Message, b)
	if err := h.deps.Webhook.Send(ctx, act.WebhookURL, msg); err != nil {
		return err
	}
	logrus.Infof("[%s] sent discord webhook: %s", b.RuleName, msg)
	return nil
}

func (h *handlers) switchPlayerTeam(ctx context.Context, b *action.Batch, a action.Action) error {
	if err := h.deps.GameServer.SwitchPlayerNow(ctx, b.PlayerID); err != nil {
		return err
	}
	logrus.Infof("[%s] switched player %s to opposite team", b.RuleName, b.PlayerName)
	return nil
}
