// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package builtin provides the handlers for every action type, backed by
// the game server command API and a webhook sender.
package builtin

import (
	"fmt"

	"github.com/AccelByte/extend-conditional-actions/pkg/action"
	"github.com/AccelByte/extend-conditional-actions/pkg/service"
	"github.com/sirupsen/logrus"
)

// Dependencies holds dependencies needed by built-in handlers.
type Dependencies struct {
	GameServer service.GameServer
	Webhook    service.WebhookSender
	Broadcasts *BroadcastRestorer
}

// RegisterActions binds a handler for every action type.
func RegisterActions(registry *action.Registry, deps *Dependencies) error {
	if deps == nil || deps.GameServer == nil {
		return fmt.Errorf("built-in actions require a game server")
	}
	if deps.Broadcasts == nil {
		deps.Broadcasts = NewBroadcastRestorer(deps.GameServer)
	}

	h := &handlers{deps: deps}
	bindings := map[action.Type]action.HandlerFunc{
		action.TypeMessagePlayer:      h.messagePlayer,
		action.TypeMessageAllPlayers:  h.messageAllPlayers,
		action.TypeKickPlayer:         h.kickPlayer,
		action.TypePunishPlayer:       h.punishPlayer,
		action.TypeTempBanPlayer:      h.tempBanPlayer,
		action.TypePermaBanPlayer:     h.permaBanPlayer,
		action.TypeAddPlayerFlag:      h.addPlayerFlag,
		action.TypeRemovePlayerFlag:   h.removePlayerFlag,
		action.TypeAddToWatchlist:     h.addToWatchlist,
		action.TypeBroadcastMessage:   h.broadcastMessage,
		action.TypeTemporaryBroadcast: h.temporaryBroadcast,
		action.TypeSendDiscordWebhook: h.sendDiscordWebhook,
		action.TypeSwitchPlayerTeam:   h.switchPlayerTeam,
	}

	for _, t := range action.Types() {
		if err := registry.Register(t, bindings[t]); err != nil {
			return err
		}
	}

	logrus.Infof("registered %d built-in action handlers", len(bindings))
	return nil
}
