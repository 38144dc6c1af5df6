// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package action defines the typed actions a rule can perform and the
// executor boundary that carries them out.
package action

import "time"

// Type identifies an action variant.
type Type string

const (
	TypeMessagePlayer      Type = "message_player"
	TypeMessageAllPlayers  Type = "message_all_players"
	TypeKickPlayer         Type = "kick_player"
	TypePunishPlayer       Type = "punish_player"
	TypeTempBanPlayer      Type = "temp_ban_player"
	TypePermaBanPlayer     Type = "perma_ban_player"
	TypeAddPlayerFlag      Type = "add_player_flag"
	TypeRemovePlayerFlag   Type = "remove_player_flag"
	TypeAddToWatchlist     Type = "add_to_watchlist"
	TypeBroadcastMessage   Type = "broadcast_message"
	TypeTemporaryBroadcast Type = "temporary_broadcast"
	TypeSendDiscordWebhook Type = "send_discord_webhook"
	TypeSwitchPlayerTeam   Type = "switch_player_team"
)

// Action is one step of a rule's response. Each variant carries its
// parameters as typed fields.
type Action interface {
	// Type returns the variant identifier.
	Type() Type

	// Parameters returns the wire form of the variant's fields.
	Parameters() map[string]interface{}
}

type MessagePlayer struct {
	Message string
}

func (MessagePlayer) Type() Type { return TypeMessagePlayer }
func (a MessagePlayer) Parameters() map[string]interface{} {
	return map[string]interface{}{"message": a.Message}
}

type MessageAllPlayers struct {
	Message string
}

func (MessageAllPlayers) Type() Type { return TypeMessageAllPlayers }
func (a MessageAllPlayers) Parameters() map[string]interface{} {
	return map[string]interface{}{"message": a.Message}
}

type KickPlayer struct {
	Reason string
}

func (KickPlayer) Type() Type { return TypeKickPlayer }
func (a KickPlayer) Parameters() map[string]interface{} {
	return map[string]interface{}{"reason": a.Reason}
}

type PunishPlayer struct {
	Reason string
}

func (PunishPlayer) Type() Type { return TypePunishPlayer }
func (a PunishPlayer) Parameters() map[string]interface{} {
	return map[string]interface{}{"reason": a.Reason}
}

type TempBanPlayer struct {
	Reason        string
	DurationHours int
}

func (TempBanPlayer) Type() Type { return TypeTempBanPlayer }
func (a TempBanPlayer) Parameters() map[string]interface{} {
	return map[string]interface{}{"reason": a.Reason, "duration_hours": a.DurationHours}
}

// Duration returns the ban length.
func (a TempBanPlayer) Duration() time.Duration {
	return time.Duration(a.DurationHours) * time.Hour
}

type PermaBanPlayer struct {
	Reason string
}

func (PermaBanPlayer) Type() Type { return TypePermaBanPlayer }
func (a PermaBanPlayer) Parameters() map[string]interface{} {
	return map[string]interface{}{"reason": a.Reason}
}

// AddPlayerFlag flags a player. Comment is optional.
type AddPlayerFlag struct {
	Flag    string
	Comment string
}

func (AddPlayerFlag) Type() Type { return TypeAddPlayerFlag }
func (a AddPlayerFlag) Parameters() map[string]interface{} {
	p := map[string]interface{}{"flag": a.Flag}
	if a.Comment != "" {
		p["comment"] = a.Comment
	}
	return p
}

type RemovePlayerFlag struct {
	Flag string
}

func (RemovePlayerFlag) Type() Type { return TypeRemovePlayerFlag }
func (a RemovePlayerFlag) Parameters() map[string]interface{} {
	return map[string]interface{}{"flag": a.Flag}
}

type AddToWatchlist struct {
	Reason string
}

func (AddToWatchlist) Type() Type { return TypeAddToWatchlist }
func (a AddToWatchlist) Parameters() map[string]interface{} {
	return map[string]interface{}{"reason": a.Reason}
}

type BroadcastMessage struct {
	Message string
}

func (BroadcastMessage) Type() Type { return TypeBroadcastMessage }
func (a BroadcastMessage) Parameters() map[string]interface{} {
	return map[string]interface{}{"message": a.Message}
}

// TemporaryBroadcast replaces the broadcast and restores the previous one
// after the duration.
type TemporaryBroadcast struct {
	Message         string
	DurationSeconds int
}

func (TemporaryBroadcast) Type() Type { return TypeTemporaryBroadcast }
func (a TemporaryBroadcast) Parameters() map[string]interface{} {
	return map[string]interface{}{"message": a.Message, "duration_seconds": a.DurationSeconds}
}

func (a TemporaryBroadcast) Duration() time.Duration {
	return time.Duration(a.DurationSeconds) * time.Second
}

type SendDiscordWebhook struct {
	WebhookURL string
	Message    string
}

func (SendDiscordWebhook) Type() Type { return TypeSendDiscordWebhook }
func (a SendDiscordWebhook) Parameters() map[string]interface{} {
	return map[string]interface{}{"webhook_url": a.WebhookURL, "message": a.Message}
}

type SwitchPlayerTeam struct{}

func (SwitchPlayerTeam) Type() Type { return TypeSwitchPlayerTeam }
func (SwitchPlayerTeam) Parameters() map[string]interface{} {
	return map[string]interface{}{}
}
