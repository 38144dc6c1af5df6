// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

// Dependencies holds the external services that action handlers can use.
// Components receive this struct and can access only the services they need.
type Dependencies struct {
	GameServer GameServer
	Webhook    WebhookSender
}

// NewDependencies creates a new dependencies container.
// Services can be nil if not needed - components should handle nil gracefully.
func NewDependencies() *Dependencies {
	return &Dependencies{}
}

// WithGameServer sets the game server command client.
func (d *Dependencies) WithGameServer(gs GameServer) *Dependencies {
	d.GameServer = gs
	return d
}

// WithWebhook sets the webhook sender.
func (d *Dependencies) WithWebhook(w WebhookSender) *Dependencies {
	d.Webhook = w
	return d
}
