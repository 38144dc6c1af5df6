// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ruleset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AccelByte/extend-conditional-actions/pkg/action"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
enabled: true
rules:
  - id: tk-report
    name: Team kill report
    trigger_event: player_team_kill
    conditions:
      - field: teamkills
        operator: greater_than_or_equal
        value: 3
    actions:
      - action_type: send_discord_webhook
        parameters:
          webhook_url: ${TK_WEBHOOK_URL:https://discord.com/api/webhooks/1/default}
          message: "{player_name} reached 3 team kills"
    cooldown_seconds: 300
`

func TestLoadSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	t.Run("default value", func(t *testing.T) {
		t.Setenv("TK_WEBHOOK_URL", "")
		rs, err := LoadSeed(path)
		require.NoError(t, err)

		require.Len(t, rs.Rules, 1)
		r := rs.Rules[0]
		assert.Equal(t, 300, r.CooldownSeconds)
		assert.Equal(t, action.SendDiscordWebhook{
			WebhookURL: "https://discord.com/api/webhooks/1/default",
			Message:    "{player_name} reached 3 team kills",
		}, r.Actions[0])
	})

	t.Run("environment override", func(t *testing.T) {
		t.Setenv("TK_WEBHOOK_URL", "https://example.com/hook")
		rs, err := LoadSeed(path)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/hook", rs.Rules[0].Actions[0].(action.SendDiscordWebhook).WebhookURL)
	})
}

func TestLoadSeed_Errors(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = ParseYAML([]byte("rules: [\n"))
	assert.Error(t, err)

	_, err = ParseYAML([]byte("rules:\n  - id: x\n    trigger_event: nope\n"))
	assert.Error(t, err)
}

func TestParseYAML_EmptyDocument(t *testing.T) {
	rs, err := ParseYAML([]byte(""))
	require.NoError(t, err)
	assert.False(t, rs.Enabled)
}
