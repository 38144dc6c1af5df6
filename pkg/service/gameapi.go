// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

const gameAPIDefaultTimeout = 5 * time.Second

// GameAPIClient talks to the game server's HTTP command API. Every endpoint
// answers with a {result, command, failed, error} envelope.
type GameAPIClient struct {
	client *fasthttp.Client
	cfg    GameAPIClientConfig
}

type GameAPIClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration

	// Dial overrides the connection dialer, used by tests.
	Dial fasthttp.DialFunc
}

// NewGameAPIClient creates a client for the game server API.
func NewGameAPIClient(cfg GameAPIClientConfig) *GameAPIClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = gameAPIDefaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &GameAPIClient{
		client: &fasthttp.Client{
			Name:                "conditional-actions",
			MaxConnsPerHost:     64,
			MaxIdleConnDuration: 90 * time.Second,
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			Dial:                cfg.Dial,
		},
		cfg: cfg,
	}
}

type apiEnvelope struct {
	Result  json.RawMessage `json:"result"`
	Command string          `json:"command"`
	Failed  bool            `json:"failed"`
	Error   *string         `json:"error"`
}

// call performs one API command. body is sent as JSON when non-nil; out
// receives the decoded result when non-nil.
func (c *GameAPIClient) call(ctx context.Context, method, command string, query url.Values, body, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timeout := c.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	uri := c.cfg.BaseURL + "/api/" + command
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}
	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s request: %w", command, err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(data)
	}

	if err := c.client.DoTimeout(req, resp, timeout); err != nil {
		return fmt.Errorf("%s request failed: %w", command, err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return fmt.Errorf("%s returned status %d", command, status)
	}

	var env apiEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", command, err)
	}
	if env.Failed {
		msg := "unknown error"
		if env.Error != nil {
			msg = *env.Error
		}
		return fmt.Errorf("%s failed: %s", command, msg)
	}
	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", command, err)
		}
	}

	logrus.Debugf("game api %s completed", command)
	return nil
}

func (c *GameAPIClient) post(ctx context.Context, command string, body interface{}) error {
	return c.call(ctx, fasthttp.MethodPost, command, nil, body, nil)
}

func (c *GameAPIClient) MessagePlayer(ctx context.Context, playerID, message string) error {
	return c.post(ctx, "message_player", map[string]interface{}{"player_id": playerID, "message": message})
}

func (c *GameAPIClient) MessageAllPlayers(ctx context.Context, message string) error {
	return c.post(ctx, "message_all_players", map[string]interface{}{"message": message})
}

func (c *GameAPIClient) Kick(ctx context.Context, playerID, playerName, reason, by string) error {
	return c.post(ctx, "kick", map[string]interface{}{
		"player_id": playerID, "player_name": playerName, "reason": reason, "by": by,
	})
}

func (c *GameAPIClient) Punish(ctx context.Context, playerID, reason string) error {
	return c.post(ctx, "punish", map[string]interface{}{"player_id": playerID, "reason": reason})
}

func (c *GameAPIClient) TempBan(ctx context.Context, playerID, playerName string, durationHours int, reason, by string) error {
	return c.post(ctx, "temp_ban", map[string]interface{}{
		"player_id": playerID, "player_name": playerName, "duration_hours": durationHours, "reason": reason, "by": by,
	})
}

func (c *GameAPIClient) PermaBan(ctx context.Context, playerID, playerName, reason, by string) error {
	return c.post(ctx, "perma_ban", map[string]interface{}{
		"player_id": playerID, "player_name": playerName, "reason": reason, "by": by,
	})
}

func (c *GameAPIClient) FlagPlayer(ctx context.Context, playerID, playerName, flag, comment string) error {
	return c.post(ctx, "flag_player", map[string]interface{}{
		"player_id": playerID, "player_name": playerName, "flag": flag, "comment": comment,
	})
}

func (c *GameAPIClient) UnflagPlayer(ctx context.Context, playerID, flag string) error {
	return c.post(ctx, "unflag_player", map[string]interface{}{"player_id": playerID, "flag": flag})
}

func (c *GameAPIClient) WatchPlayer(ctx context.Context, playerID, playerName, reason, by string) error {
	return c.post(ctx, "watch_player", map[string]interface{}{
		"player_id": playerID, "player_name": playerName, "reason": reason, "by": by,
	})
}

func (c *GameAPIClient) SetBroadcast(ctx context.Context, message string) error {
	return c.post(ctx, "set_broadcast", map[string]interface{}{"message": message})
}

func (c *GameAPIClient) GetBroadcast(ctx context.Context) (string, error) {
	var msg string
	if err := c.call(ctx, fasthttp.MethodGet, "get_broadcast_message", nil, nil, &msg); err != nil {
		return "", err
	}
	return msg, nil
}

func (c *GameAPIClient) SwitchPlayerNow(ctx context.Context, playerID string) error {
	return c.post(ctx, "switch_player_now", map[string]interface{}{"player_id": playerID})
}

func (c *GameAPIClient) GetDetailedPlayers(ctx context.Context) (map[string]*PlayerInfo, error) {
	var result struct {
		Players map[string]*PlayerInfo `json:"players"`
	}
	if err := c.call(ctx, fasthttp.MethodGet, "get_detailed_players", nil, nil, &result); err != nil {
		return nil, err
	}
	for id, p := range result.Players {
		if p != nil && p.PlayerID == "" {
			p.PlayerID = id
		}
	}
	return result.Players, nil
}

func (c *GameAPIClient) GetGameState(ctx context.Context) (*GameState, error) {
	var gs GameState
	if err := c.call(ctx, fasthttp.MethodGet, "get_gamestate", nil, nil, &gs); err != nil {
		return nil, err
	}
	return &gs, nil
}

func (c *GameAPIClient) GetPlayerProfile(ctx context.Context, playerID string) (*PlayerProfile, error) {
	var profile PlayerProfile
	query := url.Values{"player_id": []string{playerID}}
	if err := c.call(ctx, fasthttp.MethodGet, "get_player_profile", query, nil, &profile); err != nil {
		return nil, err
	}
	if profile.PlayerID == "" {
		profile.PlayerID = playerID
	}
	return &profile, nil
}
