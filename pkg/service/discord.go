// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

// DiscordWebhook posts messages to Discord webhooks. Rate limits and server
// errors are retried with exponential backoff; other client errors are not.
type DiscordWebhook struct {
	client *fasthttp.Client
	cfg    DiscordWebhookConfig
}

type DiscordWebhookConfig struct {
	Timeout    time.Duration
	MaxRetries uint64

	// Dial overrides the connection dialer, used by tests.
	Dial fasthttp.DialFunc

	// InitialInterval is the first backoff delay. Defaults to 500ms.
	InitialInterval time.Duration
}

// NewDiscordWebhook creates a webhook sender.
func NewDiscordWebhook(cfg DiscordWebhookConfig) *DiscordWebhook {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 500 * time.Millisecond
	}
	return &DiscordWebhook{
		client: &fasthttp.Client{
			Name:         "conditional-actions",
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
			Dial:         cfg.Dial,
		},
		cfg: cfg,
	}
}

// Send posts content to the webhook.
func (d *DiscordWebhook) Send(ctx context.Context, webhookURL, content string) error {
	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = d.cfg.InitialInterval
	policy := backoff.WithContext(backoff.WithMaxRetries(b, d.cfg.MaxRetries), ctx)

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		status, err := d.post(ctx, webhookURL, body)
		if err != nil {
			logrus.Warnf("discord webhook attempt %d failed: %v, retrying...", attempt, err)
			return err
		}
		switch {
		case status >= 200 && status < 300:
			return nil
		case status == fasthttp.StatusTooManyRequests || status >= 500:
			logrus.Warnf("discord webhook attempt %d returned %d, retrying...", attempt, status)
			return fmt.Errorf("discord webhook returned status %d", status)
		default:
			return backoff.Permanent(fmt.Errorf("discord webhook returned status %d", status))
		}
	}, policy)
}

// post makes one attempt, bounded by the configured timeout or the ctx
// deadline, whichever comes first.
func (d *DiscordWebhook) post(ctx context.Context, webhookURL string, body []byte) (int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(webhookURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline := time.Now().Add(d.cfg.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := d.client.DoDeadline(req, resp, deadline); err != nil {
		return 0, err
	}
	return resp.StatusCode(), nil
}
