// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// userAgent is the User-Agent header value for webhook requests.
const userAgent = "relay/1.0"

// EventPostPublished is the event name sent when a post is published.
const EventPostPublished = "post.published"

// WebhookPayload is the JSON body of a webhook notification.
type WebhookPayload struct {
	Event string      `json:"event"`
	Post  WebhookPost `json:"post"`
}

// WebhookPost is the post summary included in a webhook payload.
type WebhookPost struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Collection string `json:"collection"`
	Slug       string `json:"slug"`
}

// Notifier delivers a single webhook notification per publish: one attempt,
// bounded by the configured timeout, no retry and no delivery guarantee.
type Notifier struct {
	url     string
	timeout time.Duration
	client  *http.Client
	logger  *slog.Logger
}

// NewNotifier creates a Notifier for the given target URL.
func NewNotifier(url string, timeout time.Duration, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		url:     url,
		timeout: timeout,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// Notify POSTs the event payload to the configured target. The caller is
// expected to log and swallow any returned error; a failed notification
// never fails a publish.
func (n *Notifier) Notify(ctx context.Context, event string, post WebhookPost) error {
	payload, err := json.Marshal(WebhookPayload{Event: event, Post: post})
	if err != nil {
		return fmt.Errorf("marshaling webhook payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Webhook-Event", event)

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}

	n.logger.Info("webhook notified", "event", event, "post_id", post.ID, "status", resp.StatusCode)
	return nil
}
