// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package export

import (
	"context"
	"log/slog"
	"sync"

	"github.com/olegiv/relay-go/internal/model"
)

// Publisher orchestrates the publish workflow: the artifact write is
// synchronous and decides the caller-visible result; the webhook
// notification and git sync are dispatched in the background with no return
// channel, and their failures are only ever logged. The Publisher never
// touches the database: callers flip the post status through the store
// before publishing and after artifact removal.
type Publisher struct {
	renderer *Renderer
	git      *GitSync  // nil when git sync is disabled
	notifier *Notifier // nil when no webhook target is configured
	logger   *slog.Logger

	// wg tracks in-flight background side effects so a process shutdown
	// can wait for them; publish callers never do.
	wg sync.WaitGroup
}

// NewPublisher composes the publish pipeline. git and notifier may be nil
// to disable the respective side effect.
func NewPublisher(renderer *Renderer, git *GitSync, notifier *Notifier, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{renderer: renderer, git: git, notifier: notifier, logger: logger}
}

// PublishPost writes the post artifact and dispatches the configured
// side effects. Success reflects the artifact write only: webhook and git
// failures are invisible to the caller.
func (p *Publisher) PublishPost(ctx context.Context, post *model.Post, tagNames []string, media []model.Media) (*Result, error) {
	result, err := p.renderer.Export(post, tagNames, media)
	if err != nil {
		return nil, err
	}

	if p.notifier != nil {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			wp := WebhookPost{ID: post.ID, Title: post.Title, Collection: post.Collection, Slug: post.Slug}
			if err := p.notifier.Notify(context.Background(), EventPostPublished, wp); err != nil {
				p.logger.Error("webhook notification failed", "post_id", post.ID, "error", err)
			}
		}()
	}

	if p.git != nil {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			if err := p.git.Sync(context.Background(), "publish: "+post.Title); err != nil {
				p.logger.Error("git sync failed", "post_id", post.ID, "error", err)
			}
		}()
	}

	return result, nil
}

// DeletePost removes the artifact at the post's deterministic path.
// Absence of the file is not an error.
func (p *Publisher) DeletePost(post *model.Post) error {
	return p.renderer.Remove(post)
}

// Wait blocks until all in-flight background side effects have finished.
// Intended for process shutdown and tests.
func (p *Publisher) Wait() {
	p.wg.Wait()
}
