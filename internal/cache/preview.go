// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// previewTTL keeps the cached next-date fresh enough that a stale entry
// can only survive between theme writes for a short window.
const previewTTL = 30 * time.Second

// SchedulePreview caches the next proposed publication date per website.
// The cache is advisory: on a miss or Valkey outage callers fall through
// to computing the date from the store, so correctness never depends on
// Valkey being up.
type SchedulePreview struct {
	client *redis.Client
}

// NewSchedulePreview creates a preview cache on the given Valkey client.
// A nil client disables caching entirely.
func NewSchedulePreview(client *redis.Client) *SchedulePreview {
	return &SchedulePreview{client: client}
}

func previewKey(websiteID uuid.UUID) string {
	return "schedule:next:" + websiteID.String()
}

// Get returns the cached next date for a website. ok is false on a
// miss, a disabled cache, or a Valkey error.
func (p *SchedulePreview) Get(ctx context.Context, websiteID uuid.UUID) (time.Time, bool) {
	if p.client == nil {
		return time.Time{}, false
	}

	val, err := p.client.Get(ctx, previewKey(websiteID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("schedule preview cache read failed", "error", err)
		}
		return time.Time{}, false
	}

	ts, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// Set stores the next date for a website. Failures are logged and
// swallowed.
func (p *SchedulePreview) Set(ctx context.Context, websiteID uuid.UUID, next time.Time) {
	if p.client == nil {
		return
	}
	if err := p.client.Set(ctx, previewKey(websiteID), next.Format(time.RFC3339), previewTTL).Err(); err != nil {
		slog.Warn("schedule preview cache write failed", "error", err)
	}
}

// Invalidate drops the cached date for a website. Called on every theme
// write so the preview can never lag behind a commit.
func (p *SchedulePreview) Invalidate(ctx context.Context, websiteID uuid.UUID) {
	if p.client == nil {
		return
	}
	if err := p.client.Del(ctx, previewKey(websiteID)).Err(); err != nil {
		slog.Warn("schedule preview cache invalidate failed", "error", err)
	}
}
