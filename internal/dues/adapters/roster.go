// Package adapters bridges the dues engine ports to concrete stores, with an
// optional Redis snapshot cache in front of each source.
package adapters

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	platformredis "kitledger/internal/platform/redis"
	"kitledger/internal/roster"
)

const rosterSnapshotKey = "kitledger:snapshot:roster"

// RosterProvider reads the student roster from a store, caching the full
// snapshot in Redis when a cache client is configured. Cache failures are
// logged and fall through to the store.
type RosterProvider struct {
	store  roster.Store
	cache  *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRosterProvider(store roster.Store, cache *platformredis.Client, ttl time.Duration, logger *slog.Logger) *RosterProvider {
	return &RosterProvider{store: store, cache: cache, ttl: ttl, logger: logger}
}

func (p *RosterProvider) Snapshot(ctx context.Context) ([]roster.Student, error) {
	if p.cache != nil {
		payload, err := p.cache.Get(ctx, rosterSnapshotKey).Bytes()
		if err == nil {
			var students []roster.Student
			if err := json.Unmarshal(payload, &students); err == nil {
				return students, nil
			}
			// Poisoned entry, rebuild from the store.
			p.logger.Warn("discarding unreadable roster snapshot cache entry", "key", rosterSnapshotKey)
		} else if err != goredis.Nil {
			p.logger.Warn("roster snapshot cache read failed", "error", err)
		}
	}

	students, err := p.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		payload, err := json.Marshal(students)
		if err == nil {
			if err := p.cache.Set(ctx, rosterSnapshotKey, payload, p.ttl).Err(); err != nil {
				p.logger.Warn("roster snapshot cache write failed", "error", err)
			}
		}
	}

	return students, nil
}
