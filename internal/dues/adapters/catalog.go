package adapters

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"kitledger/internal/catalog"
	platformredis "kitledger/internal/platform/redis"
)

const catalogSnapshotKey = "kitledger:snapshot:catalog"

// CatalogProvider reads catalog items from a store, caching the full snapshot
// in Redis when a cache client is configured.
type CatalogProvider struct {
	store  catalog.Store
	cache  *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCatalogProvider(store catalog.Store, cache *platformredis.Client, ttl time.Duration, logger *slog.Logger) *CatalogProvider {
	return &CatalogProvider{store: store, cache: cache, ttl: ttl, logger: logger}
}

func (p *CatalogProvider) Snapshot(ctx context.Context) ([]catalog.Item, error) {
	if p.cache != nil {
		payload, err := p.cache.Get(ctx, catalogSnapshotKey).Bytes()
		if err == nil {
			var items []catalog.Item
			if err := json.Unmarshal(payload, &items); err == nil {
				return items, nil
			}
			p.logger.Warn("discarding unreadable catalog snapshot cache entry", "key", catalogSnapshotKey)
		} else if err != goredis.Nil {
			p.logger.Warn("catalog snapshot cache read failed", "error", err)
		}
	}

	items, err := p.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		payload, err := json.Marshal(items)
		if err == nil {
			if err := p.cache.Set(ctx, catalogSnapshotKey, payload, p.ttl).Err(); err != nil {
				p.logger.Warn("catalog snapshot cache write failed", "error", err)
			}
		}
	}

	return items, nil
}
