package repo

import (
	"context"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"

	cachekeys "signalist-api/internal/cache"
	"signalist-api/pkg/market"
)

// QuoteRepo serves market snapshots through a short-TTL Redis cache.
//
// Only batch consumers (the digest job) read through this repo; the interactive
// watchlist aggregation bypasses it so every page load reflects live data.
type QuoteRepo struct {
	provider market.Provider
	rds      *redis.Redis
	ttl      cachekeys.TTLSet
}

// NewQuoteRepo wires a cached quote repo. A nil redis client disables caching.
func NewQuoteRepo(provider market.Provider, rds *redis.Redis, ttl cachekeys.TTLSet) *QuoteRepo {
	return &QuoteRepo{provider: provider, rds: rds, ttl: ttl}
}

// Snapshot returns the cached snapshot for symbol, fetching and caching on miss.
func (r *QuoteRepo) Snapshot(ctx context.Context, symbol string) (*market.Snapshot, error) {
	key := cachekeys.QuoteKey(symbol)

	if r.rds != nil {
		blob, err := r.rds.GetCtx(ctx, key)
		if err != nil {
			logx.WithContext(ctx).Errorf("get cache %s: %v", key, err)
		} else if blob != "" {
			var snapshot market.Snapshot
			if err := msgpack.Unmarshal([]byte(blob), &snapshot); err == nil {
				return &snapshot, nil
			}
			logx.WithContext(ctx).Errorf("decode cached quote %s: %v", key, err)
		}
	}

	snapshot, err := r.provider.Snapshot(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if r.rds != nil {
		if blob, err := msgpack.Marshal(snapshot); err == nil {
			seconds := int(cachekeys.QuoteTTL(r.ttl) / time.Second)
			if seconds > 0 {
				if err := r.rds.SetexCtx(ctx, key, string(blob), seconds); err != nil {
					logx.WithContext(ctx).Errorf("set cache %s: %v", key, err)
				}
			}
		}
	}
	return snapshot, nil
}
