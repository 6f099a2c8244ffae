package cache

import (
	"strings"
	"time"

	"signalist-api/internal/config"
)

// Namespace is the Redis key prefix for the Signalist application.
const Namespace = "signalist"

// TTLClass represents a config-driven TTL bucket.
type TTLClass string

const (
	TTLShort  TTLClass = "short"
	TTLMedium TTLClass = "medium"
	TTLLong   TTLClass = "long"
)

// TTLSet normalises cache TTLs from config into time.Duration values.
type TTLSet struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg config.CacheTTL) TTLSet {
	return TTLSet{
		Short:  durationOrDefault(cfg.Short, 10*time.Second),
		Medium: durationOrDefault(cfg.Medium, time.Minute),
		Long:   durationOrDefault(cfg.Long, 5*time.Minute),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// Duration returns the configured duration for the given TTL class.
func (t TTLSet) Duration(class TTLClass) time.Duration {
	switch class {
	case TTLShort:
		return t.Short
	case TTLMedium:
		return t.Medium
	case TTLLong:
		return t.Long
	default:
		return 0
	}
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// QuoteKey stores a cached snapshot for one symbol, used by batch consumers.
// Interactive watchlist aggregation always fetches fresh and never reads this.
func QuoteKey(symbol string) string {
	return formatKey("quote", strings.ToUpper(strings.TrimSpace(symbol)))
}

// WatchlistCountKey caches the membership count shown on profile badges.
func WatchlistCountKey(userID string) string {
	return formatKey("watchlist", "count", userID)
}

// QuoteTTL returns the short-lived TTL for cached quote snapshots.
func QuoteTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLShort)
}

// WatchlistCountTTL returns the TTL for membership count caches.
func WatchlistCountTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLMedium)
}
