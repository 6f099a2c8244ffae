package cli

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"signalist-api/internal/config"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	marketLine := "Market config: <none>"
	if cfg.Market.Value != nil {
		marketLine = fmt.Sprintf("Market config: %s (default=%s)", cfg.Market.File, cfg.Market.Value.Default)
	}

	return []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Postgres: %s", presence(cfg.Postgres.DSN != "")),
		fmt.Sprintf("Redis: %s", presence(strings.TrimSpace(cfg.Redis.Host) != "")),
		fmt.Sprintf("TTL (short/medium/long): %ds / %ds / %ds", cfg.TTL.Short, cfg.TTL.Medium, cfg.TTL.Long),
		fmt.Sprintf("Watchlist fan-out cap: %d", cfg.Watchlist.MaxConcurrentFetches),
		marketLine,
	}
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	for _, line := range ConfigSummaryLines(cfg) {
		logx.Infof("%s", line)
	}
}

func presence(configured bool) string {
	if configured {
		return "configured"
	}
	return "not configured"
}
