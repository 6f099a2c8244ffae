package market

import (
	"context"
	"errors"
)

// ErrNoData indicates the provider is reachable but carries no data for the
// requested symbol. Callers must treat it differently from transport faults:
// an unknown ticker is not a provider outage.
var ErrNoData = errors.New("market: no data for symbol")

// Provider exposes provider-agnostic stock market data.
type Provider interface {
	// Snapshot returns a point-in-time view of price and valuation data for
	// the given ticker symbol. Returns ErrNoData when the provider does not
	// recognise the symbol.
	Snapshot(ctx context.Context, symbol string) (*Snapshot, error)
}

// Snapshot captures a normalized market view for one stock symbol.
type Snapshot struct {
	Symbol  string     // Canonical ticker, e.g. "AAPL"
	Company string     // Provider's canonical company name
	Price   PriceInfo  // Latest trade data
	Change  ChangeInfo // Movement since previous close
	// MarketCap is the market capitalization in millions of USD.
	// Zero when the provider does not report it.
	MarketCap float64
	// PERatio is the trailing price/earnings ratio, nil when not reported
	// (loss-making or unrated instruments).
	PERatio *float64
}

// PriceInfo holds last trade data for the current session.
type PriceInfo struct {
	Current   float64
	Open      float64
	High      float64
	Low       float64
	PrevClose float64
}

// ChangeInfo describes the move relative to the previous close.
type ChangeInfo struct {
	Absolute float64 // in quote currency
	Percent  float64 // e.g. 1.25 == +1.25%
}
