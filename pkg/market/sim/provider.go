package sim

import (
	"context"
	"strings"
	"sync"

	"signalist-api/pkg/market"
)

func init() {
	market.RegisterProvider("sim", func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		return New(), nil
	})
}

// Provider is an in-memory market data source for development and tests.
// It serves snapshots only for symbols that have been seeded.
type Provider struct {
	mu        sync.RWMutex
	snapshots map[string]market.Snapshot
}

// New constructs an empty simulator instance.
func New() *Provider {
	return &Provider{
		snapshots: make(map[string]market.Snapshot),
	}
}

func canonical(symbol string) string { return strings.ToUpper(strings.TrimSpace(symbol)) }

// Seed registers or replaces the snapshot served for a symbol.
func (p *Provider) Seed(symbol string, snapshot market.Snapshot) {
	c := canonical(symbol)
	if c == "" {
		return
	}
	snapshot.Symbol = c
	if snapshot.Company == "" {
		snapshot.Company = c
	}
	p.mu.Lock()
	p.snapshots[c] = snapshot
	p.mu.Unlock()
}

// SeedPrice is a convenience wrapper that seeds a bare price snapshot.
func (p *Provider) SeedPrice(symbol, company string, price float64) {
	p.Seed(symbol, market.Snapshot{
		Company: company,
		Price:   market.PriceInfo{Current: price, PrevClose: price},
	})
}

// Remove drops a seeded symbol so later fetches report no data.
func (p *Provider) Remove(symbol string) {
	p.mu.Lock()
	delete(p.snapshots, canonical(symbol))
	p.mu.Unlock()
}

// Snapshot returns the seeded snapshot for the symbol, or market.ErrNoData.
func (p *Provider) Snapshot(ctx context.Context, symbol string) (*market.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	snapshot, ok := p.snapshots[canonical(symbol)]
	p.mu.RUnlock()
	if !ok {
		return nil, market.ErrNoData
	}
	out := snapshot
	return &out, nil
}
