package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalist-api/pkg/market"
)

func TestSeedAndSnapshot(t *testing.T) {
	p := New()
	p.SeedPrice("aapl", "Apple Inc", 227.52)

	snapshot, err := p.Snapshot(context.Background(), " AAPL ")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", snapshot.Symbol)
	assert.Equal(t, "Apple Inc", snapshot.Company)
	assert.InDelta(t, 227.52, snapshot.Price.Current, 1e-9)
}

func TestSnapshotUnseededSymbol(t *testing.T) {
	p := New()
	_, err := p.Snapshot(context.Background(), "ZZZZ")
	assert.ErrorIs(t, err, market.ErrNoData)
}

func TestSeedDefaultsCompanyToSymbol(t *testing.T) {
	p := New()
	p.Seed("tsla", market.Snapshot{Price: market.PriceInfo{Current: 242.12}})

	snapshot, err := p.Snapshot(context.Background(), "TSLA")
	require.NoError(t, err)
	assert.Equal(t, "TSLA", snapshot.Company)
}

func TestRemove(t *testing.T) {
	p := New()
	p.SeedPrice("AAPL", "Apple Inc", 227.52)
	p.Remove("aapl")

	_, err := p.Snapshot(context.Background(), "AAPL")
	assert.ErrorIs(t, err, market.ErrNoData)
}

func TestSnapshotHonoursCancelledContext(t *testing.T) {
	p := New()
	p.SeedPrice("AAPL", "Apple Inc", 227.52)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Snapshot(ctx, "AAPL")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSnapshotReturnsCopy(t *testing.T) {
	p := New()
	p.SeedPrice("AAPL", "Apple Inc", 227.52)

	first, err := p.Snapshot(context.Background(), "AAPL")
	require.NoError(t, err)
	first.Price.Current = 1

	second, err := p.Snapshot(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.InDelta(t, 227.52, second.Price.Current, 1e-9)
}
