package digest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cachekeys "signalist-api/internal/cache"
	"signalist-api/internal/config"
	"signalist-api/internal/repo"
	"signalist-api/pkg/market"
	"signalist-api/pkg/market/sim"
)

type stubSymbols struct {
	byEmail map[string][]string
}

func (s *stubSymbols) SymbolsByEmail(ctx context.Context, email string) []string {
	if symbols, ok := s.byEmail[email]; ok {
		return symbols
	}
	return []string{}
}

func newTestBuilder(symbols map[string][]string, provider market.Provider) *Builder {
	quotes := repo.NewQuoteRepo(provider, nil, cachekeys.NewTTLSet(config.CacheTTL{}))
	return NewBuilder(&stubSymbols{byEmail: symbols}, quotes, nil)
}

func TestBuild(t *testing.T) {
	provider := sim.New()
	provider.SeedPrice("AAPL", "Apple Inc", 227.52)
	provider.SeedPrice("TSLA", "Tesla Inc", 242.12)

	builder := newTestBuilder(map[string][]string{
		"jo@example.com": {"AAPL", "TSLA"},
	}, provider)

	d, err := builder.Build(context.Background(), "jo@example.com")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "jo@example.com", d.Email)
	require.Len(t, d.Lines, 2)
	assert.Contains(t, d.Lines[0], "AAPL (Apple Inc)")
	assert.Contains(t, d.Lines[0], "$227.52")
	assert.Contains(t, d.Lines[1], "TSLA (Tesla Inc)")
}

func TestBuildEmptyWatchlistIsNilDigest(t *testing.T) {
	builder := newTestBuilder(map[string][]string{}, sim.New())
	d, err := builder.Build(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestBuildSkipsSymbolsWithoutData(t *testing.T) {
	provider := sim.New()
	provider.SeedPrice("AAPL", "Apple Inc", 227.52)

	builder := newTestBuilder(map[string][]string{
		"jo@example.com": {"AAPL", "DELISTED"},
	}, provider)

	d, err := builder.Build(context.Background(), "jo@example.com")
	require.NoError(t, err)
	require.NotNil(t, d)
	require.Len(t, d.Lines, 1)
	assert.Contains(t, d.Lines[0], "AAPL")
}

func TestBuildAllSymbolsUnavailableIsNilDigest(t *testing.T) {
	builder := newTestBuilder(map[string][]string{
		"jo@example.com": {"GONE1", "GONE2"},
	}, sim.New())

	d, err := builder.Build(context.Background(), "jo@example.com")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestBuildCancelledContext(t *testing.T) {
	builder := newTestBuilder(map[string][]string{
		"jo@example.com": {"AAPL"},
	}, sim.New())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := builder.Build(ctx, "jo@example.com")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRender(t *testing.T) {
	d := &Digest{
		Email: "jo@example.com",
		Lines: []string{"AAPL (Apple Inc): $227.52, +0.53%"},
	}
	assert.Equal(t, "- AAPL (Apple Inc): $227.52, +0.53%\n", d.Render())

	d.Summary = "Markets were calm."
	assert.Equal(t, "Markets were calm.\n\n- AAPL (Apple Inc): $227.52, +0.53%\n", d.Render())
}
