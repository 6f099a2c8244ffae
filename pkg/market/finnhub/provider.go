package finnhub

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"signalist-api/pkg/market"
)

const defaultProviderTimeout = 8 * time.Second

func init() {
	market.RegisterProvider("finnhub", func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		clientOpts := []Option{WithAPIKey(cfg.APIKey)}
		if cfg.BaseURL != "" {
			clientOpts = append(clientOpts, WithBaseURL(cfg.BaseURL))
		}
		if cfg.MaxRetries > 0 {
			clientOpts = append(clientOpts, WithMaxRetries(cfg.MaxRetries))
		}
		providerOpts := []ProviderOption{WithClientOptions(clientOpts...)}
		if cfg.Timeout > 0 {
			providerOpts = append(providerOpts, WithTimeout(cfg.Timeout))
		}
		return NewProvider(providerOpts...), nil
	})
}

// Provider implements market.Provider backed by the Finnhub REST API.
type Provider struct {
	client  *Client
	timeout time.Duration
}

// ProviderOption customises the Finnhub provider.
type ProviderOption func(*Provider)

// WithClient injects a pre-built Finnhub client.
func WithClient(client *Client) ProviderOption {
	return func(p *Provider) {
		if client != nil {
			p.client = client
		}
	}
}

// WithClientOptions builds the underlying client with the given options.
func WithClientOptions(opts ...Option) ProviderOption {
	return func(p *Provider) {
		p.client = NewClient(opts...)
	}
}

// WithTimeout overrides the per-snapshot timeout.
func WithTimeout(timeout time.Duration) ProviderOption {
	return func(p *Provider) {
		if timeout > 0 {
			p.timeout = timeout
		}
	}
}

// NewProvider constructs a default Finnhub provider.
func NewProvider(opts ...ProviderOption) *Provider {
	provider := &Provider{
		client:  NewClient(),
		timeout: defaultProviderTimeout,
	}
	for _, opt := range opts {
		opt(provider)
	}
	if provider.client == nil {
		provider.client = NewClient()
	}
	return provider
}

func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, p.timeout)
}

// Snapshot assembles a normalized market snapshot for the supplied symbol.
// The quote is mandatory; profile and metrics enrich the result when available.
func (p *Provider) Snapshot(ctx context.Context, symbol string) (*market.Snapshot, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	quote, err := p.client.Quote(ctx, symbol)
	if err != nil {
		if errors.Is(err, ErrSymbolNotFound) {
			return nil, market.ErrNoData
		}
		return nil, err
	}

	canonical := strings.ToUpper(strings.TrimSpace(symbol))
	snapshot := &market.Snapshot{
		Symbol:  canonical,
		Company: canonical,
		Price: market.PriceInfo{
			Current:   quote.Current,
			Open:      quote.Open,
			High:      quote.High,
			Low:       quote.Low,
			PrevClose: quote.PrevClose,
		},
		Change: market.ChangeInfo{
			Absolute: quote.Change,
			Percent:  quote.ChangePercent,
		},
	}

	profile, err := p.client.Profile(ctx, symbol)
	switch {
	case err == nil:
		if profile.Name != "" {
			snapshot.Company = profile.Name
		}
		if profile.Ticker != "" {
			snapshot.Symbol = profile.Ticker
		}
		snapshot.MarketCap = profile.MarketCapitalization
	case errors.Is(err, ErrSymbolNotFound):
		// A quotable symbol without a profile keeps its ticker as the name.
	default:
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logx.WithContext(ctx).Errorf("finnhub profile %s: %v", canonical, err)
	}

	metrics, err := p.client.Metrics(ctx, symbol)
	if err == nil && metrics.Metric.PETTM != nil {
		snapshot.PERatio = metrics.Metric.PETTM
	} else if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logx.WithContext(ctx).Errorf("finnhub metrics %s: %v", canonical, err)
	}

	return snapshot, nil
}
