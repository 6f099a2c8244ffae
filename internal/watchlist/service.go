package watchlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"signalist-api/internal/model"
	"signalist-api/pkg/market"
)

// ErrAlreadyWatched is returned when adding a symbol already on the user's watchlist.
var ErrAlreadyWatched = errors.New("watchlist: symbol already on watchlist")

// ErrSymbolUnknown is returned when the market data provider does not recognize
// a symbol submitted for addition.
var ErrSymbolUnknown = errors.New("watchlist: symbol not recognized")

// ErrProviderUnavailable is returned when the market data provider cannot be
// reached to validate a symbol. Callers should advise retrying later.
var ErrProviderUnavailable = errors.New("watchlist: market data provider unavailable")

// EntryStore is the persistence surface the service needs for membership rows.
type EntryStore interface {
	Insert(ctx context.Context, data *model.WatchlistEntries) error
	FindByUser(ctx context.Context, userId string) ([]*model.WatchlistEntries, error)
	SymbolsByUser(ctx context.Context, userId string) ([]string, error)
	Delete(ctx context.Context, userId, symbol string) error
}

// UserStore resolves user identities for best-effort batch consumers.
type UserStore interface {
	FindOneByEmail(ctx context.Context, email string) (*model.Users, error)
}

// EnrichedItem is one watchlist row merged with a fresh market snapshot.
type EnrichedItem struct {
	Symbol             string    `json:"symbol"`
	Company            string    `json:"company"`
	AddedAt            time.Time `json:"addedAt"`
	CurrentPrice       float64   `json:"currentPrice"`
	PriceFormatted     string    `json:"priceFormatted"`
	ChangeFormatted    string    `json:"changeFormatted"`
	ChangePercent      float64   `json:"changePercent"`
	MarketCapFormatted string    `json:"marketCap"`
	PERatio            *float64  `json:"peRatio,omitempty"`
}

// Service owns watchlist membership and its enrichment with live market data.
type Service struct {
	entries  EntryStore
	users    UserStore
	provider market.Provider

	// maxConcurrentFetches bounds the per-request fetch fan-out.
	// Zero means one fetch goroutine per entry.
	maxConcurrentFetches int

	now func() time.Time
}

// Option customises the watchlist service.
type Option func(*Service)

// WithMaxConcurrentFetches caps concurrent snapshot fetches per aggregation call.
func WithMaxConcurrentFetches(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxConcurrentFetches = n
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires a watchlist service.
func NewService(entries EntryStore, users UserStore, provider market.Provider, opts ...Option) *Service {
	svc := &Service{
		entries:  entries,
		users:    users,
		provider: provider,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// NormalizeSymbol canonicalises a raw ticker: trimmed and upper-cased.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Validate probes the market data provider for the symbol.
// A provider that answers "no data" yields (false, nil); a provider that cannot
// be reached yields an error so the caller can distinguish outage from rejection.
func (s *Service) Validate(ctx context.Context, symbol string) (bool, error) {
	canonical := NormalizeSymbol(symbol)
	if canonical == "" {
		return false, nil
	}
	_, err := s.provider.Snapshot(ctx, canonical)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, market.ErrNoData):
		return false, nil
	default:
		return false, err
	}
}

// Add validates the symbol against the provider and persists the membership.
// Returns ErrSymbolUnknown for unrecognized symbols, ErrProviderUnavailable when
// validation could not run, and ErrAlreadyWatched on duplicate membership.
func (s *Service) Add(ctx context.Context, userID, symbol, company string) (*model.WatchlistEntries, error) {
	canonical := NormalizeSymbol(symbol)
	if canonical == "" {
		return nil, ErrSymbolUnknown
	}

	ok, err := s.Validate(ctx, canonical)
	if err != nil {
		logx.WithContext(ctx).Errorf("validate symbol %s: %v", canonical, err)
		return nil, fmt.Errorf("validate %s: %w", canonical, ErrProviderUnavailable)
	}
	if !ok {
		return nil, ErrSymbolUnknown
	}

	name := strings.TrimSpace(company)
	if name == "" {
		name = canonical
	}
	entry := &model.WatchlistEntries{
		UserId:  userID,
		Symbol:  canonical,
		Company: name,
		AddedAt: s.now().UTC(),
	}
	if err := s.entries.Insert(ctx, entry); err != nil {
		if errors.Is(err, model.ErrDuplicateEntry) {
			return nil, ErrAlreadyWatched
		}
		return nil, fmt.Errorf("insert watchlist entry: %w", err)
	}
	return entry, nil
}

// Remove deletes the membership row. Removing an absent symbol is a no-op.
func (s *Service) Remove(ctx context.Context, userID, symbol string) error {
	canonical := NormalizeSymbol(symbol)
	if canonical == "" {
		return nil
	}
	if err := s.entries.Delete(ctx, userID, canonical); err != nil {
		return fmt.Errorf("delete watchlist entry: %w", err)
	}
	return nil
}

// SymbolsByEmail resolves a user by email and returns their watchlist symbols.
// This is the fail-soft path for batch consumers: an unresolvable user or a
// store fault yields an empty slice, never an error. Failures are logged here,
// the only place the absorption happens.
func (s *Service) SymbolsByEmail(ctx context.Context, email string) []string {
	addr := strings.TrimSpace(email)
	if addr == "" {
		return []string{}
	}

	user, err := s.users.FindOneByEmail(ctx, addr)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			logx.WithContext(ctx).Errorf("resolve user by email %s: %v", addr, err)
		}
		return []string{}
	}

	symbols, err := s.entries.SymbolsByUser(ctx, user.Id)
	if err != nil {
		logx.WithContext(ctx).Errorf("list symbols for user %s: %v", user.Id, err)
		return []string{}
	}
	if symbols == nil {
		symbols = []string{}
	}
	return symbols
}

// BuildEnriched loads the user's watchlist and enriches every entry with a
// fresh market snapshot. Fetches run concurrently; entries whose fetch fails or
// returns no data are dropped from the result so one bad symbol never fails the
// whole call. Output preserves the store's most-recent-first order.
func (s *Service) BuildEnriched(ctx context.Context, userID string) ([]EnrichedItem, error) {
	entries, err := s.entries.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load watchlist: %w", err)
	}
	if len(entries) == 0 {
		return []EnrichedItem{}, nil
	}

	snapshots := s.fetchAll(ctx, entries)

	// Caller cancellation fails the call as a whole; partial tolerance only
	// covers per-symbol fetch outcomes.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]EnrichedItem, 0, len(entries))
	for i, entry := range entries {
		snapshot := snapshots[i]
		if snapshot == nil {
			continue
		}
		items = append(items, newEnrichedItem(entry, snapshot))
	}
	return items, nil
}

// fetchAll fans one snapshot fetch out per entry and waits for all of them to
// settle. The returned slice is index-aligned with entries; a nil element marks
// a fetch that failed or found no data.
func (s *Service) fetchAll(ctx context.Context, entries []*model.WatchlistEntries) []*market.Snapshot {
	snapshots := make([]*market.Snapshot, len(entries))

	var sem chan struct{}
	if s.maxConcurrentFetches > 0 {
		sem = make(chan struct{}, s.maxConcurrentFetches)
	}

	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(idx int, symbol string) {
			defer wg.Done()
			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					return
				}
			}

			snapshot, err := s.provider.Snapshot(ctx, symbol)
			if err != nil {
				if ctx.Err() == nil {
					if errors.Is(err, market.ErrNoData) {
						logx.WithContext(ctx).Infof("watchlist enrich: no data for %s, dropping", symbol)
					} else {
						logx.WithContext(ctx).Errorf("watchlist enrich: fetch %s: %v", symbol, err)
					}
				}
				return
			}
			snapshots[idx] = snapshot
		}(i, entry.Symbol)
	}
	wg.Wait()

	return snapshots
}

// newEnrichedItem merges a stored entry with its snapshot. The provider's
// canonical company name wins over the stored one.
func newEnrichedItem(entry *model.WatchlistEntries, snapshot *market.Snapshot) EnrichedItem {
	company := snapshot.Company
	if company == "" {
		company = entry.Company
	}
	return EnrichedItem{
		Symbol:             entry.Symbol,
		Company:            company,
		AddedAt:            entry.AddedAt,
		CurrentPrice:       snapshot.Price.Current,
		PriceFormatted:     FormatPrice(snapshot.Price.Current),
		ChangeFormatted:    FormatChangePercent(snapshot.Change.Percent),
		ChangePercent:      snapshot.Change.Percent,
		MarketCapFormatted: FormatMarketCap(snapshot.MarketCap),
		PERatio:            snapshot.PERatio,
	}
}
