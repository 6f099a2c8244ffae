package logic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalist-api/internal/middleware"
	"signalist-api/internal/model"
	"signalist-api/internal/svc"
	"signalist-api/internal/types"
	"signalist-api/internal/watchlist"
	"signalist-api/pkg/market/sim"
)

type memEntries struct {
	rows []*model.WatchlistEntries
}

func (s *memEntries) Insert(ctx context.Context, data *model.WatchlistEntries) error {
	for _, row := range s.rows {
		if row.UserId == data.UserId && row.Symbol == data.Symbol {
			return model.ErrDuplicateEntry
		}
	}
	data.Id = int64(len(s.rows) + 1)
	s.rows = append([]*model.WatchlistEntries{data}, s.rows...)
	return nil
}

func (s *memEntries) FindByUser(ctx context.Context, userId string) ([]*model.WatchlistEntries, error) {
	var out []*model.WatchlistEntries
	for _, row := range s.rows {
		if row.UserId == userId {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *memEntries) SymbolsByUser(ctx context.Context, userId string) ([]string, error) {
	rows, _ := s.FindByUser(ctx, userId)
	symbols := make([]string, 0, len(rows))
	for _, row := range rows {
		symbols = append(symbols, row.Symbol)
	}
	return symbols, nil
}

func (s *memEntries) Delete(ctx context.Context, userId, symbol string) error {
	for i, row := range s.rows {
		if row.UserId == userId && row.Symbol == symbol {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

type noUsers struct{}

func (noUsers) FindOneByEmail(ctx context.Context, email string) (*model.Users, error) {
	return nil, model.ErrNotFound
}

func newTestSvcCtx(provider *sim.Provider) *svc.ServiceContext {
	return &svc.ServiceContext{
		Watchlist: watchlist.NewService(&memEntries{}, noUsers{}, provider),
	}
}

func authedCtx(userID string) context.Context {
	return middleware.WithUserID(context.Background(), userID)
}

func TestAddThenGetWatchlist(t *testing.T) {
	provider := sim.New()
	provider.SeedPrice("AAPL", "Apple Inc", 227.52)
	svcCtx := newTestSvcCtx(provider)
	ctx := authedCtx("u1")

	addResp, err := NewAddWatchlistLogic(ctx, svcCtx).AddWatchlist(&types.AddWatchlistReq{
		Symbol:  "aapl",
		Company: "Apple",
	})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", addResp.Symbol)
	assert.NotEmpty(t, addResp.AddedAt)

	getResp, err := NewGetWatchlistLogic(ctx, svcCtx).GetWatchlist()
	require.NoError(t, err)
	require.Len(t, getResp.Items, 1)
	item := getResp.Items[0]
	assert.Equal(t, "AAPL", item.Symbol)
	assert.Equal(t, "Apple Inc", item.Company)
	assert.Equal(t, "$227.52", item.PriceFormatted)
}

func TestGetWatchlistEmpty(t *testing.T) {
	svcCtx := newTestSvcCtx(sim.New())
	resp, err := NewGetWatchlistLogic(authedCtx("u1"), svcCtx).GetWatchlist()
	require.NoError(t, err)
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
}

func TestAddWatchlistUnknownSymbol(t *testing.T) {
	svcCtx := newTestSvcCtx(sim.New())
	_, err := NewAddWatchlistLogic(authedCtx("u1"), svcCtx).AddWatchlist(&types.AddWatchlistReq{Symbol: "ZZZZ"})
	assert.ErrorIs(t, err, watchlist.ErrSymbolUnknown)
}

func TestAddWatchlistDuplicate(t *testing.T) {
	provider := sim.New()
	provider.SeedPrice("AAPL", "Apple Inc", 227.52)
	svcCtx := newTestSvcCtx(provider)
	ctx := authedCtx("u1")

	_, err := NewAddWatchlistLogic(ctx, svcCtx).AddWatchlist(&types.AddWatchlistReq{Symbol: "AAPL"})
	require.NoError(t, err)
	_, err = NewAddWatchlistLogic(ctx, svcCtx).AddWatchlist(&types.AddWatchlistReq{Symbol: "AAPL"})
	assert.ErrorIs(t, err, watchlist.ErrAlreadyWatched)
}

func TestRemoveWatchlist(t *testing.T) {
	provider := sim.New()
	provider.SeedPrice("AAPL", "Apple Inc", 227.52)
	svcCtx := newTestSvcCtx(provider)
	ctx := authedCtx("u1")

	_, err := NewAddWatchlistLogic(ctx, svcCtx).AddWatchlist(&types.AddWatchlistReq{Symbol: "AAPL"})
	require.NoError(t, err)

	resp, err := NewRemoveWatchlistLogic(ctx, svcCtx).RemoveWatchlist(&types.RemoveWatchlistReq{Symbol: "AAPL"})
	require.NoError(t, err)
	assert.Equal(t, "removed", resp.Message)

	// Same response when the symbol was never there.
	resp, err = NewRemoveWatchlistLogic(ctx, svcCtx).RemoveWatchlist(&types.RemoveWatchlistReq{Symbol: "TSLA"})
	require.NoError(t, err)
	assert.Equal(t, "removed", resp.Message)
}

func TestLogicRejectsMissingIdentity(t *testing.T) {
	svcCtx := newTestSvcCtx(sim.New())
	ctx := context.Background()

	_, err := NewGetWatchlistLogic(ctx, svcCtx).GetWatchlist()
	assert.ErrorIs(t, err, ErrNoIdentity)
	_, err = NewAddWatchlistLogic(ctx, svcCtx).AddWatchlist(&types.AddWatchlistReq{Symbol: "AAPL"})
	assert.ErrorIs(t, err, ErrNoIdentity)
	_, err = NewRemoveWatchlistLogic(ctx, svcCtx).RemoveWatchlist(&types.RemoveWatchlistReq{Symbol: "AAPL"})
	assert.ErrorIs(t, err, ErrNoIdentity)
}
