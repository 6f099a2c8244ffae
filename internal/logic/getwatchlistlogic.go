package logic

import (
	"context"
	"errors"

	"github.com/zeromicro/go-zero/core/logx"

	"signalist-api/internal/middleware"
	"signalist-api/internal/svc"
	"signalist-api/internal/types"
)

// ErrNoIdentity signals a request that reached business logic without a
// resolved user, which the middleware should have rejected already.
var ErrNoIdentity = errors.New("logic: no user identity in context")

type GetWatchlistLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetWatchlistLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetWatchlistLogic {
	return &GetWatchlistLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// GetWatchlist returns the caller's watchlist enriched with live market data.
// An empty watchlist yields an empty item list, not an error.
func (l *GetWatchlistLogic) GetWatchlist() (*types.GetWatchlistResp, error) {
	userID, ok := middleware.UserID(l.ctx)
	if !ok {
		return nil, ErrNoIdentity
	}

	items, err := l.svcCtx.Watchlist.BuildEnriched(l.ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &types.GetWatchlistResp{Items: make([]types.WatchlistItem, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, types.WatchlistItem{
			Symbol:          item.Symbol,
			Company:         item.Company,
			AddedAt:         item.AddedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			CurrentPrice:    item.CurrentPrice,
			PriceFormatted:  item.PriceFormatted,
			ChangeFormatted: item.ChangeFormatted,
			ChangePercent:   item.ChangePercent,
			MarketCap:       item.MarketCapFormatted,
			PERatio:         item.PERatio,
		})
	}
	return resp, nil
}
