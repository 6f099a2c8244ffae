package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"signalist-api/internal/middleware"
	"signalist-api/internal/svc"
	"signalist-api/internal/types"
)

type AddWatchlistLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAddWatchlistLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AddWatchlistLogic {
	return &AddWatchlistLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// AddWatchlist validates the submitted symbol and stores the membership.
func (l *AddWatchlistLogic) AddWatchlist(req *types.AddWatchlistReq) (*types.AddWatchlistResp, error) {
	userID, ok := middleware.UserID(l.ctx)
	if !ok {
		return nil, ErrNoIdentity
	}

	entry, err := l.svcCtx.Watchlist.Add(l.ctx, userID, req.Symbol, req.Company)
	if err != nil {
		return nil, err
	}

	return &types.AddWatchlistResp{
		Symbol:  entry.Symbol,
		Company: entry.Company,
		AddedAt: entry.AddedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
