package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"signalist-api/internal/middleware"
	"signalist-api/internal/svc"
	"signalist-api/internal/types"
)

type RemoveWatchlistLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRemoveWatchlistLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RemoveWatchlistLogic {
	return &RemoveWatchlistLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// RemoveWatchlist drops the symbol from the caller's watchlist.
// Removing a symbol that is not present succeeds with the same response.
func (l *RemoveWatchlistLogic) RemoveWatchlist(req *types.RemoveWatchlistReq) (*types.MessageResp, error) {
	userID, ok := middleware.UserID(l.ctx)
	if !ok {
		return nil, ErrNoIdentity
	}

	if err := l.svcCtx.Watchlist.Remove(l.ctx, userID, req.Symbol); err != nil {
		return nil, err
	}
	return &types.MessageResp{Message: "removed"}, nil
}
