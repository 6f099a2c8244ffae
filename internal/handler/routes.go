// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"signalist-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{serverCtx.UserID},
			[]rest.Route{
				{
					Method:  http.MethodGet,
					Path:    "/api/watchlist",
					Handler: GetWatchlistHandler(serverCtx),
				},
				{
					Method:  http.MethodPost,
					Path:    "/api/watchlist",
					Handler: AddWatchlistHandler(serverCtx),
				},
				{
					Method:  http.MethodDelete,
					Path:    "/api/watchlist/:symbol",
					Handler: RemoveWatchlistHandler(serverCtx),
				},
			}...,
		),
	)
}
