package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"signalist-api/internal/logic"
	"signalist-api/internal/svc"
	"signalist-api/internal/types"
)

func RemoveWatchlistHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RemoveWatchlistReq
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := logic.NewRemoveWatchlistLogic(r.Context(), svcCtx)
		resp, err := l.RemoveWatchlist(&req)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
