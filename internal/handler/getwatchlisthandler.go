package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"signalist-api/internal/logic"
	"signalist-api/internal/svc"
)

func GetWatchlistHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewGetWatchlistLogic(r.Context(), svcCtx)
		resp, err := l.GetWatchlist()
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
