package handler

import (
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"signalist-api/internal/watchlist"
)

// writeError maps service errors onto HTTP responses. Rejections carry a
// human-readable reason; everything else surfaces as an internal error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, watchlist.ErrAlreadyWatched):
		httpx.WriteJsonCtx(r.Context(), w, http.StatusConflict,
			map[string]string{"message": "symbol is already on your watchlist"})
	case errors.Is(err, watchlist.ErrSymbolUnknown):
		httpx.WriteJsonCtx(r.Context(), w, http.StatusUnprocessableEntity,
			map[string]string{"message": "symbol is not recognized"})
	case errors.Is(err, watchlist.ErrProviderUnavailable):
		httpx.WriteJsonCtx(r.Context(), w, http.StatusServiceUnavailable,
			map[string]string{"message": "market data is unavailable, try again later"})
	default:
		logx.WithContext(r.Context()).Errorf("watchlist handler: %v", err)
		httpx.WriteJsonCtx(r.Context(), w, http.StatusInternalServerError,
			map[string]string{"message": "internal error"})
	}
}
