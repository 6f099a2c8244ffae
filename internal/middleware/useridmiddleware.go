package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/zeromicro/go-zero/rest/httpx"
)

type ctxKey int

const ctxKeyUserID ctxKey = iota

// UserIDMiddleware extracts the authenticated user's identity from the
// X-User-Id header set by the fronting session layer. Session resolution
// itself happens upstream; this service only consumes its result.
type UserIDMiddleware struct{}

func NewUserIDMiddleware() *UserIDMiddleware {
	return &UserIDMiddleware{}
}

func (m *UserIDMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
		if userID == "" {
			httpx.WriteJsonCtx(r.Context(), w, http.StatusUnauthorized,
				map[string]string{"message": "missing user identity"})
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyUserID, userID)
		next(w, r.WithContext(ctx))
	}
}

// UserID returns the authenticated user id stored by the middleware.
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ctxKeyUserID).(string)
	return userID, ok && userID != ""
}

// WithUserID injects a user id into ctx, used by tests and batch callers.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}
