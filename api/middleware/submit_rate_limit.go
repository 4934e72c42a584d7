package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hanifwidodo/merchorder-backend/api/responses"
	"github.com/hanifwidodo/merchorder-backend/pkg/config"
	pkgerrors "github.com/hanifwidodo/merchorder-backend/pkg/errors"
	"github.com/hanifwidodo/merchorder-backend/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// SubmitRateLimit throttles order submissions per session. The limiter
// fails open when Redis is unavailable; the in-flight guard in the
// order service still prevents duplicate writes.
func SubmitRateLimit(cfg config.SubmitRateLimitConfig, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if store == nil || cfg.Window <= 0 || cfg.SessionLimit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			sessionID := SessionIDFromContext(r.Context())
			if sessionID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required"))
				return
			}

			scope := fmt.Sprintf("submit:%s", sessionID)
			allowed, count, err := store.FixedWindowAllow(r.Context(), scope, int64(cfg.SessionLimit), cfg.Window)
			if err != nil {
				if logg != nil {
					logg.Warn(r.Context(), fmt.Sprintf("submit rate limit check failed: %v", err))
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				if logg != nil {
					ctx := logg.WithFields(r.Context(), map[string]any{
						"rate_limit_count": count,
						"rate_limit_scope": scope,
					})
					logg.Warn(ctx, "submit rate limit exceeded")
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many order submissions, slow down"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
