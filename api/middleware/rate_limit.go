package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/igreja360/tesouraria-backend/api/responses"
	"github.com/igreja360/tesouraria-backend/pkg/config"
	pkgerrors "github.com/igreja360/tesouraria-backend/pkg/errors"
	"github.com/igreja360/tesouraria-backend/pkg/logger"
)

type rateLimiterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

// RateLimitPolicy defines the fixed-window parameters applied per origin.
type RateLimitPolicy struct {
	window time.Duration
	limit  int
}

// NewRateLimitPolicy builds a policy from the service configuration.
func NewRateLimitPolicy(cfg config.RateLimitConfig) RateLimitPolicy {
	return RateLimitPolicy{window: cfg.Window, limit: cfg.Limit}
}

func (p RateLimitPolicy) enabled() bool {
	return p.window > 0 && p.limit > 0
}

// RateLimit enforces a shared fixed-window counter per origin address. It runs
// before authentication; the counter lives in Redis so every handler instance
// observes the same window. A rejected request still spends its increment.
func RateLimit(policy RateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			origin := OriginFromContext(ctx)
			if origin == "" {
				origin = clientIP(r)
			}

			key := store.RateLimitKey("ip:" + origin)
			count, err := store.IncrWithTTL(ctx, key, policy.window)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rate limiting"))
				return
			}

			if count > int64(policy.limit) {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"origin":         origin,
						"attempts":       count,
						"limit":          policy.limit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "rate_limit.blocked")
				}
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
