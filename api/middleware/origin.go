package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/igreja360/tesouraria-backend/pkg/logger"
)

// Origin resolves the client network address once per request and seeds the
// context with it. The rate limiter keys on this value and every audit entry
// carries it.
func Origin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := clientIP(r)
			ctx := WithOrigin(r.Context(), origin)
			if logg != nil {
				ctx = logg.WithOrigin(ctx, origin)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
