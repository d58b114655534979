package access

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/georgemunganga/shopstock-backend/internal/httpx"
	"github.com/georgemunganga/shopstock-backend/internal/logger"
	"github.com/georgemunganga/shopstock-backend/internal/metrics"
)

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored in ctx, or nil for anonymous requests.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}

// Require guards every route below it with DefaultPolicy for res.
func Require(res Resource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := FromContext(r.Context())
			if !Allow(p, res, r.Method) {
				metrics.AccessDenied.WithLabelValues(string(res)).Inc()
				logger.FromContext(r.Context()).Info("access denied",
					zap.String("resource", string(res)),
					zap.String("method", r.Method),
					zap.Bool("anonymous", p == nil),
				)
				if p == nil {
					httpx.JSONError(w, http.StatusUnauthorized, "authentication required", nil)
					return
				}
				httpx.JSONError(w, http.StatusForbidden, "permission denied", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
