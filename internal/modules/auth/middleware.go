package auth

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/georgemunganga/shopstock-backend/internal/httpx"
	"github.com/georgemunganga/shopstock-backend/internal/logger"
	"github.com/georgemunganga/shopstock-backend/internal/modules/access"
)

// Authenticate resolves the bearer token into an access.Principal. Requests
// without an Authorization header pass through anonymously and are left for
// the access policy to deny.
func Authenticate(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httpx.JSONError(w, http.StatusUnauthorized, "authorization header must be a bearer token", nil)
				return
			}

			u, err := svc.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, ErrInvalidCredentials) {
					httpx.JSONError(w, http.StatusUnauthorized, "invalid or expired token", nil)
					return
				}
				httpx.Error(w, r, err)
				return
			}

			ctx := access.WithPrincipal(r.Context(), u.Principal())
			ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(zap.String("user_id", u.ID.String())))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
