// file: internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"dsavault/internal/contextutils"
	"dsavault/internal/response"
	"dsavault/internal/services"

	"go.uber.org/zap"
)

// RequireAuth validates the bearer token and injects the user identity into
// the request context. Requests without a valid token never reach the handler.
func RequireAuth(authService services.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				response.WriteError(r.Context(), w, services.NewUnauthorizedError("authentication required"))
				return
			}

			claims, err := authService.ValidateToken(r.Context(), token)
			if err != nil {
				logger.Debug("Token validation failed",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", getClientIP(r)),
					zap.Error(err),
				)
				response.WriteError(r.Context(), w, services.NewUnauthorizedError("invalid or expired token"))
				return
			}

			ctx := contextutils.WithUserID(r.Context(), claims.UserID)
			ctx = contextutils.WithUserEmail(ctx, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
