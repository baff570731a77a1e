package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"takeon/pkg/requestcontext"
)

// TokenValidator validates a bearer token and returns the staff claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims is the subset of token claims the application consumes.
type Claims struct {
	Subject string
	Name    string
}

// RequireAuth enforces a valid bearer token and stores the operator label in
// the request context. Session issuance lives outside this service; the
// middleware only verifies what the identity provider signed.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeAuthError(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"request_id", requestID,
					"error", err,
				)
				writeAuthError(w, "Invalid or expired token")
				return
			}

			operator := claims.Name
			if operator == "" {
				operator = claims.Subject
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithOperator(ctx, operator)))
		})
	}
}

func writeAuthError(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
