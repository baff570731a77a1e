package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"takeon/pkg/requestcontext"
)

// RequireAdminToken guards master-data management routes with a static admin
// token supplied in the X-Admin-Token header. An empty configured token
// disables the routes entirely rather than leaving them open.
func RequireAdminToken(token string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get("X-Admin-Token")
			if token == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
				logger.WarnContext(r.Context(), "admin token rejected",
					"request_id", requestcontext.RequestID(r.Context()),
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"Admin token required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
