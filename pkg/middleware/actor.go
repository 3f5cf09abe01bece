package middleware

import (
	"net/http"

	"stay-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor resolves the calling user from the X-User-ID header set by the
// upstream auth gateway. Authentication itself happens there; this service
// only needs a trusted actor identity for booking authorization checks.
func Actor(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("X-User-ID")
			if header == "" {
				utils.ResponseUnauthorized(w, "Missing X-User-ID header")
				return
			}

			userID, err := uuid.Parse(header)
			if err != nil {
				logger.Warn("Invalid X-User-ID header", zap.String("value", header))
				utils.ResponseUnauthorized(w, "Invalid X-User-ID header")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
