package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "bokning/pkg/errors"
	"bokning/pkg/identity"
	"bokning/pkg/logger"
	"bokning/pkg/model"
)

const IdentityKey contextKey = "identity"

// Authentication resolves the bearer credential through the identity
// provider and stores the principal in the request context. Requests without
// a valid credential never reach the application handlers.
func Authentication(provider identity.Provider, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := extractBearer(r)
			if credential == "" {
				rejectUnauthorized(w, log, r, "missing bearer token")
				return
			}

			principal, err := provider.Resolve(r.Context(), credential)
			if err != nil {
				appErr := apperrors.AsAppError(err)
				if appErr.Code == apperrors.CodeUnauthorized {
					rejectUnauthorized(w, log, r, appErr.Message)
					return
				}
				log.Error("Identity resolution failed",
					"request_id", requestIDFromContext(r.Context()),
					"error", err,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(appErr.HTTPStatus)
				_, _ = w.Write(appErr.ToJSON())
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the authenticated principal, if any.
func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	principal, ok := ctx.Value(IdentityKey).(model.Identity)
	return principal, ok
}

func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func rejectUnauthorized(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	log.Warn("Unauthenticated request rejected",
		"request_id", requestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"reason", reason,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Authentication required"}`))
}
