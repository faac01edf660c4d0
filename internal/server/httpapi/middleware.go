package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/mediakeeper/internal/common"
	"github.com/dmitrijs2005/mediakeeper/internal/server/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// ClaimsFromContext returns the decoded token claims attached by
// authenticate, or ok=false when the request was not authenticated.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// authenticate is the hard gate in front of protected routes: it verifies
// the raw token from the Authorization header and attaches the decoded
// claims to the request context. The token is sent without a scheme prefix.
func (s *HTTPServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(common.AuthHeaderName)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
			return
		}

		claims, err := auth.ParseToken(token, s.jwtSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized: Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole rejects authenticated requests whose role does not match.
// It is always mounted after authenticate, never instead of it.
func (s *HTTPServer) requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
				return
			}
			if claims.Role != role {
				writeError(w, http.StatusForbidden, "Forbidden: admin role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogger logs one line per request with a generated request id.
func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.With("req_id", uuid.NewString()).Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
