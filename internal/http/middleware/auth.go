package middleware

import (
	"context"
	"net/http"
	"strings"

	"evrental/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// SessionResolver resolves a bearer session id to its session.
type SessionResolver interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

// Auth resolves the bearer session id against the session store. A request
// that does not resolve is anonymous and gets a 401; expiry is ultimately
// the backend's call, surfaced as 401s at call sites.
func Auth(store SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			sess, err := store.Get(r.Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				http.Error(w, "session expired or unknown", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext retrieves the resolved session from request context.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(*session.Session)
	return sess, ok
}
