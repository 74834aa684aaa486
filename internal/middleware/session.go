package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/atinyakov/PatoApp/internal/models"
	"github.com/atinyakov/PatoApp/internal/service"
)

type ctxKey string

const (
	sessionsKey ctxKey = "sessions"
	userKey     ctxKey = "user"
)

// SessionCookie names the cookie carrying the session token.
const SessionCookie = "patoapp_session"

// SessionSource resolves a session token to its account.
type SessionSource interface {
	Authenticate(token string) (models.User, bool)
}

// TokenFromRequest returns the session token of r, taken from the session
// cookie or else from an "Authorization: Bearer" header. It returns ""
// when r carries neither.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if found && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

// WithSessions makes src available to the guards further down the chain.
func WithSessions(src SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), sessionsKey, src)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// MustSessions returns the SessionSource installed by WithSessions.
// It panics with service.ErrNotInitialized when WithSessions is missing
// from the chain.
func MustSessions(ctx context.Context) SessionSource {
	src, ok := ctx.Value(sessionsKey).(SessionSource)
	if !ok || src == nil {
		panic(service.ErrNotInitialized)
	}
	return src
}

// RequireUser rejects with 401 requests whose token does not identify the
// active session. The session's account is stored in the request context.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := MustSessions(r.Context()).Authenticate(TokenFromRequest(r))
		if !ok {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects requests from non-admin accounts with 403.
// It must run after RequireUser.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if !user.IsAdmin() {
			http.Error(w, "admin role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the account stored by RequireUser.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}
