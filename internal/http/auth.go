package httpapi

import (
	"context"
	"net/http"
	"strings"

	"sitecms-backend-go/internal/services"
)

type contextKey string

const (
	ctxSession contextKey = "session"

	SessionCookie = "admin_session"
)

// sessionToken reads the token from the session cookie or a bearer header.
func sessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// WithSession attaches a valid admin session to the request context. Requests
// without one pass through unchanged; RequireAdmin rejects them where needed.
func WithSession(tokenService services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			session, err := tokenService.VerifySession(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), ctxSession, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentSession(r *http.Request) (services.SessionClaims, bool) {
	session, ok := r.Context().Value(ctxSession).(services.SessionClaims)
	return session, ok
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentSession(r); !ok {
			WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
