package mw

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SessionCookie names the cookie carrying the visitor's session id.
const SessionCookie = "rl_sid"

const ctxKeySession ctxKey = "session_id"

// SessionConfig configures the session cookie.
type SessionConfig struct {
	TTL    time.Duration
	Secure bool
}

// Session makes sure every request carries a session id. Unknown or
// malformed cookies are replaced with a fresh random id.
func Session(cfg SessionConfig) func(http.Handler) http.Handler {
	maxAge := int(cfg.TTL / time.Second)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := readSessionID(r)
			if !ok {
				id = uuid.NewString()
			}
			// Refresh the cookie on every request so it outlives idle gaps
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   maxAge,
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
		})
	}
}

func readSessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// WithSessionID attaches a session id to ctx
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeySession, id)
}

// SessionID returns the session id attached by Session, or "".
func SessionID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeySession).(string)
	return v
}
