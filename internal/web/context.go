package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/formdesk/internal/logging"
)

type contextKey struct{}

// sessionFrom returns the page session attached by withSession.
func sessionFrom(ctx context.Context) *pageSession {
	ps, _ := ctx.Value(contextKey{}).(*pageSession)
	return ps
}

// withSession resolves the page-session cookie, issues a new one when needed,
// and holds the session lock for the rest of the request.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil {
			id = c.Value
		}

		ps, created, err := s.sessions.Acquire(id)
		if err != nil {
			respondError(w, r, err, statusFor(err))
			return
		}
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    ps.id,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.cfg.Session.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
			logging.WithFields(r.Context(), "session_id", ps.id).Debug("page session created")
		}

		ps.mu.Lock()
		defer ps.mu.Unlock()

		ctx := logging.ContextWithSessionID(r.Context(), ps.id)
		ctx = context.WithValue(ctx, contextKey{}, ps)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
