package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

type ctxKey string

const userKey ctxKey = "velora.user"

// UserFromContext returns the authenticated admin username, if any.
func UserFromContext(ctx context.Context) string {
	v, _ := ctx.Value(userKey).(string)
	return v
}

// WithUser records the authenticated username on the context.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// RequireAuth gates a handler behind a valid admin session. API requests get
// a JSON 401; browser navigation is redirected to the login page with a next
// parameter so a re-login flow can resume.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if session, _, ok := a.SessionFromRequest(r); ok {
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), session.Username)))
			return
		}

		if wantsJSON(r) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}

		nextURL := url.QueryEscape(r.URL.RequestURI())
		http.Redirect(w, r, "/admin/login.html?next="+nextURL, http.StatusFound)
	})
}

// ProtectAdminTree gates the /admin static subtree, leaving the login page,
// its script, and the public catalog data readable without a session.
func (a *Authenticator) ProtectAdminTree(next http.Handler) http.Handler {
	gate := a.RequireAuth(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := strings.TrimPrefix(r.URL.Path, "/admin")
		public := p == "/login.html" || p == "/auth.js" || strings.HasPrefix(p, "/data/")
		if public {
			next.ServeHTTP(w, r)
			return
		}
		gate.ServeHTTP(w, r)
	})
}

func wantsJSON(r *http.Request) bool {
	p := r.URL.Path
	return strings.HasPrefix(p, "/api/") ||
		strings.HasPrefix(p, "/admin/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}
