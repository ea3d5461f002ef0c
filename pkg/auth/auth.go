package auth

import (
	"crypto/subtle"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"velora-gallery/pkg/config"
)

// SessionCookie is the name of the admin session cookie.
const SessionCookie = "velora_admin_session"

// Authenticator validates the shared admin credential pair and tracks
// sessions.
type Authenticator struct {
	cfg      *config.Config
	Sessions SessionStore
}

// New creates an authenticator for the configured admin credentials.
func New(cfg *config.Config) *Authenticator {
	return &Authenticator{
		cfg:      cfg,
		Sessions: NewSessionStore(cfg.SessionTTL),
	}
}

// ValidCredentials checks the username/password pair in constant time. When
// ADMIN_PASSWORD_HASH is set the password is checked against the bcrypt hash
// instead of the plaintext value.
func (a *Authenticator) ValidCredentials(username, password string) bool {
	if subtle.ConstantTimeCompare([]byte(username), []byte(a.cfg.AdminUsername)) != 1 {
		return false
	}
	if a.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(a.cfg.AdminPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(a.cfg.AdminPassword)) == 1
}

// SessionFromRequest returns the live session for the request's cookie.
func (a *Authenticator) SessionFromRequest(r *http.Request) (*Session, string, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, "", false
	}
	session, ok := a.Sessions.Lookup(cookie.Value)
	if !ok {
		return nil, "", false
	}
	return session, cookie.Value, true
}

// SetSessionCookie attaches the session cookie to the response. The Secure
// attribute follows the request: set when terminating TLS here or behind an
// HTTPS proxy.
func (a *Authenticator) SetSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(a.cfg.SessionTTL / time.Second),
		Secure:   requestIsSecure(r),
	})
}

// ClearSessionCookie expires the session cookie.
func (a *Authenticator) ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Secure:   requestIsSecure(r),
	})
}

func requestIsSecure(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}
