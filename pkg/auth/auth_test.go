package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"velora-gallery/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		AdminUsername: "admin",
		AdminPassword: "s3cret",
		SessionTTL:    time.Hour,
	}
}

func TestValidCredentials(t *testing.T) {
	a := New(testConfig())

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"valid", "admin", "s3cret", true},
		{"wrong password", "admin", "nope", false},
		{"wrong username", "root", "s3cret", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.ValidCredentials(tt.username, tt.password); got != tt.want {
				t.Errorf("ValidCredentials(%q, %q) = %v, want %v", tt.username, tt.password, got, tt.want)
			}
		})
	}
}

func TestValidCredentialsBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	cfg := testConfig()
	cfg.AdminPassword = ""
	cfg.AdminPasswordHash = string(hash)
	a := New(cfg)

	if !a.ValidCredentials("admin", "s3cret") {
		t.Error("valid password rejected against hash")
	}
	if a.ValidCredentials("admin", "wrong") {
		t.Error("invalid password accepted against hash")
	}
}

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore(time.Hour)

	token, err := store.Create("admin")
	if err != nil {
		t.Fatal(err)
	}
	if len(token) != 48 {
		t.Errorf("token length = %d, want 48 hex chars", len(token))
	}

	session, ok := store.Lookup(token)
	if !ok || session.Username != "admin" {
		t.Fatalf("Lookup = %+v, %v", session, ok)
	}

	store.Invalidate(token)
	if _, ok := store.Lookup(token); ok {
		t.Error("session survived invalidation")
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	store := NewSessionStore(20 * time.Millisecond)

	token, err := store.Create("admin")
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)

	if _, ok := store.Lookup(token); ok {
		t.Error("session survived past its TTL")
	}
}

func TestRequireAuthAPI(t *testing.T) {
	a := New(testConfig())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodPost, "/api/images/delete", nil)
	w := httptest.NewRecorder()
	a.RequireAuth(next).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unauthorized") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestRequireAuthBrowserRedirect(t *testing.T) {
	a := New(testConfig())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/admin/panel", nil)
	w := httptest.NewRecorder()
	a.RequireAuth(next).ServeHTTP(w, r)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	loc := w.Header().Get("Location")
	if !strings.HasPrefix(loc, "/admin/login.html?next=") {
		t.Errorf("Location = %q", loc)
	}
}

func TestRequireAuthWithSession(t *testing.T) {
	a := New(testConfig())
	token, err := a.Sessions.Create("admin")
	if err != nil {
		t.Fatal(err)
	}

	var seenUser string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = UserFromContext(r.Context())
	})

	r := httptest.NewRequest(http.MethodPost, "/api/images/delete", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	a.RequireAuth(next).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if seenUser != "admin" {
		t.Errorf("context user = %q, want admin", seenUser)
	}
}
