package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// Session is one authenticated admin session.
type Session struct {
	Username  string
	CreatedAt time.Time
}

// SessionStore issues and tracks session tokens. It is an interface so the
// middleware can be tested against a fake and the backing store swapped for a
// persistent one later.
type SessionStore interface {
	Create(username string) (string, error)
	Lookup(token string) (*Session, bool)
	Invalidate(token string)
}

// cacheSessionStore backs sessions with an expiring in-memory cache, so
// abandoned sessions age out without a bookkeeping goroutine of our own.
type cacheSessionStore struct {
	sessions *cache.Cache
}

// NewSessionStore returns an in-memory session store whose sessions expire
// after ttl.
func NewSessionStore(ttl time.Duration) SessionStore {
	return &cacheSessionStore{
		sessions: cache.New(ttl, ttl/2),
	}
}

func (s *cacheSessionStore) Create(username string) (string, error) {
	var b [24]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b[:])
	s.sessions.Set(token, &Session{Username: username, CreatedAt: time.Now()}, cache.DefaultExpiration)
	return token, nil
}

func (s *cacheSessionStore) Lookup(token string) (*Session, bool) {
	v, ok := s.sessions.Get(token)
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

func (s *cacheSessionStore) Invalidate(token string) {
	s.sessions.Delete(token)
}
