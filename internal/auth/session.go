// Package auth implements the GitHub OAuth login flow and the server-side
// session layer that gates mutating API endpoints.
//
// Sessions live only in process memory: the client holds a signed session ID
// in an HTTP-only cookie, and the server holds the session record, including
// the provider profile (Identity) established by a successful callback.
// Mutations to a given session are serialized per session key so a logout
// racing an authenticated request cannot produce a lost update.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// State is the position of a session in the login state machine.
type State int

const (
	// Anonymous is a session with no provider interaction.
	Anonymous State = iota
	// PendingProvider means a redirect to the OAuth provider has been
	// issued and the callback has not returned yet.
	PendingProvider
	// Authenticated means the provider callback succeeded and Identity is set.
	Authenticated
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case PendingProvider:
		return "pending_provider"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Identity is the authenticated user's provider profile, stored verbatim.
// There is deliberately no local user table: the profile is serialized into
// the session as returned by GitHub and handed back unchanged (a documented
// simplification, not an optimization).
type Identity struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Email     string `json:"email,omitempty"`
}

// Session is the server-side state associated with one client.
type Session struct {
	ID         string
	State      State
	OAuthState string // CSRF token while PendingProvider
	Identity   *Identity
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// Authenticated reports whether the session carries a non-empty identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.State == Authenticated && s.Identity != nil && s.Identity.Login != ""
}

// Store is the session-store abstraction injected into the HTTP layer:
// session ID -> session record, bounded by a TTL. Update must serialize
// mutations of the same session key.
type Store interface {
	// Create allocates a new anonymous session with a fresh random ID.
	Create(ctx context.Context) (*Session, error)
	// Get returns a snapshot of the session, or ErrSessionNotFound when the
	// ID is unknown or the session has expired.
	Get(ctx context.Context, id string) (*Session, error)
	// Update applies fn to the session under its per-key lock. When fn
	// returns an error the mutation is discarded and the error returned.
	Update(ctx context.Context, id string, fn func(*Session) error) error
	// Delete removes the session entirely. Deleting an unknown ID is a no-op
	// so logout is idempotent.
	Delete(ctx context.Context, id string) error
}

// entry pairs a session with its own mutex so concurrent requests for the
// same session serialize without blocking unrelated sessions.
type entry struct {
	mu   sync.Mutex
	sess *Session
}

// MemoryStore is the in-process Store implementation. A janitor goroutine
// evicts expired sessions; Close stops it.
type MemoryStore struct {
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[string]*entry

	stop chan struct{}
	once sync.Once
}

// NewMemoryStore builds a MemoryStore with the given session TTL and starts
// its eviction janitor.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*entry),
		stop:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Create allocates a new anonymous session.
func (s *MemoryStore) Create(_ context.Context) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		State:     Anonymous,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = &entry{sess: sess}
	s.mu.Unlock()
	return snapshot(sess), nil
}

// Get returns a copy of the stored session so callers cannot mutate shared
// state outside Update.
func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if time.Now().UTC().After(e.sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	return snapshot(e.sess), nil
}

// Update mutates the session under its per-key lock.
func (s *MemoryStore) Update(_ context.Context, id string, fn func(*Session) error) error {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if time.Now().UTC().After(e.sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	return fn(e.sess)
}

// Delete removes the session. The ID is never reused: a later login mints a
// fresh session, which is the fixation defense.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Len reports the number of live sessions (expired ones may still be
// counted until the janitor runs).
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the eviction janitor. Safe to call more than once.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// janitor evicts expired sessions once a minute.
func (s *MemoryStore) janitor() {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-t.C:
			s.mu.Lock()
			for id, e := range s.sessions {
				if now.UTC().After(e.sess.ExpiresAt) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

// snapshot copies a session, including its identity.
func snapshot(in *Session) *Session {
	out := *in
	if in.Identity != nil {
		id := *in.Identity
		out.Identity = &id
	}
	return &out
}
