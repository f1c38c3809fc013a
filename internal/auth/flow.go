package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrStateMismatch means the callback state differs from the one issued at
// Begin, or the session never entered PendingProvider.
var ErrStateMismatch = errors.New("oauth state mismatch")

// Flow is the login state machine: Anonymous -> PendingProvider ->
// Authenticated -> Anonymous. It owns the transitions; HTTP handlers only
// translate its results into redirects and cookies.
type Flow struct {
	Provider Provider
	Store    Store
}

// NewFlow constructs a Flow.
func NewFlow(p Provider, s Store) *Flow {
	return &Flow{Provider: p, Store: s}
}

// Begin transitions a fresh session from Anonymous to PendingProvider and
// returns the session plus the provider URL to redirect the client to.
// A new session is always minted so a stale or fixated cookie can never be
// promoted by a later callback.
func (f *Flow) Begin(ctx context.Context) (*Session, string, error) {
	sess, err := f.Store.Create(ctx)
	if err != nil {
		return nil, "", err
	}
	state := uuid.NewString()
	err = f.Store.Update(ctx, sess.ID, func(s *Session) error {
		s.State = PendingProvider
		s.OAuthState = state
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	sess.State = PendingProvider
	sess.OAuthState = state
	return sess, f.Provider.AuthCodeURL(state), nil
}

// Complete handles the provider callback. On success the session holds the
// provider profile as Identity and is Authenticated. On any failure the
// session is left unauthenticated and the error returned so the handler can
// redirect to the configured fallback.
func (f *Flow) Complete(ctx context.Context, sessionID, state, code string) (*Session, error) {
	sess, err := f.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.State != PendingProvider || state == "" || sess.OAuthState != state {
		return nil, ErrStateMismatch
	}

	token, err := f.Provider.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	identity, err := f.Provider.FetchIdentity(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch provider profile: %w", err)
	}

	err = f.Store.Update(ctx, sessionID, func(s *Session) error {
		s.State = Authenticated
		s.OAuthState = ""
		s.Identity = identity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f.Store.Get(ctx, sessionID)
}

// Logout destroys the session server-side. The store never resurrects a
// deleted ID, so the old cookie is worthless afterwards.
func (f *Flow) Logout(ctx context.Context, sessionID string) error {
	return f.Store.Delete(ctx, sessionID)
}
