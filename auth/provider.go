// Package auth wraps the external authentication provider and tracks the
// signed-in identity as an explicit session object.
package auth

import (
	"context"
	"errors"
	"sync"
)

// Provider types as reported by the backend.
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google.com"
)

var (
	ErrNotSignedIn        = errors.New("no user is currently signed in")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Identity is the authenticated principal as the provider reports it.
type Identity struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	PhotoURL     string `json:"photoURL"`
	ProviderType string `json:"providerType"`
}

// Provider is the narrow boundary with the external authentication service.
// Implementations track the current identity and notify subscribers on every
// change (sign-in, sign-out, deletion).
type Provider interface {
	SignUp(ctx context.Context, email, password string) (Identity, error)
	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignInWithGoogle(ctx context.Context, idToken string) (Identity, error)
	SignOut(ctx context.Context) error
	SendPasswordReset(ctx context.Context, email string) error

	// DeleteIdentity removes the identity from the provider. For
	// password identities a non-empty password triggers reauthentication
	// first.
	DeleteIdentity(ctx context.Context, id, password string) error

	Current() (Identity, bool)

	// OnChange subscribes to identity changes; nil means signed out. The
	// returned function unsubscribes.
	OnChange(fn func(*Identity)) func()
}

// identityState is the current-identity bookkeeping shared by provider
// implementations.
type identityState struct {
	mu        sync.Mutex
	current   *Identity
	next      int
	listeners map[int]func(*Identity)
}

func (s *identityState) Current() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

func (s *identityState) OnChange(fn func(*Identity)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listeners == nil {
		s.listeners = make(map[int]func(*Identity))
	}
	id := s.next
	s.next++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *identityState) set(identity *Identity) {
	s.mu.Lock()
	s.current = identity
	fns := make([]func(*Identity), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(identity)
	}
}
