package auth

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/rp-labs/storefront-api/models"
	"github.com/rp-labs/storefront-api/users"
)

const profileLoadTimeout = 10 * time.Second

// Session tracks the signed-in identity together with its denormalized
// profile record. It holds the single subscription to the provider's
// identity-change stream and is passed to consumers as an injected
// dependency, never reached through package globals.
type Session struct {
	provider Provider
	users    *users.Service

	mu          sync.Mutex
	profile     *models.UserProfile
	unsubscribe func()
}

func NewSession(provider Provider, us *users.Service) *Session {
	s := &Session{provider: provider, users: us}
	s.unsubscribe = provider.OnChange(s.handleChange)
	return s
}

// Close drops the identity-change subscription.
func (s *Session) Close() {
	s.unsubscribe()
}

// handleChange loads (or lazily creates, with the default role) the profile
// for a new identity and clears it on sign-out.
func (s *Session) handleChange(identity *Identity) {
	if identity == nil {
		s.setProfile(nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), profileLoadTimeout)
	defer cancel()

	profile, err := s.users.Get(ctx, identity.ID)
	if errors.Is(err, users.ErrNotFound) {
		profile, err = s.users.CreateOrUpdate(ctx, identity.ID, users.ProfileInput{
			Email:       identity.Email,
			DisplayName: identity.DisplayName,
			PhotoURL:    identity.PhotoURL,
		})
	}
	if err != nil {
		log.Printf("❌ Failed to load profile for %s: %v", identity.ID, err)
		s.setProfile(nil)
		return
	}
	s.setProfile(&profile)
}

// Signup registers a new identity and creates its profile record.
func (s *Session) Signup(ctx context.Context, email, password string) (models.UserProfile, error) {
	identity, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return models.UserProfile{}, err
	}
	return s.upsertProfile(ctx, identity)
}

// Login signs in with email and password, refreshing the profile's display
// fields. The stored role is never overwritten here.
func (s *Session) Login(ctx context.Context, email, password string) (models.UserProfile, error) {
	identity, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return models.UserProfile{}, err
	}
	return s.upsertProfile(ctx, identity)
}

// LoginWithGoogle signs in with a verified Google ID token.
func (s *Session) LoginWithGoogle(ctx context.Context, idToken string) (models.UserProfile, error) {
	identity, err := s.provider.SignInWithGoogle(ctx, idToken)
	if err != nil {
		return models.UserProfile{}, err
	}
	return s.upsertProfile(ctx, identity)
}

// Logout signs the current identity out.
func (s *Session) Logout(ctx context.Context) error {
	return s.provider.SignOut(ctx)
}

// ResetPassword sends a password-reset email.
func (s *Session) ResetPassword(ctx context.Context, email string) error {
	return s.provider.SendPasswordReset(ctx, email)
}

// DeleteAccount removes the current identity and its profile record. The
// identity goes first: once it is gone the profile is unreachable, so its
// cleanup is best-effort and a failure only logs.
func (s *Session) DeleteAccount(ctx context.Context, password string) error {
	identity, ok := s.provider.Current()
	if !ok {
		return ErrNotSignedIn
	}
	return s.DeleteAccountFor(ctx, identity.ID, password)
}

// DeleteAccountFor is DeleteAccount for an explicit identity id.
func (s *Session) DeleteAccountFor(ctx context.Context, uid, password string) error {
	if err := s.provider.DeleteIdentity(ctx, uid, password); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, uid); err != nil {
		log.Printf("⚠️ Identity %s deleted but profile cleanup failed: %v", uid, err)
	}
	return nil
}

// Identity returns the current identity, if any.
func (s *Session) Identity() (Identity, bool) {
	return s.provider.Current()
}

// Profile returns the loaded profile for the current identity, if any.
func (s *Session) Profile() (models.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return models.UserProfile{}, false
	}
	return *s.profile, true
}

func (s *Session) IsAuthenticated() bool {
	_, ok := s.provider.Current()
	return ok
}

func (s *Session) IsAdmin() bool {
	profile, ok := s.Profile()
	return ok && profile.IsAdmin()
}

func (s *Session) upsertProfile(ctx context.Context, identity Identity) (models.UserProfile, error) {
	profile, err := s.users.CreateOrUpdate(ctx, identity.ID, users.ProfileInput{
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		PhotoURL:    identity.PhotoURL,
	})
	if err != nil {
		return models.UserProfile{}, err
	}
	s.setProfile(&profile)
	return profile, nil
}

func (s *Session) setProfile(profile *models.UserProfile) {
	s.mu.Lock()
	s.profile = profile
	s.mu.Unlock()
}
