package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/rp-labs/storefront-api/models"
	"github.com/rp-labs/storefront-api/store"
	"github.com/rp-labs/storefront-api/users"
)

// fakeProvider is an in-memory Provider sharing the real current-identity
// bookkeeping, so change notifications behave like the Firebase one.
type fakeProvider struct {
	identityState
	accounts  map[string]Identity
	deleted   []string
	deleteErr error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{accounts: make(map[string]Identity)}
}

func (f *fakeProvider) SignUp(_ context.Context, email, password string) (Identity, error) {
	identity := Identity{ID: "uid-" + email, Email: email, ProviderType: ProviderPassword}
	f.accounts[email] = identity
	f.set(&identity)
	return identity, nil
}

func (f *fakeProvider) SignIn(_ context.Context, email, password string) (Identity, error) {
	identity, ok := f.accounts[email]
	if !ok {
		return Identity{}, ErrInvalidCredentials
	}
	f.set(&identity)
	return identity, nil
}

func (f *fakeProvider) SignInWithGoogle(_ context.Context, idToken string) (Identity, error) {
	identity := Identity{
		ID:           idToken,
		Email:        idToken + "@gmail.com",
		DisplayName:  "Google User",
		ProviderType: ProviderGoogle,
	}
	f.set(&identity)
	return identity, nil
}

func (f *fakeProvider) SignOut(_ context.Context) error {
	f.set(nil)
	return nil
}

func (f *fakeProvider) SendPasswordReset(_ context.Context, email string) error {
	return nil
}

func (f *fakeProvider) DeleteIdentity(_ context.Context, id, password string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	if current, ok := f.Current(); ok && current.ID == id {
		f.set(nil)
	}
	return nil
}

func newTestSession() (*Session, *fakeProvider, *users.Service, *store.MemoryStore) {
	st := store.NewMemoryStore()
	us := users.NewService(st)
	provider := newFakeProvider()
	return NewSession(provider, us), provider, us, st
}

func TestSignupCreatesProfile(t *testing.T) {
	t.Parallel()

	session, _, us, _ := newTestSession()
	defer session.Close()
	ctx := context.Background()

	profile, err := session.Signup(ctx, "u1@example.com", "secret123")
	if err != nil {
		t.Fatal(err)
	}
	if profile.Role != models.RoleUser {
		t.Fatalf("expected default role, got %q", profile.Role)
	}
	if !session.IsAuthenticated() {
		t.Fatal("expected authenticated session after signup")
	}
	if session.IsAdmin() {
		t.Fatal("fresh signup must not be admin")
	}

	stored, err := us.Get(ctx, profile.UID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Email != "u1@example.com" {
		t.Fatalf("unexpected stored profile: %+v", stored)
	}
}

func TestLoginPreservesAdminRole(t *testing.T) {
	t.Parallel()

	session, _, us, _ := newTestSession()
	defer session.Close()
	ctx := context.Background()

	profile, err := session.Signup(ctx, "boss@example.com", "secret123")
	if err != nil {
		t.Fatal(err)
	}
	if err := us.UpdateRole(ctx, profile.UID, models.RoleAdmin); err != nil {
		t.Fatal(err)
	}
	if err := session.Logout(ctx); err != nil {
		t.Fatal(err)
	}

	// The sign-in upsert refreshes display fields only.
	again, err := session.Login(ctx, "boss@example.com", "secret123")
	if err != nil {
		t.Fatal(err)
	}
	if again.Role != models.RoleAdmin {
		t.Fatalf("role reset to %q by login", again.Role)
	}
	if !session.IsAdmin() {
		t.Fatal("expected admin session")
	}
}

func TestIdentityChangeLazilyCreatesProfile(t *testing.T) {
	t.Parallel()

	session, provider, us, _ := newTestSession()
	defer session.Close()

	// An identity appearing on the change stream without a login call,
	// e.g. a restored session.
	provider.set(&Identity{ID: "u9", Email: "u9@example.com", ProviderType: ProviderPassword})

	profile, ok := session.Profile()
	if !ok {
		t.Fatal("expected profile loaded on identity change")
	}
	if profile.UID != "u9" || profile.Role != models.RoleUser {
		t.Fatalf("unexpected lazily created profile: %+v", profile)
	}
	if _, err := us.Get(context.Background(), "u9"); err != nil {
		t.Fatalf("profile record not created: %v", err)
	}
}

func TestLogoutClearsProfile(t *testing.T) {
	t.Parallel()

	session, _, _, _ := newTestSession()
	defer session.Close()
	ctx := context.Background()

	if _, err := session.Signup(ctx, "u1@example.com", "secret123"); err != nil {
		t.Fatal(err)
	}
	if err := session.Logout(ctx); err != nil {
		t.Fatal(err)
	}

	if session.IsAuthenticated() {
		t.Fatal("expected unauthenticated session after logout")
	}
	if _, ok := session.Profile(); ok {
		t.Fatal("expected profile cleared after logout")
	}
}

func TestDeleteAccountRemovesIdentityThenProfile(t *testing.T) {
	t.Parallel()

	session, provider, us, _ := newTestSession()
	defer session.Close()
	ctx := context.Background()

	profile, err := session.Signup(ctx, "u1@example.com", "secret123")
	if err != nil {
		t.Fatal(err)
	}

	if err := session.DeleteAccount(ctx, "secret123"); err != nil {
		t.Fatal(err)
	}
	if len(provider.deleted) != 1 || provider.deleted[0] != profile.UID {
		t.Fatalf("identity not deleted: %v", provider.deleted)
	}
	if _, err := us.Get(ctx, profile.UID); !errors.Is(err, users.ErrNotFound) {
		t.Fatalf("expected profile gone, got %v", err)
	}
	if session.IsAuthenticated() {
		t.Fatal("expected signed-out session after account deletion")
	}
}

func TestDeleteAccountIdentityFailureKeepsProfile(t *testing.T) {
	t.Parallel()

	session, provider, us, _ := newTestSession()
	defer session.Close()
	ctx := context.Background()

	profile, err := session.Signup(ctx, "u1@example.com", "secret123")
	if err != nil {
		t.Fatal(err)
	}

	provider.deleteErr = errors.New("requires recent login")
	if err := session.DeleteAccount(ctx, ""); err == nil {
		t.Fatal("expected identity deletion error to surface")
	}

	// The profile is only cleaned up after the identity is gone.
	if _, err := us.Get(ctx, profile.UID); err != nil {
		t.Fatalf("profile removed despite identity failure: %v", err)
	}
}

func TestDeleteAccountProfileCleanupBestEffort(t *testing.T) {
	t.Parallel()

	session, provider, us, st := newTestSession()
	defer session.Close()
	ctx := context.Background()

	profile, err := session.Signup(ctx, "u1@example.com", "secret123")
	if err != nil {
		t.Fatal(err)
	}

	st.Fail = errors.New("backend down")
	if err := session.DeleteAccount(ctx, ""); err != nil {
		t.Fatalf("cleanup failure must not surface: %v", err)
	}
	if len(provider.deleted) != 1 {
		t.Fatalf("identity not deleted: %v", provider.deleted)
	}

	// The retained profile is the accepted leftover.
	st.Fail = nil
	if _, err := us.Get(ctx, profile.UID); err != nil {
		t.Fatalf("expected retained profile, got %v", err)
	}
}

func TestDeleteAccountRequiresSignIn(t *testing.T) {
	t.Parallel()

	session, _, _, _ := newTestSession()
	defer session.Close()

	if err := session.DeleteAccount(context.Background(), ""); !errors.Is(err, ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
}
