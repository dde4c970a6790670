package users

import (
	"context"
	"errors"
	"testing"

	"github.com/rp-labs/storefront-api/models"
	"github.com/rp-labs/storefront-api/store"
)

func TestCreateOrUpdateCreatesWithDefaultRole(t *testing.T) {
	t.Parallel()

	svc := NewService(store.NewMemoryStore())
	profile, err := svc.CreateOrUpdate(context.Background(), "u1", ProfileInput{
		Email:       "u1@example.com",
		DisplayName: "User One",
	})
	if err != nil {
		t.Fatal(err)
	}
	if profile.Role != models.RoleUser {
		t.Fatalf("expected default role user, got %q", profile.Role)
	}
	if profile.UID != "u1" || profile.Email != "u1@example.com" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestCreateOrUpdatePreservesRole(t *testing.T) {
	t.Parallel()

	svc := NewService(store.NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.CreateOrUpdate(ctx, "u1", ProfileInput{Email: "u1@example.com"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateRole(ctx, "u1", models.RoleAdmin); err != nil {
		t.Fatal(err)
	}

	// A later sign-in refreshes display fields but must not reset role.
	profile, err := svc.CreateOrUpdate(ctx, "u1", ProfileInput{
		Email:       "u1@example.com",
		DisplayName: "Renamed",
		PhotoURL:    "https://example.com/new.png",
	})
	if err != nil {
		t.Fatal(err)
	}
	if profile.Role != models.RoleAdmin {
		t.Fatalf("role reset by upsert: got %q", profile.Role)
	}
	if profile.DisplayName != "Renamed" || profile.PhotoURL != "https://example.com/new.png" {
		t.Fatalf("display fields not refreshed: %+v", profile)
	}
}

func TestCreateOrUpdateKeepsDisplayFieldsOnEmptySignIn(t *testing.T) {
	t.Parallel()

	svc := NewService(store.NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.CreateOrUpdate(ctx, "u1", ProfileInput{
		Email:       "u1@example.com",
		DisplayName: "User One",
		PhotoURL:    "https://example.com/u1.png",
	}); err != nil {
		t.Fatal(err)
	}

	// A password sign-in reporting no display fields must not wipe them.
	profile, err := svc.CreateOrUpdate(ctx, "u1", ProfileInput{Email: "u1@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if profile.DisplayName != "User One" || profile.PhotoURL != "https://example.com/u1.png" {
		t.Fatalf("stored display fields wiped by empty sign-in values: %+v", profile)
	}
}

func TestCreateOrUpdateHonorsInitialRole(t *testing.T) {
	t.Parallel()

	svc := NewService(store.NewMemoryStore())
	profile, err := svc.CreateOrUpdate(context.Background(), "root", ProfileInput{
		Email: "root@example.com",
		Role:  models.RoleAdmin,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !profile.IsAdmin() {
		t.Fatalf("expected admin role on first creation, got %q", profile.Role)
	}
}

func TestUpdateRoleValidation(t *testing.T) {
	t.Parallel()

	svc := NewService(store.NewMemoryStore())
	if err := svc.UpdateRole(context.Background(), "u1", "superuser"); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestUpdateRoleMissingUser(t *testing.T) {
	t.Parallel()

	svc := NewService(store.NewMemoryStore())
	if err := svc.UpdateRole(context.Background(), "ghost", models.RoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetMissingUser(t *testing.T) {
	t.Parallel()

	svc := NewService(store.NewMemoryStore())
	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	svc := NewService(store.NewMemoryStore())
	ctx := context.Background()

	if _, err := svc.CreateOrUpdate(ctx, "u1", ProfileInput{Email: "u1@example.com"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected profile gone, got %v", err)
	}
}
