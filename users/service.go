// Package users manages the profile records kept alongside auth identities.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rp-labs/storefront-api/models"
	"github.com/rp-labs/storefront-api/store"
)

const collection = "users"

// ErrNotFound is returned when no profile record exists for an identity id.
var ErrNotFound = errors.New("user profile not found")

type Service struct {
	store store.RecordStore
}

func NewService(st store.RecordStore) *Service {
	return &Service{store: st}
}

// ProfileInput holds the denormalized identity fields written on sign-in.
type ProfileInput struct {
	Email       string
	DisplayName string
	PhotoURL    string
	Role        string // applied on first creation only, defaults to "user"
}

// CreateOrUpdate upserts the profile for uid. On first sign-in the full
// record is created with the default role; on later sign-ins only non-empty
// display fields are refreshed. The role is never touched after creation.
func (s *Service) CreateOrUpdate(ctx context.Context, uid string, in ProfileInput) (models.UserProfile, error) {
	_, err := s.store.Get(ctx, collection, uid)
	if errors.Is(err, store.ErrNotFound) {
		role := in.Role
		if role == "" {
			role = models.RoleUser
		}
		err := s.store.Set(ctx, collection, uid, map[string]interface{}{
			"uid":         uid,
			"email":       in.Email,
			"displayName": in.DisplayName,
			"photoURL":    in.PhotoURL,
			"role":        role,
			"createdAt":   store.ServerTimestamp,
			"updatedAt":   store.ServerTimestamp,
		})
		if err != nil {
			return models.UserProfile{}, fmt.Errorf("create user %s: %w", uid, err)
		}
		return s.Get(ctx, uid)
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("fetch user %s: %w", uid, err)
	}

	// Password sign-ins may report no display fields; an empty incoming
	// value keeps the stored one.
	fields := map[string]interface{}{
		"updatedAt": store.ServerTimestamp,
	}
	if in.DisplayName != "" {
		fields["displayName"] = in.DisplayName
	}
	if in.PhotoURL != "" {
		fields["photoURL"] = in.PhotoURL
	}
	err = s.store.Update(ctx, collection, uid, fields)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("update user %s: %w", uid, err)
	}
	return s.Get(ctx, uid)
}

// Get returns the profile record for uid.
func (s *Service) Get(ctx context.Context, uid string) (models.UserProfile, error) {
	rec, err := s.store.Get(ctx, collection, uid)
	if errors.Is(err, store.ErrNotFound) {
		return models.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("fetch user %s: %w", uid, err)
	}
	return decodeProfile(rec), nil
}

// UpdateRole changes a profile's role. Exposed on the admin surface only.
func (s *Service) UpdateRole(ctx context.Context, uid, role string) error {
	if role != models.RoleUser && role != models.RoleAdmin {
		return fmt.Errorf("invalid role %q", role)
	}
	err := s.store.Update(ctx, collection, uid, map[string]interface{}{
		"role":      role,
		"updatedAt": store.ServerTimestamp,
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update role for %s: %w", uid, err)
	}
	return nil
}

// Delete removes the profile record.
func (s *Service) Delete(ctx context.Context, uid string) error {
	if err := s.store.Delete(ctx, collection, uid); err != nil {
		return fmt.Errorf("delete user %s: %w", uid, err)
	}
	return nil
}

func decodeProfile(rec store.Record) models.UserProfile {
	d := rec.Data
	p := models.UserProfile{UID: rec.ID}
	if v, ok := d["email"].(string); ok {
		p.Email = v
	}
	if v, ok := d["displayName"].(string); ok {
		p.DisplayName = v
	}
	if v, ok := d["photoURL"].(string); ok {
		p.PhotoURL = v
	}
	if v, ok := d["role"].(string); ok {
		p.Role = v
	}
	if p.Role == "" {
		p.Role = models.RoleUser
	}
	if v, ok := d["createdAt"].(time.Time); ok {
		p.CreatedAt = v
	}
	if v, ok := d["updatedAt"].(time.Time); ok {
		p.UpdatedAt = v
	}
	return p
}
