// Package products is the access layer for product records. It enforces the
// authorization policy before every mutation; UI-side policy checks are
// advisory only.
package products

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/rp-labs/storefront-api/models"
	"github.com/rp-labs/storefront-api/policy"
	"github.com/rp-labs/storefront-api/store"
)

const collection = "products"

type Service struct {
	store store.RecordStore
}

func NewService(st store.RecordStore) *Service {
	return &Service{store: st}
}

// CreateInput carries the caller-supplied fields for a new product.
type CreateInput struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock"`
}

func (in CreateInput) validate() error {
	switch {
	case in.Title == "":
		return fmt.Errorf("%w: title is required", ErrInvalid)
	case in.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalid)
	case in.Description == "":
		return fmt.Errorf("%w: description is required", ErrInvalid)
	case !models.ValidCategory(in.Category):
		return fmt.Errorf("%w: unknown category %q", ErrInvalid, in.Category)
	case in.Image == "":
		return fmt.Errorf("%w: image is required", ErrInvalid)
	case in.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalid)
	}
	return nil
}

// UpdateInput carries optional field updates; nil fields are left untouched.
type UpdateInput struct {
	Title       *string  `json:"title"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	Stock       *int     `json:"stock"`
}

func (in UpdateInput) fields() (map[string]interface{}, error) {
	fields := make(map[string]interface{})
	if in.Title != nil {
		if *in.Title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalid)
		}
		fields["title"] = *in.Title
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalid)
		}
		fields["price"] = *in.Price
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Category != nil {
		if !models.ValidCategory(*in.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalid, *in.Category)
		}
		fields["category"] = models.NormalizeCategory(*in.Category)
	}
	if in.Image != nil {
		fields["image"] = *in.Image
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must not be negative", ErrInvalid)
		}
		fields["stock"] = *in.Stock
	}
	return fields, nil
}

// FetchAll returns every product. Remote faults degrade to an empty list so
// the browse surface never breaks; the fault is logged only.
func (s *Service) FetchAll(ctx context.Context) []models.Product {
	records, err := s.store.GetAll(ctx, collection)
	if err != nil {
		log.Printf("❌ Failed to fetch products: %v", err)
		return []models.Product{}
	}
	return decodeAll(records)
}

// FetchByID returns one product. An absent document yields ErrNotFound; a
// transport fault is returned as such, the two are never conflated.
func (s *Service) FetchByID(ctx context.Context, id string) (models.Product, error) {
	rec, err := s.store.Get(ctx, collection, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("fetch product %s: %w", id, err)
	}
	return decode(rec), nil
}

// FetchByCategory matches case-insensitively: categories are stored
// lower-case, so an equality query on the normalized value covers any input
// casing. Faults degrade to empty like FetchAll.
func (s *Service) FetchByCategory(ctx context.Context, category string) []models.Product {
	records, err := s.store.QueryEqual(ctx, collection, "category", models.NormalizeCategory(category))
	if err != nil {
		log.Printf("❌ Failed to fetch products by category: %v", err)
		return []models.Product{}
	}
	return decodeAll(records)
}

// Create stores a new product owned by the caller.
func (s *Service) Create(ctx context.Context, in CreateInput, callerID string) (models.Product, error) {
	if callerID == "" {
		return models.Product{}, ErrUnauthenticated
	}
	if err := in.validate(); err != nil {
		return models.Product{}, err
	}

	rec, err := s.store.Create(ctx, collection, map[string]interface{}{
		"title":       in.Title,
		"price":       in.Price,
		"description": in.Description,
		"category":    models.NormalizeCategory(in.Category),
		"image":       in.Image,
		"stock":       in.Stock,
		"createdBy":   callerID,
		"createdAt":   store.ServerTimestamp,
		"updatedAt":   store.ServerTimestamp,
	})
	if err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}

	now := time.Now()
	return models.Product{
		ID:          rec.ID,
		Title:       in.Title,
		Price:       in.Price,
		Description: in.Description,
		Category:    models.NormalizeCategory(in.Category),
		Image:       in.Image,
		Stock:       in.Stock,
		CreatedBy:   callerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update applies in over the existing record after re-checking the edit
// policy. The read-check-write runs inside one store transaction, so a
// concurrent ownership change cannot slip past the check.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput, callerID, callerRole string) (models.Product, error) {
	if callerID == "" {
		return models.Product{}, ErrUnauthenticated
	}
	fields, err := in.fields()
	if err != nil {
		return models.Product{}, err
	}

	var merged models.Product
	err = s.store.Transact(ctx, func(tx store.Tx) error {
		rec, err := tx.Get(collection, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("fetch product %s: %w", id, err)
		}

		existing := decode(rec)
		if !policy.CanEdit(existing, callerID, callerRole) {
			return ErrForbidden
		}

		fields["updatedAt"] = store.ServerTimestamp
		if err := tx.Update(collection, id, fields); err != nil {
			return fmt.Errorf("update product %s: %w", id, err)
		}

		merged = applyFields(existing, fields)
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return merged, nil
}

// Delete removes one product after re-checking the delete policy, inside one
// store transaction like Update.
func (s *Service) Delete(ctx context.Context, id, callerID, callerRole string) error {
	if callerID == "" {
		return ErrUnauthenticated
	}
	return s.store.Transact(ctx, func(tx store.Tx) error {
		rec, err := tx.Get(collection, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("fetch product %s: %w", id, err)
		}
		if !policy.CanDelete(decode(rec), callerID, callerRole) {
			return ErrForbidden
		}
		if err := tx.Delete(collection, id); err != nil {
			return fmt.Errorf("delete product %s: %w", id, err)
		}
		return nil
	})
}

// DeleteMultiple removes a batch of products. Non-admin callers must own
// every id: the ownership check runs sequentially up front and a single
// failure rejects the whole batch before any delete is issued. Admitted
// deletes run concurrently with no rollback on partial failure.
func (s *Service) DeleteMultiple(ctx context.Context, ids []string, callerID, callerRole string) error {
	if callerID == "" {
		return ErrUnauthenticated
	}

	if callerRole != models.RoleAdmin {
		for _, id := range ids {
			p, err := s.FetchByID(ctx, id)
			if err != nil {
				return err
			}
			if !policy.CanDelete(p, callerID, callerRole) {
				return ErrForbidden
			}
		}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if err := s.store.Delete(ctx, collection, id); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("delete product %s: %w", id, err)
				}
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()
	return firstErr
}

func decodeAll(records []store.Record) []models.Product {
	out := make([]models.Product, 0, len(records))
	for _, rec := range records {
		out = append(out, decode(rec))
	}
	return out
}

// applyFields mirrors the merge the store performed, for the response body.
func applyFields(p models.Product, fields map[string]interface{}) models.Product {
	if v, ok := fields["title"].(string); ok {
		p.Title = v
	}
	if v, ok := fields["price"].(float64); ok {
		p.Price = v
	}
	if v, ok := fields["description"].(string); ok {
		p.Description = v
	}
	if v, ok := fields["category"].(string); ok {
		p.Category = v
	}
	if v, ok := fields["image"].(string); ok {
		p.Image = v
	}
	if v, ok := fields["stock"].(int); ok {
		p.Stock = v
	}
	p.UpdatedAt = time.Now()
	return p
}
