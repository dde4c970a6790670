// Package cart is the local shopping cart: an ordered list of line items
// persisted as one JSON value in a local key-value storage. The cart is
// device-local state with no identity attached and no remote sync.
package cart

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/rp-labs/storefront-api/models"
	"github.com/shopspring/decimal"
)

const storageKey = "rp_cart_v1"

// Store is one view onto the shared cart storage. Views sharing a Storage
// observe each other's writes through OnChange; a view never hears its own.
type Store struct {
	storage Storage
	id      string

	// listener registration is delegated to the storage broadcaster;
	// Store fans a storage event out to its own subscribers.
	listeners listenerSet
}

// New opens a view onto storage.
func New(storage Storage) *Store {
	s := &Store{storage: storage, id: uuid.NewString()}
	storage.Watch(s.id, func(key string) {
		if key == storageKey {
			s.listeners.fire()
		}
	})
	return s
}

// Close detaches the view from the storage.
func (s *Store) Close() {
	s.storage.Unwatch(s.id)
}

// OnChange registers fn to run when another view mutates the cart. The
// returned function unregisters it. Consumers re-read on notification; no
// payload is delivered.
func (s *Store) OnChange(fn func()) func() {
	return s.listeners.add(fn)
}

// Items returns the current line items. A missing or unparseable stored
// value yields an empty cart; this read never fails.
func (s *Store) Items() []models.LineItem {
	raw, ok, err := s.storage.Get(storageKey)
	if err != nil || !ok {
		return []models.LineItem{}
	}
	var items []models.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []models.LineItem{}
	}
	return items
}

// Add puts qty units of p into the cart, merging into the existing line item
// for the same product id if there is one. qty below 1 counts as 1. Returns
// the updated list.
func (s *Store) Add(p models.Product, qty int) []models.LineItem {
	if qty < 1 {
		qty = 1
	}
	items := s.Items()
	for i := range items {
		if items[i].ID == p.ID {
			items[i].Qty += qty
			return s.save(items)
		}
	}
	items = append(items, models.LineItem{
		ID:    p.ID,
		Title: p.Title,
		Price: p.Price,
		Image: p.Image,
		Qty:   qty,
	})
	return s.save(items)
}

// UpdateQty sets the quantity for a line item, removing it when qty drops to
// zero or below. Unknown ids are ignored. Returns the updated list.
func (s *Store) UpdateQty(id string, qty int) []models.LineItem {
	items := s.Items()
	for i := range items {
		if items[i].ID != id {
			continue
		}
		if qty <= 0 {
			items = append(items[:i], items[i+1:]...)
		} else {
			items[i].Qty = qty
		}
		break
	}
	return s.save(items)
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.save([]models.LineItem{})
}

// Count is the badge number: the sum of all quantities, recomputed from
// storage on every call so writes from other views are reflected.
func (s *Store) Count() int {
	total := 0
	for _, item := range s.Items() {
		total += item.Qty
	}
	return total
}

// Subtotal sums price×qty over the cart in exact decimal arithmetic.
func (s *Store) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items() {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Qty)))
		total = total.Add(line)
	}
	return total
}

// save persists the full list, replacing the prior snapshot.
func (s *Store) save(items []models.LineItem) []models.LineItem {
	data, err := json.Marshal(items)
	if err != nil {
		log.Printf("❌ Failed to encode cart: %v", err)
		return items
	}
	if err := s.storage.Set(storageKey, string(data), s.id); err != nil {
		log.Printf("❌ Failed to persist cart: %v", err)
	}
	return items
}
