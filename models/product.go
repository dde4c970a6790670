package models

import (
	"strings"
	"time"
)

// Product is the canonical shape of a product record. The record store is
// schemaless; this struct is imposed at the access-layer boundary.
type Product struct {
	ID          string    `firestore:"-" json:"id"`
	Title       string    `firestore:"title" json:"title"`
	Price       float64   `firestore:"price" json:"price"`
	Description string    `firestore:"description" json:"description"`
	Category    string    `firestore:"category" json:"category"`
	Image       string    `firestore:"image" json:"image"`
	Stock       int       `firestore:"stock" json:"stock"`
	CreatedBy   string    `firestore:"createdBy" json:"createdBy,omitempty"` // empty on legacy/seed records
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Categories is the fixed set a product may belong to, stored lower-case.
var Categories = []string{
	"electronics",
	"fashion",
	"home & living",
	"beauty",
	"sports",
	"books",
	"food",
}

// NormalizeCategory lower-cases and trims a category value.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// ValidCategory reports whether category is one of Categories
// (case-insensitive).
func ValidCategory(category string) bool {
	normalized := NormalizeCategory(category)
	for _, c := range Categories {
		if c == normalized {
			return true
		}
	}
	return false
}
