// Package store abstracts the document record store. Records are schemaless
// maps; typed structs are imposed by the access layers on top.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document id does not resolve. Callers can
// tell it apart from a transport fault, which is returned as-is.
var ErrNotFound = errors.New("record not found")

// ServerTimestamp is a sentinel field value replaced by the backend's
// server-assigned timestamp at write time.
var ServerTimestamp = serverTimestamp{}

type serverTimestamp struct{}

// Record is one document: its id plus the raw field map.
type Record struct {
	ID   string
	Data map[string]interface{}
}

// Tx is the transactional view passed to Transact callbacks. Reads observe a
// consistent snapshot; writes commit atomically or not at all.
type Tx interface {
	Get(collection, id string) (Record, error)
	Update(collection, id string, fields map[string]interface{}) error
	Delete(collection, id string) error
}

// RecordStore is the narrow boundary with the remote document database.
type RecordStore interface {
	// GetAll returns every document in the collection.
	GetAll(ctx context.Context, collection string) ([]Record, error)

	// Get returns one document by id, or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Record, error)

	// Create stores a new document under a backend-assigned id.
	Create(ctx context.Context, collection string, fields map[string]interface{}) (Record, error)

	// Set stores a document under a caller-chosen id, replacing any
	// existing content.
	Set(ctx context.Context, collection, id string, fields map[string]interface{}) error

	// Update merges fields into an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]interface{}) error

	// Delete removes a document. Deleting an absent id is a no-op.
	Delete(ctx context.Context, collection, id string) error

	// QueryEqual returns all documents whose field equals value.
	QueryEqual(ctx context.Context, collection, field string, value interface{}) ([]Record, error)

	// Transact runs fn atomically against the store.
	Transact(ctx context.Context, fn func(tx Tx) error) error
}
