package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process RecordStore used by tests and local
// development. All operations are serialized by one mutex, so Transact is
// trivially atomic.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]interface{}

	// Fail, when set, makes every operation return the given error.
	Fail error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]map[string]interface{})}
}

func (s *MemoryStore) GetAll(_ context.Context, collection string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return nil, s.Fail
	}
	var records []Record
	for id, data := range s.collections[collection] {
		records = append(records, Record{ID: id, Data: copyFields(data)})
	}
	return records, nil
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(collection, id)
}

func (s *MemoryStore) Create(_ context.Context, collection string, fields map[string]interface{}) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return Record{}, s.Fail
	}
	id := uuid.NewString()
	s.put(collection, id, resolveSentinels(fields))
	return Record{ID: id, Data: copyFields(s.collections[collection][id])}, nil
}

func (s *MemoryStore) Set(_ context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return s.Fail
	}
	s.put(collection, id, resolveSentinels(fields))
	return nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(collection, id, fields)
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delete(collection, id)
}

func (s *MemoryStore) QueryEqual(_ context.Context, collection, field string, value interface{}) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return nil, s.Fail
	}
	var records []Record
	for id, data := range s.collections[collection] {
		if data[field] == value {
			records = append(records, Record{ID: id, Data: copyFields(data)})
		}
	}
	return records, nil
}

func (s *MemoryStore) Transact(_ context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return s.Fail
	}
	return fn(&memoryTx{store: s})
}

type memoryTx struct {
	store *MemoryStore
}

func (t *memoryTx) Get(collection, id string) (Record, error) {
	return t.store.get(collection, id)
}

func (t *memoryTx) Update(collection, id string, fields map[string]interface{}) error {
	return t.store.update(collection, id, fields)
}

func (t *memoryTx) Delete(collection, id string) error {
	return t.store.delete(collection, id)
}

// Callers below hold s.mu.

func (s *MemoryStore) get(collection, id string) (Record, error) {
	if s.Fail != nil {
		return Record{}, s.Fail
	}
	data, ok := s.collections[collection][id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return Record{ID: id, Data: copyFields(data)}, nil
}

func (s *MemoryStore) update(collection, id string, fields map[string]interface{}) error {
	if s.Fail != nil {
		return s.Fail
	}
	data, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range resolveSentinels(fields) {
		data[k] = v
	}
	return nil
}

func (s *MemoryStore) delete(collection, id string) error {
	if s.Fail != nil {
		return s.Fail
	}
	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryStore) put(collection, id string, fields map[string]interface{}) {
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]interface{})
	}
	s.collections[collection][id] = fields
}

func resolveSentinels(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	now := time.Now()
	for k, v := range fields {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = now
			continue
		}
		out[k] = v
	}
	return out
}

func copyFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
