package cart

import "sync"

// Storage is the local durable key-value medium the cart persists to. A
// write notifies every watcher except the one named by origin, mirroring the
// browser storage-event contract: the writing view never hears its own
// write, other views sharing the medium do.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value, origin string) error
	Watch(origin string, fn func(key string))
	Unwatch(origin string)
}

// broadcaster implements the watcher bookkeeping shared by the storage
// implementations.
type broadcaster struct {
	mu       sync.Mutex
	watchers map[string]func(key string)
}

func (b *broadcaster) Watch(origin string, fn func(key string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.watchers == nil {
		b.watchers = make(map[string]func(key string))
	}
	b.watchers[origin] = fn
}

func (b *broadcaster) Unwatch(origin string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.watchers, origin)
}

func (b *broadcaster) notify(key, origin string) {
	b.mu.Lock()
	fns := make([]func(key string), 0, len(b.watchers))
	for o, fn := range b.watchers {
		if o != origin {
			fns = append(fns, fn)
		}
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(key)
	}
}

// MemoryStorage is a volatile Storage for tests.
type MemoryStorage struct {
	broadcaster
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStorage) Set(key, value, origin string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	s.notify(key, origin)
	return nil
}
