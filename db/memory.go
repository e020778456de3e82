// db/memory.go
package db

import (
	"context"
	"sync"
)

// MemoryKV is an in-process KV used by tests and by deployments that run
// without Redis. Values are copied on the way in and out.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]map[string][]byte)}
}

func (s *MemoryKV) Put(_ context.Context, collection, id string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, ok := s.data[collection]
	if !ok {
		coll = make(map[string][]byte)
		s.data[collection] = coll
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	coll[id] = cp
	return nil
}

func (s *MemoryKV) Get(_ context.Context, collection, id string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[collection][id]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true, nil
}

func (s *MemoryKV) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[collection], id)
	return nil
}

func (s *MemoryKV) List(_ context.Context, collection string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]byte, len(s.data[collection]))
	for id, v := range s.data[collection] {
		cp := make([]byte, len(v))
		copy(cp, v)
		out[id] = cp
	}
	return out, nil
}

var _ KV = (*MemoryKV)(nil)
