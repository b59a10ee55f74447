package slots

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/zeusync/raysense/internal/core/state/vars"
)

var _ Store = (*MemoryStore)(nil)

type shard struct {
	mu    sync.RWMutex
	cells map[string]*vars.AtomicFloat32
}

// MemoryStore is an in-process Store of named float cells, sharded by name
// hash. Only declared names can be looked up.
type MemoryStore struct {
	shards []*shard
}

// NewMemoryStore creates a store with shardCount shards and declares names.
func NewMemoryStore(shardCount int, names ...string) *MemoryStore {
	if shardCount <= 0 {
		shardCount = 1
	}
	s := &MemoryStore{shards: make([]*shard, shardCount)}
	for i := range s.shards {
		s.shards[i] = &shard{cells: make(map[string]*vars.AtomicFloat32)}
	}
	for _, name := range names {
		s.Declare(name)
	}
	return s
}

func (s *MemoryStore) shardFor(name string) *shard {
	return s.shards[xxhash.Sum64String(name)%uint64(len(s.shards))]
}

// Declare creates the cell for name if it does not exist and returns it.
func (s *MemoryStore) Declare(name string) *vars.AtomicFloat32 {
	sh := s.shardFor(name)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if c, ok := sh.cells[name]; ok {
		return c
	}
	c := vars.NewAtomicFloat32(0)
	sh.cells[name] = c
	return c
}

func (s *MemoryStore) Lookup(name string) (Cell, bool) {
	sh := s.shardFor(name)
	sh.mu.RLock()
	c, ok := sh.cells[name]
	sh.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return c, true
}

// Get returns the current value of name.
func (s *MemoryStore) Get(name string) (float32, bool) {
	sh := s.shardFor(name)
	sh.mu.RLock()
	c, ok := sh.cells[name]
	sh.mu.RUnlock()
	if !ok {
		return 0, false
	}
	return c.Get(), true
}

// Set writes value to an already declared name.
func (s *MemoryStore) Set(name string, value float32) error {
	sh := s.shardFor(name)
	sh.mu.RLock()
	c, ok := sh.cells[name]
	sh.mu.RUnlock()
	if !ok {
		return fmt.Errorf("set %q: %w", name, ErrUnknownSlot)
	}
	c.Set(value)
	return nil
}

// Values copies every cell into a map.
func (s *MemoryStore) Values() map[string]float32 {
	out := make(map[string]float32)
	for _, sh := range s.shards {
		sh.mu.RLock()
		for name, c := range sh.cells {
			out[name] = c.Get()
		}
		sh.mu.RUnlock()
	}
	return out
}

// Declared returns every declared name, sorted.
func (s *MemoryStore) Declared() []string {
	var out []string
	for _, sh := range s.shards {
		sh.mu.RLock()
		for name := range sh.cells {
			out = append(out, name)
		}
		sh.mu.RUnlock()
	}
	sort.Strings(out)
	return out
}
