package cached

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

const numStripes = 4

// Holder is implemented by every type that owns cached slots.
// Embedding a Store is enough: *Store provides CacheStore.
type Holder interface {
	CacheStore() *Store
}

// Store keeps the materialized slot values of one instance.
// The zero value is ready to use. A Store must not be copied after first use.
// Stripes are allocated on first access, so instances that never touch a slot
// carry a single nil pointer.
type Store struct {
	idOnce  sync.Once
	id      uuid.UUID
	stripes atomic.Pointer[[numStripes]stripe]
}

// stripe is one shard of a Store. epochs counts busts per slot name so that a
// compute started before a bust never stores its result after it.
type stripe struct {
	mu     sync.Mutex
	values map[string]any
	epochs map[string]uint64
}

// CacheStore returns s, making any struct that embeds a Store a Holder.
func (s *Store) CacheStore() *Store {
	return s
}

// ID identifies the owning instance in log records.
func (s *Store) ID() uuid.UUID {
	s.idOnce.Do(func() {
		s.id = uuid.New()
	})
	return s.id
}

func (s *Store) stripeFor(name string) *stripe {
	stripes := s.stripes.Load()
	if stripes == nil {
		s.stripes.CompareAndSwap(nil, new([numStripes]stripe))
		stripes = s.stripes.Load()
	}
	return &stripes[xxhash.Sum64String(name)%numStripes]
}

func (s *Store) load(name string) (value any, epoch uint64, ok bool) {
	st := s.stripeFor(name)
	st.mu.Lock()
	defer st.mu.Unlock()

	value, ok = st.values[name]
	return value, st.epochs[name], ok
}

// storeIfCurrent keeps value under name unless another reader stored first or the
// slot was busted since epoch. It returns the value the caller should hand out.
func (s *Store) storeIfCurrent(name string, epoch uint64, value any) (retained any, stored bool) {
	st := s.stripeFor(name)
	st.mu.Lock()
	defer st.mu.Unlock()

	if existing, ok := st.values[name]; ok {
		return existing, false
	}
	if st.epochs[name] != epoch {
		return value, false
	}
	if st.values == nil {
		st.values = make(map[string]any)
	}
	st.values[name] = value
	return value, true
}

// delete removes the value stored under name and bumps its epoch.
// It reports whether a value was present.
func (s *Store) delete(name string) bool {
	st := s.stripeFor(name)
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.epochs == nil {
		st.epochs = make(map[string]uint64)
	}
	st.epochs[name]++

	if _, ok := st.values[name]; !ok {
		return false
	}
	delete(st.values, name)
	return true
}

func (s *Store) names() []string {
	stripes := s.stripes.Load()
	if stripes == nil {
		return nil
	}
	var names []string
	for i := range stripes {
		st := &stripes[i]
		st.mu.Lock()
		for name := range st.values {
			names = append(names, name)
		}
		st.mu.Unlock()
	}
	sort.Strings(names)
	return names
}
