package cached

import (
	"fmt"
	"slices"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Declarations lists the slot names declared for a type.
// Every Registry implements it, which lets a registry name its parents
// without knowing their type parameter.
type Declarations interface {
	Names() []string
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	parents []Declarations
}

// WithLogger sets the logger that receives debug records for materialize and bust.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithParents makes the slots of embedded types part of this type's slots, so
// BustAll on the outer type reaches them too.
func WithParents(parents ...Declarations) Option {
	return func(o *options) {
		o.parents = append(o.parents, parents...)
	}
}

// Registry is the static slot table of one owning type.
//
// Slots are declared at package initialization. The first instance operation
// freezes the registry; the full name set, parents included, is computed once
// at that point.
type Registry[O Holder] struct {
	typeName string
	logger   *zap.Logger
	parents  []Declarations

	mu     sync.Mutex
	frozen atomic.Bool
	own    []string
	names  []string
	known  map[string]struct{}
}

// NewRegistry creates the slot table for the type named typeName.
func NewRegistry[O Holder](typeName string, opts ...Option) *Registry[O] {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry[O]{
		typeName: typeName,
		logger:   o.logger.With(zap.String("type", typeName)),
		parents:  o.parents,
	}
}

// TypeName returns the name the registry was created with.
func (r *Registry[O]) TypeName() string {
	return r.typeName
}

func (r *Registry[O]) declare(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		panic(fmt.Sprintf("cached: slot %q declared on %s after first use", name, r.typeName))
	}
	if slices.Contains(r.own, name) {
		panic(fmt.Sprintf("cached: slot %q declared twice on %s", name, r.typeName))
	}
	r.own = append(r.own, name)
}

func (r *Registry[O]) freeze() {
	if r.frozen.Load() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen.Load() {
		return
	}

	known := make(map[string]struct{})
	// Two parents may share a base type, so repeated parent names are fine.
	for _, p := range r.parents {
		for _, name := range p.Names() {
			known[name] = struct{}{}
		}
	}
	for _, name := range r.own {
		if _, ok := known[name]; ok {
			panic(fmt.Sprintf("cached: slot %q on %s shadows a parent slot", name, r.typeName))
		}
		known[name] = struct{}{}
	}

	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)

	r.names = names
	r.known = known
	r.frozen.Store(true)
}

// Names returns the sorted names of every slot declared on the type,
// parents included.
func (r *Registry[O]) Names() []string {
	r.freeze()
	return slices.Clone(r.names)
}

// Declared reports whether name is a slot of the type.
func (r *Registry[O]) Declared(name string) bool {
	r.freeze()
	_, ok := r.known[name]
	return ok
}

// BustOne drops the value of slot name on instance.
// Unknown names and unmaterialized slots are ignored.
func (r *Registry[O]) BustOne(instance O, name string) {
	if !r.Declared(name) {
		return
	}
	r.bust(instance.CacheStore(), name)
}

// BustAll drops the values of every slot on instance except the excluded ones.
// Excluded slots keep whatever value they hold.
func (r *Registry[O]) BustAll(instance O, exclude ...string) {
	r.freeze()
	store := instance.CacheStore()
	for _, name := range r.names {
		if slices.Contains(exclude, name) {
			continue
		}
		r.bust(store, name)
	}
}

// Materialized returns the sorted names of the slots currently holding a value on instance.
func (r *Registry[O]) Materialized(instance O) []string {
	r.freeze()
	var names []string
	for _, name := range instance.CacheStore().names() {
		if _, ok := r.known[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

func (r *Registry[O]) bust(store *Store, name string) {
	if !store.delete(name) {
		return
	}
	if ce := r.logger.Check(zap.DebugLevel, "busted cached slot"); ce != nil {
		ce.Write(zap.String("slot", name), zap.Stringer("instance", store.ID()))
	}
}
