package cached

import (
	"fmt"

	"github.com/on-the-ground/lazy_ive_go/shared/helper"
	"go.uber.org/zap"
)

// Slot is a lazily computed attribute of O.
// Its value is computed on first Get and kept in the instance's Store until busted.
type Slot[O Holder, V any] struct {
	reg     *Registry[O]
	name    string
	compute func(O) (V, error)
}

// box lets nil interface values survive the trip through the Store.
type box[V any] struct {
	v V
}

// Declare adds the slot name to reg and returns its accessor.
// It panics if compute is nil, if name is already declared on reg, or if reg
// has already been used by an instance.
func Declare[O Holder, V any](reg *Registry[O], name string, compute func(O) (V, error)) *Slot[O, V] {
	if compute == nil {
		panic(fmt.Sprintf("cached: nil compute for slot %q", name))
	}
	reg.declare(name)
	return &Slot[O, V]{
		reg:     reg,
		name:    name,
		compute: compute,
	}
}

// DeclareValue is Declare for computations that cannot fail.
func DeclareValue[O Holder, V any](reg *Registry[O], name string, compute func(O) V) *Slot[O, V] {
	if compute == nil {
		panic(fmt.Sprintf("cached: nil compute for slot %q", name))
	}
	return Declare(reg, name, func(o O) (V, error) {
		return compute(o), nil
	})
}

// Name returns the slot name.
func (s *Slot[O, V]) Name() string {
	return s.name
}

// Get returns the value of the slot on instance, computing and storing it first
// if needed. An error from compute is returned unchanged and nothing is stored,
// so the next Get computes again.
//
// compute runs without any lock held. When two goroutines race on an empty slot
// both may compute; the first result stored is the one every caller gets.
func (s *Slot[O, V]) Get(instance O) (V, error) {
	s.reg.freeze()
	store := instance.CacheStore()

	raw, epoch, ok := store.load(s.name)
	if ok {
		return s.unbox(raw)
	}

	v, err := s.compute(instance)
	if err != nil {
		var zero V
		return zero, err
	}

	retained, stored := store.storeIfCurrent(s.name, epoch, box[V]{v: v})
	if stored {
		if ce := s.reg.logger.Check(zap.DebugLevel, "materialized cached slot"); ce != nil {
			ce.Write(zap.String("slot", s.name), zap.Stringer("instance", store.ID()))
		}
	}
	return s.unbox(retained)
}

// MustGet is Get for callers that treat a compute failure as fatal.
func (s *Slot[O, V]) MustGet(instance O) V {
	v, err := s.Get(instance)
	if err != nil {
		panic(err)
	}
	return v
}

// Peek returns the stored value without computing it.
func (s *Slot[O, V]) Peek(instance O) (V, bool) {
	s.reg.freeze()
	raw, _, ok := instance.CacheStore().load(s.name)
	if !ok {
		var zero V
		return zero, false
	}
	b, ok := raw.(box[V])
	return b.v, ok
}

// Bust drops the stored value so the next Get recomputes it.
func (s *Slot[O, V]) Bust(instance O) {
	s.reg.BustOne(instance, s.name)
}

func (s *Slot[O, V]) unbox(raw any) (V, error) {
	b, err := helper.GetTypedValueOf[box[V]](func() (any, error) {
		return raw, nil
	})
	if err != nil {
		return b.v, fmt.Errorf("cached slot %q: %w", s.name, err)
	}
	return b.v, nil
}
