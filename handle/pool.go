package handle

import (
	"fmt"
	"iter"
)

// borrowExclusive marks a slot held by a RefMut
const borrowExclusive = -1

type slot[V any] struct {
	generation uint32
	live       bool
	borrow     int32 // >0 shared count, borrowExclusive, or 0
	value      V
}

// Pool stores values of type V behind generational handles tagged K, with a runtime
// borrow flag per slot. Vacated slots are reused; reuse bumps the generation so old
// handles stop resolving. Not safe for concurrent use
type Pool[K, V any] struct {
	slots []*slot[V] // pointers keep borrowed values stable across growth
	free  []uint32
	count int
}

// New creates an empty pool
func New[K, V any]() *Pool[K, V] {
	return &Pool[K, V]{
		slots: make([]*slot[V], 0, 16),
	}
}

// InsertWith reserves a slot, calls factory with the handle the value will be stored under,
// then stores the result. The slot does not resolve until factory returns
func (p *Pool[K, V]) InsertWith(factory func(Handle[K]) V) Handle[K] {
	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		idx = uint32(len(p.slots))
		p.slots = append(p.slots, &slot[V]{generation: 1})
	}
	s := p.slots[idx]
	h := Handle[K]{index: idx, generation: s.generation}

	committed := false
	defer func() {
		if !committed {
			// Factory panicked: hand the index back untouched
			p.free = append(p.free, idx)
		}
	}()

	value := factory(h)

	s.value = value
	s.live = true
	s.borrow = 0
	p.count++
	committed = true
	return h
}

// Insert stores value and returns its handle
func (p *Pool[K, V]) Insert(value V) Handle[K] {
	return p.InsertWith(func(Handle[K]) V { return value })
}

func (p *Pool[K, V]) lookup(h Handle[K]) *slot[V] {
	if h.generation == 0 || int(h.index) >= len(p.slots) {
		return nil
	}
	s := p.slots[h.index]
	if !s.live || s.generation != h.generation {
		return nil
	}
	return s
}

// Contains reports whether h resolves to a live value
func (p *Pool[K, V]) Contains(h Handle[K]) bool {
	return p.lookup(h) != nil
}

// Len returns the number of live values
func (p *Pool[K, V]) Len() int {
	return p.count
}

// Get takes a shared borrow of the value behind h
// Returns false for stale or foreign handles; panics if the value is mutably borrowed
func (p *Pool[K, V]) Get(h Handle[K]) (*Ref[K, V], bool) {
	s := p.lookup(h)
	if s == nil {
		return nil, false
	}
	if s.borrow == borrowExclusive {
		panic(fmt.Errorf("handle %s: %w", h, ErrAlreadyMutablyBorrowed))
	}
	s.borrow++
	return &Ref[K, V]{slot: s, handle: h}, true
}

// GetMut takes an exclusive borrow of the value behind h
// Returns false for stale or foreign handles; panics if any borrow is outstanding
func (p *Pool[K, V]) GetMut(h Handle[K]) (*RefMut[K, V], bool) {
	s := p.lookup(h)
	if s == nil {
		return nil, false
	}
	if s.borrow != 0 {
		panic(fmt.Errorf("handle %s: %w", h, ErrAlreadyBorrowed))
	}
	s.borrow = borrowExclusive
	return &RefMut[K, V]{slot: s, handle: h}, true
}

// Peek returns the value behind h without taking a borrow
// Only for reading fields fixed at insertion; ordinary access goes through Get and GetMut
func (p *Pool[K, V]) Peek(h Handle[K]) (*V, bool) {
	s := p.lookup(h)
	if s == nil {
		return nil, false
	}
	return &s.value, true
}

// Remove vacates the slot behind h and returns its value
// Panics on a stale handle or while the value is borrowed
func (p *Pool[K, V]) Remove(h Handle[K]) V {
	s := p.lookup(h)
	if s == nil {
		panic(fmt.Errorf("remove %s: %w", h, ErrStaleHandle))
	}
	if s.borrow != 0 {
		panic(fmt.Errorf("remove %s: %w", h, ErrBorrowedOnRemove))
	}

	value := s.value
	var zero V
	s.value = zero
	s.live = false
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	p.free = append(p.free, h.index)
	p.count--
	return value
}

// All yields every live value in slot order, each shared-borrowed for the duration of its yield
func (p *Pool[K, V]) All() iter.Seq2[Handle[K], *Ref[K, V]] {
	return func(yield func(Handle[K], *Ref[K, V]) bool) {
		for i := 0; i < len(p.slots); i++ {
			s := p.slots[i]
			if !s.live {
				continue
			}
			h := Handle[K]{index: uint32(i), generation: s.generation}
			cont := func() bool {
				ref, _ := p.Get(h)
				defer ref.Release()
				return yield(h, ref)
			}()
			if !cont {
				return
			}
		}
	}
}

// Handles returns a snapshot of live handles in slot order
func (p *Pool[K, V]) Handles() []Handle[K] {
	out := make([]Handle[K], 0, p.count)
	for i, s := range p.slots {
		if s.live {
			out = append(out, Handle[K]{index: uint32(i), generation: s.generation})
		}
	}
	return out
}
