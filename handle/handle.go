// Package handle provides typed generational handles and the object pool that issues them
package handle

import "fmt"

// Handle is an opaque reference to a pool slot
// T is a phantom tag: handles of different entity kinds never mix at compile time
// Zero value is never issued by a pool and always fails lookup
type Handle[T any] struct {
	index      uint32
	generation uint32
}

// Index returns the slot index
func (h Handle[T]) Index() uint32 {
	return h.index
}

// Generation returns the slot generation the handle was issued for
func (h Handle[T]) Generation() uint32 {
	return h.generation
}

// IsZero reports whether h is the zero handle
func (h Handle[T]) IsZero() bool {
	return h.generation == 0
}

func (h Handle[T]) String() string {
	return fmt.Sprintf("%d:%d", h.index, h.generation)
}
