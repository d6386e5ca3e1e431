package handle

// Ref is a shared borrow of a pooled value
// Release returns the borrow; releasing twice is a no-op
type Ref[K, V any] struct {
	slot     *slot[V]
	handle   Handle[K]
	released bool
}

// Get returns the borrowed value; callers must not mutate through it
func (r *Ref[K, V]) Get() *V {
	return &r.slot.value
}

// Handle returns the handle the borrow was taken through
func (r *Ref[K, V]) Handle() Handle[K] {
	return r.handle
}

// Release ends the borrow
func (r *Ref[K, V]) Release() {
	if r == nil || r.released {
		return
	}
	r.released = true
	r.slot.borrow--
}

// RefMut is an exclusive borrow of a pooled value
type RefMut[K, V any] struct {
	slot     *slot[V]
	handle   Handle[K]
	released bool
}

// Get returns the borrowed value for reading and writing
func (r *RefMut[K, V]) Get() *V {
	return &r.slot.value
}

// Handle returns the handle the borrow was taken through
func (r *RefMut[K, V]) Handle() Handle[K] {
	return r.handle
}

// Release ends the borrow
func (r *RefMut[K, V]) Release() {
	if r == nil || r.released {
		return
	}
	r.released = true
	r.slot.borrow = 0
}
