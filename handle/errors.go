package handle

import "errors"

// Borrow violations and stale removals are programmer errors: the pool panics with
// these values (wrapped with the offending handle) rather than returning them
var (
	ErrStaleHandle            = errors.New("stale or invalid handle")
	ErrAlreadyBorrowed        = errors.New("already borrowed")
	ErrAlreadyMutablyBorrowed = errors.New("already mutably borrowed")
	ErrBorrowedOnRemove       = errors.New("remove while borrowed")
)
