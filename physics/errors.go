package physics

import "errors"

var (
	// Lookups through a stale or foreign handle panic with these
	ErrInvalidBody    = errors.New("invalid body handle")
	ErrInvalidFixture = errors.New("invalid fixture handle")
	ErrInvalidJoint   = errors.New("invalid joint handle")

	// ErrForeignUserData means an engine object's back-link was not installed by this package
	ErrForeignUserData = errors.New("engine object has no entity back-link")

	ErrUnknownJointKind  = errors.New("unknown joint kind")
	ErrSameBody          = errors.New("joint needs two distinct bodies")
	ErrWorldClosed       = errors.New("world is closed")
	ErrWorldLocked       = errors.New("world is locked during step")
	ErrDegeneratePolygon = errors.New("degenerate polygon")
	ErrVertexCount       = errors.New("vertex count out of range")
)
