// Package physics binds the Box2D rigid-body engine to handle-addressed entities
// Bodies, fixtures and joints live in generational pools owned by a World; the engine
// objects carry a back-link to their handle so engine-side traversals map back to handles
package physics

import (
	"github.com/ByteArena/box2d"

	"github.com/lixenwraith/zoo-spree/handle"
)

// Engine value types are used as-is
type (
	Vec2           = box2d.B2Vec2
	Rot            = box2d.B2Rot
	Transform      = box2d.B2Transform
	AABB           = box2d.B2AABB
	MassData       = box2d.B2MassData
	Filter         = box2d.B2Filter
	Profile        = box2d.B2Profile
	Manifold       = box2d.B2Manifold
	WorldManifold  = box2d.B2WorldManifold
	ContactImpulse = box2d.B2ContactImpulse
)

// V is shorthand for a Vec2 literal
func V(x, y float64) Vec2 {
	return box2d.MakeB2Vec2(x, y)
}

// NewAABB builds a box from its corners
func NewAABB(lower, upper Vec2) AABB {
	return AABB{LowerBound: lower, UpperBound: upper}
}

// Handle tags
type (
	bodyKey    struct{}
	fixtureKey struct{}
	jointKey   struct{}
)

type (
	BodyHandle    = handle.Handle[bodyKey]
	FixtureHandle = handle.Handle[fixtureKey]
	JointHandle   = handle.Handle[jointKey]
)

// NoUserData is the payload type for worlds that attach nothing to entities
type NoUserData = struct{}

// BodyType selects how a body participates in the simulation
type BodyType uint8

// Values match the engine's body type discriminators
const (
	StaticBody BodyType = iota
	KinematicBody
	DynamicBody
)

func (t BodyType) String() string {
	switch t {
	case StaticBody:
		return "static"
	case KinematicBody:
		return "kinematic"
	case DynamicBody:
		return "dynamic"
	}
	return "unknown"
}
