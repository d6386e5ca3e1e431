package physics

import "github.com/ByteArena/box2d"

// Contact is a read view of an engine contact between two fixtures
// Valid only until the next Step or topology change
type Contact struct {
	native box2d.B2ContactInterface
}

// IsTouching reports whether the shapes overlap, as opposed to only their AABBs
func (c Contact) IsTouching() bool {
	return c.native.IsTouching()
}

func (c Contact) IsEnabled() bool {
	return c.native.IsEnabled()
}

// FixtureA returns the body and fixture handles of the first participant
func (c Contact) FixtureA() (BodyHandle, FixtureHandle) {
	return fixtureHandleOf(c.native.GetFixtureA())
}

// FixtureB returns the body and fixture handles of the second participant
func (c Contact) FixtureB() (BodyHandle, FixtureHandle) {
	return fixtureHandleOf(c.native.GetFixtureB())
}

func (c Contact) ChildIndexA() int {
	return c.native.GetChildIndexA()
}

func (c Contact) ChildIndexB() int {
	return c.native.GetChildIndexB()
}

func (c Contact) Friction() float64 {
	return c.native.GetFriction()
}

func (c Contact) Restitution() float64 {
	return c.native.GetRestitution()
}

func (c Contact) TangentSpeed() float64 {
	return c.native.GetTangentSpeed()
}

// Manifold returns a copy of the local contact manifold
func (c Contact) Manifold() Manifold {
	return *c.native.GetManifold()
}

// PointCount is the number of manifold points, 0 when not touching
func (c Contact) PointCount() int {
	return c.native.GetManifold().PointCount
}

// WorldManifold returns contact points and normal in world coordinates
func (c Contact) WorldManifold() WorldManifold {
	wm := box2d.MakeB2WorldManifold()
	c.native.GetWorldManifold(&wm)
	return wm
}

// Involves reports whether body is one of the contact's participants
func (c Contact) Involves(body BodyHandle) bool {
	a, _ := c.FixtureA()
	b, _ := c.FixtureB()
	return a == body || b == body
}

// ContactMut is a Contact with write access, valid for the current step only
type ContactMut struct {
	Contact
}

// SetEnabled disables the contact for the current step; re-enabled on the next update
func (c ContactMut) SetEnabled(flag bool) {
	c.native.SetEnabled(flag)
}

func (c ContactMut) SetFriction(friction float64) {
	c.native.SetFriction(friction)
}

// ResetFriction restores the mixed friction of both fixtures
func (c ContactMut) ResetFriction() {
	c.native.ResetFriction()
}

func (c ContactMut) SetRestitution(restitution float64) {
	c.native.SetRestitution(restitution)
}

func (c ContactMut) ResetRestitution() {
	c.native.ResetRestitution()
}

// SetTangentSpeed sets a conveyor belt speed along the contact tangent
func (c ContactMut) SetTangentSpeed(speed float64) {
	c.native.SetTangentSpeed(speed)
}
