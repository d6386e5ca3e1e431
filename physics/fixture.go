package physics

import "github.com/ByteArena/box2d"

// Fixture attaches a shape and material to a body
// Reached through Body.Fixture and Body.FixtureMut
type Fixture[F any] struct {
	native *box2d.B2Fixture
	data   *userData[FixtureHandle, F]
}

func newFixture[F any](native *box2d.B2Fixture, h FixtureHandle, custom F) Fixture[F] {
	f := Fixture[F]{
		native: native,
		data:   newUserData(h, custom),
	}
	install(native, f.data)
	return f
}

func (f *Fixture[F]) teardown() {
	detach(f.native)
	f.data = nil
}

// Handle returns the fixture's own handle
func (f *Fixture[F]) Handle() FixtureHandle {
	return f.data.handle
}

// Body returns the handle of the owning body
func (f *Fixture[F]) Body() BodyHandle {
	return bodyHandleOf(f.native.GetBody())
}

// UserData returns the custom payload
func (f *Fixture[F]) UserData() F {
	return f.data.custom
}

// UserDataMut returns the custom payload for modification
func (f *Fixture[F]) UserDataMut() *F {
	return &f.data.custom
}

func (f *Fixture[F]) ShapeType() ShapeType {
	return ShapeType(f.native.GetType())
}

// Shape returns the fixture's own copy of its shape
func (f *Fixture[F]) Shape() Shape {
	return Shape{native: f.native.GetShape()}
}

func (f *Fixture[F]) Density() float64 {
	return f.native.GetDensity()
}

// SetDensity takes effect after the owning body's ResetMassData
func (f *Fixture[F]) SetDensity(density float64) {
	f.native.SetDensity(density)
}

func (f *Fixture[F]) Friction() float64 {
	return f.native.GetFriction()
}

func (f *Fixture[F]) SetFriction(friction float64) {
	f.native.SetFriction(friction)
}

func (f *Fixture[F]) Restitution() float64 {
	return f.native.GetRestitution()
}

func (f *Fixture[F]) SetRestitution(restitution float64) {
	f.native.SetRestitution(restitution)
}

func (f *Fixture[F]) IsSensor() bool {
	return f.native.IsSensor()
}

func (f *Fixture[F]) SetSensor(sensor bool) {
	f.native.SetSensor(sensor)
}

func (f *Fixture[F]) Filter() Filter {
	return f.native.GetFilterData()
}

// SetFilter replaces the collision filter and flags existing contacts for refiltering
func (f *Fixture[F]) SetFilter(filter Filter) {
	f.native.SetFilterData(filter)
}

// TestPoint reports whether a world point lies inside the shape
func (f *Fixture[F]) TestPoint(p Vec2) bool {
	return f.native.TestPoint(p)
}

// AABB returns the broad-phase box of a child primitive
func (f *Fixture[F]) AABB(child int) AABB {
	return f.native.GetAABB(child)
}

func (f *Fixture[F]) MassData() MassData {
	var md MassData
	f.native.GetMassData(&md)
	return md
}
