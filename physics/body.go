package physics

import (
	"fmt"
	"iter"

	"github.com/ByteArena/box2d"

	"github.com/lixenwraith/zoo-spree/handle"
)

type (
	FixtureRef[F any]    = handle.Ref[fixtureKey, Fixture[F]]
	FixtureRefMut[F any] = handle.RefMut[fixtureKey, Fixture[F]]
)

// Body is a rigid body owned by a World, with its fixtures pooled per body
// Reached through World.Body and World.BodyMut; methods that change the body's
// fixtures or simulation state are meant for the RefMut path
type Body[B, F any] struct {
	native   *box2d.B2Body
	data     *userData[BodyHandle, B]
	fixtures *handle.Pool[fixtureKey, Fixture[F]]
}

func newBody[B, F any](native *box2d.B2Body, h BodyHandle, custom B) Body[B, F] {
	b := Body[B, F]{
		native:   native,
		data:     newUserData(h, custom),
		fixtures: handle.New[fixtureKey, Fixture[F]](),
	}
	install(native, b.data)
	return b
}

func (b *Body[B, F]) mustUnlocked(op string) {
	if b.native.M_world.IsLocked() {
		panic(fmt.Errorf("%s: %w", op, ErrWorldLocked))
	}
}

// mustFixturesFree panics with the pool's borrow error if any fixture is borrowed
func (b *Body[B, F]) mustFixturesFree() {
	for _, h := range b.fixtures.Handles() {
		ref, _ := b.fixtures.GetMut(h)
		ref.Release()
	}
}

// releaseFixtures empties the fixture pool; engine objects are destroyed with the body
func (b *Body[B, F]) releaseFixtures() []Fixture[F] {
	hs := b.fixtures.Handles()
	out := make([]Fixture[F], 0, len(hs))
	for _, h := range hs {
		out = append(out, b.fixtures.Remove(h))
	}
	return out
}

func (b *Body[B, F]) teardown() {
	detach(b.native)
	b.data = nil
}

// Handle returns the body's own handle
func (b *Body[B, F]) Handle() BodyHandle {
	return b.data.handle
}

// UserData returns the custom payload
func (b *Body[B, F]) UserData() B {
	return b.data.custom
}

// UserDataMut returns the custom payload for modification
func (b *Body[B, F]) UserDataMut() *B {
	return &b.data.custom
}

// CreateFixture attaches a copy of shape with zero-valued user data
func (b *Body[B, F]) CreateFixture(shape Shape, def FixtureDef) FixtureHandle {
	var zero F
	return b.CreateFixtureWith(shape, def, zero)
}

// CreateFixtureWith attaches a copy of shape and stores the fixture under a new handle
// Updates the body's mass when density is positive; panics while the world is stepping
func (b *Body[B, F]) CreateFixtureWith(shape Shape, def FixtureDef, custom F) FixtureHandle {
	b.mustUnlocked("create fixture")
	return b.fixtures.InsertWith(func(h FixtureHandle) Fixture[F] {
		nd := def.native(shape)
		return newFixture(b.native.CreateFixtureFromDef(&nd), h, custom)
	})
}

// CreateFastFixture attaches shape with only a density; other fields take DefaultFixtureDef
func (b *Body[B, F]) CreateFastFixture(shape Shape, density float64) FixtureHandle {
	var zero F
	return b.CreateFastFixtureWith(shape, density, zero)
}

func (b *Body[B, F]) CreateFastFixtureWith(shape Shape, density float64, custom F) FixtureHandle {
	fd := DefaultFixtureDef()
	fd.Density = density
	return b.CreateFixtureWith(shape, fd, custom)
}

// Fixture takes a shared borrow of a fixture; panics on an invalid handle
func (b *Body[B, F]) Fixture(h FixtureHandle) *FixtureRef[F] {
	ref, ok := b.fixtures.Get(h)
	if !ok {
		panic(fmt.Errorf("fixture %s: %w", h, ErrInvalidFixture))
	}
	return ref
}

// FixtureMut takes an exclusive borrow of a fixture; panics on an invalid handle
func (b *Body[B, F]) FixtureMut(h FixtureHandle) *FixtureRefMut[F] {
	ref, ok := b.fixtures.GetMut(h)
	if !ok {
		panic(fmt.Errorf("fixture %s: %w", h, ErrInvalidFixture))
	}
	return ref
}

// HasFixture reports whether h names a live fixture of this body
func (b *Body[B, F]) HasFixture(h FixtureHandle) bool {
	return b.fixtures.Contains(h)
}

// DestroyFixture removes the fixture from the pool, then from the engine
// Panics on an invalid handle, while the fixture is borrowed or while the world is stepping
func (b *Body[B, F]) DestroyFixture(h FixtureHandle) {
	b.mustUnlocked("destroy fixture")
	if !b.fixtures.Contains(h) {
		panic(fmt.Errorf("destroy fixture %s: %w", h, ErrInvalidFixture))
	}
	f := b.fixtures.Remove(h)
	b.native.DestroyFixture(f.native)
	f.teardown()
}

// Fixtures yields every fixture of the body in creation order of their slots
func (b *Body[B, F]) Fixtures() iter.Seq2[FixtureHandle, *FixtureRef[F]] {
	return b.fixtures.All()
}

func (b *Body[B, F]) FixtureCount() int {
	return b.fixtures.Len()
}

// Joints yields (other body, joint) for every joint attached to this body
func (b *Body[B, F]) Joints() iter.Seq2[BodyHandle, JointHandle] {
	return func(yield func(BodyHandle, JointHandle) bool) {
		for e := b.native.GetJointList(); e != nil; e = e.Next {
			if !yield(bodyHandleOf(e.Other), jointHandleOf(e.Joint)) {
				return
			}
		}
	}
}

// Contacts yields (other body, contact) for every contact in the body's edge list
// Contacts exist once fixture AABBs overlap; check IsTouching for actual touch
func (b *Body[B, F]) Contacts() iter.Seq2[BodyHandle, Contact] {
	return func(yield func(BodyHandle, Contact) bool) {
		for e := b.native.GetContactList(); e != nil; e = e.Next {
			if !yield(bodyHandleOf(e.Other), Contact{native: e.Contact}) {
				return
			}
		}
	}
}

// ContactsMut is Contacts with write access to each contact; use under BodyMut
func (b *Body[B, F]) ContactsMut() iter.Seq2[BodyHandle, ContactMut] {
	return func(yield func(BodyHandle, ContactMut) bool) {
		for e := b.native.GetContactList(); e != nil; e = e.Next {
			if !yield(bodyHandleOf(e.Other), ContactMut{Contact{native: e.Contact}}) {
				return
			}
		}
	}
}

func (b *Body[B, F]) Transform() Transform {
	return b.native.GetTransform()
}

// SetTransform teleports the body; contacts are updated on the next step
func (b *Body[B, F]) SetTransform(position Vec2, angle float64) {
	b.native.SetTransform(position, angle)
}

func (b *Body[B, F]) Position() Vec2 {
	return b.native.GetPosition()
}

func (b *Body[B, F]) Angle() float64 {
	return b.native.GetAngle()
}

func (b *Body[B, F]) WorldCenter() Vec2 {
	return b.native.GetWorldCenter()
}

func (b *Body[B, F]) LocalCenter() Vec2 {
	return b.native.GetLocalCenter()
}

func (b *Body[B, F]) LinearVelocity() Vec2 {
	return b.native.GetLinearVelocity()
}

func (b *Body[B, F]) SetLinearVelocity(v Vec2) {
	b.native.SetLinearVelocity(v)
}

func (b *Body[B, F]) AngularVelocity() float64 {
	return b.native.GetAngularVelocity()
}

func (b *Body[B, F]) SetAngularVelocity(w float64) {
	b.native.SetAngularVelocity(w)
}

func (b *Body[B, F]) Mass() float64 {
	return b.native.GetMass()
}

// Inertia is about the local origin
func (b *Body[B, F]) Inertia() float64 {
	return b.native.GetInertia()
}

func (b *Body[B, F]) MassData() MassData {
	var md MassData
	b.native.GetMassData(&md)
	return md
}

// SetMassData overrides fixture-derived mass; ignored for non-dynamic bodies
func (b *Body[B, F]) SetMassData(md MassData) {
	b.native.SetMassData(&md)
}

// ResetMassData recomputes mass from fixture densities
func (b *Body[B, F]) ResetMassData() {
	b.native.ResetMassData()
}

func (b *Body[B, F]) WorldPoint(local Vec2) Vec2 {
	return b.native.GetWorldPoint(local)
}

func (b *Body[B, F]) WorldVector(local Vec2) Vec2 {
	return b.native.GetWorldVector(local)
}

func (b *Body[B, F]) LocalPoint(world Vec2) Vec2 {
	return b.native.GetLocalPoint(world)
}

func (b *Body[B, F]) LocalVector(world Vec2) Vec2 {
	return b.native.GetLocalVector(world)
}

func (b *Body[B, F]) LinearVelocityFromWorldPoint(p Vec2) Vec2 {
	return b.native.GetLinearVelocityFromWorldPoint(p)
}

func (b *Body[B, F]) LinearVelocityFromLocalPoint(p Vec2) Vec2 {
	return b.native.GetLinearVelocityFromLocalPoint(p)
}

func (b *Body[B, F]) LinearDamping() float64 {
	return b.native.GetLinearDamping()
}

func (b *Body[B, F]) SetLinearDamping(d float64) {
	b.native.SetLinearDamping(d)
}

func (b *Body[B, F]) AngularDamping() float64 {
	return b.native.GetAngularDamping()
}

func (b *Body[B, F]) SetAngularDamping(d float64) {
	b.native.SetAngularDamping(d)
}

func (b *Body[B, F]) GravityScale() float64 {
	return b.native.GetGravityScale()
}

func (b *Body[B, F]) SetGravityScale(s float64) {
	b.native.SetGravityScale(s)
}

func (b *Body[B, F]) Type() BodyType {
	return BodyType(b.native.GetType())
}

func (b *Body[B, F]) SetType(t BodyType) {
	b.native.SetType(uint8(t))
}

func (b *Body[B, F]) IsBullet() bool {
	return b.native.IsBullet()
}

func (b *Body[B, F]) SetBullet(flag bool) {
	b.native.SetBullet(flag)
}

func (b *Body[B, F]) IsSleepingAllowed() bool {
	return b.native.IsSleepingAllowed()
}

func (b *Body[B, F]) SetSleepingAllowed(flag bool) {
	b.native.SetSleepingAllowed(flag)
}

func (b *Body[B, F]) IsAwake() bool {
	return b.native.IsAwake()
}

func (b *Body[B, F]) SetAwake(flag bool) {
	b.native.SetAwake(flag)
}

func (b *Body[B, F]) IsActive() bool {
	return b.native.IsActive()
}

// SetActive removes or restores the body in the broad-phase without destroying it
func (b *Body[B, F]) SetActive(flag bool) {
	b.native.SetActive(flag)
}

func (b *Body[B, F]) IsFixedRotation() bool {
	return b.native.IsFixedRotation()
}

func (b *Body[B, F]) SetFixedRotation(flag bool) {
	b.native.SetFixedRotation(flag)
}

// ApplyForce applies force at a world point; off-center points add torque
func (b *Body[B, F]) ApplyForce(force, point Vec2, wake bool) {
	b.native.ApplyForce(force, point, wake)
}

func (b *Body[B, F]) ApplyForceToCenter(force Vec2, wake bool) {
	b.native.ApplyForceToCenter(force, wake)
}

func (b *Body[B, F]) ApplyTorque(torque float64, wake bool) {
	b.native.ApplyTorque(torque, wake)
}

func (b *Body[B, F]) ApplyLinearImpulse(impulse, point Vec2, wake bool) {
	b.native.ApplyLinearImpulse(impulse, point, wake)
}

func (b *Body[B, F]) ApplyLinearImpulseToCenter(impulse Vec2, wake bool) {
	b.native.ApplyLinearImpulseToCenter(impulse, wake)
}

func (b *Body[B, F]) ApplyAngularImpulse(impulse float64, wake bool) {
	b.native.ApplyAngularImpulse(impulse, wake)
}
