package physics

import (
	"fmt"
	"iter"
	"log"

	"github.com/ByteArena/box2d"

	"github.com/lixenwraith/zoo-spree/handle"
)

type (
	BodyRef[B, F any]    = handle.Ref[bodyKey, Body[B, F]]
	BodyRefMut[B, F any] = handle.RefMut[bodyKey, Body[B, F]]
	JointRef[J any]      = handle.Ref[jointKey, Joint[J]]
	JointRefMut[J any]   = handle.RefMut[jointKey, Joint[J]]
)

// World owns the engine world and the body and joint pools
// B, F and J are the custom payloads attached to bodies, fixtures and joints
// Single-threaded: all calls must come from the goroutine driving Step
type World[B, F, J any] struct {
	native *box2d.B2World
	bodies *handle.Pool[bodyKey, Body[B, F]]
	joints *handle.Pool[jointKey, Joint[J]]

	listener *contactListenerLink
	filter   *contactFilterLink
	closed   bool
}

// SimpleWorld carries no custom payloads
type SimpleWorld = World[NoUserData, NoUserData, NoUserData]

// New creates a world with the given gravity
func New[B, F, J any](gravity Vec2) *World[B, F, J] {
	nw := box2d.MakeB2World(gravity)
	w := &World[B, F, J]{
		native: &nw,
		bodies: handle.New[bodyKey, Body[B, F]](),
		joints: handle.New[jointKey, Joint[J]](),
	}
	// Engine default leaves category filtering off; install the standard filter
	w.native.SetContactFilter(&box2d.B2ContactFilter{})
	return w
}

// NewWorld creates a world without custom payloads
func NewWorld(gravity Vec2) *SimpleWorld {
	return New[NoUserData, NoUserData, NoUserData](gravity)
}

func (w *World[B, F, J]) mustOpen() {
	if w.closed {
		panic(ErrWorldClosed)
	}
}

func (w *World[B, F, J]) mustUnlocked(op string) {
	w.mustOpen()
	if w.native.IsLocked() {
		panic(fmt.Errorf("%s: %w", op, ErrWorldLocked))
	}
}

func (w *World[B, F, J]) nativeBody(h BodyHandle) *box2d.B2Body {
	b, ok := w.bodies.Peek(h)
	if !ok {
		panic(fmt.Errorf("body %s: %w", h, ErrInvalidBody))
	}
	return b.native
}

func (w *World[B, F, J]) nativeJoint(h JointHandle) box2d.B2JointInterface {
	j, ok := w.joints.Peek(h)
	if !ok {
		panic(fmt.Errorf("joint %s: %w", h, ErrInvalidJoint))
	}
	return j.native
}

// CreateBody adds a body with zero-valued user data
func (w *World[B, F, J]) CreateBody(def *BodyDef) BodyHandle {
	var zero B
	return w.CreateBodyWith(def, zero)
}

// CreateBodyWith adds a body carrying custom and returns its handle
func (w *World[B, F, J]) CreateBodyWith(def *BodyDef, custom B) BodyHandle {
	w.mustUnlocked("create body")
	return w.bodies.InsertWith(func(h BodyHandle) Body[B, F] {
		nd := def.native()
		return newBody[B, F](w.native.CreateBody(&nd), h, custom)
	})
}

// Body takes a shared borrow of a body; panics on an invalid handle
func (w *World[B, F, J]) Body(h BodyHandle) *BodyRef[B, F] {
	ref, ok := w.bodies.Get(h)
	if !ok {
		panic(fmt.Errorf("body %s: %w", h, ErrInvalidBody))
	}
	return ref
}

// BodyMut takes an exclusive borrow of a body; panics on an invalid handle
func (w *World[B, F, J]) BodyMut(h BodyHandle) *BodyRefMut[B, F] {
	ref, ok := w.bodies.GetMut(h)
	if !ok {
		panic(fmt.Errorf("body %s: %w", h, ErrInvalidBody))
	}
	return ref
}

// TryBody is Body without the panic on an invalid handle
func (w *World[B, F, J]) TryBody(h BodyHandle) (*BodyRef[B, F], bool) {
	return w.bodies.Get(h)
}

// TryBodyMut is BodyMut without the panic on an invalid handle
func (w *World[B, F, J]) TryBodyMut(h BodyHandle) (*BodyRefMut[B, F], bool) {
	return w.bodies.GetMut(h)
}

// HasBody reports whether h names a live body
func (w *World[B, F, J]) HasBody(h BodyHandle) bool {
	return w.bodies.Contains(h)
}

// DestroyBody removes a body, its fixtures and every joint attached to it
// Joint handles are dropped from the pool before the engine destroys the joints
// Panics on an invalid handle or if the body or any attached joint is borrowed
func (w *World[B, F, J]) DestroyBody(h BodyHandle) {
	w.mustUnlocked("destroy body")

	// Validate everything before mutating so a borrow panic leaves state intact
	w.BodyMut(h).Release()
	pb, _ := w.bodies.Peek(h)
	pb.mustFixturesFree()
	nb := pb.native
	var attached []JointHandle
	for e := nb.GetJointList(); e != nil; e = e.Next {
		jh := jointHandleOf(e.Joint)
		w.JointMut(jh).Release()
		attached = append(attached, jh)
	}

	dropped := make([]Joint[J], 0, len(attached))
	for _, jh := range attached {
		dropped = append(dropped, w.joints.Remove(jh))
	}
	body := w.bodies.Remove(h)
	fixtures := body.releaseFixtures()

	w.native.DestroyBody(nb)

	for i := range dropped {
		dropped[i].teardown()
	}
	for i := range fixtures {
		fixtures[i].teardown()
	}
	body.teardown()
}

// Bodies yields every body, each shared-borrowed for its yield
func (w *World[B, F, J]) Bodies() iter.Seq2[BodyHandle, *BodyRef[B, F]] {
	return w.bodies.All()
}

// BodyHandles returns a snapshot of live body handles
func (w *World[B, F, J]) BodyHandles() []BodyHandle {
	return w.bodies.Handles()
}

// CreateJoint adds a joint with zero-valued user data
func (w *World[B, F, J]) CreateJoint(def JointDef) JointHandle {
	var zero J
	return w.CreateJointWith(def, zero)
}

// CreateJointWith builds the engine joint from def, links it into the world and
// wraps it according to the engine's type tag
// Panics if a referenced body or joint handle is invalid
func (w *World[B, F, J]) CreateJointWith(def JointDef, custom J) JointHandle {
	w.mustUnlocked("create joint")
	nd := def.build(w)
	if nd.GetBodyA() == nd.GetBodyB() {
		panic(fmt.Errorf("%s joint: %w", def.Kind(), ErrSameBody))
	}
	return w.joints.InsertWith(func(h JointHandle) Joint[J] {
		return wrapJoint(w.linkJoint(nd), h, custom)
	})
}

// linkJoint constructs a typed engine joint and threads it into the world and body lists
// B2World.CreateJoint only accepts the untyped base definition, so linking happens here
func (w *World[B, F, J]) linkJoint(def box2d.B2JointDefInterface) box2d.B2JointInterface {
	j := box2d.B2JointCreate(def)

	j.SetPrev(nil)
	j.SetNext(w.native.M_jointList)
	if w.native.M_jointList != nil {
		w.native.M_jointList.SetPrev(j)
	}
	w.native.M_jointList = j
	w.native.M_jointCount++

	bodyA, bodyB := j.GetBodyA(), j.GetBodyB()

	edgeA := j.GetEdgeA()
	edgeA.Joint = j
	edgeA.Other = bodyB
	edgeA.Prev = nil
	edgeA.Next = bodyA.M_jointList
	if bodyA.M_jointList != nil {
		bodyA.M_jointList.Prev = edgeA
	}
	bodyA.M_jointList = edgeA

	edgeB := j.GetEdgeB()
	edgeB.Joint = j
	edgeB.Other = bodyA
	edgeB.Prev = nil
	edgeB.Next = bodyB.M_jointList
	if bodyB.M_jointList != nil {
		bodyB.M_jointList.Prev = edgeB
	}
	bodyB.M_jointList = edgeB

	// Contacts between the bodies are refiltered on the next step
	if !def.IsCollideConnected() {
		for e := bodyB.GetContactList(); e != nil; e = e.Next {
			if e.Other == bodyA {
				e.Contact.FlagForFiltering()
			}
		}
	}

	return j
}

// Joint takes a shared borrow of a joint; panics on an invalid handle
func (w *World[B, F, J]) Joint(h JointHandle) *JointRef[J] {
	ref, ok := w.joints.Get(h)
	if !ok {
		panic(fmt.Errorf("joint %s: %w", h, ErrInvalidJoint))
	}
	return ref
}

// JointMut takes an exclusive borrow of a joint; panics on an invalid handle
func (w *World[B, F, J]) JointMut(h JointHandle) *JointRefMut[J] {
	ref, ok := w.joints.GetMut(h)
	if !ok {
		panic(fmt.Errorf("joint %s: %w", h, ErrInvalidJoint))
	}
	return ref
}

// TryJoint is Joint without the panic on an invalid handle
func (w *World[B, F, J]) TryJoint(h JointHandle) (*JointRef[J], bool) {
	return w.joints.Get(h)
}

// HasJoint reports whether h names a live joint
func (w *World[B, F, J]) HasJoint(h JointHandle) bool {
	return w.joints.Contains(h)
}

// DestroyJoint removes the joint from the pool, then from the engine
func (w *World[B, F, J]) DestroyJoint(h JointHandle) {
	w.mustUnlocked("destroy joint")
	if !w.joints.Contains(h) {
		panic(fmt.Errorf("destroy joint %s: %w", h, ErrInvalidJoint))
	}
	j := w.joints.Remove(h)
	w.native.DestroyJoint(j.native)
	j.teardown()
}

// Joints yields every joint, each shared-borrowed for its yield
func (w *World[B, F, J]) Joints() iter.Seq2[JointHandle, *JointRef[J]] {
	return w.joints.All()
}

// JointHandles returns a snapshot of live joint handles
func (w *World[B, F, J]) JointHandles() []JointHandle {
	return w.joints.Handles()
}

// Step advances the simulation by dt seconds
func (w *World[B, F, J]) Step(dt float64, velocityIterations, positionIterations int) {
	w.mustUnlocked("step")
	w.native.Step(dt, velocityIterations, positionIterations)
}

// ClearForces zeroes accumulated forces; needed only with auto clearing disabled
func (w *World[B, F, J]) ClearForces() {
	w.mustOpen()
	w.native.ClearForces()
}

// Contacts yields every contact in the world, touching or not
func (w *World[B, F, J]) Contacts() iter.Seq[Contact] {
	return func(yield func(Contact) bool) {
		for c := w.native.GetContactList(); c != nil; c = c.GetNext() {
			if !yield(Contact{native: c}) {
				return
			}
		}
	}
}

// Close tears down every joint and body through the normal destroy path, then the engine world
// Safe to call more than once; any other use afterwards panics
func (w *World[B, F, J]) Close() {
	if w.closed {
		return
	}
	for _, h := range w.teardownOrder() {
		w.DestroyJoint(h)
	}
	for _, h := range w.bodies.Handles() {
		w.DestroyBody(h)
	}
	w.native.SetContactListener(nil)
	w.listener = nil
	w.filter = nil
	w.native.Destroy()
	w.closed = true
	log.Printf("physics: world closed")
}

// teardownOrder lists joint handles with gear joints first, since a gear
// references the revolute or prismatic joints it couples
func (w *World[B, F, J]) teardownOrder() []JointHandle {
	var gears, rest []JointHandle
	for _, h := range w.joints.Handles() {
		j, _ := w.joints.Peek(h)
		if j.kind == GearJoint {
			gears = append(gears, h)
		} else {
			rest = append(rest, h)
		}
	}
	return append(gears, rest...)
}

// IsClosed reports whether Close has run
func (w *World[B, F, J]) IsClosed() bool {
	return w.closed
}

func (w *World[B, F, J]) Gravity() Vec2 {
	return w.native.GetGravity()
}

func (w *World[B, F, J]) SetGravity(g Vec2) {
	w.native.SetGravity(g)
}

// SetAllowSleeping toggles sleeping world-wide; disabling wakes every body
func (w *World[B, F, J]) SetAllowSleeping(flag bool) {
	w.native.SetAllowSleeping(flag)
}

func (w *World[B, F, J]) AllowSleeping() bool {
	return w.native.M_allowSleep
}

func (w *World[B, F, J]) SetWarmStarting(flag bool) {
	w.native.M_warmStarting = flag
}

func (w *World[B, F, J]) WarmStarting() bool {
	return w.native.M_warmStarting
}

func (w *World[B, F, J]) SetContinuousPhysics(flag bool) {
	w.native.M_continuousPhysics = flag
}

func (w *World[B, F, J]) ContinuousPhysics() bool {
	return w.native.M_continuousPhysics
}

func (w *World[B, F, J]) SetSubStepping(flag bool) {
	w.native.M_subStepping = flag
}

func (w *World[B, F, J]) SubStepping() bool {
	return w.native.M_subStepping
}

func (w *World[B, F, J]) SetAutoClearForces(flag bool) {
	w.native.SetAutoClearForces(flag)
}

func (w *World[B, F, J]) AutoClearForces() bool {
	return w.native.GetAutoClearForces()
}

// IsLocked is true while the engine is inside Step
func (w *World[B, F, J]) IsLocked() bool {
	return w.native.IsLocked()
}

func (w *World[B, F, J]) BodyCount() int {
	return w.native.GetBodyCount()
}

func (w *World[B, F, J]) JointCount() int {
	return w.native.GetJointCount()
}

func (w *World[B, F, J]) ContactCount() int {
	return w.native.GetContactCount()
}

func (w *World[B, F, J]) ProxyCount() int {
	return w.native.GetProxyCount()
}

func (w *World[B, F, J]) TreeHeight() int {
	return w.native.GetTreeHeight()
}

func (w *World[B, F, J]) TreeBalance() int {
	return w.native.GetTreeBalance()
}

func (w *World[B, F, J]) TreeQuality() float64 {
	return w.native.GetTreeQuality()
}

// ShiftOrigin moves the world origin; used for large worlds
func (w *World[B, F, J]) ShiftOrigin(newOrigin Vec2) {
	w.mustUnlocked("shift origin")
	w.native.ShiftOrigin(newOrigin)
}

// Profile returns the timings of the last step in milliseconds
func (w *World[B, F, J]) Profile() Profile {
	return w.native.GetProfile()
}
