package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"
)

// JointKind discriminates the joint variants
type JointKind uint8

const (
	UnknownJoint JointKind = iota
	RevoluteJoint
	PrismaticJoint
	DistanceJoint
	PulleyJoint
	MouseJoint
	GearJoint
	WheelJoint
	WeldJoint
	FrictionJoint
	RopeJoint
	MotorJoint
)

var jointKindNames = [...]string{
	UnknownJoint:   "unknown",
	RevoluteJoint:  "revolute",
	PrismaticJoint: "prismatic",
	DistanceJoint:  "distance",
	PulleyJoint:    "pulley",
	MouseJoint:     "mouse",
	GearJoint:      "gear",
	WheelJoint:     "wheel",
	WeldJoint:      "weld",
	FrictionJoint:  "friction",
	RopeJoint:      "rope",
	MotorJoint:     "motor",
}

func (k JointKind) String() string {
	if int(k) < len(jointKindNames) {
		return jointKindNames[k]
	}
	return "invalid"
}

// kindFromTag maps the engine discriminator, which starts at 1 for unknown
func kindFromTag(tag uint8) JointKind {
	switch tag {
	case box2d.B2JointType.E_revoluteJoint:
		return RevoluteJoint
	case box2d.B2JointType.E_prismaticJoint:
		return PrismaticJoint
	case box2d.B2JointType.E_distanceJoint:
		return DistanceJoint
	case box2d.B2JointType.E_pulleyJoint:
		return PulleyJoint
	case box2d.B2JointType.E_mouseJoint:
		return MouseJoint
	case box2d.B2JointType.E_gearJoint:
		return GearJoint
	case box2d.B2JointType.E_wheelJoint:
		return WheelJoint
	case box2d.B2JointType.E_weldJoint:
		return WeldJoint
	case box2d.B2JointType.E_frictionJoint:
		return FrictionJoint
	case box2d.B2JointType.E_ropeJoint:
		return RopeJoint
	case box2d.B2JointType.E_motorJoint:
		return MotorJoint
	}
	return UnknownJoint
}

// jointDynamics is the per-variant surface every concrete engine joint provides
type jointDynamics interface {
	GetAnchorA() box2d.B2Vec2
	GetAnchorB() box2d.B2Vec2
	GetReactionForce(invDt float64) box2d.B2Vec2
	GetReactionTorque(invDt float64) float64
}

// Joint is a constraint between two bodies; Kind selects the concrete variant
// Variant-specific accessors are reached through the As* methods
type Joint[J any] struct {
	kind   JointKind
	native box2d.B2JointInterface
	data   *userData[JointHandle, J]
}

// wrapJoint builds the wrapper for a freshly created engine joint by reading its tag
func wrapJoint[J any](native box2d.B2JointInterface, h JointHandle, custom J) Joint[J] {
	kind := kindFromTag(native.GetType())
	if kind == UnknownJoint {
		panic(fmt.Errorf("joint tag %d: %w", native.GetType(), ErrUnknownJointKind))
	}
	j := Joint[J]{
		kind:   kind,
		native: native,
		data:   newUserData(h, custom),
	}
	install(native, j.data)
	return j
}

func (j *Joint[J]) teardown() {
	detach(j.native)
	j.data = nil
}

func (j *Joint[J]) dynamics() jointDynamics {
	d, ok := j.native.(jointDynamics)
	if !ok {
		panic(fmt.Errorf("%s joint %T: %w", j.kind, j.native, ErrUnknownJointKind))
	}
	return d
}

// Handle returns the joint's own handle
func (j *Joint[J]) Handle() JointHandle {
	return j.data.handle
}

func (j *Joint[J]) Kind() JointKind {
	return j.kind
}

func (j *Joint[J]) UserData() J {
	return j.data.custom
}

func (j *Joint[J]) UserDataMut() *J {
	return &j.data.custom
}

func (j *Joint[J]) BodyA() BodyHandle {
	return bodyHandleOf(j.native.GetBodyA())
}

func (j *Joint[J]) BodyB() BodyHandle {
	return bodyHandleOf(j.native.GetBodyB())
}

// AnchorA returns the anchor on BodyA in world coordinates
func (j *Joint[J]) AnchorA() Vec2 {
	return j.dynamics().GetAnchorA()
}

// AnchorB returns the anchor on BodyB in world coordinates
func (j *Joint[J]) AnchorB() Vec2 {
	return j.dynamics().GetAnchorB()
}

// ReactionForce returns the constraint force on BodyB at its anchor
func (j *Joint[J]) ReactionForce(invDt float64) Vec2 {
	return j.dynamics().GetReactionForce(invDt)
}

func (j *Joint[J]) ReactionTorque(invDt float64) float64 {
	return j.dynamics().GetReactionTorque(invDt)
}

// IsActive is false when either body is inactive
func (j *Joint[J]) IsActive() bool {
	return j.native.IsActive()
}

func (j *Joint[J]) IsCollideConnected() bool {
	return j.native.IsCollideConnected()
}

func (j *Joint[J]) AsDistance() (*box2d.B2DistanceJoint, bool) {
	n, ok := j.native.(*box2d.B2DistanceJoint)
	return n, ok
}

func (j *Joint[J]) AsRevolute() (*box2d.B2RevoluteJoint, bool) {
	n, ok := j.native.(*box2d.B2RevoluteJoint)
	return n, ok
}

func (j *Joint[J]) AsPrismatic() (*box2d.B2PrismaticJoint, bool) {
	n, ok := j.native.(*box2d.B2PrismaticJoint)
	return n, ok
}

func (j *Joint[J]) AsPulley() (*box2d.B2PulleyJoint, bool) {
	n, ok := j.native.(*box2d.B2PulleyJoint)
	return n, ok
}

func (j *Joint[J]) AsMouse() (*box2d.B2MouseJoint, bool) {
	n, ok := j.native.(*box2d.B2MouseJoint)
	return n, ok
}

func (j *Joint[J]) AsGear() (*box2d.B2GearJoint, bool) {
	n, ok := j.native.(*box2d.B2GearJoint)
	return n, ok
}

func (j *Joint[J]) AsWheel() (*box2d.B2WheelJoint, bool) {
	n, ok := j.native.(*box2d.B2WheelJoint)
	return n, ok
}

func (j *Joint[J]) AsWeld() (*box2d.B2WeldJoint, bool) {
	n, ok := j.native.(*box2d.B2WeldJoint)
	return n, ok
}

func (j *Joint[J]) AsFriction() (*box2d.B2FrictionJoint, bool) {
	n, ok := j.native.(*box2d.B2FrictionJoint)
	return n, ok
}

func (j *Joint[J]) AsRope() (*box2d.B2RopeJoint, bool) {
	n, ok := j.native.(*box2d.B2RopeJoint)
	return n, ok
}

func (j *Joint[J]) AsMotor() (*box2d.B2MotorJoint, bool) {
	n, ok := j.native.(*box2d.B2MotorJoint)
	return n, ok
}
