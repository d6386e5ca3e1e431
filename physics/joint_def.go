package physics

import "github.com/ByteArena/box2d"

// Resolver maps handles to engine objects; World implements it
// Joint definition constructors use it to derive local anchors from world points
type Resolver interface {
	nativeBody(h BodyHandle) *box2d.B2Body
	nativeJoint(h JointHandle) box2d.B2JointInterface
}

// JointDef is the closed set of joint definitions accepted by World.CreateJoint
type JointDef interface {
	Kind() JointKind
	build(r Resolver) box2d.B2JointDefInterface
}

// JointBase holds the fields shared by every joint definition
type JointBase struct {
	BodyA            BodyHandle
	BodyB            BodyHandle
	CollideConnected bool
}

func (b *JointBase) apply(n *box2d.B2JointDef, r Resolver) {
	n.BodyA = r.nativeBody(b.BodyA)
	n.BodyB = r.nativeBody(b.BodyB)
	n.CollideConnected = b.CollideConnected
}

// DistanceJointDef keeps two anchor points at a fixed distance, optionally springy
type DistanceJointDef struct {
	JointBase
	LocalAnchorA Vec2
	LocalAnchorB Vec2
	Length       float64
	FrequencyHz  float64
	DampingRatio float64
}

// NewDistanceJointDef anchors at world points and takes their current distance as the length
func NewDistanceJointDef(r Resolver, a, b BodyHandle, anchorA, anchorB Vec2) *DistanceJointDef {
	n := box2d.MakeB2DistanceJointDef()
	n.Initialize(r.nativeBody(a), r.nativeBody(b), anchorA, anchorB)
	return &DistanceJointDef{
		JointBase:    JointBase{BodyA: a, BodyB: b},
		LocalAnchorA: n.LocalAnchorA,
		LocalAnchorB: n.LocalAnchorB,
		Length:       n.Length,
	}
}

func (d *DistanceJointDef) Kind() JointKind { return DistanceJoint }

func (d *DistanceJointDef) build(r Resolver) box2d.B2JointDefInterface {
	n := box2d.MakeB2DistanceJointDef()
	d.apply(&n.B2JointDef, r)
	n.LocalAnchorA = d.LocalAnchorA
	n.LocalAnchorB = d.LocalAnchorB
	n.Length = d.Length
	n.FrequencyHz = d.FrequencyHz
	n.DampingRatio = d.DampingRatio
	return &n
}

// RevoluteJointDef pins two bodies at a shared point
type RevoluteJointDef struct {
	JointBase
	LocalAnchorA   Vec2
	LocalAnchorB   Vec2
	ReferenceAngle float64
	EnableLimit    bool
	LowerAngle     float64
	UpperAngle     float64
	EnableMotor    bool
	MotorSpeed     float64
	MaxMotorTorque float64
}

// NewRevoluteJointDef pins at a world anchor using the current relative angle as reference
func NewRevoluteJointDef(r Resolver, a, b BodyHandle, anchor Vec2) *RevoluteJointDef {
	n := box2d.MakeB2RevoluteJointDef()
	n.Initialize(r.nativeBody(a), r.nativeBody(b), anchor)
	return &RevoluteJointDef{
		JointBase:      JointBase{BodyA: a, BodyB: b},
		LocalAnchorA:   n.LocalAnchorA,
		LocalAnchorB:   n.LocalAnchorB,
		ReferenceAngle: n.ReferenceAngle,
	}
}

func (d *RevoluteJointDef) Kind() JointKind { return RevoluteJoint }

func (d *RevoluteJointDef) build(r Resolver) box2d.B2JointDefInterface {
	n := box2d.MakeB2RevoluteJointDef()
	d.apply(&n.B2JointDef, r)
	n.LocalAnchorA = d.LocalAnchorA
	n.LocalAnchorB = d.LocalAnchorB
	n.ReferenceAngle = d.ReferenceAngle
	n.EnableLimit = d.EnableLimit
	n.LowerAngle = d.LowerAngle
	n.UpperAngle = d.UpperAngle
	n.EnableMotor = d.EnableMotor
	n.MotorSpeed = d.MotorSpeed
	n.MaxMotorTorque = d.MaxMotorTorque
	return &n
}

// PrismaticJointDef allows relative translation along one axis
type PrismaticJointDef struct {
	JointBase
	LocalAnchorA     Vec2
	LocalAnchorB     Vec2
	LocalAxisA       Vec2
	ReferenceAngle   float64
	EnableLimit      bool
	LowerTranslation float64
	UpperTranslation float64
	EnableMotor      bool
	MaxMotorForce    float64
	MotorSpeed       float64
}

// NewPrismaticJointDef slides along a world axis through a world anchor
func NewPrismaticJointDef(r Resolver, a, b BodyHandle, anchor, axis Vec2) *PrismaticJointDef {
	n := box2d.MakeB2PrismaticJointDef()
	n.Initialize(r.nativeBody(a), r.nativeBody(b), anchor, axis)
	return &PrismaticJointDef{
		JointBase:      JointBase{BodyA: a, BodyB: b},
		LocalAnchorA:   n.LocalAnchorA,
		LocalAnchorB:   n.LocalAnchorB,
		LocalAxisA:     n.LocalAxisA,
		ReferenceAngle: n.ReferenceAngle,
	}
}

func (d *PrismaticJointDef) Kind() JointKind { return PrismaticJoint }

func (d *PrismaticJointDef) build(r Resolver) box2d.B2JointDefInterface {
	n := box2d.MakeB2PrismaticJointDef()
	d.apply(&n.B2JointDef, r)
	n.LocalAnchorA = d.LocalAnchorA
	n.LocalAnchorB = d.LocalAnchorB
	n.LocalAxisA = d.LocalAxisA
	n.ReferenceAngle = d.ReferenceAngle
	n.EnableLimit = d.EnableLimit
	n.LowerTranslation = d.LowerTranslation
	n.UpperTranslation = d.UpperTranslation
	n.EnableMotor = d.EnableMotor
	n.MaxMotorForce = d.MaxMotorForce
	n.MotorSpeed = d.MotorSpeed
	return &n
}

// PulleyJointDef connects two bodies over two fixed ground anchors
type PulleyJointDef struct {
	JointBase
	GroundAnchorA Vec2
	GroundAnchorB Vec2
	LocalAnchorA  Vec2
	LocalAnchorB  Vec2
	LengthA       float64
	LengthB       float64
	Ratio         float64
}

func NewPulleyJointDef(r Resolver, a, b BodyHandle, groundA, groundB, anchorA, anchorB Vec2, ratio float64) *PulleyJointDef {
	n := box2d.MakeB2PulleyJointDef()
	n.Initialize(r.nativeBody(a), r.nativeBody(b), groundA, groundB, anchorA, anchorB, ratio)
	return &PulleyJointDef{
		JointBase:     JointBase{BodyA: a, BodyB: b, CollideConnected: n.CollideConnected},
		GroundAnchorA: n.GroundAnchorA,
		GroundAnchorB: n.GroundAnchorB,
		LocalAnchorA:  n.LocalAnchorA,
		LocalAnchorB:  n.LocalAnchorB,
		LengthA:       n.LengthA,
		LengthB:       n.LengthB,
		Ratio:         n.Ratio,
	}
}

func (d *PulleyJointDef) Kind() JointKind { return PulleyJoint }

func (d *PulleyJointDef) build(r Resolver) box2d.B2JointDefInterface {
	n := box2d.MakeB2PulleyJointDef()
	d.apply(&n.B2JointDef, r)
	n.GroundAnchorA = d.GroundAnchorA
	n.GroundAnchorB = d.GroundAnchorB
	n.LocalAnchorA = d.LocalAnchorA
	n.LocalAnchorB = d.LocalAnchorB
	n.LengthA = d.LengthA
	n.LengthB = d.LengthB
	n.Ratio = d.Ratio
	return &n
}

// MouseJointDef drags BodyB toward a world target; BodyA is an ignored ground body
type MouseJointDef struct {
	JointBase
	Target       Vec2
	MaxForce     float64
	FrequencyHz  float64
	DampingRatio float64
}

func NewMouseJointDef(ground, body BodyHandle, target Vec2, maxForce float64) *MouseJointDef {
	return &MouseJointDef{
		JointBase:    JointBase{BodyA: ground, BodyB: body},
		Target:       target,
		MaxForce:     maxForce,
		FrequencyHz:  5,
		DampingRatio: 0.7,
	}
}

func (d *MouseJointDef) Kind() JointKind { return MouseJoint }

func (d *MouseJointDef) build(r Resolver) box2d.B2JointDefInterface {
	n := box2d.MakeB2MouseJointDef()
	d.apply(&n.B2JointDef, r)
	n.Target = d.Target
	n.MaxForce = d.MaxForce
	n.FrequencyHz = d.FrequencyHz
	n.DampingRatio = d.DampingRatio
	return &n
}

// GearJointDef couples two revolute or prismatic joints
// BodyA and BodyB must be the dynamic bodies of Joint1 and Joint2
type GearJointDef struct {
	JointBase
	Joint1 JointHandle
	Joint2 JointHandle
	Ratio  float64
}

func (d *GearJointDef) Kind() JointKind { return GearJoint }

func (d *GearJointDef) build(r Resolver) box2d.B2JointDefInterface {
	n := box2d.MakeB2GearJointDef()
	d.apply(&n.B2JointDef, r)
	n.Joint1 = r.nativeJoint(d.Joint1)
	n.Joint2 = r.nativeJoint(d.Joint2)
	n.Ratio = d.Ratio
	return &n
}

// WheelJointDef is a suspension: translation along an axis with a spring, free rotation
type WheelJointDef struct {
	JointBase
	LocalAnchorA   Vec2
	LocalAnchorB   Vec2
	LocalAxisA     Vec2
	EnableMotor    bool
	MaxMotorTorque float64
	MotorSpeed     float64
	FrequencyHz    float64
	DampingRatio   float64
}

func NewWheelJointDef(r Resolver, a, b BodyHandle, anchor, axis Vec2) *WheelJointDef {
	n := box2d.MakeB2WheelJointDef()
	n.Initialize(r.nativeBody(a), r.nativeBody(b), anchor, axis)
	return &WheelJointDef{
		JointBase:    JointBase{BodyA: a, BodyB: b},
		LocalAnchorA: n.LocalAnchorA,
		LocalAnchorB: n.LocalAnchorB,
		LocalAxisA:   n.LocalAxisA,
		FrequencyHz:  n.FrequencyHz,
		DampingRatio: n.DampingRatio,
	}
}

func (d *WheelJointDef) Kind() JointKind { return WheelJoint }

func (d *WheelJointDef) build(r Resolver) box2d.B2JointDefInterface {
	n := box2d.MakeB2WheelJointDef()
	d.apply(&n.B2JointDef, r)
	n.LocalAnchorA = d.LocalAnchorA
	n.LocalAnchorB = d.LocalAnchorB
	n.LocalAxisA = d.LocalAxisA
	n.EnableMotor = d.EnableMotor
	n.MaxMotorTorque = d.MaxMotorTorque
	n.MotorSpeed = d.MotorSpeed
	n.FrequencyHz = d.FrequencyHz
	n.DampingRatio = d.DampingRatio
	return &n
}

// WeldJointDef glues two bodies together, optionally softened
type WeldJointDef struct {
	JointBase
	LocalAnchorA   Vec2
	LocalAnchorB   Vec2
	ReferenceAngle float64
	FrequencyHz    float64
	DampingRatio   float64
}

func NewWeldJointDef(r Resolver, a, b BodyHandle, anchor Vec2) *WeldJointDef {
	n := box2d.MakeB2WeldJointDef()
	n.Initialize(r.nativeBody(a), r.nativeBody(b), anchor)
	return &WeldJointDef{
		JointBase:      JointBase{BodyA: a, BodyB: b},
		LocalAnchorA:   n.LocalAnchorA,
		LocalAnchorB:   n.LocalAnchorB,
		ReferenceAngle: n.ReferenceAngle,
	}
}

func (d *WeldJointDef) Kind() JointKind { return WeldJoint }

func (d *WeldJointDef) build(r Resolver) box2d.B2JointDefInterface {
	n := box2d.MakeB2WeldJointDef()
	d.apply(&n.B2JointDef, r)
	n.LocalAnchorA = d.LocalAnchorA
	n.LocalAnchorB = d.LocalAnchorB
	n.ReferenceAngle = d.ReferenceAngle
	n.FrequencyHz = d.FrequencyHz
	n.DampingRatio = d.DampingRatio
	return &n
}

// FrictionJointDef applies top-down friction between two bodies
type FrictionJointDef struct {
	JointBase
	LocalAnchorA Vec2
	LocalAnchorB Vec2
	MaxForce     float64
	MaxTorque    float64
}

func NewFrictionJointDef(r Resolver, a, b BodyHandle, anchor Vec2) *FrictionJointDef {
	n := box2d.MakeB2FrictionJointDef()
	n.Initialize(r.nativeBody(a), r.nativeBody(b), anchor)
	return &FrictionJointDef{
		JointBase:    JointBase{BodyA: a, BodyB: b},
		LocalAnchorA: n.LocalAnchorA,
		LocalAnchorB: n.LocalAnchorB,
	}
}

func (d *FrictionJointDef) Kind() JointKind { return FrictionJoint }

func (d *FrictionJointDef) build(r Resolver) box2d.B2JointDefInterface {
	n := box2d.MakeB2FrictionJointDef()
	d.apply(&n.B2JointDef, r)
	n.LocalAnchorA = d.LocalAnchorA
	n.LocalAnchorB = d.LocalAnchorB
	n.MaxForce = d.MaxForce
	n.MaxTorque = d.MaxTorque
	return &n
}

// RopeJointDef caps the distance between two anchors
type RopeJointDef struct {
	JointBase
	LocalAnchorA Vec2
	LocalAnchorB Vec2
	MaxLength    float64
}

func (d *RopeJointDef) Kind() JointKind { return RopeJoint }

func (d *RopeJointDef) build(r Resolver) box2d.B2JointDefInterface {
	n := box2d.MakeB2RopeJointDef()
	d.apply(&n.B2JointDef, r)
	n.LocalAnchorA = d.LocalAnchorA
	n.LocalAnchorB = d.LocalAnchorB
	n.MaxLength = d.MaxLength
	return &n
}

// MotorJointDef drives BodyB toward a target offset from BodyA
type MotorJointDef struct {
	JointBase
	LinearOffset     Vec2
	AngularOffset    float64
	MaxForce         float64
	MaxTorque        float64
	CorrectionFactor float64
}

// NewMotorJointDef takes the bodies' current relative pose as the target offset
func NewMotorJointDef(r Resolver, a, b BodyHandle) *MotorJointDef {
	n := box2d.MakeB2MotorJointDef()
	n.Initialize(r.nativeBody(a), r.nativeBody(b))
	return &MotorJointDef{
		JointBase:        JointBase{BodyA: a, BodyB: b},
		LinearOffset:     n.LinearOffset,
		AngularOffset:    n.AngularOffset,
		MaxForce:         n.MaxForce,
		MaxTorque:        n.MaxTorque,
		CorrectionFactor: n.CorrectionFactor,
	}
}

func (d *MotorJointDef) Kind() JointKind { return MotorJoint }

func (d *MotorJointDef) build(r Resolver) box2d.B2JointDefInterface {
	n := box2d.MakeB2MotorJointDef()
	d.apply(&n.B2JointDef, r)
	n.LinearOffset = d.LinearOffset
	n.AngularOffset = d.AngularOffset
	n.MaxForce = d.MaxForce
	n.MaxTorque = d.MaxTorque
	n.CorrectionFactor = d.CorrectionFactor
	return &n
}
