package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/zoo-spree/handle"
)

func addGround[B, F, J any](w *World[B, F, J]) BodyHandle {
	def := DefaultBodyDef()
	h := w.CreateBody(&def)
	m := w.BodyMut(h)
	m.Get().CreateFixture(NewEdge(V(-20, 0), V(20, 0)), DefaultFixtureDef())
	m.Release()
	return h
}

// TestRevoluteJointVariant verifies kind dispatch and typed access
func TestRevoluteJointVariant(t *testing.T) {
	w := New[NoUserData, NoUserData, string](V(0, -10))
	defer w.Close()

	a := addBox(w, 0, 5)
	b := addBox(w, 1, 5)
	def := NewRevoluteJointDef(w, a, b, V(0.5, 5))
	def.EnableLimit = true
	def.LowerAngle = -0.25 * math.Pi
	def.UpperAngle = 0.25 * math.Pi
	jh := w.CreateJointWith(def, "hinge")

	ref := w.Joint(jh)
	defer ref.Release()
	j := ref.Get()

	if j.Kind() != RevoluteJoint || j.Kind().String() != "revolute" {
		t.Errorf("kind %v", j.Kind())
	}
	if j.UserData() != "hinge" || j.Handle() != jh {
		t.Errorf("payload %q handle %v", j.UserData(), j.Handle())
	}
	if j.BodyA() != a || j.BodyB() != b {
		t.Errorf("bodies %v %v", j.BodyA(), j.BodyB())
	}
	rj, ok := j.AsRevolute()
	if !ok {
		t.Fatal("AsRevolute failed on revolute joint")
	}
	if !rj.IsLimitEnabled() {
		t.Error("limit flag not carried to engine joint")
	}
	if _, ok := j.AsPrismatic(); ok {
		t.Error("AsPrismatic succeeded on revolute joint")
	}
	anchor := j.AnchorA()
	if math.Abs(anchor.X-0.5) > 1e-9 || math.Abs(anchor.Y-5) > 1e-9 {
		t.Errorf("anchor %v", anchor)
	}

	var bodies []BodyHandle
	br := w.Body(a)
	for other, joint := range br.Get().Joints() {
		if joint != jh {
			t.Errorf("body lists joint %v, want %v", joint, jh)
		}
		bodies = append(bodies, other)
	}
	br.Release()
	if len(bodies) != 1 || bodies[0] != b {
		t.Errorf("joint edge other %v", bodies)
	}
}

// TestJointVariantsCreate verifies every constructor builds a joint of the matching kind
func TestJointVariantsCreate(t *testing.T) {
	w := NewWorld(V(0, -10))
	defer w.Close()

	ground := addGround(w)
	a := addBox(w, 0, 5)
	b := addBox(w, 3, 5)

	defs := []JointDef{
		NewDistanceJointDef(w, a, b, V(0, 5), V(3, 5)),
		NewRevoluteJointDef(w, a, b, V(1.5, 5)),
		NewPrismaticJointDef(w, a, b, V(1.5, 5), V(1, 0)),
		NewPulleyJointDef(w, a, b, V(0, 10), V(3, 10), V(0, 5), V(3, 5), 1),
		NewMouseJointDef(ground, a, V(0, 5), 100),
		NewWheelJointDef(w, a, b, V(3, 5), V(0, 1)),
		NewWeldJointDef(w, a, b, V(1.5, 5)),
		NewFrictionJointDef(w, a, b, V(1.5, 5)),
		&RopeJointDef{JointBase: JointBase{BodyA: a, BodyB: b}, MaxLength: 4},
		NewMotorJointDef(w, a, b),
	}

	for _, def := range defs {
		jh := w.CreateJoint(def)
		ref := w.Joint(jh)
		if got := ref.Get().Kind(); got != def.Kind() {
			t.Errorf("def %T built %v joint", def, got)
		}
		_ = ref.Get().ReactionForce(60)
		ref.Release()
	}
	if w.JointCount() != len(defs) {
		t.Errorf("engine holds %d joints, want %d", w.JointCount(), len(defs))
	}

	w.Step(1.0/60.0, 8, 3)

	for _, h := range w.JointHandles() {
		w.DestroyJoint(h)
	}
	if w.JointCount() != 0 {
		t.Errorf("%d joints left after destroy", w.JointCount())
	}
}

// TestGearJoint verifies a gear couples two revolute joints by handle
func TestGearJoint(t *testing.T) {
	w := NewWorld(V(0, 0))
	defer w.Close()

	ground := addGround(w)
	g1 := addBox(w, 0, 5)
	g2 := addBox(w, 3, 5)

	j1 := w.CreateJoint(NewRevoluteJointDef(w, ground, g1, V(0, 5)))
	j2 := w.CreateJoint(NewRevoluteJointDef(w, ground, g2, V(3, 5)))

	gear := w.CreateJoint(&GearJointDef{
		JointBase: JointBase{BodyA: g1, BodyB: g2},
		Joint1:    j1,
		Joint2:    j2,
		Ratio:     2,
	})

	ref := w.Joint(gear)
	gj, ok := ref.Get().AsGear()
	ref.Release()
	if !ok {
		t.Fatal("gear joint not typed as gear")
	}
	if gj.GetRatio() != 2 {
		t.Errorf("ratio %f", gj.GetRatio())
	}

	m := w.BodyMut(g1)
	m.Get().SetAngularVelocity(1)
	m.Release()
	for i := 0; i < 30; i++ {
		w.Step(1.0/60.0, 8, 3)
	}

	r2 := w.Body(g2)
	defer r2.Release()
	if math.Abs(r2.Get().Angle()) < 1e-3 {
		t.Error("driven gear did not rotate")
	}
}

// TestJointSameBodyRejected verifies a joint between a body and itself is refused
func TestJointSameBodyRejected(t *testing.T) {
	w := NewWorld(V(0, 0))
	defer w.Close()

	a := addBox(w, 0, 0)
	mustPanicWith(t, ErrSameBody, func() {
		w.CreateJoint(&RopeJointDef{JointBase: JointBase{BodyA: a, BodyB: a}, MaxLength: 1})
	})
	if w.JointCount() != 0 || len(w.JointHandles()) != 0 {
		t.Error("rejected joint left state behind")
	}
}

// TestJointStaleBody verifies a def naming a destroyed body panics before touching the engine
func TestJointStaleBody(t *testing.T) {
	w := NewWorld(V(0, 0))
	defer w.Close()

	a := addBox(w, 0, 0)
	b := addBox(w, 1, 0)
	def := &RopeJointDef{JointBase: JointBase{BodyA: a, BodyB: b}, MaxLength: 2}
	w.DestroyBody(b)

	mustPanicWith(t, ErrInvalidBody, func() { w.CreateJoint(def) })
}

// TestDestroyJointDetaches verifies body joint lists and handles after DestroyJoint
func TestDestroyJointDetaches(t *testing.T) {
	w := NewWorld(V(0, 0))
	defer w.Close()

	a := addBox(w, 0, 0)
	b := addBox(w, 2, 0)
	jh := w.CreateJoint(NewDistanceJointDef(w, a, b, V(0, 0), V(2, 0)))

	held := w.Joint(jh)
	mustPanicWith(t, handle.ErrBorrowedOnRemove, func() { w.DestroyJoint(jh) })
	held.Release()

	w.DestroyJoint(jh)
	if w.HasJoint(jh) {
		t.Error("joint still resolves")
	}
	for _, h := range []BodyHandle{a, b} {
		ref := w.Body(h)
		for range ref.Get().Joints() {
			t.Errorf("body %v still lists a joint", h)
		}
		ref.Release()
	}
	mustPanicWith(t, ErrInvalidJoint, func() { w.DestroyJoint(jh) })
}
