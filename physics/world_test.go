package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/lixenwraith/zoo-spree/handle"
)

// mustPanicWith fails unless fn panics with an error wrapping target
func mustPanicWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v", target)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v is not an error", r)
		}
		if !errors.Is(err, target) {
			t.Fatalf("panic %v does not wrap %v", err, target)
		}
	}()
	fn()
}

type tag struct {
	name string
}

func newTaggedWorld() *World[tag, tag, tag] {
	return New[tag, tag, tag](V(0, -10))
}

// addBox creates a dynamic unit box at (x, y)
func addBox[B, F, J any](w *World[B, F, J], x, y float64) BodyHandle {
	def := DynamicBodyDef(V(x, y))
	h := w.CreateBody(&def)
	b := w.BodyMut(h)
	fd := DefaultFixtureDef()
	fd.Density = 1
	b.Get().CreateFixture(NewBox(0.5, 0.5), fd)
	b.Release()
	return h
}

// TestBodyHandleRoundTrip verifies user data and handle are reachable through the issued handle
func TestBodyHandleRoundTrip(t *testing.T) {
	w := newTaggedWorld()
	defer w.Close()

	def := DefaultBodyDef()
	h := w.CreateBodyWith(&def, tag{name: "elephant"})

	ref := w.Body(h)
	defer ref.Release()

	if got := ref.Get().UserData().name; got != "elephant" {
		t.Errorf("expected elephant, got %q", got)
	}
	if ref.Get().Handle() != h {
		t.Errorf("body reports handle %v, want %v", ref.Get().Handle(), h)
	}
	if bodyHandleOf(ref.Get().native) != h {
		t.Error("engine back-link does not resolve to the handle")
	}
}

// TestDestroyedBodyHandleIsStale verifies generational protection for bodies
func TestDestroyedBodyHandleIsStale(t *testing.T) {
	w := NewWorld(V(0, -10))
	defer w.Close()

	h1 := addBox(w, 0, 0)
	nb := w.nativeBody(h1)
	w.DestroyBody(h1)

	if w.HasBody(h1) {
		t.Error("destroyed body still resolves")
	}
	if _, ok := w.TryBody(h1); ok {
		t.Error("TryBody resolved a destroyed body")
	}
	mustPanicWith(t, ErrInvalidBody, func() { w.Body(h1) })
	mustPanicWith(t, ErrInvalidBody, func() { w.DestroyBody(h1) })

	if nb.GetUserData() != nil {
		t.Error("engine user-data slot not cleared on destroy")
	}

	h2 := addBox(w, 1, 1)
	if h2.Index() != h1.Index() || h2.Generation() == h1.Generation() {
		t.Fatalf("expected slot reuse with new generation, got %v after %v", h2, h1)
	}
	if w.HasBody(h1) {
		t.Error("stale handle aliases reused slot")
	}
	if w.BodyCount() != 1 {
		t.Errorf("expected 1 body, got %d", w.BodyCount())
	}
}

// TestBodyBorrowExclusivity verifies a held BodyMut blocks other borrows and destruction
func TestBodyBorrowExclusivity(t *testing.T) {
	w := NewWorld(V(0, 0))
	defer w.Close()

	h := addBox(w, 0, 0)
	m := w.BodyMut(h)

	mustPanicWith(t, handle.ErrAlreadyMutablyBorrowed, func() { w.Body(h) })
	mustPanicWith(t, handle.ErrAlreadyBorrowed, func() { w.BodyMut(h) })
	mustPanicWith(t, handle.ErrAlreadyBorrowed, func() { w.DestroyBody(h) })

	m.Release()

	// Failed destroy left the body intact
	if !w.HasBody(h) {
		t.Fatal("body lost after rejected destroy")
	}
	w.DestroyBody(h)
}

// TestDestroyBodyCascadesJoints verifies joint handles die with their body
func TestDestroyBodyCascadesJoints(t *testing.T) {
	w := NewWorld(V(0, -10))
	defer w.Close()

	a := addBox(w, 0, 0)
	b := addBox(w, 2, 0)
	c := addBox(w, 4, 0)

	jab := w.CreateJoint(NewRevoluteJointDef(w, a, b, V(1, 0)))
	jbc := w.CreateJoint(NewDistanceJointDef(w, b, c, V(2, 0), V(4, 0)))
	nj := w.nativeJoint(jab)

	if w.JointCount() != 2 {
		t.Fatalf("expected 2 joints, got %d", w.JointCount())
	}

	w.DestroyBody(b)

	if w.HasJoint(jab) || w.HasJoint(jbc) {
		t.Error("joints attached to destroyed body still resolve")
	}
	mustPanicWith(t, ErrInvalidJoint, func() { w.Joint(jab) })
	if w.JointCount() != 0 {
		t.Errorf("engine still holds %d joints", w.JointCount())
	}
	if nj.GetUserData() != nil {
		t.Error("joint user-data slot not cleared")
	}

	ref := w.Body(a)
	for range ref.Get().Joints() {
		t.Error("surviving body still lists a joint")
	}
	ref.Release()
}

// TestStepDeterminism verifies free fall matches integration and is repeatable
func TestStepDeterminism(t *testing.T) {
	run := func() (Vec2, float64) {
		w := NewWorld(V(0, -10))
		defer w.Close()
		h := addBox(w, 0, 0)
		for i := 0; i < 60; i++ {
			w.Step(1.0/60.0, 6, 2)
		}
		ref := w.Body(h)
		defer ref.Release()
		return ref.Get().Position(), ref.Get().Angle()
	}

	p1, a1 := run()
	p2, a2 := run()

	if math.IsNaN(p1.X) || math.IsNaN(p1.Y) || math.IsNaN(a1) {
		t.Fatalf("NaN in final state: %v %v", p1, a1)
	}
	// Semi-implicit Euler: y = -g*dt^2*n(n+1)/2 ~ -5.083
	if p1.Y > -4.8 || p1.Y < -5.3 {
		t.Errorf("final y %.4f outside expected free-fall range", p1.Y)
	}
	if math.Abs(p1.X) > 1e-9 {
		t.Errorf("unexpected horizontal drift %.6f", p1.X)
	}
	if p1 != p2 || a1 != a2 {
		t.Errorf("runs diverged: %v/%v vs %v/%v", p1, a1, p2, a2)
	}
}

// TestContactIteration verifies overlapping bodies see each other in their contact lists
func TestContactIteration(t *testing.T) {
	w := NewWorld(V(0, 0))
	defer w.Close()

	a := addBox(w, 0, 0)
	b := addBox(w, 0.5, 0)
	w.Step(1.0/60.0, 6, 2)

	ref := w.Body(a)
	var others []BodyHandle
	touching := false
	for other, c := range ref.Get().Contacts() {
		others = append(others, other)
		if c.IsTouching() {
			touching = true
		}
		if !c.Involves(a) || !c.Involves(b) {
			t.Error("contact does not reference both bodies")
		}
	}
	ref.Release()

	if len(others) != 1 || others[0] != b {
		t.Fatalf("expected single contact with %v, got %v", b, others)
	}
	if !touching {
		t.Error("overlapping boxes not touching")
	}

	count := 0
	for c := range w.Contacts() {
		ba, _ := c.FixtureA()
		bb, _ := c.FixtureB()
		if !(ba == a && bb == b) && !(ba == b && bb == a) {
			t.Errorf("world contact between unexpected bodies %v %v", ba, bb)
		}
		count++
	}
	if count != 1 || w.ContactCount() != 1 {
		t.Errorf("expected 1 world contact, iterated %d, engine reports %d", count, w.ContactCount())
	}
}

// TestContactsMutDisable verifies contact writes go through ContactsMut
func TestContactsMutDisable(t *testing.T) {
	w := NewWorld(V(0, 0))
	defer w.Close()

	a := addBox(w, 0, 0)
	addBox(w, 0.5, 0)
	w.Step(1.0/60.0, 6, 2)

	m := w.BodyMut(a)
	for _, c := range m.Get().ContactsMut() {
		c.SetFriction(0.9)
		c.SetEnabled(false)
		if c.IsEnabled() {
			t.Error("contact still enabled")
		}
		if math.Abs(c.Friction()-0.9) > 1e-12 {
			t.Errorf("friction not applied: %f", c.Friction())
		}
		c.ResetFriction()
	}
	m.Release()
}

type countingListener struct {
	NopContactListener
	begins, ends int
	last         Contact
}

func (l *countingListener) BeginContact(c Contact) {
	l.begins++
	l.last = c
}

func (l *countingListener) EndContact(Contact) {
	l.ends++
}

// TestContactListener verifies begin events arrive in handle space
func TestContactListener(t *testing.T) {
	w := NewWorld(V(0, 0))
	defer w.Close()

	l := &countingListener{}
	w.SetContactListener(l)

	a := addBox(w, 0, 0)
	b := addBox(w, 0.5, 0)
	w.Step(1.0/60.0, 6, 2)

	if l.begins != 1 {
		t.Fatalf("expected 1 begin, got %d", l.begins)
	}

	w.DestroyBody(b)
	if l.ends != 1 {
		t.Errorf("expected end on destroy of touching body, got %d", l.ends)
	}

	w.SetContactListener(nil)
	c := addBox(w, 0.2, 0)
	w.Step(1.0/60.0, 6, 2)
	if l.begins != 1 {
		t.Error("removed listener still called")
	}
	_, _ = a, c
}

// TestContactFilter verifies a filter can veto contacts by handle
func TestContactFilter(t *testing.T) {
	w := NewWorld(V(0, 0))
	defer w.Close()

	a := addBox(w, 0, 0)
	addBox(w, 0.5, 0)

	calls := 0
	w.SetContactFilter(ContactFilterFunc(func(x, y FixtureInfo) bool {
		calls++
		return x.Body != a && y.Body != a
	}))
	w.Step(1.0/60.0, 6, 2)

	if calls == 0 {
		t.Fatal("filter never consulted")
	}
	if w.ContactCount() != 0 {
		t.Errorf("vetoed pair produced %d contacts", w.ContactCount())
	}
}

// TestCategoryFilterDefault verifies mask bits are honored without a custom filter
func TestCategoryFilterDefault(t *testing.T) {
	w := NewWorld(V(0, 0))
	defer w.Close()

	fd := DefaultFixtureDef()
	fd.Density = 1
	fd.Filter.CategoryBits = 0x0002
	fd.Filter.MaskBits = 0x0004

	for _, x := range []float64{0, 0.5} {
		def := DynamicBodyDef(V(x, 0))
		h := w.CreateBody(&def)
		m := w.BodyMut(h)
		m.Get().CreateFixture(NewBox(0.5, 0.5), fd)
		m.Release()
	}
	w.Step(1.0/60.0, 6, 2)

	if w.ContactCount() != 0 {
		t.Errorf("masked fixtures formed %d contacts", w.ContactCount())
	}
}

// TestCloseTearsDown verifies Close empties pools and blocks further use
func TestCloseTearsDown(t *testing.T) {
	w := NewWorld(V(0, -10))
	a := addBox(w, 0, 0)
	b := addBox(w, 1, 0)
	w.CreateJoint(NewWeldJointDef(w, a, b, V(0.5, 0)))
	nb := w.nativeBody(a)

	w.Close()
	w.Close()

	if !w.IsClosed() {
		t.Fatal("world not marked closed")
	}
	if len(w.BodyHandles()) != 0 || len(w.JointHandles()) != 0 {
		t.Error("pools not emptied by Close")
	}
	if nb.GetUserData() != nil {
		t.Error("user data left installed after Close")
	}

	defer func() {
		if r := recover(); r != ErrWorldClosed {
			t.Errorf("expected ErrWorldClosed panic, got %v", r)
		}
	}()
	w.Step(1.0/60.0, 6, 2)
}

// TestWorldFlags verifies pass-through settings round-trip
func TestWorldFlags(t *testing.T) {
	w := NewWorld(V(0, -10))
	defer w.Close()

	w.SetGravity(V(1, 2))
	if g := w.Gravity(); g.X != 1 || g.Y != 2 {
		t.Errorf("gravity %v", g)
	}

	w.SetAllowSleeping(false)
	w.SetWarmStarting(false)
	w.SetContinuousPhysics(false)
	w.SetSubStepping(true)
	w.SetAutoClearForces(false)

	if w.AllowSleeping() || w.WarmStarting() || w.ContinuousPhysics() || !w.SubStepping() || w.AutoClearForces() {
		t.Error("flag did not round-trip")
	}
	if w.IsLocked() {
		t.Error("world locked outside step")
	}

	addBox(w, 0, 0)
	if w.ProxyCount() != 1 {
		t.Errorf("expected 1 proxy, got %d", w.ProxyCount())
	}
	if w.TreeHeight() != 0 {
		t.Errorf("single-leaf tree height %d", w.TreeHeight())
	}
	w.Step(1.0/60.0, 6, 2)
	w.ClearForces()
}

// lockedListener runs action on the first begin contact and records its panic
type lockedListener struct {
	NopContactListener
	action func()
	ran    bool
	got    any
}

func (l *lockedListener) BeginContact(Contact) {
	if l.ran {
		return
	}
	l.ran = true
	defer func() { l.got = recover() }()
	l.action()
}

func firstFixture[B, F, J any](w *World[B, F, J], h BodyHandle) FixtureHandle {
	ref := w.Body(h)
	defer ref.Release()
	for fh := range ref.Get().Fixtures() {
		return fh
	}
	return FixtureHandle{}
}

// TestLockedWorldRejectsChanges verifies topology changes from a listener panic with
// ErrWorldLocked and leave pools and engine in step
func TestLockedWorldRejectsChanges(t *testing.T) {
	type scene struct {
		w       *SimpleWorld
		a, b    BodyHandle
		joint   JointHandle
		fixture FixtureHandle
	}
	tests := []struct {
		name   string
		action func(s *scene)
	}{
		{"create body", func(s *scene) {
			def := DynamicBodyDef(V(5, 5))
			s.w.CreateBody(&def)
		}},
		{"destroy body", func(s *scene) { s.w.DestroyBody(s.b) }},
		{"create joint", func(s *scene) { s.w.CreateJoint(NewWeldJointDef(s.w, s.a, s.b, V(0, 0))) }},
		{"destroy joint", func(s *scene) { s.w.DestroyJoint(s.joint) }},
		{"create fixture", func(s *scene) {
			m := s.w.BodyMut(s.a)
			defer m.Release()
			m.Get().CreateFastFixture(NewCircle(V(0, 0), 0.1), 1)
		}},
		{"destroy fixture", func(s *scene) {
			m := s.w.BodyMut(s.a)
			defer m.Release()
			m.Get().DestroyFixture(s.fixture)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld(V(0, 0))
			defer w.Close()

			s := &scene{w: w}
			s.a = addBox(w, 0, 0)
			s.b = addBox(w, 0.5, 0)
			s.joint = w.CreateJoint(&RopeJointDef{
				JointBase: JointBase{BodyA: s.a, BodyB: s.b, CollideConnected: true},
				MaxLength: 2,
			})
			s.fixture = firstFixture(w, s.a)

			l := &lockedListener{action: func() { tt.action(s) }}
			w.SetContactListener(l)
			w.Step(1.0/60.0, 6, 2)

			if !l.ran {
				t.Fatal("listener never ran")
			}
			err, ok := l.got.(error)
			if !ok || !errors.Is(err, ErrWorldLocked) {
				t.Fatalf("expected ErrWorldLocked panic, got %v", l.got)
			}

			if len(w.BodyHandles()) != 2 || w.BodyCount() != 2 {
				t.Errorf("bodies: pool %d, engine %d", len(w.BodyHandles()), w.BodyCount())
			}
			if len(w.JointHandles()) != 1 || w.JointCount() != 1 {
				t.Errorf("joints: pool %d, engine %d", len(w.JointHandles()), w.JointCount())
			}
			ref := w.Body(s.a)
			if !ref.Get().HasFixture(s.fixture) || ref.Get().FixtureCount() != 1 {
				t.Errorf("fixture pool changed: count %d", ref.Get().FixtureCount())
			}
			ref.Release()

			w.QueryAABB(func(body BodyHandle, fixture FixtureHandle) bool {
				r := w.Body(body)
				defer r.Release()
				if !r.Get().HasFixture(fixture) {
					t.Errorf("query returned unresolvable fixture %v", fixture)
				}
				return true
			}, NewAABB(V(-5, -5), V(5, 5)))
		})
	}
}

// TestDestroyBodyBorrowedFixture verifies a borrowed fixture blocks DestroyBody before any change
func TestDestroyBodyBorrowedFixture(t *testing.T) {
	w := NewWorld(V(0, 0))
	defer w.Close()

	a := addBox(w, 0, 0)
	b := addBox(w, 2, 0)
	j := w.CreateJoint(NewWeldJointDef(w, a, b, V(1, 0)))
	fh := firstFixture(w, a)

	ref := w.Body(a)
	fr := ref.Get().Fixture(fh)
	ref.Release()

	mustPanicWith(t, handle.ErrAlreadyBorrowed, func() { w.DestroyBody(a) })

	if !w.HasBody(a) || !w.HasJoint(j) {
		t.Errorf("pools changed: body %v joint %v", w.HasBody(a), w.HasJoint(j))
	}
	if w.BodyCount() != 2 || w.JointCount() != 1 {
		t.Errorf("engine changed: bodies %d joints %d", w.BodyCount(), w.JointCount())
	}

	fr.Release()
	w.DestroyBody(a)
	if w.HasBody(a) || w.HasJoint(j) || w.JointCount() != 0 {
		t.Error("destroy after release did not cascade")
	}
}

// TestCloseDestroysGearsFirst verifies a gear in a reused low slot is torn down before its joints
func TestCloseDestroysGearsFirst(t *testing.T) {
	w := NewWorld(V(0, 0))

	ground := addGround(w)
	g1 := addBox(w, 0, 5)
	g2 := addBox(w, 3, 5)

	spacer := w.CreateJoint(NewDistanceJointDef(w, g1, g2, V(0, 5), V(3, 5)))
	j1 := w.CreateJoint(NewRevoluteJointDef(w, ground, g1, V(0, 5)))
	j2 := w.CreateJoint(NewRevoluteJointDef(w, ground, g2, V(3, 5)))
	w.DestroyJoint(spacer)
	gear := w.CreateJoint(&GearJointDef{
		JointBase: JointBase{BodyA: g1, BodyB: g2},
		Joint1:    j1,
		Joint2:    j2,
		Ratio:     1,
	})

	if hs := w.JointHandles(); hs[0] != gear {
		t.Fatalf("gear should reuse the lowest slot, handles %v", hs)
	}
	order := w.teardownOrder()
	if len(order) != 3 || order[0] != gear {
		t.Errorf("teardown order %v, want gear %v first", order, gear)
	}

	w.Close()
	if len(w.JointHandles()) != 0 {
		t.Error("close left joints behind")
	}
}
