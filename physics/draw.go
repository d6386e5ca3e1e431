package physics

import "github.com/ByteArena/box2d"

// Color is an RGB triple in [0,1]
type Color struct {
	R, G, B float64
}

// Draw receives debug geometry in world coordinates
type Draw interface {
	DrawPolygon(vertices []Vec2, color Color)
	DrawSolidPolygon(vertices []Vec2, color Color)
	DrawCircle(center Vec2, radius float64, color Color)
	DrawSolidCircle(center Vec2, radius float64, axis Vec2, color Color)
	DrawSegment(p1, p2 Vec2, color Color)
	DrawTransform(xf Transform)
}

// DrawFlags selects what DrawDebugData emits
type DrawFlags uint32

const (
	DrawShapes DrawFlags = 1 << iota
	DrawJoints
	DrawAABBs
	DrawPairs
	DrawCenterOfMass
)

var (
	colorInactive  = Color{0.5, 0.5, 0.3}
	colorStatic    = Color{0.5, 0.9, 0.5}
	colorKinematic = Color{0.5, 0.5, 0.9}
	colorSleeping  = Color{0.6, 0.6, 0.6}
	colorDynamic   = Color{0.9, 0.7, 0.7}
	colorJoint     = Color{0.5, 0.8, 0.8}
	colorPair      = Color{0.3, 0.9, 0.9}
	colorAABB      = Color{0.9, 0.3, 0.9}
)

// debugDrawer binds a Draw to one DrawDebugData call
type debugDrawer struct {
	d Draw
}

// DrawDebugData walks the engine world and emits its geometry to d
// d is used only for the duration of the call
func (w *World[B, F, J]) DrawDebugData(d Draw, flags DrawFlags) {
	w.mustOpen()
	if d == nil || flags == 0 {
		return
	}
	dd := debugDrawer{d: d}

	if flags&DrawShapes != 0 {
		for b := w.native.GetBodyList(); b != nil; b = b.GetNext() {
			xf := b.GetTransform()
			color := bodyColor(b)
			for f := b.GetFixtureList(); f != nil; f = f.GetNext() {
				dd.shape(f.GetShape(), xf, color)
			}
		}
	}

	if flags&DrawJoints != 0 {
		for j := w.native.GetJointList(); j != nil; j = j.GetNext() {
			dd.joint(j)
		}
	}

	if flags&DrawPairs != 0 {
		for c := w.native.GetContactList(); c != nil; c = c.GetNext() {
			fa, fb := c.GetFixtureA(), c.GetFixtureB()
			ca := fa.GetAABB(c.GetChildIndexA()).GetCenter()
			cb := fb.GetAABB(c.GetChildIndexB()).GetCenter()
			d.DrawSegment(ca, cb, colorPair)
		}
	}

	if flags&DrawAABBs != 0 {
		for b := w.native.GetBodyList(); b != nil; b = b.GetNext() {
			if !b.IsActive() {
				continue
			}
			for f := b.GetFixtureList(); f != nil; f = f.GetNext() {
				for i := 0; i < f.GetShape().GetChildCount(); i++ {
					box := f.GetAABB(i)
					d.DrawPolygon([]Vec2{
						box.LowerBound,
						V(box.UpperBound.X, box.LowerBound.Y),
						box.UpperBound,
						V(box.LowerBound.X, box.UpperBound.Y),
					}, colorAABB)
				}
			}
		}
	}

	if flags&DrawCenterOfMass != 0 {
		for b := w.native.GetBodyList(); b != nil; b = b.GetNext() {
			xf := b.GetTransform()
			xf.P = b.GetWorldCenter()
			d.DrawTransform(xf)
		}
	}
}

func bodyColor(b *box2d.B2Body) Color {
	switch {
	case !b.IsActive():
		return colorInactive
	case b.GetType() == box2d.B2BodyType.B2_staticBody:
		return colorStatic
	case b.GetType() == box2d.B2BodyType.B2_kinematicBody:
		return colorKinematic
	case !b.IsAwake():
		return colorSleeping
	}
	return colorDynamic
}

func (dd debugDrawer) shape(s box2d.B2ShapeInterface, xf Transform, color Color) {
	switch n := s.(type) {
	case *box2d.B2CircleShape:
		center := box2d.B2TransformVec2Mul(xf, n.M_p)
		axis := box2d.B2RotVec2Mul(xf.Q, V(1, 0))
		dd.d.DrawSolidCircle(center, n.M_radius, axis, color)

	case *box2d.B2EdgeShape:
		dd.d.DrawSegment(
			box2d.B2TransformVec2Mul(xf, n.M_vertex1),
			box2d.B2TransformVec2Mul(xf, n.M_vertex2),
			color,
		)

	case *box2d.B2ChainShape:
		if n.M_count < 2 {
			return
		}
		v1 := box2d.B2TransformVec2Mul(xf, n.M_vertices[0])
		for i := 1; i < n.M_count; i++ {
			v2 := box2d.B2TransformVec2Mul(xf, n.M_vertices[i])
			dd.d.DrawSegment(v1, v2, color)
			v1 = v2
		}

	case *box2d.B2PolygonShape:
		vs := make([]Vec2, n.M_count)
		for i := 0; i < n.M_count; i++ {
			vs[i] = box2d.B2TransformVec2Mul(xf, n.M_vertices[i])
		}
		dd.d.DrawSolidPolygon(vs, color)
	}
}

func (dd debugDrawer) joint(j box2d.B2JointInterface) {
	dyn, ok := j.(jointDynamics)
	if !ok {
		return
	}
	x1 := j.GetBodyA().GetTransform().P
	x2 := j.GetBodyB().GetTransform().P
	p1 := dyn.GetAnchorA()
	p2 := dyn.GetAnchorB()

	switch kindFromTag(j.GetType()) {
	case DistanceJoint:
		dd.d.DrawSegment(p1, p2, colorJoint)

	case PulleyJoint:
		pj := j.(*box2d.B2PulleyJoint)
		s1, s2 := pj.GetGroundAnchorA(), pj.GetGroundAnchorB()
		dd.d.DrawSegment(s1, p1, colorJoint)
		dd.d.DrawSegment(s2, p2, colorJoint)
		dd.d.DrawSegment(s1, s2, colorJoint)

	case MouseJoint:
		// Target marker only makes sense to the dragging UI

	default:
		dd.d.DrawSegment(x1, p1, colorJoint)
		dd.d.DrawSegment(p1, p2, colorJoint)
		dd.d.DrawSegment(x2, p2, colorJoint)
	}
}
