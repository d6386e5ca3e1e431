package physics

import "github.com/ByteArena/box2d"

// RayCastHit is one fixture intersection reported during RayCast
type RayCastHit struct {
	Body     BodyHandle
	Fixture  FixtureHandle
	Point    Vec2
	Normal   Vec2
	Fraction float64
}

// Ray-cast callback return values
const (
	RayIgnore    = -1.0 // skip this fixture, continue
	RayTerminate = 0.0  // stop the cast
	RayContinue  = 1.0  // keep going without clipping
)

// QueryAABB calls fn for every fixture whose broad-phase box overlaps aabb
// fn returns false to stop; the adapter lives only for this call
func (w *World[B, F, J]) QueryAABB(fn func(body BodyHandle, fixture FixtureHandle) bool, aabb AABB) {
	w.mustOpen()
	w.native.QueryAABB(func(f *box2d.B2Fixture) bool {
		bh, fh := fixtureHandleOf(f)
		return fn(bh, fh)
	}, aabb)
}

// QueryAABBAll collects every overlapping fixture
func (w *World[B, F, J]) QueryAABBAll(aabb AABB) []FixtureInfo {
	var out []FixtureInfo
	w.mustOpen()
	w.native.QueryAABB(func(f *box2d.B2Fixture) bool {
		out = append(out, fixtureInfo(f))
		return true
	}, aabb)
	return out
}

// QueryPoint returns the bodies whose fixtures contain p
func (w *World[B, F, J]) QueryPoint(p Vec2) []BodyHandle {
	const eps = 1e-3
	var out []BodyHandle
	w.mustOpen()
	box := NewAABB(V(p.X-eps, p.Y-eps), V(p.X+eps, p.Y+eps))
	w.native.QueryAABB(func(f *box2d.B2Fixture) bool {
		if f.TestPoint(p) {
			out = append(out, bodyHandleOf(f.GetBody()))
		}
		return true
	}, box)
	return out
}

// RayCast calls fn for fixtures hit along p1 to p2
// fn's return controls the cast: RayIgnore, RayTerminate, the hit fraction to clip, or RayContinue
func (w *World[B, F, J]) RayCast(fn func(hit RayCastHit) float64, p1, p2 Vec2) {
	w.mustOpen()
	w.native.RayCast(func(f *box2d.B2Fixture, point, normal box2d.B2Vec2, fraction float64) float64 {
		bh, fh := fixtureHandleOf(f)
		return fn(RayCastHit{
			Body:     bh,
			Fixture:  fh,
			Point:    point,
			Normal:   normal,
			Fraction: fraction,
		})
	}, p1, p2)
}

// RayCastClosest returns the nearest hit along p1 to p2
func (w *World[B, F, J]) RayCastClosest(p1, p2 Vec2) (RayCastHit, bool) {
	var best RayCastHit
	found := false
	w.RayCast(func(hit RayCastHit) float64 {
		best = hit
		found = true
		return hit.Fraction
	}, p1, p2)
	return best, found
}
