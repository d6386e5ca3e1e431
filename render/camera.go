package render

import (
	"math"

	"github.com/setanarut/vec"

	"github.com/lixenwraith/zoo-spree/physics"
)

// CellAspect is the height of a terminal cell relative to its width
const CellAspect = 2.0

// Camera maps world coordinates (y up) to terminal cells (y down)
// Scale is columns per world unit; rows per unit are Scale/CellAspect
type Camera struct {
	Center vec.Vec2
	Scale  float64

	width, height int
}

// NewCamera centers on the origin with scale columns per unit
func NewCamera(scale float64) *Camera {
	return &Camera{Scale: scale}
}

// SetViewport records the cell grid size
func (c *Camera) SetViewport(width, height int) {
	c.width, c.height = width, height
}

func (c *Camera) Viewport() (int, int) {
	return c.width, c.height
}

// Fit picks Center and Scale so the world box [lo, hi] fills the viewport
func (c *Camera) Fit(lo, hi vec.Vec2) {
	c.Center = lo.Lerp(hi, 0.5)
	span := hi.Sub(lo)
	if span.X <= 0 || span.Y <= 0 || c.width == 0 || c.height == 0 {
		return
	}
	sx := float64(c.width) / span.X
	sy := float64(c.height) * CellAspect / span.Y
	c.Scale = math.Min(sx, sy)
}

// ProjectF returns the fractional cell position of a world point
func (c *Camera) ProjectF(p vec.Vec2) (float64, float64) {
	d := p.Sub(c.Center)
	x := float64(c.width)/2 + d.X*c.Scale
	y := float64(c.height)/2 - d.Y*c.Scale/CellAspect
	return x, y
}

// Project returns the cell holding world point p
func (c *Camera) Project(p vec.Vec2) (int, int) {
	x, y := c.ProjectF(p)
	return int(math.Floor(x)), int(math.Floor(y))
}

// Unproject returns the world point at the center of cell (x, y)
func (c *Camera) Unproject(x, y int) vec.Vec2 {
	fx := float64(x) + 0.5 - float64(c.width)/2
	fy := float64(c.height)/2 - (float64(y) + 0.5)
	return c.Center.Add(vec.Vec2{X: fx / c.Scale, Y: fy * CellAspect / c.Scale})
}

// ToVec converts an engine vector
func ToVec(p physics.Vec2) vec.Vec2 {
	return vec.Vec2{X: p.X, Y: p.Y}
}

// ToPhysics converts to an engine vector
func ToPhysics(v vec.Vec2) physics.Vec2 {
	return physics.V(v.X, v.Y)
}

// Apply maps a local point through a body transform
func Apply(xf physics.Transform, local vec.Vec2) vec.Vec2 {
	rot := vec.Vec2{X: xf.Q.C, Y: xf.Q.S}
	return local.RotateComplex(rot).Add(ToVec(xf.P))
}
