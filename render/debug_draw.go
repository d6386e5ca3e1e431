package render

import (
	"github.com/setanarut/vec"

	"github.com/lixenwraith/zoo-spree/physics"
)

// transformAxisLength is the world length of the axes drawn by DrawTransform
const transformAxisLength = 0.4

// DebugDraw renders physics debug geometry onto a Canvas
type DebugDraw struct {
	canvas *Canvas
}

var _ physics.Draw = (*DebugDraw)(nil)

func NewDebugDraw(c *Canvas) *DebugDraw {
	return &DebugDraw{canvas: c}
}

func toVecs(vs []physics.Vec2) []vec.Vec2 {
	out := make([]vec.Vec2, len(vs))
	for i, v := range vs {
		out[i] = ToVec(v)
	}
	return out
}

func (d *DebugDraw) DrawPolygon(vertices []physics.Vec2, color physics.Color) {
	d.canvas.DrawPolygon(toVecs(vertices), GlyphLine, FromPhysics(color).Style())
}

// DrawSolidPolygon shades the interior and outlines the edge
func (d *DebugDraw) DrawSolidPolygon(vertices []physics.Vec2, color physics.Color) {
	vs := toVecs(vertices)
	rgb := FromPhysics(color)
	d.canvas.FillPolygon(vs, GlyphShade, RGBBlack.Blend(rgb, 0.6).Style())
	d.canvas.DrawPolygon(vs, GlyphFill, rgb.Style())
}

func (d *DebugDraw) DrawCircle(center physics.Vec2, radius float64, color physics.Color) {
	d.canvas.DrawCircle(ToVec(center), radius, GlyphLine, FromPhysics(color).Style())
}

// DrawSolidCircle shades the disc and draws the rotation axis
func (d *DebugDraw) DrawSolidCircle(center physics.Vec2, radius float64, axis physics.Vec2, color physics.Color) {
	c := ToVec(center)
	rgb := FromPhysics(color)
	d.canvas.FillCircle(c, radius, GlyphShade, rgb.Scale(0.6).Style())
	d.canvas.DrawCircle(c, radius, GlyphFill, rgb.Style())
	d.canvas.DrawSegment(c, c.Add(ToVec(axis).Scale(radius)), GlyphLine, rgb.Style())
}

func (d *DebugDraw) DrawSegment(p1, p2 physics.Vec2, color physics.Color) {
	d.canvas.DrawSegment(ToVec(p1), ToVec(p2), GlyphLine, FromPhysics(color).Style())
}

// DrawTransform draws the local x axis in red and y axis in green
func (d *DebugDraw) DrawTransform(xf physics.Transform) {
	origin := ToVec(xf.P)
	d.canvas.DrawSegment(origin, Apply(xf, vec.Vec2{X: transformAxisLength}), GlyphLine, RGBRed.Style())
	d.canvas.DrawSegment(origin, Apply(xf, vec.Vec2{Y: transformAxisLength}), GlyphLine, RGBGreen.Style())
	d.canvas.DrawPoint(origin, GlyphAxis, RGBWhite.Style())
}
