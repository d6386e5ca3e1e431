// Package render rasterizes world-space geometry onto a tcell screen
package render

import (
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/setanarut/vec"

	"github.com/lixenwraith/zoo-spree/physics"
)

// Cell glyphs
const (
	GlyphFill    = '█'
	GlyphShade   = '▒'
	GlyphLine    = '•'
	GlyphAxis    = '+'
	GlyphNothing = ' '
)

// Canvas draws into a tcell screen through a Camera
type Canvas struct {
	screen tcell.Screen
	Camera *Camera

	width, height int
}

// NewCanvas wraps screen; the camera viewport tracks the screen size
func NewCanvas(screen tcell.Screen, camera *Camera) *Canvas {
	c := &Canvas{screen: screen, Camera: camera}
	c.Resize()
	return c
}

// Resize re-reads the screen size after a resize event
func (c *Canvas) Resize() {
	c.width, c.height = c.screen.Size()
	c.Camera.SetViewport(c.width, c.height)
}

func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

func (c *Canvas) Screen() tcell.Screen {
	return c.screen
}

func (c *Canvas) Clear() {
	c.screen.Clear()
}

func (c *Canvas) Show() {
	c.screen.Show()
}

// Set writes one cell, ignoring positions off screen
func (c *Canvas) Set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.screen.SetContent(x, y, r, nil, style)
}

// DrawText writes s left to right from (x, y); clipped at the right edge
func (c *Canvas) DrawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		c.Set(x, y, r, style)
		x++
	}
}

// DrawPoint marks the cell under world point p
func (c *Canvas) DrawPoint(p vec.Vec2, r rune, style tcell.Style) {
	x, y := c.Camera.Project(p)
	c.Set(x, y, r, style)
}

// DrawSegment draws a world-space line, clipped to the viewport
func (c *Canvas) DrawSegment(a, b vec.Vec2, r rune, style tcell.Style) {
	x0, y0 := c.Camera.ProjectF(a)
	x1, y1 := c.Camera.ProjectF(b)
	x0, y0, x1, y1, ok := clip(x0, y0, x1, y1, float64(c.width), float64(c.height))
	if !ok {
		return
	}
	c.line(int(math.Floor(x0)), int(math.Floor(y0)), int(math.Floor(x1)), int(math.Floor(y1)), r, style)
}

// clip trims a segment to [-1, w+1] x [-1, h+1] (Liang-Barsky)
func clip(x0, y0, x1, y1, w, h float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 + 1},
		{dx, w + 1 - x0},
		{-dy, y0 + 1},
		{dy, h + 1 - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// line is Bresenham between two cells
func (c *Canvas) line(x0, y0, x1, y1 int, r rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0, r, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// DrawPolygon outlines a closed world-space polygon
func (c *Canvas) DrawPolygon(vertices []vec.Vec2, r rune, style tcell.Style) {
	n := len(vertices)
	if n == 0 {
		return
	}
	if n == 1 {
		c.DrawPoint(vertices[0], r, style)
		return
	}
	for i := range vertices {
		c.DrawSegment(vertices[i], vertices[(i+1)%n], r, style)
	}
}

// FillPolygon fills cells whose centers fall inside the polygon (even-odd rule)
func (c *Canvas) FillPolygon(vertices []vec.Vec2, r rune, style tcell.Style) {
	n := len(vertices)
	if n < 3 {
		c.DrawPolygon(vertices, r, style)
		return
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, v := range vertices {
		xs[i], ys[i] = c.Camera.ProjectF(v)
		minY = math.Min(minY, ys[i])
		maxY = math.Max(maxY, ys[i])
	}

	row0 := max(0, int(math.Floor(minY)))
	row1 := min(c.height-1, int(math.Ceil(maxY)))
	var cross []float64
	for row := row0; row <= row1; row++ {
		sy := float64(row) + 0.5
		cross = cross[:0]
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			y0, y1 := ys[i], ys[j]
			if (y0 <= sy) == (y1 <= sy) {
				continue
			}
			t := (sy - y0) / (y1 - y0)
			cross = append(cross, xs[i]+t*(xs[j]-xs[i]))
		}
		slices.Sort(cross)
		for k := 0; k+1 < len(cross); k += 2 {
			from := max(0, int(math.Ceil(cross[k]-0.5)))
			to := min(c.width-1, int(math.Floor(cross[k+1]-0.5)))
			for col := from; col <= to; col++ {
				c.Set(col, row, r, style)
			}
		}
	}
}

// circlePoints approximates a world-space circle
func circlePoints(center vec.Vec2, radius float64, segments int) []vec.Vec2 {
	pts := make([]vec.Vec2, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = center.Add(vec.ForAngle(a).Scale(radius))
	}
	return pts
}

// circleSegments picks enough segments for the projected radius
func (c *Canvas) circleSegments(radius float64) int {
	return max(12, min(64, int(radius*c.Camera.Scale*2)))
}

func (c *Canvas) DrawCircle(center vec.Vec2, radius float64, r rune, style tcell.Style) {
	c.DrawPolygon(circlePoints(center, radius, c.circleSegments(radius)), r, style)
}

func (c *Canvas) FillCircle(center vec.Vec2, radius float64, r rune, style tcell.Style) {
	c.FillPolygon(circlePoints(center, radius, c.circleSegments(radius)), r, style)
}

// DrawShape fills local-space vertices placed by a body transform
func (c *Canvas) DrawShape(local []vec.Vec2, xf physics.Transform, r rune, style tcell.Style) {
	world := make([]vec.Vec2, len(local))
	for i, v := range local {
		world[i] = Apply(xf, v)
	}
	c.FillPolygon(world, r, style)
}
