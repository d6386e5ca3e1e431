package physics

import (
	"fmt"

	"github.com/ByteArena/box2d"
)

// ShapeType discriminates collision shapes
type ShapeType uint8

const (
	CircleShape ShapeType = iota
	EdgeShape
	PolygonShape
	ChainShape
)

func (t ShapeType) String() string {
	switch t {
	case CircleShape:
		return "circle"
	case EdgeShape:
		return "edge"
	case PolygonShape:
		return "polygon"
	case ChainShape:
		return "chain"
	}
	return "unknown"
}

// MaxPolygonVertices is the engine's polygon vertex limit
const MaxPolygonVertices = box2d.B2_maxPolygonVertices

// Shape is a collision shape; fixtures take a copy on creation
type Shape struct {
	native box2d.B2ShapeInterface
}

// NewBox returns an axis-aligned box centered on the body origin
func NewBox(hx, hy float64) Shape {
	s := box2d.MakeB2PolygonShape()
	s.SetAsBox(hx, hy)
	return Shape{native: &s}
}

// NewOrientedBox returns a box with the given local center and rotation
func NewOrientedBox(hx, hy float64, center Vec2, angle float64) Shape {
	s := box2d.MakeB2PolygonShape()
	s.SetAsBoxFromCenterAndAngle(hx, hy, center, angle)
	return Shape{native: &s}
}

// NewPolygon computes the convex hull of vertices
// Fails on counts outside [3, MaxPolygonVertices] and on collinear or coincident input
func NewPolygon(vertices []Vec2) (shape Shape, err error) {
	if len(vertices) < 3 || len(vertices) > MaxPolygonVertices {
		return Shape{}, fmt.Errorf("polygon with %d vertices: %w", len(vertices), ErrVertexCount)
	}

	// Engine asserts on a degenerate hull
	defer func() {
		if r := recover(); r != nil {
			shape, err = Shape{}, fmt.Errorf("polygon %v: %w", vertices, ErrDegeneratePolygon)
		}
	}()

	s := box2d.MakeB2PolygonShape()
	s.Set(vertices, len(vertices))
	return Shape{native: &s}, nil
}

// NewCircle returns a circle with local center and radius
func NewCircle(center Vec2, radius float64) Shape {
	s := box2d.MakeB2CircleShape()
	s.M_p = center
	s.M_radius = radius
	return Shape{native: &s}
}

// NewEdge returns a two-sided line segment
func NewEdge(v1, v2 Vec2) Shape {
	s := box2d.MakeB2EdgeShape()
	s.Set(v1, v2)
	return Shape{native: &s}
}

// NewChain returns an open chain of edges
func NewChain(vertices []Vec2) (Shape, error) {
	if len(vertices) < 2 {
		return Shape{}, fmt.Errorf("chain with %d vertices: %w", len(vertices), ErrVertexCount)
	}
	s := box2d.MakeB2ChainShape()
	s.CreateChain(vertices, len(vertices))
	return Shape{native: &s}, nil
}

// NewLoop returns a closed chain; the last vertex connects back to the first
func NewLoop(vertices []Vec2) (Shape, error) {
	if len(vertices) < 3 {
		return Shape{}, fmt.Errorf("loop with %d vertices: %w", len(vertices), ErrVertexCount)
	}
	s := box2d.MakeB2ChainShape()
	s.CreateLoop(vertices, len(vertices))
	return Shape{native: &s}, nil
}

// Type returns the shape discriminator
func (s Shape) Type() ShapeType {
	return ShapeType(s.native.GetType())
}

// Radius returns the circle radius or the polygon skin
func (s Shape) Radius() float64 {
	return s.native.GetRadius()
}

// ChildCount returns the number of child primitives (edges of a chain)
func (s Shape) ChildCount() int {
	return s.native.GetChildCount()
}

// Vertices returns the local outline: polygon corners, edge endpoints, chain points
// A circle has no outline and returns nil
func (s Shape) Vertices() []Vec2 {
	switch n := s.native.(type) {
	case *box2d.B2PolygonShape:
		out := make([]Vec2, n.M_count)
		copy(out, n.M_vertices[:n.M_count])
		return out
	case *box2d.B2EdgeShape:
		return []Vec2{n.M_vertex1, n.M_vertex2}
	case *box2d.B2ChainShape:
		out := make([]Vec2, n.M_count)
		copy(out, n.M_vertices[:n.M_count])
		return out
	}
	return nil
}

// Center returns the local center of a circle, zero for other shapes
func (s Shape) Center() Vec2 {
	if c, ok := s.native.(*box2d.B2CircleShape); ok {
		return c.M_p
	}
	return Vec2{}
}

// ComputeMass returns the mass properties the shape would give at density
func (s Shape) ComputeMass(density float64) MassData {
	var md MassData
	s.native.ComputeMass(&md, density)
	return md
}

// IsLoop reports whether a chain shape is closed
func (s Shape) IsLoop() bool {
	c, ok := s.native.(*box2d.B2ChainShape)
	if !ok || c.M_count < 3 {
		return false
	}
	first, last := c.M_vertices[0], c.M_vertices[c.M_count-1]
	return first.X == last.X && first.Y == last.Y
}
