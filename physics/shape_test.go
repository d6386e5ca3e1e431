package physics

import (
	"errors"
	"math"
	"testing"
)

// TestNewPolygonErrors verifies vertex count and degeneracy are reported as errors
func TestNewPolygonErrors(t *testing.T) {
	tests := []struct {
		name     string
		vertices []Vec2
		want     error
	}{
		{"too few", []Vec2{V(0, 0), V(1, 0)}, ErrVertexCount},
		{"too many", make([]Vec2, MaxPolygonVertices+1), ErrVertexCount},
		{"coincident", []Vec2{V(0, 0), V(0, 0), V(0, 0)}, ErrDegeneratePolygon},
		{"collinear", []Vec2{V(0, 0), V(1, 0), V(2, 0)}, ErrDegeneratePolygon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPolygon(tt.vertices)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

// TestNewPolygonHull verifies valid input yields a counter-clockwise hull
func TestNewPolygonHull(t *testing.T) {
	s, err := NewPolygon([]Vec2{V(0, 0), V(2, 0), V(1, 1), V(2, 2), V(0, 2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Type() != PolygonShape {
		t.Errorf("type %v", s.Type())
	}
	// Interior point is dropped from the hull
	if n := len(s.Vertices()); n != 4 {
		t.Errorf("hull has %d vertices, want 4", n)
	}
	md := s.ComputeMass(1)
	if math.Abs(md.Mass-4) > 1e-9 {
		t.Errorf("mass %f, want 4", md.Mass)
	}
	if math.Abs(md.Center.X-1) > 1e-9 || math.Abs(md.Center.Y-1) > 1e-9 {
		t.Errorf("centroid %v", md.Center)
	}
}

// TestShapeKinds verifies constructors and accessors per shape type
func TestShapeKinds(t *testing.T) {
	c := NewCircle(V(1, 2), 0.5)
	if c.Type() != CircleShape || c.Radius() != 0.5 || c.Center() != V(1, 2) {
		t.Errorf("circle %v r=%f c=%v", c.Type(), c.Radius(), c.Center())
	}
	if c.Vertices() != nil {
		t.Error("circle reported an outline")
	}

	e := NewEdge(V(0, 0), V(1, 0))
	if e.Type() != EdgeShape || len(e.Vertices()) != 2 {
		t.Errorf("edge %v %v", e.Type(), e.Vertices())
	}

	if _, err := NewChain([]Vec2{V(0, 0)}); !errors.Is(err, ErrVertexCount) {
		t.Errorf("single-point chain: %v", err)
	}
	ch, err := NewChain([]Vec2{V(0, 0), V(1, 0), V(2, 1)})
	if err != nil {
		t.Fatal(err)
	}
	if ch.ChildCount() != 2 || ch.IsLoop() {
		t.Errorf("chain children %d loop %v", ch.ChildCount(), ch.IsLoop())
	}

	loop, err := NewLoop([]Vec2{V(0, 0), V(1, 0), V(1, 1)})
	if err != nil {
		t.Fatal(err)
	}
	if !loop.IsLoop() || loop.ChildCount() != 3 {
		t.Errorf("loop children %d loop %v", loop.ChildCount(), loop.IsLoop())
	}

	box := NewOrientedBox(1, 0.5, V(2, 0), math.Pi/2)
	vs := box.Vertices()
	if len(vs) != 4 {
		t.Fatalf("box vertices %d", len(vs))
	}
	for _, v := range vs {
		if math.Abs(math.Abs(v.X-2)-0.5) > 1e-9 || math.Abs(math.Abs(v.Y)-1) > 1e-9 {
			t.Errorf("rotated box corner %v", v)
		}
	}
}

// TestBodyTypeString verifies body type names
func TestBodyTypeString(t *testing.T) {
	if StaticBody.String() != "static" || DynamicBody.String() != "dynamic" || KinematicBody.String() != "kinematic" {
		t.Errorf("names %s %s %s", StaticBody, KinematicBody, DynamicBody)
	}
}
