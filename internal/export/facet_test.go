package export

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/stlexport/pkg/math"
)

var square = []math.Vec3{
	{X: 0, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: 1, Y: 1, Z: 0},
	{X: 0, Y: 1, Z: 0},
}

func TestBuildFacetsTriangle(t *testing.T) {
	facets, dropped := BuildFacets(nil, square, Polygon{0, 1, 2}, 3, math.Identity())
	if dropped != 0 {
		t.Errorf("unexpected dropped %d", dropped)
	}
	if len(facets) != 1 {
		t.Fatalf("expected 1 facet, got %d", len(facets))
	}

	f := facets[0]
	if f.Vertices != [3]math.Vec3{square[0], square[1], square[2]} {
		t.Errorf("vertices = %v", f.Vertices)
	}
	want := square[1].Sub(square[0]).Cross(square[2].Sub(square[0])).Normalize()
	if f.Normal != want {
		t.Errorf("normal = %v, want %v", f.Normal, want)
	}
}

func TestBuildFacetsQuad(t *testing.T) {
	tests := []struct {
		name     string
		poly     Polygon
		maxVerts int
		want     int
	}{
		{"quad split", Polygon{0, 1, 2, 3}, 4, 2},
		{"degenerate quad", Polygon{0, 1, 2, 2}, 4, 1},
		{"quad under triangle max", Polygon{0, 1, 2, 3}, 3, 1},
		{"triangle under quad max", Polygon{0, 1, 2}, 4, 1},
		{"too short", Polygon{0, 1}, 4, 0},
		{"out of range", Polygon{0, 1, 9}, 3, 0},
		{"negative index", Polygon{-1, 1, 2}, 3, 0},
		{"unused fourth index ignored", Polygon{0, 1, 2, 99}, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facets, _ := BuildFacets(nil, square, tt.poly, tt.maxVerts, math.Identity())
			if len(facets) != tt.want {
				t.Errorf("expected %d facets, got %d", tt.want, len(facets))
			}
		})
	}
}

func TestBuildFacetsQuadSharesDiagonal(t *testing.T) {
	facets, _ := BuildFacets(nil, square, Polygon{0, 1, 2, 3}, 4, math.Identity())
	if len(facets) != 2 {
		t.Fatalf("expected 2 facets, got %d", len(facets))
	}

	first, second := facets[0].Vertices, facets[1].Vertices
	if second != [3]math.Vec3{square[2], square[3], square[0]} {
		t.Errorf("second facet = %v, want corners 2, 3, 0", second)
	}
	// Diagonal 0-2 appears in both.
	if first[0] != second[2] || first[2] != second[0] {
		t.Errorf("facets do not share the 0-2 diagonal: %v %v", first, second)
	}
	for i, f := range facets {
		if f.Normal != (math.Vec3{Z: 1}) {
			t.Errorf("facet %d normal = %v, want (0, 0, 1)", i, f.Normal)
		}
	}
}

func TestBuildFacetsAppliesTransform(t *testing.T) {
	m := math.Translate(5, 0, 0).Mul(math.Scale(2, 2, 2))
	facets, _ := BuildFacets(nil, square, Polygon{0, 1, 2}, 3, m)
	if len(facets) != 1 {
		t.Fatalf("expected 1 facet, got %d", len(facets))
	}
	want := [3]math.Vec3{{X: 5}, {X: 7}, {X: 7, Y: 2}}
	if facets[0].Vertices != want {
		t.Errorf("vertices = %v, want %v", facets[0].Vertices, want)
	}
}

func TestBuildFacetsDropsDegenerate(t *testing.T) {
	line := []math.Vec3{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
	facets, dropped := BuildFacets(nil, line, Polygon{0, 1, 2, 3}, 4, math.Identity())
	if len(facets) != 0 {
		t.Errorf("expected no facets, got %d", len(facets))
	}
	if dropped != 2 {
		t.Errorf("expected 2 dropped, got %d", dropped)
	}
}

func TestBuildFacetsScaleToZero(t *testing.T) {
	// A flattening scale turns a valid triangle into a degenerate one.
	facets, dropped := BuildFacets(nil, square, Polygon{0, 1, 2}, 3, math.Scale(1, 0, 1))
	if len(facets) != 0 || dropped != 1 {
		t.Errorf("expected flattened triangle dropped, got %d facets, %d dropped", len(facets), dropped)
	}
}

func TestIsDegenerate(t *testing.T) {
	nan := float32(gomath.NaN())

	tests := []struct {
		name    string
		a, b, c math.Vec3
		want    bool
	}{
		{"valid", math.Vec3{}, math.Vec3{X: 1}, math.Vec3{Y: 1}, false},
		{"colinear", math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{X: 2, Y: 2, Z: 2}, true},
		{"two coincident", math.Vec3{X: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}, true},
		{"all coincident", math.Vec3{Z: 4}, math.Vec3{Z: 4}, math.Vec3{Z: 4}, true},
		{"nan corner", math.Vec3{X: nan}, math.Vec3{X: 1}, math.Vec3{Y: 1}, true},
		{"tiny but valid", math.Vec3{}, math.Vec3{X: 1e-3}, math.Vec3{Y: 1e-3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDegenerate(tt.a, tt.b, tt.c); got != tt.want {
				t.Errorf("IsDegenerate() = %v, want %v", got, tt.want)
			}
		})
	}
}
