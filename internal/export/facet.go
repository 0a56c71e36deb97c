package export

import (
	"github.com/Faultbox/stlexport/pkg/math"
	"github.com/Faultbox/stlexport/pkg/stl"
)

// Polygon is an ordered list of indices into a vertex buffer.
type Polygon []int

// quadSplit lists the corner triples emitted for a polygon: the first
// triangle, then the second half of a quad split along the 2-0 diagonal.
var quadSplit = [2][3]int{{0, 1, 2}, {2, 3, 0}}

// BuildFacets appends the facets of poly to dst and returns the extended slice
// along with the number of degenerate triangles dropped.
//
// A quad (maxVerts 4, at least four indices, poly[2] != poly[3]) yields two
// triangles; anything else with at least three indices yields one. Polygons
// with fewer than three indices or out-of-range indices yield nothing.
func BuildFacets(dst []stl.Facet, vertices []math.Vec3, poly Polygon, maxVerts int, m math.Mat4) ([]stl.Facet, int) {
	if len(poly) < 3 {
		return dst, 0
	}

	tris, used := quadSplit[:1], 3
	if maxVerts == 4 && len(poly) >= 4 && poly[2] != poly[3] {
		tris, used = quadSplit[:], 4
	}
	if !inRange(vertices, poly[:used]) {
		return dst, 0
	}

	dropped := 0
	for _, tri := range tris {
		a := m.TransformVec3(vertices[poly[tri[0]]])
		b := m.TransformVec3(vertices[poly[tri[1]]])
		c := m.TransformVec3(vertices[poly[tri[2]]])
		if IsDegenerate(a, b, c) {
			dropped++
			continue
		}
		dst = append(dst, stl.Facet{
			Normal:   Normal(a, b, c),
			Vertices: [3]math.Vec3{a, b, c},
		})
	}
	return dst, dropped
}

// IsDegenerate reports whether the triangle has no usable normal: coincident
// or colinear corners, or corners that are not finite.
func IsDegenerate(a, b, c math.Vec3) bool {
	n := b.Sub(a).Cross(c.Sub(a))
	if !n.IsFinite() {
		return true
	}
	l := n.Length()
	return l == 0 || !n.Scale(1/l).IsFinite()
}

// Normal returns the unit normal of the counter-clockwise triangle a, b, c.
func Normal(a, b, c math.Vec3) math.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

func inRange(vertices []math.Vec3, idxs Polygon) bool {
	for _, idx := range idxs {
		if idx < 0 || idx >= len(vertices) {
			return false
		}
	}
	return true
}
