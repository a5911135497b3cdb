package stitch

import "github.com/Faultbox/platform-builder/pkg/math"

const earEpsilon = 1e-10

// Triangulate splits a simple polygon, convex or not, into triangles by ear
// clipping and returns the vertex indices. Output triangles wind
// counter-clockwise in the polygon's plane whatever the input orientation.
//
// A polygon with n >= 3 points always yields n-2 triangles. When no ear can be
// found (collinear or repeated points) the remaining vertices are fanned, which
// produces zero-area triangles instead of failing.
func Triangulate(pts []math.Vec2) []uint32 {
	n := len(pts)
	if n < 3 {
		return nil
	}

	v := make([]int, n)
	if signedArea(pts) >= 0 {
		for i := range v {
			v[i] = i
		}
	} else {
		for i := range v {
			v[i] = n - 1 - i
		}
	}

	indices := make([]uint32, 0, (n-2)*3)
	for len(v) > 3 {
		ear := -1
		for i := range v {
			if isEar(pts, v, i) {
				ear = i
				break
			}
		}
		if ear < 0 {
			ear = 0
		}

		prev := v[(ear+len(v)-1)%len(v)]
		next := v[(ear+1)%len(v)]
		indices = append(indices, uint32(prev), uint32(v[ear]), uint32(next))
		v = append(v[:ear], v[ear+1:]...)
	}
	indices = append(indices, uint32(v[0]), uint32(v[1]), uint32(v[2]))
	return indices
}

func signedArea(pts []math.Vec2) float32 {
	var a float32
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].Cross(pts[j])
	}
	return a / 2
}

// isEar reports whether the vertex at position i of the working list v forms
// a convex corner whose triangle contains no other remaining vertex.
func isEar(pts []math.Vec2, v []int, i int) bool {
	a := pts[v[(i+len(v)-1)%len(v)]]
	b := pts[v[i]]
	c := pts[v[(i+1)%len(v)]]

	if b.Sub(a).Cross(c.Sub(b)) <= earEpsilon {
		return false
	}

	for k := range v {
		if k == i || k == (i+1)%len(v) || k == (i+len(v)-1)%len(v) {
			continue
		}
		if strictlyInside(pts[v[k]], a, b, c) {
			return false
		}
	}
	return true
}

// strictlyInside reports whether p lies inside the counter-clockwise triangle
// abc, excluding its edges.
func strictlyInside(p, a, b, c math.Vec2) bool {
	return b.Sub(a).Cross(p.Sub(a)) > 0 &&
		c.Sub(b).Cross(p.Sub(b)) > 0 &&
		a.Sub(c).Cross(p.Sub(c)) > 0
}
