// Package stitch builds the platform surface from an ordered sequence of
// cross-sections: vertex matrix, per-quad triangulation with continuous UVs,
// longitudinal strips, branch welding and end caps.
package stitch

import (
	"github.com/Faultbox/platform-builder/pkg/math"
)

// Vert is one resolved point of a cross-section.
type Vert struct {
	Position math.Vec3
	// Branches holds the world positions of the point's branches. Each one
	// becomes an extra column right after the point.
	Branches []math.Vec3
}

// Row is one cross-section as handed to the stitcher.
type Row struct {
	Verts []Vert
	// Branches holds section branch offsets. Each one becomes an extra row
	// right after this row, equal to this row translated by the offset.
	Branches []math.Vec3
}

// Width returns the number of matrix columns the row expands to.
func (r Row) Width() int {
	w := 0
	for _, v := range r.Verts {
		w += 1 + len(v.Branches)
	}
	return w
}

// Placed pairs a sub-mesh with the transform it should be combined with.
type Placed struct {
	Mesh      *Mesh
	Transform math.Mat4
}

// CloneRows deep-copies rows so a caller can transform them without touching
// the originals.
func CloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		verts := make([]Vert, len(r.Verts))
		for k, v := range r.Verts {
			verts[k] = Vert{Position: v.Position, Branches: append([]math.Vec3(nil), v.Branches...)}
		}
		out[i] = Row{Verts: verts, Branches: append([]math.Vec3(nil), r.Branches...)}
	}
	return out
}
