package stitch

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/platform-builder/internal/logger"
	"github.com/Faultbox/platform-builder/pkg/math"
)

// Result is the outcome of one stitch before the final combine.
type Result struct {
	Matrix Matrix
	// Columns names the column each strip was built for, ordered by point
	// and then by branch.
	Columns []Column
	// Strips holds one mesh per entry of Columns, before branch welding.
	Strips []*Mesh
	// Welded holds one mesh per point, after branch columns were folded into
	// their point's strip.
	Welded []*Mesh
	// Caps holds the start and end caps.
	Caps [2]*Mesh
}

// Parts returns the welded strips followed by the two caps, each paired with
// placement.
func (r *Result) Parts(placement math.Mat4) []Placed {
	if len(r.Welded) == 0 {
		return nil
	}
	out := make([]Placed, 0, len(r.Welded)+2)
	for _, m := range r.Welded {
		out = append(out, Placed{Mesh: m, Transform: placement})
	}
	for _, m := range r.Caps {
		out = append(out, Placed{Mesh: m, Transform: placement})
	}
	return out
}

// Stitch builds the sub-meshes for rows and pairs each with placement, the
// world-to-local transform of the platform. It returns nil when the rows hold
// no geometry.
func Stitch(rows []Row, placement math.Mat4) []Placed {
	return Run(rows).Parts(placement)
}

// Run executes the stitching pipeline and keeps the intermediate stages.
//
// A row pair is stitched over the columns both rows share: every point
// column, plus the branch columns present in both rows. Pairs whose point
// count differs from the reference row are skipped.
func Run(rows []Row) *Result {
	m := BuildMatrix(rows)
	res := &Result{Matrix: m}

	width := m.Width()
	if width == 0 {
		logger.Debug("stitch skipped: no columns", zap.Int("rows", len(m.Rows)))
		return res
	}

	strips := make(map[Column]*Mesh)
	uv := newUVTracker(m.Rows[firstRow(m)])
	stitched, skipped, narrowed := 0, 0, 0
	for i := 0; i < len(m.Rows)-1; i++ {
		if m.points(i) != width || m.points(i+1) != width {
			skipped++
			uv.reset()
			continue
		}

		cols, ia, ib := m.shared(i, i+1)
		if len(cols) != len(m.Rows[i]) || len(cols) != len(m.Rows[i+1]) {
			narrowed++
		}
		cur, next := pick(m.Rows[i], ia), pick(m.Rows[i+1], ib)

		stitched++
		top, bottom := uv.advance(cols, cur, next)
		n := len(cols)
		for k, col := range cols {
			kn := (k + 1) % n
			corners := [4]math.Vec3{next[k], next[kn], cur[kn], cur[k]}
			uvs := [4]math.Vec2{bottom[k], bottom[k+1], top[k+1], top[k]}
			strip, ok := strips[col]
			if !ok {
				strip = &Mesh{}
				strips[col] = strip
			}
			strip.Append(quadMesh(corners, uvs), math.Identity())
		}
	}

	if stitched == 0 {
		logger.Debug("stitch skipped: no row pair matches the reference point count",
			zap.Int("rows", len(m.Rows)), zap.Int("points", width))
		return res
	}

	res.Columns = make([]Column, 0, len(strips))
	for col := range strips {
		res.Columns = append(res.Columns, col)
	}
	sort.Slice(res.Columns, func(i, j int) bool {
		a, b := res.Columns[i], res.Columns[j]
		if a.Point != b.Point {
			return a.Point < b.Point
		}
		return a.Branch < b.Branch
	})
	res.Strips = make([]*Mesh, len(res.Columns))
	for k, col := range res.Columns {
		res.Strips[k] = strips[col]
	}
	res.Welded = weld(res.Strips, res.Columns)

	first, last := m.firstAndLast()
	res.Caps[0] = endCap(m.Rows[first], true)
	res.Caps[1] = endCap(m.Rows[last], false)

	logger.Debug("stitched",
		zap.Int("rows", len(m.Rows)),
		zap.Int("points", width),
		zap.Int("skippedPairs", skipped),
		zap.Int("narrowedPairs", narrowed),
		zap.Int("strips", len(res.Strips)),
		zap.Int("welded", len(res.Welded)))
	return res
}

func firstRow(m Matrix) int {
	first, _ := m.firstAndLast()
	return first
}

// quadMesh builds the two-triangle mesh of one quad. The corners are ordered
// next[k], next[k+1], cur[k+1], cur[k].
func quadMesh(corners [4]math.Vec3, uvs [4]math.Vec2) *Mesh {
	normal := corners[1].Sub(corners[0]).Cross(corners[2].Sub(corners[1]))
	projected := project(corners[:], normal)

	return &Mesh{
		Vertices: corners[:],
		UVs:      uvs[:],
		Indices:  Triangulate(projected),
	}
}

// project drops the dominant axis of normal. The remaining axes are ordered so
// that counter-clockwise 2D triangles wind the same way as the 3D corners.
func project(pts []math.Vec3, normal math.Vec3) []math.Vec2 {
	ax, ay, az := abs(normal.X), abs(normal.Y), abs(normal.Z)

	var to2D func(p math.Vec3) math.Vec2
	switch {
	case ax >= ay && ax >= az && ax > 0:
		if normal.X > 0 {
			to2D = func(p math.Vec3) math.Vec2 { return math.Vec2{X: p.Y, Y: p.Z} }
		} else {
			to2D = func(p math.Vec3) math.Vec2 { return math.Vec2{X: p.Z, Y: p.Y} }
		}
	case ay >= az && ay > 0:
		if normal.Y > 0 {
			to2D = func(p math.Vec3) math.Vec2 { return math.Vec2{X: p.Z, Y: p.X} }
		} else {
			to2D = func(p math.Vec3) math.Vec2 { return math.Vec2{X: p.X, Y: p.Z} }
		}
	case normal.Z < 0:
		to2D = func(p math.Vec3) math.Vec2 { return math.Vec2{X: p.Y, Y: p.X} }
	default:
		to2D = func(p math.Vec3) math.Vec2 { return math.Vec2{X: p.X, Y: p.Y} }
	}

	out := make([]math.Vec2, len(pts))
	for i, p := range pts {
		out[i] = to2D(p)
	}
	return out
}

// weld folds every branch strip into the strip of its point. cols must be
// ordered by point and then by branch. A point without branch strips keeps its
// strip as is.
func weld(strips []*Mesh, cols []Column) []*Mesh {
	out := make([]*Mesh, 0, len(strips))
	for k := 0; k < len(cols); {
		j := k + 1
		for j < len(cols) && cols[j].Point == cols[k].Point {
			j++
		}
		if j == k+1 {
			out = append(out, strips[k])
			k = j
			continue
		}
		welded := &Mesh{}
		for _, s := range strips[k:j] {
			welded.Append(s, math.Identity())
		}
		out = append(out, welded)
		k = j
	}
	return out
}

// endCap closes one end of the platform. The start cap is projected on
// (x, y) and the end cap on (y, x), so the two caps face opposite ways.
func endCap(row []math.Vec3, start bool) *Mesh {
	pts := make([]math.Vec2, len(row))
	for i, p := range row {
		if start {
			pts[i] = math.Vec2{X: p.X, Y: p.Y}
		} else {
			pts[i] = math.Vec2{X: p.Y, Y: p.X}
		}
	}
	return &Mesh{
		Vertices: append([]math.Vec3(nil), row...),
		Indices:  Triangulate(pts),
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
