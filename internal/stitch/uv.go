package stitch

import "github.com/Faultbox/platform-builder/pkg/math"

// uvTracker accumulates UVs across row pairs. U runs along the section
// sequence and V along each row. U is kept per column, so the bottom edge of
// one row pair and the top edge of the next carry identical UVs for every
// column both pairs stitch. Inside a pair quad k+1 reads the same entries quad
// k used as its trailing edge.
//
// Edges have one entry per stitched column plus the seam, where the ring
// closes back onto the first column.
type uvTracker struct {
	widthUnit  float32
	lengthUnit map[Column]float32
	u          map[Column]float32
}

func newUVTracker(ref []math.Vec3) *uvTracker {
	t := &uvTracker{
		widthUnit:  1,
		lengthUnit: make(map[Column]float32),
		u:          make(map[Column]float32),
	}
	if len(ref) > 1 {
		t.widthUnit = unit(ref[0].Distance(ref[1]))
	}
	return t
}

// reset restarts U after a row pair that could not be stitched.
func (t *uvTracker) reset() {
	clear(t.u)
}

// advance returns the top and bottom UV edges for the row pair (cur, next),
// stitched over cols.
func (t *uvTracker) advance(cols []Column, cur, next []math.Vec3) (top, bottom []math.Vec2) {
	topU := make([]float32, len(cols))
	bottomU := make([]float32, len(cols))
	for k, col := range cols {
		d := cur[k].Distance(next[k])
		lu, ok := t.lengthUnit[col]
		if !ok {
			lu = unit(d)
			t.lengthUnit[col] = lu
		}
		topU[k] = t.u[col]
		bottomU[k] = topU[k] + d/lu
	}
	for k, col := range cols {
		t.u[col] = bottomU[k]
	}
	return t.edge(cur, topU), t.edge(next, bottomU)
}

// edge pairs the U values of a row with V accumulated along it.
func (t *uvTracker) edge(row []math.Vec3, u []float32) []math.Vec2 {
	n := len(row)
	e := make([]math.Vec2, n+1)
	for k := 0; k < n; k++ {
		e[k].X = u[k]
		if k > 0 {
			e[k].Y = e[k-1].Y + row[k-1].Distance(row[k])/t.widthUnit
		}
	}
	last := n - 1
	e[n].X = u[0]
	e[n].Y = e[last].Y + row[last].Distance(row[0])/t.widthUnit
	return e
}

func unit(d float32) float32 {
	if d == 0 {
		return 1
	}
	return d
}
