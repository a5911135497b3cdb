package stitch

import "github.com/Faultbox/platform-builder/pkg/math"

// Column identifies one column of an expanded row.
type Column struct {
	// Point is the index of the point that owns this column.
	Point int
	// Branch is 0 for the point itself and n for its n-th point branch.
	Branch int
}

// IsBranch reports whether the column was contributed by a point branch.
func (c Column) IsBranch() bool {
	return c.Branch > 0
}

// Matrix is the expanded vertex grid.
type Matrix struct {
	Rows [][]math.Vec3
	// Layouts describes the columns of each row. Rows may differ in their
	// point branches, so every row carries its own layout.
	Layouts [][]Column
}

// Width returns the number of points in the reference row, the first
// non-empty row.
func (m Matrix) Width() int {
	first, _ := m.firstAndLast()
	if first < 0 {
		return 0
	}
	return m.points(first)
}

// points returns the number of point columns in row i.
func (m Matrix) points(i int) int {
	n := 0
	for _, c := range m.Layouts[i] {
		if !c.IsBranch() {
			n++
		}
	}
	return n
}

// BuildMatrix expands rows into the vertex matrix. Point branches become
// extra columns after their point; section branches become extra rows after
// their section.
func BuildMatrix(rows []Row) Matrix {
	var m Matrix
	for _, r := range rows {
		expanded, layout := expandRow(r)
		m.Rows = append(m.Rows, expanded)
		m.Layouts = append(m.Layouts, layout)

		for _, offset := range r.Branches {
			shifted := make([]math.Vec3, len(expanded))
			for k, p := range expanded {
				shifted[k] = p.Add(offset)
			}
			m.Rows = append(m.Rows, shifted)
			m.Layouts = append(m.Layouts, layout)
		}
	}
	return m
}

func expandRow(r Row) ([]math.Vec3, []Column) {
	cols := make([]math.Vec3, 0, r.Width())
	layout := make([]Column, 0, r.Width())
	for p, v := range r.Verts {
		cols = append(cols, v.Position)
		layout = append(layout, Column{Point: p})
		for b, pos := range v.Branches {
			cols = append(cols, pos)
			layout = append(layout, Column{Point: p, Branch: b + 1})
		}
	}
	return cols, layout
}

// shared returns the columns rows a and b have in common, with their indexes
// in each row. Both rows must hold the same number of points. Every point
// column is shared; a branch column is shared only when both rows carry it.
func (m Matrix) shared(a, b int) (cols []Column, ia, ib []int) {
	la, lb := m.Layouts[a], m.Layouts[b]
	x, y := 0, 0
	for x < len(la) && y < len(lb) {
		na, nb := branchesAfter(la, x), branchesAfter(lb, y)
		for s := 0; s <= min(na, nb); s++ {
			cols = append(cols, Column{Point: la[x].Point, Branch: s})
			ia = append(ia, x+s)
			ib = append(ib, y+s)
		}
		x += na + 1
		y += nb + 1
	}
	return cols, ia, ib
}

// branchesAfter counts the branch columns that follow the point column at i.
func branchesAfter(layout []Column, i int) int {
	n := 0
	for j := i + 1; j < len(layout) && layout[j].IsBranch(); j++ {
		n++
	}
	return n
}

func pick(row []math.Vec3, idx []int) []math.Vec3 {
	out := make([]math.Vec3, len(idx))
	for k, i := range idx {
		out[k] = row[i]
	}
	return out
}

// firstAndLast returns the indexes of the first and last non-empty rows, or
// -1, -1 when every row is empty.
func (m Matrix) firstAndLast() (int, int) {
	first, last := -1, -1
	for i, r := range m.Rows {
		if len(r) == 0 {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	return first, last
}
