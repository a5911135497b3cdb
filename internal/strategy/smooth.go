package strategy

import (
	"github.com/Faultbox/platform-builder/internal/stitch"
	"github.com/Faultbox/platform-builder/pkg/math"
)

// Smooth fits a Catmull-Rom curve through each column of consecutive rows and
// inserts Subdivisions interpolated rows between every pair. Pairs whose
// point layout differs are left as they are.
type Smooth struct {
	Subdivisions int

	last []stitch.Row
}

// NewSmooth creates a Smooth strategy. Negative subdivisions are treated as 0.
func NewSmooth(subdivisions int) *Smooth {
	if subdivisions < 0 {
		subdivisions = 0
	}
	return &Smooth{Subdivisions: subdivisions}
}

func (s *Smooth) Title() string { return "Smooth" }

func (s *Smooth) Update(info UpdateInfo) UpdateInfo {
	if s.Subdivisions == 0 || len(info.Rows) < 2 {
		s.last = info.Rows
		return info
	}

	rows := info.Rows
	out := make([]stitch.Row, 0, len(rows)+(len(rows)-1)*s.Subdivisions)
	for i, r := range rows {
		out = append(out, r)
		if i == len(rows)-1 || !sameLayout(r, rows[i+1]) {
			continue
		}
		next := rows[i+1]
		prev := extrapolate(r, next)
		if i > 0 && sameLayout(rows[i-1], r) {
			prev = rows[i-1]
		}
		after := extrapolate(next, r)
		if i+2 < len(rows) && sameLayout(next, rows[i+2]) {
			after = rows[i+2]
		}
		for j := 1; j <= s.Subdivisions; j++ {
			t := float32(j) / float32(s.Subdivisions+1)
			out = append(out, interpolate(prev, r, next, after, t))
		}
	}

	s.last = out
	return UpdateInfo{Rows: out, ShouldBuild: info.ShouldBuild}
}

// Draw traces every column of the last smoothed rows.
func (s *Smooth) Draw(d Drawer) {
	if d == nil {
		return
	}
	for i := 0; i+1 < len(s.last); i++ {
		a, b := s.last[i], s.last[i+1]
		if !sameLayout(a, b) {
			continue
		}
		for k := range a.Verts {
			d.Line(a.Verts[k].Position, b.Verts[k].Position)
		}
	}
}

// sameLayout reports whether two rows have the same points and point
// branches, so their columns correspond.
func sameLayout(a, b stitch.Row) bool {
	if len(a.Verts) != len(b.Verts) || len(a.Verts) == 0 {
		return false
	}
	for k := range a.Verts {
		if len(a.Verts[k].Branches) != len(b.Verts[k].Branches) {
			return false
		}
	}
	return true
}

// extrapolate mirrors from across at, giving an end control point that keeps
// the curve straight at the ends of a run.
func extrapolate(at, from stitch.Row) stitch.Row {
	verts := make([]stitch.Vert, len(at.Verts))
	for k := range verts {
		verts[k].Position = at.Verts[k].Position.Scale(2).Sub(from.Verts[k].Position)
	}
	return stitch.Row{Verts: verts}
}

// interpolate builds the row at t between r1 and r2. Point branches keep
// their offset from the point, linearly blended between the two rows.
// Interpolated rows carry no section branches.
func interpolate(r0, r1, r2, r3 stitch.Row, t float32) stitch.Row {
	verts := make([]stitch.Vert, len(r1.Verts))
	for k := range verts {
		a, b := r1.Verts[k], r2.Verts[k]
		pos := math.CatmullRom(r0.Verts[k].Position, a.Position, b.Position, r3.Verts[k].Position, t)
		var branches []math.Vec3
		if len(a.Branches) > 0 {
			branches = make([]math.Vec3, len(a.Branches))
			for n := range a.Branches {
				offA := a.Branches[n].Sub(a.Position)
				offB := b.Branches[n].Sub(b.Position)
				branches[n] = pos.Add(offA.Lerp(offB, t))
			}
		}
		verts[k] = stitch.Vert{Position: pos, Branches: branches}
	}
	return stitch.Row{Verts: verts}
}
