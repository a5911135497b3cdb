package strategy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/platform-builder/internal/stitch"
	"github.com/Faultbox/platform-builder/pkg/math"
)

func row(z float32, pts ...math.Vec3) stitch.Row {
	r := stitch.Row{}
	for _, p := range pts {
		p.Z += z
		r.Verts = append(r.Verts, stitch.Vert{Position: p})
	}
	return r
}

func line(z float32) stitch.Row {
	return row(z, math.Vec3{X: 0}, math.Vec3{X: 1})
}

type recorder struct{ lines int }

func (r *recorder) Line(from, to math.Vec3) { r.lines++ }

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		title string
		isNil bool
	}{
		{"", "", true},
		{"none", "", true},
		{"passthrough", "Passthrough", false},
		{"Smooth", "Smooth", false},
		{" snap ", "Snap to Grid", false},
		{"lock", "Lock", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.name, Config{Subdivisions: 2, GridSize: 1})
			require.NoError(t, err)
			if tt.isNil {
				assert.Nil(t, s)
				return
			}
			require.NotNil(t, s)
			assert.Equal(t, tt.title, s.Title())
		})
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := New("bezier", Config{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
	assert.Contains(t, err.Error(), "passthrough")
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"lock", "none", "passthrough", "smooth", "snap"}, Names())
}

func TestPassthroughIsIdentity(t *testing.T) {
	in := UpdateInfo{Rows: []stitch.Row{line(0), line(1)}, ShouldBuild: true}
	assert.Equal(t, in, Passthrough{}.Update(in))
}

func TestSmoothInsertsRows(t *testing.T) {
	s := NewSmooth(3)
	out := s.Update(UpdateInfo{Rows: []stitch.Row{line(0), line(4), line(8)}, ShouldBuild: true})
	require.True(t, out.ShouldBuild)
	require.Len(t, out.Rows, 3+2*3)

	// Original rows are kept in place and the curve passes through them.
	assert.Equal(t, line(0), out.Rows[0])
	assert.Equal(t, line(4), out.Rows[4])
	assert.Equal(t, line(8), out.Rows[8])

	// Evenly spaced straight input stays evenly spaced.
	for i, r := range out.Rows {
		assert.InDelta(t, float32(i), r.Verts[1].Position.Z, 1e-4, "row %d", i)
		assert.InDelta(t, 1, r.Verts[1].Position.X, 1e-4, "row %d", i)
	}

	rec := &recorder{}
	s.Draw(rec)
	assert.Equal(t, 8*2, rec.lines)
}

func TestSmoothSkipsMismatchedPairs(t *testing.T) {
	wide := row(1, math.Vec3{}, math.Vec3{X: 1}, math.Vec3{X: 2})
	out := NewSmooth(2).Update(UpdateInfo{Rows: []stitch.Row{line(0), wide, line(2)}, ShouldBuild: true})
	assert.Len(t, out.Rows, 3)
}

func TestSmoothKeepsBranchOffsets(t *testing.T) {
	a := line(0)
	a.Verts[0].Branches = []math.Vec3{{Y: 1}}
	b := line(2)
	b.Verts[0].Branches = []math.Vec3{{Y: 3, Z: 2}}

	out := NewSmooth(1).Update(UpdateInfo{Rows: []stitch.Row{a, b}, ShouldBuild: true})
	require.Len(t, out.Rows, 3)
	mid := out.Rows[1].Verts[0]
	require.Len(t, mid.Branches, 1)
	assert.InDelta(t, 2, mid.Branches[0].Sub(mid.Position).Y, 1e-5)
}

func TestSmoothZeroSubdivisions(t *testing.T) {
	in := UpdateInfo{Rows: []stitch.Row{line(0), line(1)}, ShouldBuild: true}
	assert.Equal(t, in, NewSmooth(-1).Update(in))
}

func TestSnap(t *testing.T) {
	in := row(0, math.Vec3{X: 0.4, Y: 1.6}, math.Vec3{X: 2.51})
	in.Branches = []math.Vec3{{Z: 0.7}}
	out := NewSnap(1).Update(UpdateInfo{Rows: []stitch.Row{in}, ShouldBuild: true})

	require.Len(t, out.Rows, 1)
	assert.Equal(t, math.Vec3{X: 0, Y: 2}, out.Rows[0].Verts[0].Position)
	assert.Equal(t, math.Vec3{X: 3}, out.Rows[0].Verts[1].Position)
	assert.Equal(t, math.Vec3{Z: 1}, out.Rows[0].Branches[0])

	// Input rows are not modified.
	assert.Equal(t, float32(0.4), in.Verts[0].Position.X)
}

func TestLockVetoes(t *testing.T) {
	l := NewLock(true)
	out := l.Update(UpdateInfo{Rows: []stitch.Row{line(0), line(1)}, ShouldBuild: true})
	assert.False(t, out.ShouldBuild)
	assert.Len(t, out.Rows, 2)

	l.SetLocked(false)
	assert.False(t, l.Locked())
	assert.True(t, l.Update(UpdateInfo{ShouldBuild: true}).ShouldBuild)
}
