package strategy

import (
	"github.com/Faultbox/platform-builder/internal/stitch"
	"github.com/Faultbox/platform-builder/pkg/math"
)

// Snap rounds every position to a grid.
type Snap struct {
	GridSize float32
}

// NewSnap creates a Snap strategy. A non-positive grid leaves positions as
// they are.
func NewSnap(grid float32) *Snap {
	return &Snap{GridSize: grid}
}

func (s *Snap) Title() string { return "Snap to Grid" }

func (s *Snap) Update(info UpdateInfo) UpdateInfo {
	if s.GridSize <= 0 {
		return info
	}
	rows := stitch.CloneRows(info.Rows)
	for i := range rows {
		for k := range rows[i].Verts {
			v := &rows[i].Verts[k]
			v.Position = v.Position.Snap(s.GridSize)
			for n := range v.Branches {
				v.Branches[n] = v.Branches[n].Snap(s.GridSize)
			}
		}
		for n := range rows[i].Branches {
			rows[i].Branches[n] = rows[i].Branches[n].Snap(s.GridSize)
		}
	}
	return UpdateInfo{Rows: rows, ShouldBuild: info.ShouldBuild}
}

// Draw marks the grid cell of the origin.
func (s *Snap) Draw(d Drawer) {
	if d == nil || s.GridSize <= 0 {
		return
	}
	g := s.GridSize
	d.Line(math.Vec3{}, math.Vec3{X: g})
	d.Line(math.Vec3{}, math.Vec3{Y: g})
	d.Line(math.Vec3{}, math.Vec3{Z: g})
}
