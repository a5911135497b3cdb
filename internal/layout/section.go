package layout

import (
	"fmt"

	"github.com/Faultbox/platform-builder/internal/ordering"
	"github.com/Faultbox/platform-builder/internal/stitch"
	"github.com/Faultbox/platform-builder/pkg/math"
)

// Section is one cross-section of the platform: an anchor position, its ordered
// points, and optional section branches.
type Section struct {
	Position math.Vec3
	Branches []Branch

	points ordering.Index[*Point]
	name   string
}

// NewSection creates an empty section anchored at position.
func NewSection(position math.Vec3) *Section {
	return &Section{Position: position}
}

// Name returns the label derived from the section's orderId, e.g. "Section_2".
func (s *Section) Name() string {
	return s.name
}

// Relabel names the section after order. The owning platform calls it
// whenever the section's orderId changes.
func (s *Section) Relabel(order int) {
	s.name = fmt.Sprintf("Section_%d", order)
}

// Len returns the number of points.
func (s *Section) Len() int {
	return s.points.Len()
}

// Points returns the points in ascending orderId.
func (s *Section) Points() []*Point {
	return s.points.Values()
}

// Orders returns the point orderIds in ascending order.
func (s *Section) Orders() []int {
	return s.points.Orders()
}

// MaxOrder returns the highest point orderId, or -1 for an empty section.
func (s *Section) MaxOrder() int {
	return s.points.Max()
}

// Point returns the point holding order.
func (s *Section) Point(order int) (*Point, bool) {
	return s.points.At(order)
}

// OrderOf returns the orderId of p within the section.
func (s *Section) OrderOf(p *Point) (int, bool) {
	return s.points.OrderOf(p)
}

// PlacePoint registers a new point that arrived carrying orderId from and
// returns its assigned orderId. Every point is relabelled afterwards since
// an interior insert shifts the suffix.
func (s *Section) PlacePoint(from int, p *Point) int {
	order := s.points.Place(from, p)
	s.relabel()
	return order
}

// AppendPoint places a new point after the last one.
func (s *Section) AppendPoint(p *Point) int {
	return s.PlacePoint(s.points.Max(), p)
}

// RemovePoint deletes the point at order, leaving a gap in the sequence.
func (s *Section) RemovePoint(order int) (*Point, bool) {
	return s.points.Remove(order)
}

// Compact renumbers the points contiguously from 0.
func (s *Section) Compact() bool {
	changed := s.points.Compact()
	if changed {
		s.relabel()
	}
	return changed
}

func (s *Section) relabel() {
	orders := s.points.Orders()
	for i, p := range s.points.Values() {
		p.relabel(orders[i])
	}
}

// World returns the world position of p.
func (s *Section) World(p *Point) math.Vec3 {
	return s.Position.Add(p.Local)
}

// MovePoint sets the world position of the point at order. Its branches
// follow rigidly.
func (s *Section) MovePoint(order int, world math.Vec3) bool {
	p, ok := s.points.At(order)
	if !ok {
		return false
	}
	p.Local = world.Sub(s.Position)
	return true
}

// AddPointBranch attaches a branch at world to the point at order and returns
// the branch index.
func (s *Section) AddPointBranch(order int, world math.Vec3) (int, bool) {
	p, ok := s.points.At(order)
	if !ok {
		return 0, false
	}
	return p.AddBranch(s.World(p), world), true
}

// MovePointBranch repositions branch i of the point at order.
func (s *Section) MovePointBranch(order, i int, world math.Vec3) bool {
	p, ok := s.points.At(order)
	if !ok {
		return false
	}
	return p.MoveBranch(i, s.World(p), world)
}

// RemovePointBranch detaches branch i of the point at order.
func (s *Section) RemovePointBranch(order, i int) bool {
	p, ok := s.points.At(order)
	if !ok {
		return false
	}
	return p.RemoveBranch(i)
}

// AddBranch attaches a section branch anchored at world.
func (s *Section) AddBranch(world math.Vec3) int {
	return (*branches)(&s.Branches).add(s.Position, world)
}

// MoveBranch moves section branch i so it is anchored at world.
func (s *Section) MoveBranch(i int, world math.Vec3) bool {
	return branches(s.Branches).move(i, s.Position, world)
}

// RemoveBranch detaches section branch i.
func (s *Section) RemoveBranch(i int) bool {
	return (*branches)(&s.Branches).remove(i)
}

// BranchAnchors returns the world anchors of the section branches.
func (s *Section) BranchAnchors() []math.Vec3 {
	out := make([]math.Vec3, len(s.Branches))
	for i, b := range s.Branches {
		out[i] = b.Resolve(s.Position)
	}
	return out
}

// Row resolves the section into the stitcher's input row.
func (s *Section) Row() stitch.Row {
	pts := s.points.Values()
	verts := make([]stitch.Vert, len(pts))
	for i, p := range pts {
		w := s.World(p)
		verts[i] = stitch.Vert{Position: w, Branches: p.BranchPositions(w)}
	}
	return stitch.Row{Verts: verts, Branches: branches(s.Branches).offsets()}
}

// BranchRows returns the rows contributed by the section branches, each one
// the section's points translated by the branch offset.
func (s *Section) BranchRows() [][]math.Vec3 {
	ring := s.Ring()
	out := make([][]math.Vec3, len(s.Branches))
	for i, b := range s.Branches {
		row := make([]math.Vec3, len(ring))
		for k, p := range ring {
			row[k] = b.Resolve(p)
		}
		out[i] = row
	}
	return out
}

// Ring returns the world positions of the section's points and point
// branches, in stitching order.
func (s *Section) Ring() []math.Vec3 {
	var out []math.Vec3
	for _, v := range s.Row().Verts {
		out = append(out, v.Position)
		out = append(out, v.Branches...)
	}
	return out
}

// Clone deep-copies the section and its points. The copy keeps the point
// orderIds of the original, gaps included.
func (s *Section) Clone() *Section {
	out := &Section{
		Position: s.Position,
		Branches: append([]Branch(nil), s.Branches...),
	}
	out.points = *ordering.Map(&s.points, (*Point).Clone)
	out.relabel()
	return out
}
