package layout

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/Faultbox/platform-builder/pkg/math"
)

// Point is a controllable vertex of a Section. Its position is stored relative
// to the Section anchor.
type Point struct {
	Local    math.Vec3
	Branches []Branch

	name string
}

// NewPoint creates a point at local, relative to its section anchor.
func NewPoint(local math.Vec3) *Point {
	return &Point{Local: local}
}

// Name returns the label derived from the point's orderId, e.g. "Point_3".
func (p *Point) Name() string {
	return p.name
}

func (p *Point) relabel(order int) {
	p.name = fmt.Sprintf("Point_%d", order)
}

// Clone returns a deep copy of the point without its label.
func (p *Point) Clone() *Point {
	out := &Point{}
	if err := copier.CopyWithOption(out, p, copier.Option{DeepCopy: true}); err != nil {
		// Point holds only plain values; copier cannot fail on it.
		panic(fmt.Sprintf("layout: clone point: %v", err))
	}
	return out
}

// BranchPositions returns the world positions of the point's branches for a
// point at world.
func (p *Point) BranchPositions(world math.Vec3) []math.Vec3 {
	out := make([]math.Vec3, len(p.Branches))
	for i, b := range p.Branches {
		out[i] = b.Resolve(world)
	}
	return out
}

// AddBranch attaches a branch at world to a point located at origin.
func (p *Point) AddBranch(origin, world math.Vec3) int {
	return (*branches)(&p.Branches).add(origin, world)
}

// MoveBranch repositions branch i. Out-of-range indexes are ignored.
func (p *Point) MoveBranch(i int, origin, world math.Vec3) bool {
	return branches(p.Branches).move(i, origin, world)
}

// RemoveBranch detaches branch i.
func (p *Point) RemoveBranch(i int) bool {
	return (*branches)(&p.Branches).remove(i)
}
