// Package layout holds the authoring model of a platform: Sections made of
// ordered Points, and the Branches that hang extra geometry off either.
//
// A Branch stores only its offset from its owner. A Point branch resolves to
// one extra column right after the Point; a Section branch resolves to one
// extra row right after the Section, equal to the Section's row translated by
// the offset. In other words a Section branch is a Point branch applied to
// every column of the row, so both tiers share this one type.
package layout

import "github.com/Faultbox/platform-builder/pkg/math"

// Branch is auxiliary geometry rigidly attached to an owner.
type Branch struct {
	Offset math.Vec3
}

// BranchAt returns the branch whose world position is world for an owner at
// origin.
func BranchAt(origin, world math.Vec3) Branch {
	return Branch{Offset: world.Sub(origin)}
}

// Resolve returns the branch world position for an owner at origin.
func (b Branch) Resolve(origin math.Vec3) math.Vec3 {
	return origin.Add(b.Offset)
}

// branches is the shared list behaviour of Points and Sections.
type branches []Branch

func (bs *branches) add(origin, world math.Vec3) int {
	*bs = append(*bs, BranchAt(origin, world))
	return len(*bs) - 1
}

// move repositions branch i. Out-of-range indexes are ignored.
func (bs branches) move(i int, origin, world math.Vec3) bool {
	if i < 0 || i >= len(bs) {
		return false
	}
	bs[i] = BranchAt(origin, world)
	return true
}

func (bs *branches) remove(i int) bool {
	if i < 0 || i >= len(*bs) {
		return false
	}
	*bs = append((*bs)[:i:i], (*bs)[i+1:]...)
	return true
}

func (bs branches) offsets() []math.Vec3 {
	out := make([]math.Vec3, len(bs))
	for i, b := range bs {
		out[i] = b.Offset
	}
	return out
}
