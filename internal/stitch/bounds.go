package stitch

import "github.com/Faultbox/platform-builder/pkg/math"

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns Max - Min.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Pad grows the box by p on every side.
func (b Bounds) Pad(p float32) Bounds {
	d := math.Vec3{X: p, Y: p, Z: p}
	return Bounds{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

// Edges returns the 12 edges of the box as endpoint pairs: the bottom face,
// the top face, then the vertical edges.
func (b Bounds) Edges() [12][2]math.Vec3 {
	lo, hi := b.Min, b.Max
	c := [8]math.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
	return [12][2]math.Vec3{
		{c[0], c[1]}, {c[1], c[2]}, {c[2], c[3]}, {c[3], c[0]},
		{c[4], c[5]}, {c[5], c[6]}, {c[6], c[7]}, {c[7], c[4]},
		{c[0], c[4]}, {c[1], c[5]}, {c[2], c[6]}, {c[3], c[7]},
	}
}
