package stitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/platform-builder/pkg/math"
)

func TestMeshAppendOffsetsIndices(t *testing.T) {
	tri := &Mesh{
		Vertices: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		Indices:  []uint32{0, 1, 2},
	}

	var m Mesh
	m.Append(tri, math.Identity())
	m.Append(tri, math.Translate(math.Vec3{Z: 2}))
	m.Append(nil, math.Identity())

	require.Equal(t, 6, m.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, m.Indices)
	assert.Equal(t, math.Vec3{X: 1, Y: 0, Z: 2}, m.Vertices[4])
	assert.Len(t, m.UVs, 6, "UVs are padded to stay parallel")
	assert.Len(t, m.Normals, 6)
}

func TestCombineNormals(t *testing.T) {
	quad := &Mesh{
		Vertices: []math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
	}
	m := Combine([]Placed{{Mesh: quad, Transform: math.Identity()}})
	for i, n := range m.Normals {
		assert.InDelta(t, 1.0, n.Z, 1e-6, "normal %d", i)
	}
}

func TestBounds(t *testing.T) {
	m := &Mesh{Vertices: []math.Vec3{{X: 1, Y: -2, Z: 3}, {X: -1, Y: 4, Z: 0}, {X: 0, Y: 0, Z: 5}}}
	b := m.Bounds()
	assert.Equal(t, math.Vec3{X: -1, Y: -2, Z: 0}, b.Min)
	assert.Equal(t, math.Vec3{X: 1, Y: 4, Z: 5}, b.Max)
	assert.Equal(t, math.Vec3{X: 2, Y: 6, Z: 5}, b.Size())

	assert.Equal(t, Bounds{}, (&Mesh{}).Bounds())
}

func TestCloneRowsIsDeep(t *testing.T) {
	rows := squareRows(2)
	rows[0].Verts[0].Branches = []math.Vec3{{X: 1, Y: 1, Z: 1}}
	rows[0].Branches = []math.Vec3{{X: 0, Y: 0, Z: 1}}

	c := CloneRows(rows)
	c[0].Verts[0].Position.X = 99
	c[0].Verts[0].Branches[0].X = 99
	c[0].Branches[0].Z = 99

	assert.Equal(t, float32(0), rows[0].Verts[0].Position.X)
	assert.Equal(t, float32(1), rows[0].Verts[0].Branches[0].X)
	assert.Equal(t, float32(1), rows[0].Branches[0].Z)
}

func TestBoundsEdges(t *testing.T) {
	b := Bounds{Min: math.Vec3{}, Max: math.Vec3{X: 1, Y: 2, Z: 3}}.Pad(0.5)
	assert.Equal(t, math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, b.Min)
	assert.Equal(t, math.Vec3{X: 2, Y: 3, Z: 4}, b.Size())

	total := float32(0)
	for _, e := range b.Edges() {
		total += e[0].Distance(e[1])
	}
	assert.InDelta(t, 4*(2+3+4), total, 1e-4)
}
