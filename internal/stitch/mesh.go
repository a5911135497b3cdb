package stitch

import (
	"github.com/Faultbox/platform-builder/pkg/math"
)

// Mesh is an indexed triangle mesh. UVs and Normals, when present, are
// parallel to Vertices.
type Mesh struct {
	Vertices []math.Vec3
	UVs      []math.Vec2
	Normals  []math.Vec3
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Append adds other to m with every vertex transformed by t.
// Missing UVs or normals are padded with zero values so the attribute slices
// stay parallel to Vertices.
func (m *Mesh) Append(other *Mesh, t math.Mat4) {
	if other == nil {
		return
	}
	m.padAttributes()

	base := uint32(len(m.Vertices))
	identity := t.IsIdentity()
	for i, p := range other.Vertices {
		if !identity {
			p = t.TransformPoint(p)
		}
		m.Vertices = append(m.Vertices, p)

		var uv math.Vec2
		if i < len(other.UVs) {
			uv = other.UVs[i]
		}
		m.UVs = append(m.UVs, uv)

		var n math.Vec3
		if i < len(other.Normals) {
			n = other.Normals[i]
			if !identity {
				n = t.TransformDirection(n).Normalize()
			}
		}
		m.Normals = append(m.Normals, n)
	}
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

func (m *Mesh) padAttributes() {
	for len(m.UVs) < len(m.Vertices) {
		m.UVs = append(m.UVs, math.Vec2{})
	}
	for len(m.Normals) < len(m.Vertices) {
		m.Normals = append(m.Normals, math.Vec3{})
	}
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, p := range m.Vertices[1:] {
		updateBounds(&b, p)
	}
	return b
}

// RecalculateNormals sets each vertex normal to the normalized sum of the
// (area-weighted) normals of the triangles that use it.
func (m *Mesh) RecalculateNormals() {
	m.Normals = make([]math.Vec3, len(m.Vertices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		n := m.Vertices[b].Sub(m.Vertices[a]).Cross(m.Vertices[c].Sub(m.Vertices[a]))
		m.Normals[a] = m.Normals[a].Add(n)
		m.Normals[b] = m.Normals[b].Add(n)
		m.Normals[c] = m.Normals[c].Add(n)
	}
	for i := range m.Normals {
		m.Normals[i] = m.Normals[i].Normalize()
	}
}

// SmoothNormals averages normals at shared vertex positions.
// Strips and caps carry their own copies of shared corners; this hides the
// seams between them.
func (m *Mesh) SmoothNormals() {
	const epsilon float32 = 0.001

	posMap := make(map[[3]int32][]int)
	for i, p := range m.Vertices {
		key := [3]int32{
			int32(p.X / epsilon),
			int32(p.Y / epsilon),
			int32(p.Z / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}
		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(m.Normals[idx])
		}
		avg := sum.Normalize()
		for _, idx := range idxs {
			m.Normals[idx] = avg
		}
	}
}

// Combine merges placed sub-meshes into one mesh and derives normals.
// This is the final combine a host performs on the stitcher's output.
func Combine(parts []Placed) *Mesh {
	out := &Mesh{}
	for _, p := range parts {
		out.Append(p.Mesh, p.Transform)
	}
	out.RecalculateNormals()
	out.SmoothNormals()
	return out
}

func updateBounds(b *Bounds, p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}
