package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/platform-builder/internal/platform"
	"github.com/Faultbox/platform-builder/pkg/math"
)

func TestLoadAndBuild(t *testing.T) {
	for _, name := range []string{"square.yaml", "square.toml"} {
		t.Run(name, func(t *testing.T) {
			f, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			assert.Equal(t, "square", f.Name)
			require.Len(t, f.Sections, 3)

			p, err := Build(f)
			require.NoError(t, err)
			assert.Equal(t, []int{0, 1, 2}, p.SectionOrders())
			for _, s := range p.Sections() {
				assert.Equal(t, []int{0, 1, 2, 3}, s.Orders())
			}

			ok, err := p.Rebuild()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, 20, p.Mesh().TriangleCount())
		})
	}
}

func TestLoadDefaultsName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ramp.yml")
	require.NoError(t, os.WriteFile(path, []byte("sections: []\n"), 0644))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ramp", f.Name)
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := Load("layout.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Decode(strings.NewReader(""), Format("xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	assert.ErrorIs(t, Save(filepath.Join(t.TempDir(), "x.obj"), &File{}), ErrUnsupportedFormat)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader("sections: [oops"), FormatYAML)
	assert.Error(t, err)
	_, err = Decode(strings.NewReader("sections = ["), FormatTOML)
	assert.Error(t, err)
}

func TestDecodeEmptyYAML(t *testing.T) {
	f, err := Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, f.Sections)
}

func TestBuildBranches(t *testing.T) {
	src := `
name: forked
sections:
  - position: [0, 0, 0]
    branches: [[0, 0, 0.5]]
    points:
      - position: [0, 0, 0]
        branches: [[-1, 0, 0]]
      - position: [1, 0, 0]
      - position: [1, 1, 0]
      - position: [0, 1, 0]
  - position: [0, 0, 2]
    points:
      - position: [0, 0, 0]
        branches: [[-1, 0, 0]]
      - position: [1, 0, 0]
      - position: [1, 1, 0]
      - position: [0, 1, 0]
`
	f, err := Decode(strings.NewReader(src), FormatYAML)
	require.NoError(t, err)
	p, err := Build(f)
	require.NoError(t, err)

	rows := p.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []math.Vec3{{Z: 0.5}}, rows[0].Branches)
	assert.Equal(t, []math.Vec3{{X: -1, Z: 2}}, rows[1].Verts[0].Branches)
	// The second point was cloned from the first before branches were
	// attached, so it carries none.
	assert.Empty(t, rows[0].Verts[1].Branches)

	ok, err := p.Rebuild()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBuildSyncsShortSection(t *testing.T) {
	src := `
sections:
  - position: [0, 0, 0]
    points:
      - position: [0, 0, 0]
      - position: [1, 0, 0]
      - position: [1, 1, 0]
  - position: [0, 0, 1]
    points:
      - position: [0, 0, 0]
      - position: [1, 0, 0]
      - position: [1, 1, 0]
      - position: [0, 1, 0]
`
	f, err := Decode(strings.NewReader(src), FormatYAML)
	require.NoError(t, err)
	p, err := Build(f)
	require.NoError(t, err)

	for _, s := range p.Sections() {
		assert.Equal(t, 4, s.Len(), s.Name())
	}
}

func TestBuildTransform(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "square.yaml"))
	require.NoError(t, err)
	f.Transform.Position = Vec{5, 0, 0}

	p, err := Build(f)
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 1}, p.Transform().Scale)

	ok, err := p.Rebuild()
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, -5, p.Mesh().Bounds().Min.X, 1e-5)
}

func TestTransformRotation(t *testing.T) {
	assert.Equal(t, math.QuatIdentity(), Transform{}.Rotation())

	r := Transform{Axis: Vec{0, 2, 0}, Angle: 90}.Rotation()
	v := r.Rotate(math.Vec3{X: 1})
	assert.InDelta(t, 0, v.X, 1e-5)
	assert.InDelta(t, -1, v.Z, 1e-5)
}

func TestSaveReload(t *testing.T) {
	f, err := Load(filepath.Join("testdata", "square.yaml"))
	require.NoError(t, err)
	p, err := Build(f, platform.WithThrottle(0))
	require.NoError(t, err)
	_, err = p.AddPointBranch(1, 2, math.Vec3{X: 2, Y: 1, Z: 1})
	require.NoError(t, err)

	for _, ext := range []string{".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "saved"+ext)
			require.NoError(t, Save(path, FromPlatform("saved", p)))

			g, err := Load(path)
			require.NoError(t, err)
			q, err := Build(g)
			require.NoError(t, err)
			assert.Equal(t, p.Rows(), q.Rows())
		})
	}
}
