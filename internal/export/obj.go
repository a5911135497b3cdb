// Package export writes stitched platform meshes to Wavefront OBJ files.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/Faultbox/platform-builder/internal/logger"
	"github.com/Faultbox/platform-builder/internal/stitch"
)

// Write encodes mesh as one OBJ group named name.
//
// X is mirrored to move from the builder's left-handed frame to the
// right-handed frame OBJ tools expect, so the first two indices of every
// face are swapped to keep the winding.
func Write(w io.Writer, name string, mesh *stitch.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "g %s\n", name)
	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", num(-v.X), num(v.Y), num(v.Z))
	}
	bw.WriteString("\n")
	for _, n := range mesh.Normals {
		fmt.Fprintf(bw, "vn %s %s %s\n", num(-n.X), num(n.Y), num(n.Z))
	}
	bw.WriteString("\n")
	for _, uv := range mesh.UVs {
		fmt.Fprintf(bw, "vt %s %s\n", num(uv.X), num(uv.Y))
	}
	bw.WriteString("\n")

	hasUV := len(mesh.UVs) == len(mesh.Vertices)
	hasNormal := len(mesh.Normals) == len(mesh.Vertices)
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i]+1, mesh.Indices[i+1]+1, mesh.Indices[i+2]+1
		fmt.Fprintf(bw, "f %s %s %s\n", ref(b, hasUV, hasNormal), ref(a, hasUV, hasNormal), ref(c, hasUV, hasNormal))
	}
	return bw.Flush()
}

func num(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func ref(i uint32, uv, normal bool) string {
	s := strconv.FormatUint(uint64(i), 10)
	switch {
	case uv && normal:
		return s + "/" + s + "/" + s
	case normal:
		return s + "//" + s
	case uv:
		return s + "/" + s
	}
	return s
}

// OBJ is a platform consumer that writes every rebuild to Dir/Name.obj.
type OBJ struct {
	Dir  string
	Name string

	writes int
}

// NewOBJ creates an OBJ consumer.
func NewOBJ(dir, name string) *OBJ {
	return &OBJ{Dir: dir, Name: name}
}

// Path returns the output file path.
func (o *OBJ) Path() string {
	return filepath.Join(o.Dir, o.Name+".obj")
}

// Writes returns how many times the file was written.
func (o *OBJ) Writes() int {
	return o.writes
}

// Apply combines parts and writes the result, replacing the previous file.
func (o *OBJ) Apply(parts []stitch.Placed) error {
	mesh := stitch.Combine(parts)

	if err := os.MkdirAll(o.Dir, 0755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	// Write aside and rename so a watcher never reads a half-written file.
	tmp, err := os.CreateTemp(o.Dir, o.Name+"-*.obj")
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := Write(tmp, o.Name, mesh); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", o.Path(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), o.Path()); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	o.writes++
	logger.Info("mesh exported",
		zap.String("path", o.Path()),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()))
	return nil
}
