// Package scene loads platform layout files and replays them into a
// platform through the same edit calls an editor would make.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	stdmath "math"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/platform-builder/pkg/math"
)

// ErrUnsupportedFormat is returned for a layout file with an unknown
// extension.
var ErrUnsupportedFormat = errors.New("unsupported layout format")

// Format identifies a layout encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Vec is a position written as [x, y, z].
type Vec [3]float32

func (v Vec) Vec3() math.Vec3 { return math.V3(v) }

// File is a platform layout.
type File struct {
	Name      string    `yaml:"name" toml:"name"`
	Strategy  string    `yaml:"strategy,omitempty" toml:"strategy,omitempty"`
	Transform Transform `yaml:"transform" toml:"transform"`
	Sections  []Section `yaml:"sections" toml:"sections"`
}

// Transform places the platform. Rotation is an axis and an angle in
// degrees. A zero scale component means 1.
type Transform struct {
	Position Vec     `yaml:"position" toml:"position"`
	Axis     Vec     `yaml:"axis,omitempty" toml:"axis,omitempty"`
	Angle    float32 `yaml:"angle,omitempty" toml:"angle,omitempty"`
	Scale    Vec     `yaml:"scale,omitempty" toml:"scale,omitempty"`
}

// Section is one cross-section. Points are listed in order; Branches are
// offsets from the section anchor.
type Section struct {
	Position Vec     `yaml:"position" toml:"position"`
	Points   []Point `yaml:"points" toml:"points"`
	Branches []Vec   `yaml:"branches,omitempty" toml:"branches,omitempty"`
}

// Point is a point relative to its section anchor. Branches are offsets from
// the point.
type Point struct {
	Position Vec   `yaml:"position" toml:"position"`
	Branches []Vec `yaml:"branches,omitempty" toml:"branches,omitempty"`
}

// FormatOf returns the format for path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads a layout file. The format follows the extension. An empty name
// defaults to the file's base name.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}
	f, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f, nil
}

// Decode reads a layout in the given format.
func Decode(r io.Reader, format Format) (*File, error) {
	f := &File{}
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(f); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case FormatTOML:
		if err := toml.NewDecoder(r).Decode(f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return f, nil
}

// Encode writes f in the given format.
func Encode(w io.Writer, f *File, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(f)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Save writes f to path in the format of its extension.
func Save(path string, f *File) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f, format); err != nil {
		return fmt.Errorf("encoding layout: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// Rotation returns the transform rotation as a quaternion.
func (t Transform) Rotation() math.Quat {
	axis := t.Axis.Vec3()
	if t.Angle == 0 || axis.Length() == 0 {
		return math.QuatIdentity()
	}
	rad := t.Angle * stdmath.Pi / 180
	return math.QuatFromAxisAngle(axis.Normalize(), rad)
}
