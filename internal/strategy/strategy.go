// Package strategy holds the pre-build hook of the platform builder. A
// Strategy sees the resolved section rows before they are stitched and may
// rewrite them or veto the build.
package strategy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Faultbox/platform-builder/internal/stitch"
	"github.com/Faultbox/platform-builder/pkg/math"
)

// ErrUnknownStrategy is returned by New for a name with no registered variant.
var ErrUnknownStrategy = errors.New("unknown strategy")

// UpdateInfo carries the rows through a strategy. ShouldBuild false vetoes
// the build and leaves the previous output in place.
type UpdateInfo struct {
	Rows        []stitch.Row
	ShouldBuild bool
}

// Drawer receives debug line drawing. Hosts without a debug view pass nothing.
type Drawer interface {
	Line(from, to math.Vec3)
}

// Strategy transforms rows before stitching.
type Strategy interface {
	Title() string
	Update(info UpdateInfo) UpdateInfo
	Draw(d Drawer)
}

// Config holds the tunables shared by the built-in variants.
type Config struct {
	Subdivisions int
	GridSize     float32
	Locked       bool
}

type factory func(cfg Config) Strategy

var registry = map[string]factory{
	"none":        func(Config) Strategy { return nil },
	"passthrough": func(Config) Strategy { return Passthrough{} },
	"smooth":      func(cfg Config) Strategy { return NewSmooth(cfg.Subdivisions) },
	"snap":        func(cfg Config) Strategy { return NewSnap(cfg.GridSize) },
	"lock":        func(cfg Config) Strategy { return NewLock(cfg.Locked) },
}

// New returns the variant registered under name. "none" and the empty name
// return a nil Strategy, which builders treat as the identity.
func New(name string, cfg Config) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, nil
	}
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownStrategy, name, strings.Join(Names(), ", "))
	}
	return f(cfg), nil
}

// Names lists the registered variant names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Passthrough hands the rows on unchanged.
type Passthrough struct{}

func (Passthrough) Title() string                     { return "Passthrough" }
func (Passthrough) Update(info UpdateInfo) UpdateInfo { return info }
func (Passthrough) Draw(Drawer)                       {}
