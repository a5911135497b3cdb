package scene

import (
	"fmt"
	stdmath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/platform-builder/internal/layout"
	"github.com/Faultbox/platform-builder/internal/logger"
	"github.com/Faultbox/platform-builder/internal/platform"
	"github.com/Faultbox/platform-builder/pkg/math"
)

// Build creates a platform from f. Sections and points are added in file
// order, then branches are attached, so the ordering rules run exactly as
// for interactive edits.
func Build(f *File, opts ...platform.Option) (*platform.Platform, error) {
	t := platform.Transform{
		Position: f.Transform.Position.Vec3(),
		Rotation: f.Transform.Rotation(),
		Scale:    f.Transform.Scale.Vec3(),
	}
	if t.Scale == (math.Vec3{}) {
		t.Scale = math.Vec3{X: 1, Y: 1, Z: 1}
	}
	p := platform.New(append([]platform.Option{platform.WithTransform(t)}, opts...)...)

	for i, sf := range f.Sections {
		s := p.AddSection(i-1, sf.Position.Vec3())
		order := i
		for j, pf := range sf.Points {
			if _, err := p.AddPoint(order, j-1, pf.Position.Vec3()); err != nil {
				return nil, fmt.Errorf("section %d point %d: %w", i, j, err)
			}
		}
		if s.Len() != len(sf.Points) {
			logger.Warn("section point count changed by sync",
				zap.String("layout", f.Name),
				zap.Int("section", i),
				zap.Int("declared", len(sf.Points)),
				zap.Int("actual", s.Len()))
		}
	}

	for i, sf := range f.Sections {
		s, _ := p.Section(i)
		for j, pf := range sf.Points {
			pt, ok := s.Point(j)
			if !ok {
				continue
			}
			world := s.World(pt)
			for _, off := range pf.Branches {
				if _, err := p.AddPointBranch(i, j, world.Add(off.Vec3())); err != nil {
					return nil, err
				}
			}
		}
		for _, off := range sf.Branches {
			if _, err := p.AddSectionBranch(i, s.Position.Add(off.Vec3())); err != nil {
				return nil, err
			}
		}
	}

	logger.Info("layout loaded",
		zap.String("layout", f.Name),
		zap.Int("sections", len(f.Sections)))
	return p, nil
}

// FromPlatform captures the current layout of p. The strategy is not
// recorded; callers set File.Strategy when they know its name.
func FromPlatform(name string, p *platform.Platform) *File {
	t := p.Transform()
	f := &File{
		Name: name,
		Transform: Transform{
			Position: t.Position.Array(),
			Scale:    t.Scale.Array(),
		},
	}
	if axis, angle := t.Rotation.AxisAngle(); angle != 0 {
		f.Transform.Axis = axis.Array()
		f.Transform.Angle = angle * 180 / stdmath.Pi
	}
	for _, s := range p.Sections() {
		f.Sections = append(f.Sections, fromSection(s))
	}
	return f
}

func fromSection(s *layout.Section) Section {
	out := Section{Position: s.Position.Array()}
	for _, pt := range s.Points() {
		pf := Point{Position: pt.Local.Array()}
		for _, b := range pt.Branches {
			pf.Branches = append(pf.Branches, b.Offset.Array())
		}
		out.Points = append(out.Points, pf)
	}
	for _, b := range s.Branches {
		out.Branches = append(out.Branches, b.Offset.Array())
	}
	return out
}
