// Package platform owns the ordered sections of one platform, applies
// authoring edits to them and rebuilds the mesh on request.
package platform

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/platform-builder/internal/builder"
	"github.com/Faultbox/platform-builder/internal/layout"
	"github.com/Faultbox/platform-builder/internal/logger"
	"github.com/Faultbox/platform-builder/internal/ordering"
	"github.com/Faultbox/platform-builder/internal/stitch"
	"github.com/Faultbox/platform-builder/internal/strategy"
	"github.com/Faultbox/platform-builder/pkg/math"
)

var (
	ErrSectionNotFound = errors.New("section not found")
	ErrPointNotFound   = errors.New("point not found")
)

// Platform is a procedural platform built from ordered sections.
//
// A Platform is not safe for concurrent use. Edits and rebuilds are expected
// to come from a single authoring loop.
type Platform struct {
	sections  ordering.Index[*layout.Section]
	builder   *builder.Builder
	consumers []Consumer
	clock     Clock
	throttle  Throttle
	transform Transform

	output []stitch.Placed
	mesh   *stitch.Mesh
	builds int
}

// New creates an empty platform.
func New(opts ...Option) *Platform {
	p := &Platform{
		builder:   builder.New(nil),
		clock:     systemClock{},
		throttle:  Throttle{Interval: DefaultThrottle},
		transform: IdentityTransform(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetStrategy replaces the active strategy. nil selects the identity.
func (p *Platform) SetStrategy(s strategy.Strategy) {
	p.builder.SetStrategy(s)
}

// Strategy returns the active strategy.
func (p *Platform) Strategy() strategy.Strategy {
	return p.builder.Strategy()
}

// SetTransform moves the platform in the world. The next rebuild uses it.
func (p *Platform) SetTransform(t Transform) {
	p.transform = t
}

// Transform returns the platform transform.
func (p *Platform) Transform() Transform {
	return p.transform
}

// Sections returns the sections in ascending orderId.
func (p *Platform) Sections() []*layout.Section {
	return p.sections.Values()
}

// SectionOrders returns the section orderIds in ascending order.
func (p *Platform) SectionOrders() []int {
	return p.sections.Orders()
}

// Section returns the section holding order.
func (p *Platform) Section(order int) (*layout.Section, bool) {
	return p.sections.At(order)
}

func (p *Platform) section(order int) (*layout.Section, error) {
	s, ok := p.sections.At(order)
	if !ok {
		return nil, fmt.Errorf("section %d: %w", order, ErrSectionNotFound)
	}
	return s, nil
}

func (p *Platform) point(section, order int) (*layout.Section, *layout.Point, error) {
	s, err := p.section(section)
	if err != nil {
		return nil, nil, err
	}
	pt, ok := s.Point(order)
	if !ok {
		return nil, nil, fmt.Errorf("section %d point %d: %w", section, order, ErrPointNotFound)
	}
	return s, pt, nil
}

// AddSection places a new empty section that arrived carrying orderId from.
// Pass the orderId of the section it follows, or -1 to insert at the front.
func (p *Platform) AddSection(from int, position math.Vec3) *layout.Section {
	s := layout.NewSection(position)
	p.placeSection(from, s)
	return s
}

// DuplicateSection copies the section at order, points and branches
// included, anchors the copy at position and places it right after the
// original.
func (p *Platform) DuplicateSection(order int, position math.Vec3) (*layout.Section, error) {
	src, err := p.section(order)
	if err != nil {
		return nil, err
	}
	s := src.Clone()
	s.Position = position
	p.placeSection(order, s)
	return s, nil
}

func (p *Platform) placeSection(from int, s *layout.Section) {
	last := p.sections.Max()
	order := p.sections.Place(from, s)
	p.relabel()
	logger.Debug("section placed",
		zap.Int("from", from),
		zap.Int("order", order),
		zap.Bool("shifted", order <= last),
		zap.Int("sections", p.sections.Len()))
}

func (p *Platform) relabel() {
	orders := p.sections.Orders()
	for i, s := range p.sections.Values() {
		s.Relabel(orders[i])
	}
}

// MoveSection re-anchors the section at order. Its points and branches
// follow.
func (p *Platform) MoveSection(order int, position math.Vec3) error {
	s, err := p.section(order)
	if err != nil {
		return err
	}
	s.Position = position
	return nil
}

// RemoveSection deletes the section at order, leaving a gap in the orderIds.
func (p *Platform) RemoveSection(order int) error {
	if _, ok := p.sections.Remove(order); !ok {
		return fmt.Errorf("section %d: %w", order, ErrSectionNotFound)
	}
	return nil
}

// AddPoint places a new point in the section at order. The point arrives
// carrying orderId from: it is a copy of the point at from when there is
// one, moved to local. Every other section with fewer points receives its own
// copy at the same position in its order, taken from its point at from, so
// all sections keep the same point count.
func (p *Platform) AddPoint(section, from int, local math.Vec3) (*layout.Point, error) {
	s, err := p.section(section)
	if err != nil {
		return nil, err
	}

	pt := layout.NewPoint(local)
	if src, ok := s.Point(from); ok {
		pt = src.Clone()
		pt.Local = local
	}
	order := s.PlacePoint(from, pt)

	synced := 0
	for _, other := range p.sections.Values() {
		if other == s || other.Len() >= s.Len() {
			continue
		}
		spawn := pt.Clone()
		if src, ok := other.Point(from); ok {
			spawn = src.Clone()
			spawn.Local = local
		}
		other.PlacePoint(from, spawn)
		synced++
	}

	logger.Debug("point placed",
		zap.String("section", s.Name()),
		zap.Int("from", from),
		zap.Int("order", order),
		zap.Int("synced", synced))
	return pt, nil
}

// MovePoint moves the point to world. Its branches follow.
func (p *Platform) MovePoint(section, order int, world math.Vec3) error {
	s, _, err := p.point(section, order)
	if err != nil {
		return err
	}
	s.MovePoint(order, world)
	return nil
}

// RemovePoint deletes the point from its section, leaving a gap.
func (p *Platform) RemovePoint(section, order int) error {
	s, _, err := p.point(section, order)
	if err != nil {
		return err
	}
	s.RemovePoint(order)
	return nil
}

// AddPointBranch attaches a branch at world to a point and returns its index.
func (p *Platform) AddPointBranch(section, order int, world math.Vec3) (int, error) {
	s, _, err := p.point(section, order)
	if err != nil {
		return 0, err
	}
	i, _ := s.AddPointBranch(order, world)
	return i, nil
}

// MovePointBranch moves branch i of a point. An out-of-range i is ignored.
func (p *Platform) MovePointBranch(section, order, i int, world math.Vec3) error {
	s, _, err := p.point(section, order)
	if err != nil {
		return err
	}
	s.MovePointBranch(order, i, world)
	return nil
}

// RemovePointBranch detaches branch i of a point. An out-of-range i is
// ignored.
func (p *Platform) RemovePointBranch(section, order, i int) error {
	s, _, err := p.point(section, order)
	if err != nil {
		return err
	}
	s.RemovePointBranch(order, i)
	return nil
}

// AddSectionBranch attaches a branch anchored at world to a section and
// returns its index.
func (p *Platform) AddSectionBranch(section int, world math.Vec3) (int, error) {
	s, err := p.section(section)
	if err != nil {
		return 0, err
	}
	return s.AddBranch(world), nil
}

// MoveSectionBranch moves branch i of a section. An out-of-range i is
// ignored.
func (p *Platform) MoveSectionBranch(section, i int, world math.Vec3) error {
	s, err := p.section(section)
	if err != nil {
		return err
	}
	s.MoveBranch(i, world)
	return nil
}

// RemoveSectionBranch detaches branch i of a section. An out-of-range i is
// ignored.
func (p *Platform) RemoveSectionBranch(section, i int) error {
	s, err := p.section(section)
	if err != nil {
		return err
	}
	s.RemoveBranch(i)
	return nil
}

// Compact renumbers sections and the points of every section contiguously
// from 0. It reports whether any orderId changed.
func (p *Platform) Compact() bool {
	changed := p.sections.Compact()
	if changed {
		p.relabel()
	}
	for _, s := range p.sections.Values() {
		if s.Compact() {
			changed = true
		}
	}
	return changed
}

// Rows resolves every section into a stitcher row.
func (p *Platform) Rows() []stitch.Row {
	sections := p.sections.Values()
	rows := make([]stitch.Row, len(sections))
	for i, s := range sections {
		rows[i] = s.Row()
	}
	return rows
}

// Preview runs the strategy and the stitcher over the current rows without
// touching the output. It reports false when the strategy vetoed the build.
func (p *Platform) Preview() (*stitch.Result, bool) {
	info := p.builder.Run(p.Rows())
	return stitch.Run(info.Rows), info.ShouldBuild
}

// Rebuild runs the strategy and the stitcher now. It reports false, leaving
// the previous output in place, when there are fewer than two sections, the
// strategy vetoed the build, or the rows held nothing to stitch. A consumer
// error is returned after the output was updated.
func (p *Platform) Rebuild() (bool, error) {
	if n := p.sections.Len(); n < 2 {
		logger.Debug("rebuild skipped: not enough sections", zap.Int("sections", n))
		return false, nil
	}

	start := time.Now()
	parts, ok := p.builder.Build(p.Rows(), p.transform.Placement())
	if !ok {
		logger.Debug("rebuild vetoed by strategy")
		return false, nil
	}
	if len(parts) == 0 {
		logger.Debug("rebuild skipped: nothing to stitch")
		return false, nil
	}

	p.output = parts
	p.mesh = stitch.Combine(parts)
	p.builds++

	logger.Debug("platform rebuilt",
		zap.Int("parts", len(parts)),
		zap.Int("triangles", p.mesh.TriangleCount()),
		zap.Duration("took", time.Since(start)))

	for _, c := range p.consumers {
		if err := c.Apply(parts); err != nil {
			return true, fmt.Errorf("applying rebuild output: %w", err)
		}
	}
	return true, nil
}

// RebuildIfDue rebuilds only if now is past the throttle deadline.
func (p *Platform) RebuildIfDue(now time.Time) (bool, error) {
	if !p.throttle.Due(now) {
		return false, nil
	}
	return p.Rebuild()
}

// Update is RebuildIfDue at the platform clock's current time.
func (p *Platform) Update() (bool, error) {
	return p.RebuildIfDue(p.clock.Now())
}

// Output returns the sub-meshes of the last successful rebuild.
func (p *Platform) Output() []stitch.Placed {
	return p.output
}

// Mesh returns the combined mesh of the last successful rebuild, or nil.
func (p *Platform) Mesh() *stitch.Mesh {
	return p.mesh
}

// Builds returns the number of successful rebuilds.
func (p *Platform) Builds() int {
	return p.builds
}

// DrawSections draws the closed ring of every section, the section branch
// rows, and whatever the active strategy draws.
func (p *Platform) DrawSections(d strategy.Drawer) {
	if d == nil {
		return
	}
	for _, s := range p.sections.Values() {
		drawRing(d, s.Ring())
		for _, r := range s.BranchRows() {
			drawRing(d, r)
		}
	}
	p.builder.Draw(d)
}

func drawRing(d strategy.Drawer, ring []math.Vec3) {
	if len(ring) < 2 {
		return
	}
	for i := range ring {
		d.Line(ring[i], ring[(i+1)%len(ring)])
	}
}

// BoundsPadding is the margin DrawBounds leaves around the mesh.
const BoundsPadding = 0.05

// DrawBounds draws the world-space box around the last built mesh.
func (p *Platform) DrawBounds(d strategy.Drawer) {
	if d == nil || p.mesh == nil {
		return
	}
	toWorld := math.TRS(p.transform.Position, p.transform.Rotation, p.transform.Scale)
	for _, e := range p.mesh.Bounds().Pad(BoundsPadding).Edges() {
		d.Line(toWorld.TransformPoint(e[0]), toWorld.TransformPoint(e[1]))
	}
}
