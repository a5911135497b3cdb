// Package builder runs the active strategy over the section rows and hands
// the result to the stitcher.
package builder

import (
	"go.uber.org/zap"

	"github.com/Faultbox/platform-builder/internal/logger"
	"github.com/Faultbox/platform-builder/internal/stitch"
	"github.com/Faultbox/platform-builder/internal/strategy"
	"github.com/Faultbox/platform-builder/pkg/math"
)

// Builder owns the active strategy.
type Builder struct {
	strategy strategy.Strategy
}

// New creates a Builder with s as the active strategy. s may be nil.
func New(s strategy.Strategy) *Builder {
	return &Builder{strategy: s}
}

// SetStrategy replaces the active strategy. nil selects the identity.
func (b *Builder) SetStrategy(s strategy.Strategy) {
	b.strategy = s
	if s != nil {
		logger.Debug("strategy set", zap.String("title", s.Title()))
	}
}

// Strategy returns the active strategy, or nil.
func (b *Builder) Strategy() strategy.Strategy {
	return b.strategy
}

// Run passes rows through the active strategy.
func (b *Builder) Run(rows []stitch.Row) strategy.UpdateInfo {
	info := strategy.UpdateInfo{Rows: rows, ShouldBuild: true}
	if b.strategy == nil {
		return info
	}
	return b.strategy.Update(info)
}

// Build runs the strategy and stitches the rows it returns. It reports false
// when the strategy vetoed the build.
func (b *Builder) Build(rows []stitch.Row, placement math.Mat4) ([]stitch.Placed, bool) {
	info := b.Run(rows)
	if !info.ShouldBuild {
		return nil, false
	}
	return stitch.Stitch(info.Rows, placement), true
}

// Draw forwards to the active strategy's debug drawing.
func (b *Builder) Draw(d strategy.Drawer) {
	if b.strategy != nil && d != nil {
		b.strategy.Draw(d)
	}
}
