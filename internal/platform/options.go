package platform

import (
	"time"

	"github.com/Faultbox/platform-builder/internal/stitch"
	"github.com/Faultbox/platform-builder/internal/strategy"
	"github.com/Faultbox/platform-builder/pkg/math"
)

// DefaultThrottle is the minimum time between two throttled rebuilds.
const DefaultThrottle = 100 * time.Millisecond

// Clock supplies the current time to throttled rebuilds.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Consumer receives the sub-meshes of every successful rebuild, e.g. a
// renderer, a collider or an exporter.
type Consumer interface {
	Apply(parts []stitch.Placed) error
}

// ConsumerFunc adapts a function to Consumer.
type ConsumerFunc func(parts []stitch.Placed) error

func (f ConsumerFunc) Apply(parts []stitch.Placed) error { return f(parts) }

// Transform places the platform in the world.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// IdentityTransform leaves the platform at the origin.
func IdentityTransform() Transform {
	return Transform{Rotation: math.QuatIdentity(), Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// Placement returns the world-to-local matrix applied to the stitched
// sub-meshes.
func (t Transform) Placement() math.Mat4 {
	return math.InverseTRS(t.Position, t.Rotation, t.Scale)
}

// Option configures a Platform.
type Option func(*Platform)

// WithClock sets the clock used by Update.
func WithClock(c Clock) Option {
	return func(p *Platform) {
		if c != nil {
			p.clock = c
		}
	}
}

// WithStrategy sets the initial strategy.
func WithStrategy(s strategy.Strategy) Option {
	return func(p *Platform) { p.builder.SetStrategy(s) }
}

// WithConsumer registers a consumer for rebuild output.
func WithConsumer(c Consumer) Option {
	return func(p *Platform) { p.consumers = append(p.consumers, c) }
}

// WithThrottle sets the throttled rebuild interval.
func WithThrottle(interval time.Duration) Option {
	return func(p *Platform) { p.throttle.Interval = interval }
}

// WithTransform places the platform in the world.
func WithTransform(t Transform) Option {
	return func(p *Platform) { p.transform = t }
}
