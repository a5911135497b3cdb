package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports settings no build can run with.
func (c *Config) Validate() error {
	switch {
	case c.Build.Subdivisions < 0:
		return fmt.Errorf("%w: build.subdivisions %d is negative", ErrInvalid, c.Build.Subdivisions)
	case c.Build.GridSize < 0:
		return fmt.Errorf("%w: build.grid_size %g is negative", ErrInvalid, c.Build.GridSize)
	case c.Build.ThrottleInterval < 0:
		return fmt.Errorf("%w: build.throttle_interval %s is negative", ErrInvalid, c.Build.ThrottleInterval)
	case c.Watch.Tick <= 0:
		return fmt.Errorf("%w: watch.tick must be positive", ErrInvalid)
	case c.Export.Dir == "":
		return fmt.Errorf("%w: export.dir is empty", ErrInvalid)
	}
	return nil
}
