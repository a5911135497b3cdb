package strategy

import (
	"go.uber.org/zap"

	"github.com/Faultbox/platform-builder/internal/logger"
)

// Lock vetoes every build while it is locked. It lets a host freeze the
// current mesh during a batch of edits.
type Lock struct {
	locked bool
}

// NewLock creates a Lock in the given state.
func NewLock(locked bool) *Lock {
	return &Lock{locked: locked}
}

// SetLocked changes the lock state.
func (l *Lock) SetLocked(locked bool) {
	l.locked = locked
}

// Locked reports the lock state.
func (l *Lock) Locked() bool {
	return l.locked
}

func (l *Lock) Title() string { return "Lock" }

func (l *Lock) Update(info UpdateInfo) UpdateInfo {
	if l.locked {
		logger.Debug("build vetoed by lock", zap.Int("rows", len(info.Rows)))
		info.ShouldBuild = false
	}
	return info
}

func (l *Lock) Draw(Drawer) {}
