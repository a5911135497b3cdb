package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/platform-builder/internal/config"
	"github.com/Faultbox/platform-builder/internal/logger"
	"github.com/Faultbox/platform-builder/internal/platform"
)

func cmdWatch(cfg *config.Config, args []string) error {
	path, err := layoutArg("watch", args)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of
	// writing it in place.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", path)
	return watch(ctx, cfg, abs, watcher.Events, watcher.Errors)
}

// watch rebuilds the layout at path whenever events report a change to it.
// Bursts of events collapse into at most one rebuild per throttle interval.
func watch(ctx context.Context, cfg *config.Config, path string, events <-chan fsnotify.Event, errs <-chan error) error {
	throttle := platform.Throttle{Interval: cfg.Build.ThrottleInterval}
	ticker := time.NewTicker(cfg.Watch.Tick)
	defer ticker.Stop()

	pending := true
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pending = true
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", zap.Error(err))
		case now := <-ticker.C:
			if !pending || !throttle.Due(now) {
				continue
			}
			pending = false
			rebuild(cfg, path)
		}
	}
}

// rebuild reloads and exports the layout. Failures are logged so a broken
// save does not end the watch.
func rebuild(cfg *config.Config, path string) {
	p, obj, err := load(cfg, path)
	if err != nil {
		logger.Warn("layout not loaded", zap.String("path", path), zap.Error(err))
		return
	}
	ok, err := p.Rebuild()
	switch {
	case err != nil:
		logger.Warn("rebuild failed", zap.String("path", path), zap.Error(err))
	case !ok:
		logger.Info("nothing to build", zap.String("path", path))
	default:
		fmt.Printf("%s  rebuilt %s (%d triangles)\n", time.Now().Format("15:04:05"), obj.Path(), p.Mesh().TriangleCount())
	}
}
