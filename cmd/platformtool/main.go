// platformtool builds platform meshes from layout files.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/platform-builder/internal/config"
	"github.com/Faultbox/platform-builder/internal/export"
	"github.com/Faultbox/platform-builder/internal/logger"
	"github.com/Faultbox/platform-builder/internal/platform"
	"github.com/Faultbox/platform-builder/internal/scene"
	"github.com/Faultbox/platform-builder/internal/strategy"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Sugar.Debugf("Config: %+v", cfg)

	command, rest := args[0], args[1:]
	switch command {
	case "build":
		err = cmdBuild(cfg, rest)
	case "watch":
		err = cmdWatch(cfg, rest)
	case "info":
		err = cmdInfo(cfg, rest)
	case "strategies":
		for _, name := range strategy.Names() {
			fmt.Println(name)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`platformtool - procedural platform mesh builder

Usage:
  platformtool [flags] <command> [args]

Commands:
  build <layout>   Build the mesh once and export it as OBJ
  watch <layout>   Rebuild and export whenever the layout file changes
  info <layout>    Show sections, points, branches and triangle counts
  strategies       List available build strategies

Flags:
  -config <path>      Config file (default ./platformtool.yaml)
  -debug              Enable debug logging
  -strategy <name>    Build strategy
  -subdivisions <n>   Rows inserted between sections by "smooth"
  -out <dir>          Export directory
  -throttle <dur>     Minimum time between rebuilds in watch mode

Layouts are YAML (.yaml, .yml) or TOML (.toml).

Examples:
  platformtool build bridge.yaml
  platformtool -strategy smooth -subdivisions 6 -out ./meshes build bridge.toml
  platformtool watch bridge.yaml`)
}

// load reads the layout at path and builds a platform that exports to the
// configured directory.
func load(cfg *config.Config, path string, opts ...platform.Option) (*platform.Platform, *export.OBJ, error) {
	f, err := scene.Load(path)
	if err != nil {
		return nil, nil, err
	}

	name := cfg.Build.Strategy
	if f.Strategy != "" && (name == "" || name == "none") {
		name = f.Strategy
	}
	st, err := strategy.New(name, strategy.Config{
		Subdivisions: cfg.Build.Subdivisions,
		GridSize:     cfg.Build.GridSize,
	})
	if err != nil {
		return nil, nil, err
	}

	obj := export.NewOBJ(cfg.Export.Dir, f.Name)
	opts = append([]platform.Option{
		platform.WithStrategy(st),
		platform.WithConsumer(obj),
		platform.WithThrottle(cfg.Build.ThrottleInterval),
	}, opts...)

	p, err := scene.Build(f, opts...)
	if err != nil {
		return nil, nil, err
	}
	return p, obj, nil
}

func layoutArg(command string, args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("usage: platformtool %s <layout>", command)
	}
	return args[0], nil
}
