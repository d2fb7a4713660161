// Package main is the entry point for the interactive globe viewer.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/globe/internal/config"
	"github.com/Faultbox/globe/internal/logger"
	"github.com/Faultbox/globe/internal/viewer"
	"github.com/Faultbox/globe/pkg/globe"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	spin := flag.Float64("spin", -1, "Spin speed in degrees per second (0 = paused)")
	flag.Parse()
	flags.Visit(flag.CommandLine)

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if flag.NArg() > 0 {
		cfg.World.Path = flag.Arg(0)
	}
	if *fullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if *spin >= 0 {
		cfg.Viewer.SpinDegSec = *spin
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Globe Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	world, err := cfg.LoadWorld()
	if err != nil {
		logger.Error("failed to load world", zap.Error(err))
		os.Exit(1)
	}
	cm, err := cfg.ColorMap()
	if err != nil {
		logger.Error("bad palette", zap.Error(err))
		os.Exit(1)
	}
	bg, err := config.ParseRGB(cfg.Render.Background)
	if err != nil {
		logger.Error("bad background", zap.Error(err))
		os.Exit(1)
	}

	err = viewer.Run(viewer.Config{
		Title:      cfg.Viewer.Title,
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
		StepDeg:    cfg.Viewer.StepDeg,
		SpinDegSec: cfg.Viewer.SpinDegSec,
		Workers:    cfg.Render.Workers,
		Home:       globe.Rotation{LonDeg: cfg.Render.LonDeg, LatDeg: cfg.Render.LatDeg},
		Background: bg,

		ScreenshotDir: cfg.Viewer.ScreenshotDir,
	}, world, cm)
	if err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
