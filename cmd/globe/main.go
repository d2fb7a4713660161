// globe renders orthographic views of heightmap worlds.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/globe/internal/config"
	"github.com/Faultbox/globe/internal/export"
	"github.com/Faultbox/globe/internal/logger"
	"github.com/Faultbox/globe/internal/server"
	"github.com/Faultbox/globe/internal/termview"
	"github.com/Faultbox/globe/internal/worldgen"
	"github.com/Faultbox/globe/pkg/formats"
	"github.com/Faultbox/globe/pkg/globe"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "render", "r":
		cmdRender(args)
	case "info":
		cmdInfo(args)
	case "gen":
		cmdGen(args)
	case "serve":
		cmdServe(args)
	case "pack":
		cmdPack(args)
	case "palettes":
		cmdPalettes()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`globe - orthographic heightmap globe renderer

Usage:
  globe <command> [options] [world]

Commands:
  render [world]      Render a globe image (or -term to print it)
  info <world>        Show heightmap dimensions and altitude statistics
  gen                 Write a procedurally generated world (-o x.hmap, -world-width, -world-height)
  serve [world]       Serve a spinning globe over SSH
  pack <out.grf> <files...>  Bundle world files into a GRF archive
  palettes            List color palettes

World files: .gat, .gnd, .hmap, .png, .tif, or archive.grf:path/inside.gat.
Without one a world is generated.

Common options:
  -config path        Config file (default ./globe.yaml or user config dir)
  -debug              Enable debug logging

Examples:
  globe render -lon 30 -lat 20 -o earth.png world.hmap
  globe render -palette terrain -scale 2 -o big.png
  globe render -term -width 80 -height 48
  globe gen -seed 7 -o world.hmap
  globe serve -addr :2222 world.hmap
  globe pack maps.grf world.hmap prontera.gat
  globe render -o prontera.png maps.grf:prontera.gat`)
}

// setup parses flags, loads config and starts logging.
func setup(fs *flag.FlagSet, args []string) *config.Config {
	f := config.RegisterFlags(fs)
	fs.Parse(args)
	f.Visit(fs)

	cfg, err := config.Load(f)
	if err != nil {
		fail(err)
	}
	if fs.NArg() > 0 {
		cfg.World.Path = fs.Arg(0)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fail(fmt.Errorf("init logger: %w", err))
	}
	return cfg
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	logger.Sync()
	os.Exit(1)
}

func loadWorld(cfg *config.Config) globe.Heightmap {
	start := time.Now()
	hm, err := cfg.LoadWorld()
	if err != nil {
		fail(err)
	}

	source := cfg.World.Path
	if source == "" {
		source = fmt.Sprintf("generated (seed %d)", cfg.World.Generate.Seed)
	}
	logger.Debug("world loaded",
		zap.String("source", source),
		zap.Int("width", hm.Width),
		zap.Int("height", hm.Height),
		zap.Duration("took", time.Since(start)))
	return hm
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	term := fs.Bool("term", false, "Print to the terminal instead of writing an image")
	cfg := setup(fs, args)
	defer logger.Sync()

	world := loadWorld(cfg)
	cm, err := cfg.ColorMap()
	if err != nil {
		fail(err)
	}
	bg, err := config.ParseRGB(cfg.Render.Background)
	if err != nil {
		fail(err)
	}

	vp := globe.Viewport{Width: cfg.Render.Width, Height: cfg.Render.Height}
	rot := globe.Rotation{LonDeg: cfg.Render.LonDeg, LatDeg: cfg.Render.LatDeg}
	buf := globe.NewPixelBuffer(vp.Width, vp.Height)
	buf.Fill(bg)

	start := time.Now()
	r := &globe.Renderer{Workers: cfg.Render.Workers}
	if err := r.Render(vp, rot, world, cm, buf); err != nil {
		fail(err)
	}
	logger.Debug("globe rendered",
		zap.Int("width", vp.Width),
		zap.Int("height", vp.Height),
		zap.Int("lon", rot.LonDeg),
		zap.Int("lat", rot.LatDeg),
		zap.Duration("took", time.Since(start)))

	if *term {
		fmt.Print(termview.Encode(buf))
		fmt.Println()
		return
	}

	if err := export.WriteFile(cfg.Output.Path, buf, cfg.Output.Scale); err != nil {
		fail(err)
	}
	fmt.Printf("Wrote %s (%dx%d, lon %d, lat %d)\n",
		cfg.Output.Path, vp.Width*cfg.Output.Scale, vp.Height*cfg.Output.Scale, rot.LonDeg, rot.LatDeg)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	cfg := setup(fs, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: globe info <world>")
		os.Exit(1)
	}

	// A bare archive lists the worlds it contains.
	if strings.EqualFold(filepath.Ext(cfg.World.Path), ".grf") {
		names, err := formats.ArchiveHeightmaps(cfg.World.Path)
		if err != nil {
			fail(err)
		}
		fmt.Printf("Archive: %s\n", cfg.World.Path)
		fmt.Printf("Worlds:  %d\n", len(names))
		for _, name := range names {
			fmt.Printf("  %s:%s\n", cfg.World.Path, name)
		}
		return
	}

	world := loadWorld(cfg)
	st := formats.Stats(world)

	fmt.Printf("World:   %s\n", cfg.World.Path)
	fmt.Printf("Size:    %d x %d (%d cells)\n", world.Width, world.Height, len(world.Altitudes))
	fmt.Printf("Min:     %d\n", st.Min)
	fmt.Printf("Max:     %d\n", st.Max)
	fmt.Printf("Mean:    %.2f\n", st.Mean)
	fmt.Printf("Land:    %.1f%%\n", st.LandFraction*100)
	fmt.Printf("Cell:    %.3f x %.3f degrees\n", 360/float64(world.Width), 180/float64(world.Height))
}

func cmdGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	worldW := fs.Int("world-width", 0, "Generated world width in cells")
	worldH := fs.Int("world-height", 0, "Generated world height in cells")
	cfg := setup(fs, args)
	defer logger.Sync()

	if *worldW > 0 {
		cfg.World.Generate.Width = *worldW
	}
	if *worldH > 0 {
		cfg.World.Generate.Height = *worldH
	}

	out, err := genOutputPath(cfg.Output.Path, flagSet(fs, "o"))
	if err != nil {
		fail(err)
	}

	hm, err := worldgen.Generate(cfg.GenerateParams())
	if err != nil {
		fail(err)
	}
	if err := formats.WriteHMAPFile(out, hm); err != nil {
		fail(err)
	}

	st := formats.Stats(hm)
	fmt.Printf("Wrote %s (%dx%d, seed %d, land %.1f%%)\n",
		out, hm.Width, hm.Height, cfg.World.Generate.Seed, st.LandFraction*100)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfg := setup(fs, args)
	defer logger.Sync()

	world := loadWorld(cfg)
	cm, err := cfg.ColorMap()
	if err != nil {
		fail(err)
	}
	bg, err := config.ParseRGB(cfg.Render.Background)
	if err != nil {
		fail(err)
	}

	if cfg.Server.HostKey != "" {
		if err := server.EnsureHostKey(cfg.Server.HostKey); err != nil {
			fail(fmt.Errorf("host key: %w", err))
		}
	}

	srv := server.New(server.Config{
		Addr:        cfg.Server.Addr,
		HostKey:     cfg.Server.HostKey,
		FrameRate:   cfg.Server.FrameRate,
		SpinDeg:     cfg.Server.SpinDeg,
		StepDeg:     cfg.Server.StepDeg,
		IdleTimeout: cfg.Server.IdleTimeout,
		Workers:     cfg.Render.Workers,
		Home:        globe.Rotation{LonDeg: cfg.Render.LonDeg, LatDeg: cfg.Render.LatDeg},
		Background:  bg,
	}, world, cm)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	if err := srv.Start(); err != nil {
		fail(err)
	}
}

func cmdPack(args []string) {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	prefix := fs.String("prefix", "data/", "Directory prefix for entries inside the archive")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: globe pack <out.grf> <files...>")
		os.Exit(1)
	}

	names, err := packArchive(fs.Arg(0), *prefix, fs.Args()[1:])
	if err != nil {
		fail(err)
	}
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	fmt.Printf("Wrote %s (%d worlds)\n", fs.Arg(0), len(names))
}

func cmdPalettes() {
	for _, name := range globe.PaletteNames() {
		fmt.Println(name)
	}
}
