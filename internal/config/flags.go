package config

import "flag"

// Flags holds command-line overrides registered on a FlagSet.
// Zero values mean "not set" and leave the loaded config untouched.
type Flags struct {
	config  *string
	debug   *bool
	logFile *string
	width   *int
	height  *int
	lon     *int
	lat     *int
	workers *int
	palette *string
	maxLand *int
	bg      *string
	world   *string
	seed    *int64
	out     *string
	scale   *int
	addr    *string
	set     map[string]bool
}

// RegisterFlags adds the shared globe flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		config:  fs.String("config", "", "Path to config file"),
		debug:   fs.Bool("debug", false, "Enable debug logging"),
		logFile: fs.String("log", "", "Also write JSON logs to this file"),
		width:   fs.Int("width", 0, "Viewport width in pixels"),
		height:  fs.Int("height", 0, "Viewport height in pixels"),
		lon:     fs.Int("lon", 0, "Rotation longitude in degrees"),
		lat:     fs.Int("lat", 0, "Rotation latitude in degrees"),
		workers: fs.Int("workers", -1, "Render workers (0 = all CPUs)"),
		palette: fs.String("palette", "", "Color palette (gradient, terrain)"),
		maxLand: fs.Int("max", -1, "Altitude that maps to the top of the palette"),
		bg:      fs.String("bg", "", "Background color outside the disc (r,g,b or #rrggbb)"),
		world:   fs.String("world", "", "Heightmap file (.gat, .gnd, .hmap, .png, .tif, archive.grf:entry)"),
		seed:    fs.Int64("seed", 0, "Seed for generated worlds"),
		out:     fs.String("o", "", "Output image path"),
		scale:   fs.Int("scale", 0, "Output upscale factor"),
		addr:    fs.String("addr", "", "SSH listen address"),
	}
}

// Visit records which flags were given explicitly. Call it after fs.Parse.
// Without it, lon/lat of 0 cannot be told apart from "not set".
func (f *Flags) Visit(fs *flag.FlagSet) {
	if f == nil {
		return
	}
	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.logFile != "" {
		cfg.Logging.LogFile = *f.logFile
	}
	if *f.width > 0 {
		cfg.Render.Width = *f.width
	}
	if *f.height > 0 {
		cfg.Render.Height = *f.height
	}
	if *f.lon != 0 || f.set["lon"] {
		cfg.Render.LonDeg = *f.lon
	}
	if *f.lat != 0 || f.set["lat"] {
		cfg.Render.LatDeg = *f.lat
	}
	if *f.workers >= 0 {
		cfg.Render.Workers = *f.workers
	}
	if *f.palette != "" {
		cfg.Render.Palette = *f.palette
	}
	if *f.maxLand >= 0 {
		cfg.World.MaxLandHeight = *f.maxLand
	}
	if *f.bg != "" {
		cfg.Render.Background = *f.bg
	}
	if *f.world != "" {
		cfg.World.Path = *f.world
	}
	if *f.seed != 0 || f.set["seed"] {
		cfg.World.Generate.Seed = *f.seed
	}
	if *f.out != "" {
		cfg.Output.Path = *f.out
	}
	if *f.scale > 0 {
		cfg.Output.Scale = *f.scale
	}
	if *f.addr != "" {
		cfg.Server.Addr = *f.addr
	}
}
