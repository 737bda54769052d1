package config

import "flag"

// Flags are the command-line overrides shared by the clients.
type Flags struct {
	Config        string
	Debug         bool
	Seed          int64
	StemHeight    float64
	Petals        int
	AmbientJitter bool
	LeafLayout    string
	LogFile       string
	Windowed      bool
	Fullscreen    bool
	Width         int
	Height        int
}

// BindFlags registers the flags on fs. Zero values mean "not set".
func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.Int64Var(&f.Seed, "seed", 0, "Plant seed (0 = keep configured)")
	fs.Float64Var(&f.StemHeight, "stem-height", 0, "Stem height")
	fs.IntVar(&f.Petals, "petals", 0, "Petal count")
	fs.BoolVar(&f.AmbientJitter, "ambient-jitter", false, "Draw branch and petal jitter from an unseeded stream")
	fs.StringVar(&f.LeafLayout, "leaf-layout", "", "Leaf placement along branches: thirds or even")
	fs.StringVar(&f.LogFile, "log-file", "", "Write logs to this file")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Seed != 0 {
		cfg.Plant.Seed = f.Seed
	}
	if f.StemHeight > 0 {
		cfg.Plant.Height = f.StemHeight
	}
	if f.Petals > 0 {
		cfg.Plant.PetalCount = f.Petals
	}
	if f.AmbientJitter {
		cfg.Animation.AmbientJitter = true
	}
	if f.LeafLayout != "" {
		cfg.Animation.LeafLayout = f.LeafLayout
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Windowed {
		cfg.Graphics.Fullscreen = false
	}
	if f.Fullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if f.Width > 0 {
		cfg.Graphics.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Graphics.Height = f.Height
	}
}
