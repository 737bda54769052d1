// Package config handles flora configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/flora/internal/plant"
)

// Config holds all application settings.
type Config struct {
	Plant     plant.Config    `yaml:"plant"`
	Animation AnimationConfig `yaml:"animation"`
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Camera    CameraConfig    `yaml:"camera"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AnimationConfig holds growth and generation behavior.
type AnimationConfig struct {
	GrowthRate    float64 `yaml:"growth_rate"`
	AmbientJitter bool    `yaml:"ambient_jitter"`
	LeafLayout    string  `yaml:"leaf_layout"` // thirds | even
	Paused        bool    `yaml:"paused"`
	Ground        bool    `yaml:"ground"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// CameraConfig holds the orbit camera limits.
type CameraConfig struct {
	Distance    float32 `yaml:"distance"`
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
	FOV         float32 `yaml:"fov"` // degrees
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values. The seed is left
// at 0, which clients replace with the wall clock.
func Default() *Config {
	return &Config{
		Plant: plant.DefaultConfig(),
		Animation: AnimationConfig{
			GrowthRate: plant.DefaultGrowthRate,
			LeafLayout: plant.LayoutThirds.String(),
			Ground:     true,
		},
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Camera: CameraConfig{
			Distance:    8.544,
			MinDistance: 2,
			MaxDistance: 12,
			FOV:         40,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	colors := []struct{ name, value string }{
		{"plant.color", c.Plant.Color},
		{"plant.petal_gradient_start", c.Plant.PetalGradientStart},
		{"plant.petal_gradient_end", c.Plant.PetalGradientEnd},
	}
	for _, col := range colors {
		if _, err := colorful.Hex(col.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid color %q: %w", col.name, col.value, err))
		}
	}

	if c.Plant.Height <= 0 {
		errs = append(errs, fmt.Errorf("plant.height must be positive, got %v", c.Plant.Height))
	}
	if c.Plant.LeafSize <= 0 {
		errs = append(errs, fmt.Errorf("plant.leaf_size must be positive, got %v", c.Plant.LeafSize))
	}
	if c.Animation.GrowthRate < 0 {
		errs = append(errs, fmt.Errorf("animation.growth_rate must not be negative, got %v", c.Animation.GrowthRate))
	}
	if _, err := plant.ParseLeafLayout(c.Animation.LeafLayout); err != nil {
		errs = append(errs, fmt.Errorf("animation.leaf_layout: %w", err))
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics size must be positive, got %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MinDistance > c.Camera.MaxDistance {
		errs = append(errs, fmt.Errorf("camera distance range [%v, %v] is invalid", c.Camera.MinDistance, c.Camera.MaxDistance))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov must be in (0, 180), got %v", c.Camera.FOV))
	}

	return errors.Join(errs...)
}

// PlantOptions converts the animation section into generator options.
func (c *Config) PlantOptions() (plant.Options, error) {
	layout, err := plant.ParseLeafLayout(c.Animation.LeafLayout)
	if err != nil {
		return plant.Options{}, err
	}
	opts := plant.DefaultOptions()
	opts.AmbientJitter = c.Animation.AmbientJitter
	opts.LeafLayout = layout
	opts.GrowthRate = c.Animation.GrowthRate
	opts.Ground = c.Animation.Ground
	return opts, nil
}
