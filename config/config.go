// Package config loads the backdrop configuration from defaults, an
// optional YAML file and DANLER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"
	"github.com/spicorn/Danler/field"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// MaxFPS caps the terminal frame rate.
const MaxFPS = 1000

// Config is the root configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Field    FieldConfig    `mapstructure:"field" yaml:"field"`
	Window   WindowConfig   `mapstructure:"window" yaml:"window"`
	Terminal TerminalConfig `mapstructure:"terminal" yaml:"terminal"`
	Stress   StressConfig   `mapstructure:"stress" yaml:"stress"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// FieldConfig tunes the particle field and the layers drawn with it.
type FieldConfig struct {
	MaxParticles    int     `mapstructure:"max_particles" yaml:"max_particles"`
	AreaPerParticle float64 `mapstructure:"area_per_particle" yaml:"area_per_particle"`
	LinkDistance    float64 `mapstructure:"link_distance" yaml:"link_distance"`
	MaxSpeed        float64 `mapstructure:"max_speed" yaml:"max_speed"`
	MinRadius       float64 `mapstructure:"min_radius" yaml:"min_radius"`
	MaxRadius       float64 `mapstructure:"max_radius" yaml:"max_radius"`
	MinOpacity      float64 `mapstructure:"min_opacity" yaml:"min_opacity"`
	MaxOpacity      float64 `mapstructure:"max_opacity" yaml:"max_opacity"`
	LinkAlpha       float64 `mapstructure:"link_alpha" yaml:"link_alpha"`
	LinkWidth       float64 `mapstructure:"link_width" yaml:"link_width"`
	Ink             string  `mapstructure:"ink" yaml:"ink"`
	Seed            uint64  `mapstructure:"seed" yaml:"seed"`
	LayerOpacity    float64 `mapstructure:"layer_opacity" yaml:"layer_opacity"`
	Shapes          bool    `mapstructure:"shapes" yaml:"shapes"`
	Gradients       bool    `mapstructure:"gradients" yaml:"gradients"`
}

// WindowConfig configures the desktop window host.
type WindowConfig struct {
	Width      int    `mapstructure:"width" yaml:"width"`
	Height     int    `mapstructure:"height" yaml:"height"`
	Title      string `mapstructure:"title" yaml:"title"`
	Background string `mapstructure:"background" yaml:"background"`
	Debug      bool   `mapstructure:"debug" yaml:"debug"`
}

// TerminalConfig configures the terminal host.
type TerminalConfig struct {
	CellWidth  int    `mapstructure:"cell_width" yaml:"cell_width"`
	CellHeight int    `mapstructure:"cell_height" yaml:"cell_height"`
	FPS        int    `mapstructure:"fps" yaml:"fps"`
	Background string `mapstructure:"background" yaml:"background"`
}

// StressConfig configures the headless stress run.
type StressConfig struct {
	Duration       time.Duration `mapstructure:"duration" yaml:"duration"`
	Width          int           `mapstructure:"width" yaml:"width"`
	Height         int           `mapstructure:"height" yaml:"height"`
	FPS            int           `mapstructure:"fps" yaml:"fps"`
	GCPauseMetrics bool          `mapstructure:"gc_pause_metrics" yaml:"gc_pause_metrics"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "danler")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)

	// -- Field --
	defaults := field.DefaultConfig()
	v.SetDefault("field.max_particles", defaults.MaxParticles)
	v.SetDefault("field.area_per_particle", defaults.AreaPerParticle)
	v.SetDefault("field.link_distance", defaults.LinkDistance)
	v.SetDefault("field.max_speed", defaults.MaxSpeed)
	v.SetDefault("field.min_radius", defaults.MinRadius)
	v.SetDefault("field.max_radius", defaults.MaxRadius)
	v.SetDefault("field.min_opacity", defaults.MinOpacity)
	v.SetDefault("field.max_opacity", defaults.MaxOpacity)
	v.SetDefault("field.link_alpha", defaults.LinkAlpha)
	v.SetDefault("field.link_width", defaults.LinkWidth)
	v.SetDefault("field.ink", "#6366f1")
	v.SetDefault("field.seed", 0)
	v.SetDefault("field.layer_opacity", 0.6)
	v.SetDefault("field.shapes", true)
	v.SetDefault("field.gradients", true)

	// -- Window --
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Danler")
	v.SetDefault("window.background", "#0b0d1a")
	v.SetDefault("window.debug", false)

	// -- Terminal --
	v.SetDefault("terminal.cell_width", 8)
	v.SetDefault("terminal.cell_height", 16)
	v.SetDefault("terminal.fps", 30)
	v.SetDefault("terminal.background", "#0b0d1a")

	// -- Stress --
	v.SetDefault("stress.duration", "10s")
	v.SetDefault("stress.width", 1920)
	v.SetDefault("stress.height", 1080)
	v.SetDefault("stress.fps", 0)
	v.SetDefault("stress.gc_pause_metrics", false)
}

// NewConfigFromViper decodes and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if err := c.Field.Validate(); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := ParseInk(c.Window.Background); err != nil {
		return invalid("window.background: %v", err)
	}
	if c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0 {
		return invalid("terminal cell size must be positive, got %dx%d", c.Terminal.CellWidth, c.Terminal.CellHeight)
	}
	if c.Terminal.FPS <= 0 || c.Terminal.FPS > MaxFPS {
		return invalid("terminal.fps must be within [1, %d], got %d", MaxFPS, c.Terminal.FPS)
	}
	if _, err := ParseInk(c.Terminal.Background); err != nil {
		return invalid("terminal.background: %v", err)
	}
	if c.Stress.Duration <= 0 {
		return invalid("stress.duration must be positive, got %s", c.Stress.Duration)
	}
	if c.Stress.FPS < 0 {
		return invalid("stress.fps must not be negative, got %d", c.Stress.FPS)
	}
	return nil
}

// Validate checks the field tuning.
func (f *FieldConfig) Validate() error {
	if f.MaxParticles < 0 {
		return invalid("field.max_particles must not be negative, got %d", f.MaxParticles)
	}
	if !(f.AreaPerParticle > 0) {
		return invalid("field.area_per_particle must be positive, got %v", f.AreaPerParticle)
	}
	if !(f.LinkDistance > 0) || !finite(f.LinkDistance) {
		return invalid("field.link_distance must be positive and finite, got %v", f.LinkDistance)
	}
	if !(f.MaxSpeed >= 0) || !finite(f.MaxSpeed) {
		return invalid("field.max_speed must be non-negative and finite, got %v", f.MaxSpeed)
	}
	if !finite(f.MinRadius) || !finite(f.MaxRadius) || f.MinRadius <= 0 || f.MinRadius > f.MaxRadius {
		return invalid("field radius range [%v, %v] is invalid", f.MinRadius, f.MaxRadius)
	}
	if !unit(f.MinOpacity) || !unit(f.MaxOpacity) || f.MinOpacity > f.MaxOpacity {
		return invalid("field opacity range [%v, %v] is invalid", f.MinOpacity, f.MaxOpacity)
	}
	if !unit(f.LinkAlpha) {
		return invalid("field.link_alpha must be within [0, 1], got %v", f.LinkAlpha)
	}
	if !unit(f.LayerOpacity) {
		return invalid("field.layer_opacity must be within [0, 1], got %v", f.LayerOpacity)
	}
	if !(f.LinkWidth > 0) || !finite(f.LinkWidth) {
		return invalid("field.link_width must be positive and finite, got %v", f.LinkWidth)
	}
	if _, err := ParseInk(f.Ink); err != nil {
		return invalid("field.ink: %v", err)
	}
	return nil
}

// Tuning converts the field section into simulation tuning.
func (f *FieldConfig) Tuning() (field.Config, error) {
	ink, err := ParseInk(f.Ink)
	if err != nil {
		return field.Config{}, invalid("field.ink: %v", err)
	}
	return field.Config{
		MaxParticles:    f.MaxParticles,
		AreaPerParticle: f.AreaPerParticle,
		LinkDistance:    f.LinkDistance,
		MaxSpeed:        f.MaxSpeed,
		MinRadius:       f.MinRadius,
		MaxRadius:       f.MaxRadius,
		MinOpacity:      f.MinOpacity,
		MaxOpacity:      f.MaxOpacity,
		LinkAlpha:       f.LinkAlpha,
		LinkWidth:       f.LinkWidth,
		Ink:             ink,
	}, nil
}

// ParseInk parses a "#rrggbb" color into an opaque ink.
func ParseInk(hex string) (field.Ink, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return field.Ink{}, err
	}
	r, g, b := c.RGB255()
	return field.Ink{R: r, G: g, B: b, A: 1}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
