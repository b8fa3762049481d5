// Package config provides configuration loading and access for the particle text renderer.
package config

import (
	_ "embed"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all renderer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Text      TextConfig      `yaml:"text"`
	Particles ParticlesConfig `yaml:"particles"`
	Animation AnimationConfig `yaml:"animation"`
	Theme     ThemeConfig     `yaml:"theme"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Output    OutputConfig    `yaml:"output"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TargetFPS int  `yaml:"target_fps"`
	Resizable bool `yaml:"resizable"`
}

// TextConfig holds the string and its responsive sizing.
type TextConfig struct {
	Value        string  `yaml:"value"`
	FontFamily   string  `yaml:"font_family"`   // Registered family name or path to a TTF/OTF file
	FontFraction float64 `yaml:"font_fraction"` // Font size as percent of viewport width
	MinFontSize  float64 `yaml:"min_font_size"`
	MaxFontSize  float64 `yaml:"max_font_size"`
	Padding      float64 `yaml:"padding"` // Surface padding on every side
}

// ParticlesConfig holds particle population and lifetime parameters.
type ParticlesConfig struct {
	Count             int     `yaml:"count"`               // Target count at the reference area
	Size              float64 `yaml:"size"`                // Particle size scale; sizes are drawn from [0.5, 0.5+size)
	ReferenceWidth    float64 `yaml:"reference_width"`     // Reference area width for density scaling
	ReferenceHeight   float64 `yaml:"reference_height"`    // Reference area height for density scaling
	AlphaThreshold    uint8   `yaml:"alpha_threshold"`     // Mask alpha must exceed this to anchor a particle
	MaxSampleAttempts int     `yaml:"max_sample_attempts"` // Rejection sampling bound
	LifeMin           float64 `yaml:"life_min"`            // Frames
	LifeMax           float64 `yaml:"life_max"`            // Frames (exclusive)
	Ease              float64 `yaml:"ease"`                // Fraction of remaining distance covered per frame
	TimeStep          float64 `yaml:"time_step"`           // Animation time advance per frame
}

// AnimationConfig holds animation toggles.
type AnimationConfig struct {
	Enabled bool `yaml:"enabled"`
}

// ThemeConfig holds named theme property sets.
// Each set maps a property name (e.g. "--primary") to an "H S% L%" string.
type ThemeConfig struct {
	Active string                       `yaml:"active"`
	Themes map[string]map[string]string `yaml:"themes"`
}

// TerminalConfig holds terminal frontend parameters.
type TerminalConfig struct {
	CellWidth float64 `yaml:"cell_width"` // Virtual viewport units per terminal column
	TargetFPS int     `yaml:"target_fps"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Frames per stats window
	PerfWindow  int `yaml:"perf_window"`  // Frames in the rolling perf window
}

// OutputConfig holds headless output parameters.
type OutputConfig struct {
	FrameInterval int `yaml:"frame_interval"` // Save a PNG every N frames (0 = never)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ReferenceArea float64  // ReferenceWidth * ReferenceHeight
	ThemeNames    []string // Sorted theme names, for cycling
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the renderer cannot run with.
func (c *Config) validate() error {
	if c.Text.MinFontSize <= 0 || c.Text.MaxFontSize < c.Text.MinFontSize {
		return fmt.Errorf("invalid font size range [%v, %v]", c.Text.MinFontSize, c.Text.MaxFontSize)
	}
	if c.Text.Padding < 0 {
		return fmt.Errorf("invalid padding %v", c.Text.Padding)
	}
	if c.Particles.Count < 0 {
		return fmt.Errorf("invalid particle count %d", c.Particles.Count)
	}
	if c.Particles.LifeMax <= c.Particles.LifeMin || c.Particles.LifeMin <= 0 {
		return fmt.Errorf("invalid particle life range [%v, %v)", c.Particles.LifeMin, c.Particles.LifeMax)
	}
	if c.Particles.ReferenceWidth <= 0 || c.Particles.ReferenceHeight <= 0 {
		return fmt.Errorf("invalid reference area %vx%v", c.Particles.ReferenceWidth, c.Particles.ReferenceHeight)
	}
	if c.Particles.MaxSampleAttempts < 1 {
		return fmt.Errorf("invalid max sample attempts %d", c.Particles.MaxSampleAttempts)
	}
	if c.Theme.Active != "" {
		if _, ok := c.Theme.Themes[c.Theme.Active]; !ok {
			return fmt.Errorf("active theme %q is not defined", c.Theme.Active)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ReferenceArea = c.Particles.ReferenceWidth * c.Particles.ReferenceHeight

	c.Derived.ThemeNames = sortedKeys(c.Theme.Themes)
	if c.Theme.Active == "" && len(c.Derived.ThemeNames) > 0 {
		c.Theme.Active = c.Derived.ThemeNames[0]
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func sortedKeys(m map[string]map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
