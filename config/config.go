// Package config provides configuration loading and access for the lattice.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every Validate violation.
var ErrInvalid = errors.New("invalid config")

// Config holds all lattice configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Noise     NoiseConfig     `yaml:"noise"`
	Influence InfluenceConfig `yaml:"influence"`
	Params    ParamsConfig    `yaml:"params"`
	Loop      LoopConfig      `yaml:"loop"`
	Scene     SceneConfig     `yaml:"scene"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`

	// Side panels are right-aligned with PanelMargin pixels around them.
	PanelWidth  int `yaml:"panel_width"`
	PanelMargin int `yaml:"panel_margin"`
}

// PanelX returns the left edge of a right-aligned side panel on a screen
// screenWidth pixels wide.
func (s ScreenConfig) PanelX(screenWidth int) int32 {
	return int32(screenWidth - s.PanelWidth - s.PanelMargin)
}

// GridConfig describes the instance lattice.
type GridConfig struct {
	XCount        int     `yaml:"x_count"`
	YCount        int     `yaml:"y_count"`
	ZCount        int     `yaml:"z_count"`
	CubeSize      float64 `yaml:"cube_size"`
	SpacingFactor float64 `yaml:"spacing_factor"` // spacing = cube_size * this
}

// NoiseConfig holds noise field parameters.
type NoiseConfig struct {
	Seed       int64   `yaml:"seed"`
	Basis      string  `yaml:"basis"` // perlin or simplex
	Amplitude  float64 `yaml:"amplitude"`
	Pivot      float64 `yaml:"pivot"`
	Octaves    int     `yaml:"octaves"`
	Lacunarity float64 `yaml:"lacunarity"`
	Gain       float64 `yaml:"gain"`
}

// InfluenceConfig holds pointer influence parameters.
type InfluenceConfig struct {
	MaxDistance   float64 `yaml:"max_distance"`
	ScaleByWeight bool    `yaml:"scale_by_weight"` // multiply scale factor by influence weight
}

// RangeConfig is a soft [min, max] bound for a tunable scalar.
type RangeConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// ParamsConfig holds the initial tunable parameters.
type ParamsConfig struct {
	Color0        [3]float64  `yaml:"color0"`
	Color1        [3]float64  `yaml:"color1"`
	Color2        [3]float64  `yaml:"color2"`
	TimeMul       float64     `yaml:"time_mul"`
	TexScale      float64     `yaml:"tex_scale"`
	TimeMulRange  RangeConfig `yaml:"time_mul_range"`
	TexScaleRange RangeConfig `yaml:"tex_scale_range"`
}

// LoopConfig holds frame loop settings.
type LoopConfig struct {
	DT                float64 `yaml:"dt"`                 // fixed step for headless runs
	ParallelThreshold int     `yaml:"parallel_threshold"` // instance count above which evaluation is parallel
	Workers           int     `yaml:"workers"`            // 0 = GOMAXPROCS
}

// SceneConfig holds presentation settings.
type SceneConfig struct {
	RotationSpeed        float64    `yaml:"rotation_speed"` // radians per frame about Y
	EnvironmentIntensity float64    `yaml:"environment_intensity"`
	Ground               [3]float64 `yaml:"ground"`
	BackgroundInner      [3]float64 `yaml:"background_inner"`
	BackgroundOuter      [3]float64 `yaml:"background_outer"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds of simulated time per window
	PerfWindow  int     `yaml:"perf_window"`  // frames averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Spacing       float64 // Grid.CubeSize * Grid.SpacingFactor
	HalfSize      float64 // Grid.CubeSize / 2
	InstanceCount int
	DT32          float32
	ScreenW32     float32
	ScreenH32     float32
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

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
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
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.ComputeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ComputeDerived calculates values derived from the loaded config.
// Call it again after changing fields in code.
func (c *Config) ComputeDerived() {
	c.Derived.Spacing = c.Grid.CubeSize * c.Grid.SpacingFactor
	c.Derived.HalfSize = c.Grid.CubeSize / 2
	c.Derived.InstanceCount = c.Grid.XCount * c.Grid.YCount * c.Grid.ZCount
	c.Derived.DT32 = float32(c.Loop.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// Validate reports every violation found, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Screen.PanelWidth <= 0 || c.Screen.PanelMargin < 0 {
		bad("screen panel needs positive width and non-negative margin, got %d/%d", c.Screen.PanelWidth, c.Screen.PanelMargin)
	}
	if c.Grid.XCount <= 0 || c.Grid.YCount <= 0 || c.Grid.ZCount <= 0 {
		bad("grid counts must be positive, got %dx%dx%d", c.Grid.XCount, c.Grid.YCount, c.Grid.ZCount)
	}
	if !positive(c.Grid.CubeSize) {
		bad("grid.cube_size must be positive, got %v", c.Grid.CubeSize)
	}
	if !positive(c.Grid.SpacingFactor) {
		bad("grid.spacing_factor must be positive, got %v", c.Grid.SpacingFactor)
	}
	if c.Noise.Basis != "perlin" && c.Noise.Basis != "simplex" {
		bad("noise.basis must be perlin or simplex, got %q", c.Noise.Basis)
	}
	if c.Noise.Octaves < 1 {
		bad("noise.octaves must be at least 1, got %d", c.Noise.Octaves)
	}
	if !positive(c.Influence.MaxDistance) {
		bad("influence.max_distance must be positive, got %v", c.Influence.MaxDistance)
	}
	if !positive(c.Params.TimeMul) {
		bad("params.time_mul must be positive, got %v", c.Params.TimeMul)
	}
	if !positive(c.Params.TexScale) {
		bad("params.tex_scale must be positive, got %v", c.Params.TexScale)
	}
	for i, col := range [][3]float64{c.Params.Color0, c.Params.Color1, c.Params.Color2} {
		for _, ch := range col {
			if ch < 0 || math.IsNaN(ch) || math.IsInf(ch, 0) {
				bad("params.color%d has invalid channel %v", i, ch)
				break
			}
		}
	}
	if c.Params.TimeMulRange.Min > c.Params.TimeMulRange.Max {
		bad("params.time_mul_range min > max")
	}
	if c.Params.TexScaleRange.Min > c.Params.TexScaleRange.Max {
		bad("params.tex_scale_range min > max")
	}
	if c.Loop.DT < 0 || math.IsNaN(c.Loop.DT) {
		bad("loop.dt must be non-negative, got %v", c.Loop.DT)
	}
	if c.Loop.Workers < 0 {
		bad("loop.workers must be non-negative, got %d", c.Loop.Workers)
	}

	return errors.Join(errs...)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
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
