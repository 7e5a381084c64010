package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/obliquity/internal/discrepancy"
)

const (
	DefaultObliquity     = 23.4
	DefaultNumDays       = 16
	DefaultOrbitPeriod   = 4 * time.Second
	DefaultLineThreshold = 100
	DefaultLineTarget    = 32
	DefaultTheme         = "cyberpunk"
	DefaultFPS           = 60
	DefaultDataDir       = "runs"
	DefaultCacheSize     = 64

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "OBLIQUITY_"
)

var (
	ErrInvalidObliquity = errors.New("config: obliquity must be within [0, 180] degrees")
	ErrInvalidPeriod    = errors.New("config: orbit period must be positive")
	ErrInvalidThinning  = errors.New("config: line threshold and target must be positive")
	ErrInvalidFPS       = errors.New("config: fps must be within [1, 240]")
)

type Config struct {
	Obliquity     float64       `yaml:"obliquity" env:"DEGREES"`
	NumDays       int           `yaml:"num_days" env:"NUM_DAYS"`
	CurrentDay    int           `yaml:"current_day" env:"CURRENT_DAY"`
	OrbitPeriod   time.Duration `yaml:"orbit_period" env:"ORBIT_PERIOD"`
	LineThreshold int           `yaml:"line_threshold" env:"LINE_THRESHOLD"`
	LineTarget    int           `yaml:"line_target" env:"LINE_TARGET"`
	Theme         string        `yaml:"theme" env:"THEME"`
	FPS           int           `yaml:"fps" env:"FPS"`
	DataDir       string        `yaml:"data_dir" env:"DATA_DIR"`
	CacheSize     int           `yaml:"cache_size" env:"CACHE_SIZE"`
}

func DefaultConfig() *Config {
	return &Config{
		Obliquity:     DefaultObliquity,
		NumDays:       DefaultNumDays,
		OrbitPeriod:   DefaultOrbitPeriod,
		LineThreshold: DefaultLineThreshold,
		LineTarget:    DefaultLineTarget,
		Theme:         DefaultTheme,
		FPS:           DefaultFPS,
		DataDir:       DefaultDataDir,
		CacheSize:     DefaultCacheSize,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from OBLIQUITY_* variables. A nil environ reads
// the process environment.
func (c *Config) ApplyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	return nil
}

// Validate checks the ranges the rest of the program relies on. CurrentDay is
// not checked; the scene clamps it.
func (c *Config) Validate() error {
	if math.IsNaN(c.Obliquity) || c.Obliquity < 0 || c.Obliquity > 180 {
		return fmt.Errorf("%w, got %g", ErrInvalidObliquity, c.Obliquity)
	}
	if err := discrepancy.ValidateDayCount(c.NumDays); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.OrbitPeriod <= 0 {
		return fmt.Errorf("%w, got %s", ErrInvalidPeriod, c.OrbitPeriod)
	}
	if c.LineThreshold <= 0 || c.LineTarget <= 0 {
		return ErrInvalidThinning
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("%w, got %d", ErrInvalidFPS, c.FPS)
	}
	return nil
}
