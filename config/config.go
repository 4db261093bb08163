// Package config loads the tuning of the particle background.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"lockin/glyph"
	"lockin/particle"
	"lockin/viewport"
)

// Environment variables read by FromEnv
const (
	EnvConfig   = "LOCKIN_CONFIG"
	EnvWidth    = "LOCKIN_WIDTH"
	EnvHeight   = "LOCKIN_HEIGHT"
	EnvLogLevel = "LOCKIN_LOG_LEVEL"
	EnvWorkers  = "LOCKIN_WORKERS"
)

// ErrInvalid marks a configuration that failed validation.
var ErrInvalid = errors.New("config: invalid")

// Config holds every tunable of the app.
type Config struct {
	Window WindowConfig `yaml:"window"`

	// Breakpoint is the width below which the compact class applies
	Breakpoint int `yaml:"breakpoint"`

	// ResizeDebounce is how long a new size must hold before reseeding
	ResizeDebounce time.Duration `yaml:"resize_debounce"`

	Words     WordsConfig     `yaml:"words"`
	Compact   ClassConfig     `yaml:"compact"`
	Wide      ClassConfig     `yaml:"wide"`
	Field     FieldConfig     `yaml:"field"`
	Quotes    QuoteConfig     `yaml:"quotes"`
	Profiling ProfilingConfig `yaml:"profiling"`

	// CardDir is where exported goal cards are written
	CardDir string `yaml:"card_dir"`

	LogLevel string `yaml:"log_level"`
}

// WindowConfig sizes the initial window.
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// WordsConfig is the text the particles assemble into.
type WordsConfig struct {
	First  string `yaml:"first"`
	Second string `yaml:"second"`
}

// ClassConfig is the tuning that differs between compact and wide viewports.
type ClassConfig struct {
	BaseCount     float64 `yaml:"base_count"`
	FontSize      float64 `yaml:"font_size"`
	Spacing       float64 `yaml:"spacing"`
	Radius        float64 `yaml:"radius"`
	SizeMin       float64 `yaml:"size_min"`
	SizeSpan      float64 `yaml:"size_span"`
	AmplitudeMin  float64 `yaml:"amplitude_min"`
	AmplitudeSpan float64 `yaml:"amplitude_span"`
}

// FieldConfig is the tuning shared by both classes.
type FieldConfig struct {
	MinParticles    int     `yaml:"min_particles"`
	MaxParticles    int     `yaml:"max_particles"`
	ReferenceWidth  int     `yaml:"reference_width"`
	ReferenceHeight int     `yaml:"reference_height"`
	AttemptFactor   int     `yaml:"attempt_factor"`
	PixelTries      int     `yaml:"pixel_tries"`
	AlphaThreshold  uint8   `yaml:"alpha_threshold"`
	Strength        float64 `yaml:"strength"`
	RepelEase       float64 `yaml:"repel_ease"`
	ReturnEase      float64 `yaml:"return_ease"`
	SpeedMin        float64 `yaml:"speed_min"`
	SpeedSpan       float64 `yaml:"speed_span"`
	Workers         int     `yaml:"workers"`

	// Seed fixes the random source; 0 seeds from the clock
	Seed int64 `yaml:"seed"`
}

// QuoteConfig controls the quote panel.
type QuoteConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// ProfilingConfig controls CPU captures on frame rate drops.
type ProfilingConfig struct {
	Enabled      bool          `yaml:"enabled"`
	FPSThreshold float64       `yaml:"fps_threshold"`
	Duration     time.Duration `yaml:"duration"`
	Cooldown     time.Duration `yaml:"cooldown"`
	Dir          string        `yaml:"dir"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:     1024,
			Height:    768,
			Title:     "LockIn",
			Resizable: true,
		},
		Breakpoint:     viewport.DefaultBreakpoint,
		ResizeDebounce: viewport.DefaultDebounce,
		Words: WordsConfig{
			First:  glyph.FirstWord,
			Second: glyph.SecondWord,
		},
		Compact: ClassConfig{
			BaseCount:     particle.CompactBaseCount,
			FontSize:      glyph.CompactFontSize,
			Spacing:       glyph.CompactSpacing,
			Radius:        particle.CompactRadius,
			SizeMin:       particle.CompactSizeMin,
			SizeSpan:      particle.CompactSizeSpan,
			AmplitudeMin:  particle.CompactAmplitudeMin,
			AmplitudeSpan: particle.CompactAmplitudeSpan,
		},
		Wide: ClassConfig{
			BaseCount:     particle.WideBaseCount,
			FontSize:      glyph.WideFontSize,
			Spacing:       glyph.WideSpacing,
			Radius:        particle.WideRadius,
			SizeMin:       particle.WideSizeMin,
			SizeSpan:      particle.WideSizeSpan,
			AmplitudeMin:  particle.WideAmplitudeMin,
			AmplitudeSpan: particle.WideAmplitudeSpan,
		},
		Field: FieldConfig{
			MinParticles:    particle.MinParticles,
			MaxParticles:    particle.MaxParticles,
			ReferenceWidth:  1920,
			ReferenceHeight: 1080,
			AttemptFactor:   particle.AttemptFactor,
			PixelTries:      particle.PixelTries,
			AlphaThreshold:  particle.AlphaThreshold,
			Strength:        particle.RepulsionStrength,
			RepelEase:       particle.RepelEase,
			ReturnEase:      particle.ReturnEase,
			SpeedMin:        particle.SpeedMin,
			SpeedSpan:       particle.SpeedSpan,
			Workers:         0,
		},
		Quotes: QuoteConfig{
			Interval: 20 * time.Second,
		},
		Profiling: ProfilingConfig{
			FPSThreshold: 30,
			Duration:     5 * time.Second,
			Cooldown:     30 * time.Second,
			Dir:          ".",
		},
		CardDir:  ".",
		LogLevel: "info",
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv builds the configuration from LOCKIN_CONFIG (if set) and the
// individual LOCKIN_* overrides.
func FromEnv() (Config, error) {
	cfg := Default()
	if path := GetEnv(EnvConfig, ""); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvWidth, &cfg.Window.Width},
		{EnvHeight, &cfg.Window.Height},
		{EnvWorkers, &cfg.Field.Workers},
	}
	for _, v := range ints {
		raw := GetEnv(v.key, "")
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s=%q: %w: %v", v.key, raw, ErrInvalid, err)
		}
		*v.dst = n
	}
	cfg.LogLevel = GetEnv(EnvLogLevel, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Validate rejects tuning the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window %dx%d", c.Window.Width, c.Window.Height)
	check(c.Breakpoint > 0, "breakpoint %d", c.Breakpoint)
	check(c.ResizeDebounce >= 0, "resize_debounce %v", c.ResizeDebounce)
	check(c.Words.First != "" && c.Words.Second != "", "words %q %q", c.Words.First, c.Words.Second)

	f := c.Field
	check(f.MinParticles > 0 && f.MinParticles <= f.MaxParticles, "particle bounds [%d, %d]", f.MinParticles, f.MaxParticles)
	check(f.ReferenceWidth > 0 && f.ReferenceHeight > 0, "reference %dx%d", f.ReferenceWidth, f.ReferenceHeight)
	check(f.AttemptFactor > 0, "attempt_factor %d", f.AttemptFactor)
	check(f.PixelTries > 0, "pixel_tries %d", f.PixelTries)
	check(f.RepelEase > 0 && f.RepelEase <= 1, "repel_ease %v", f.RepelEase)
	check(f.ReturnEase > 0 && f.ReturnEase <= 1, "return_ease %v", f.ReturnEase)
	check(f.SpeedMin >= 0 && f.SpeedSpan >= 0, "speed %v+%v", f.SpeedMin, f.SpeedSpan)
	check(f.Workers >= 0, "workers %d", f.Workers)

	for name, cc := range map[string]ClassConfig{"compact": c.Compact, "wide": c.Wide} {
		check(cc.BaseCount > 0, "%s.base_count %v", name, cc.BaseCount)
		check(cc.FontSize > 0, "%s.font_size %v", name, cc.FontSize)
		check(cc.Spacing >= 0, "%s.spacing %v", name, cc.Spacing)
		check(cc.Radius > 0, "%s.radius %v", name, cc.Radius)
		check(cc.SizeMin > 0 && cc.SizeSpan >= 0, "%s.size %v+%v", name, cc.SizeMin, cc.SizeSpan)
		check(cc.AmplitudeMin >= 0 && cc.AmplitudeSpan >= 0, "%s.amplitude %v+%v", name, cc.AmplitudeMin, cc.AmplitudeSpan)
	}

	check(c.Quotes.Interval > 0, "quotes.interval %v", c.Quotes.Interval)
	if c.Profiling.Enabled {
		check(c.Profiling.FPSThreshold > 0, "profiling.fps_threshold %v", c.Profiling.FPSThreshold)
		check(c.Profiling.Duration > 0, "profiling.duration %v", c.Profiling.Duration)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, fmt.Errorf("%w: log_level: %v", ErrInvalid, err))
	}

	return errors.Join(errs...)
}

func (c Config) class(compact bool) ClassConfig {
	if compact {
		return c.Compact
	}
	return c.Wide
}

// FieldParams converts the tuning of one device class for particle.Field.
func (c Config) FieldParams(compact bool) particle.Params {
	cc := c.class(compact)
	p := particle.DefaultParams(compact)
	p.BaseCount = cc.BaseCount
	p.ReferenceArea = float64(c.Field.ReferenceWidth * c.Field.ReferenceHeight)
	p.MinCount = c.Field.MinParticles
	p.MaxCount = c.Field.MaxParticles
	p.AttemptFactor = c.Field.AttemptFactor
	p.PixelTries = c.Field.PixelTries
	p.AlphaThreshold = c.Field.AlphaThreshold
	p.SizeMin = cc.SizeMin
	p.SizeSpan = cc.SizeSpan
	p.AmplitudeMin = cc.AmplitudeMin
	p.AmplitudeSpan = cc.AmplitudeSpan
	p.SpeedMin = c.Field.SpeedMin
	p.SpeedSpan = c.Field.SpeedSpan
	p.Radius = cc.Radius
	p.Strength = c.Field.Strength
	p.RepelEase = c.Field.RepelEase
	p.ReturnEase = c.Field.ReturnEase
	p.Workers = c.Field.Workers
	return p
}

// GlyphLayout returns the text layout of one device class.
func (c Config) GlyphLayout(compact bool) glyph.Layout {
	cc := c.class(compact)
	return glyph.Layout{FontSize: cc.FontSize, Spacing: cc.Spacing}
}

// Sampler builds a glyph sampler with the configured words and layouts.
func (c Config) Sampler() *glyph.Sampler {
	s := glyph.NewSampler()
	s.First = c.Words.First
	s.Second = c.Words.Second
	s.Compact = c.GlyphLayout(true)
	s.Wide = c.GlyphLayout(false)
	return s
}

// ViewportOptions returns controller options; the caller adds the resizer.
func (c Config) ViewportOptions(logger *log.Logger) viewport.Options {
	return viewport.Options{
		Breakpoint: c.Breakpoint,
		Debounce:   c.ResizeDebounce,
		Params:     c.FieldParams,
		Logger:     logger,
	}
}

// Level parses LogLevel for charmbracelet/log.
func (c Config) Level() (log.Level, error) {
	return log.ParseLevel(c.LogLevel)
}
