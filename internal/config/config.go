package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/san-kum/spirograph/internal/dynamo"
	"github.com/san-kum/spirograph/internal/theme"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStatorRadius = 150.0
	DefaultRotorRadius  = 52.0
	DefaultPenOffset    = 70.0
	DefaultPenWidth     = 1.5
	DefaultDt           = 0.002
	DefaultStepsPerTick = 20
	DefaultTheme        = "dark"
	MaxSpeed            = 50
)

type Config struct {
	Gear     Gear     `yaml:"gear"`
	Pen      Pen      `yaml:"pen"`
	Playback Playback `yaml:"playback"`
}

// Gear describes the stator/rotor pair. The stator is the ellipse with
// semi-axes (R·StatorAspect, R); the rotor has semi-axes (r, r·RotorAspect).
type Gear struct {
	StatorRadius float64   `yaml:"stator_radius"`
	RotorRadius  float64   `yaml:"rotor_radius"`
	PenOffset    float64   `yaml:"pen_offset"`
	StatorAspect float64   `yaml:"stator_aspect"`
	RotorAspect  float64   `yaml:"rotor_aspect"`
	Ratio        *Fraction `yaml:"ratio,omitempty"`
}

// Fraction is a display hint for the rotor/stator ratio, e.g. 26/75.
type Fraction struct {
	Num int `yaml:"num"`
	Den int `yaml:"den"`
}

func (f Fraction) String() string { return fmt.Sprintf("%d/%d", f.Num, f.Den) }

func (f Fraction) Float() float64 {
	if f.Den == 0 {
		return 0
	}
	return float64(f.Num) / float64(f.Den)
}

type Pen struct {
	Color string  `yaml:"color"`
	Width float64 `yaml:"width"`
}

type Playback struct {
	Playing      bool    `yaml:"playing"`
	Speed        int     `yaml:"speed"`
	Dt           float64 `yaml:"dt"`
	StepsPerTick int     `yaml:"steps_per_tick"`
	ShowGears    bool    `yaml:"show_gears"`
	Theme        string  `yaml:"theme"`
}

// SubSteps is the number of fixed-size engine steps performed per tick.
func (p Playback) SubSteps() int {
	speed := p.Speed
	if speed < 1 {
		speed = 1
	}
	return p.StepsPerTick * speed
}

func DefaultGear() Gear {
	return Gear{
		StatorRadius: DefaultStatorRadius,
		RotorRadius:  DefaultRotorRadius,
		PenOffset:    DefaultPenOffset,
		StatorAspect: 1,
		RotorAspect:  1,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Gear: DefaultGear(),
		Pen:  Pen{Width: DefaultPenWidth},
		Playback: Playback{
			Playing:      true,
			Speed:        1,
			Dt:           DefaultDt,
			StepsPerTick: DefaultStepsPerTick,
			ShowGears:    true,
			Theme:        DefaultTheme,
		},
	}
}

// SetStatorRadius edits R directly and drops the ratio hint, which no
// longer describes the pair.
func (g *Gear) SetStatorRadius(r float64) {
	g.StatorRadius = r
	g.Ratio = nil
}

func (g *Gear) SetRotorRadius(r float64) {
	g.RotorRadius = r
	g.Ratio = nil
}

func (g Gear) Validate() error {
	switch {
	case !(g.StatorRadius > 0):
		return fmt.Errorf("stator radius %g: %w", g.StatorRadius, dynamo.ErrParameterBounds)
	case !(g.RotorRadius > 0):
		return fmt.Errorf("rotor radius %g: %w", g.RotorRadius, dynamo.ErrParameterBounds)
	case !(g.PenOffset >= 0):
		return fmt.Errorf("pen offset %g: %w", g.PenOffset, dynamo.ErrParameterBounds)
	case !(g.StatorAspect > 0):
		return fmt.Errorf("stator aspect %g: %w", g.StatorAspect, dynamo.ErrParameterBounds)
	case !(g.RotorAspect > 0):
		return fmt.Errorf("rotor aspect %g: %w", g.RotorAspect, dynamo.ErrParameterBounds)
	}
	if g.Ratio != nil && (g.Ratio.Num <= 0 || g.Ratio.Den <= 0) {
		return fmt.Errorf("ratio hint %s: %w", g.Ratio, dynamo.ErrParameterBounds)
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Gear.Validate(); err != nil {
		return err
	}
	if !(c.Playback.Dt > 0) {
		return fmt.Errorf("dt must be positive, got %g: %w", c.Playback.Dt, dynamo.ErrParameterBounds)
	}
	if c.Playback.StepsPerTick < 1 {
		return fmt.Errorf("steps per tick must be at least 1, got %d: %w", c.Playback.StepsPerTick, dynamo.ErrParameterBounds)
	}
	if c.Pen.Width < 0 {
		return fmt.Errorf("pen width %g: %w", c.Pen.Width, dynamo.ErrParameterBounds)
	}
	if c.Pen.Color != "" && !hexColor.MatchString(c.Pen.Color) {
		return fmt.Errorf("pen color %q is not #rgb or #rrggbb: %w", c.Pen.Color, dynamo.ErrParameterBounds)
	}
	if !knownTheme(c.Playback.Theme) {
		return fmt.Errorf("unknown theme %q (have %v): %w", c.Playback.Theme, theme.Names(), dynamo.ErrParameterBounds)
	}
	return nil
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// knownTheme accepts an empty name, which renders with the default theme.
func knownTheme(name string) bool {
	if name == "" {
		return true
	}
	for _, n := range theme.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// ApplyOverrides layers command-line edits on top of a loaded config. Zero
// radii and an empty theme leave the loaded values alone. Radius edits go
// through the Gear setters so a stale ratio hint is dropped.
func (c *Config) ApplyOverrides(statorR, rotorR float64, themeName string) {
	if statorR != 0 {
		c.Gear.SetStatorRadius(statorR)
	}
	if rotorR != 0 {
		c.Gear.SetRotorRadius(rotorR)
	}
	if themeName != "" {
		c.Playback.Theme = themeName
	}
}

// SetSpeed clamps the multiplier to [1, MaxSpeed].
func (p *Playback) SetSpeed(speed int) {
	p.Speed = max(1, min(speed, MaxSpeed))
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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
