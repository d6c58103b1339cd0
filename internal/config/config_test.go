package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/spirograph/internal/dynamo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 150.0, cfg.Gear.StatorRadius)
	assert.Equal(t, 52.0, cfg.Gear.RotorRadius)
	assert.Equal(t, 70.0, cfg.Gear.PenOffset)
	assert.True(t, cfg.Playback.Dt > 0, "dt should be positive")
	assert.NoError(t, cfg.Validate())
}

func TestSubSteps(t *testing.T) {
	p := Playback{StepsPerTick: 20, Speed: 3}
	assert.Equal(t, 60, p.SubSteps())

	p.Speed = 0
	assert.Equal(t, 20, p.SubSteps())
}

func TestSetSpeedClamps(t *testing.T) {
	var p Playback
	p.SetSpeed(-4)
	assert.Equal(t, 1, p.Speed)
	p.SetSpeed(MaxSpeed + 10)
	assert.Equal(t, MaxSpeed, p.Speed)
}

func TestRadiusEditClearsRatioHint(t *testing.T) {
	cfg := GetPreset("classic")
	require.NotNil(t, cfg)
	require.NotNil(t, cfg.Gear.Ratio)

	cfg.Gear.SetRotorRadius(50)
	assert.Nil(t, cfg.Gear.Ratio)

	cfg = GetPreset("classic")
	cfg.Gear.SetStatorRadius(140)
	assert.Nil(t, cfg.Gear.Ratio)

	// The preset table itself is untouched.
	assert.NotNil(t, Presets["classic"].Ratio)
}

func TestGearValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Gear)
	}{
		{"zero stator", func(g *Gear) { g.StatorRadius = 0 }},
		{"negative rotor", func(g *Gear) { g.RotorRadius = -1 }},
		{"negative offset", func(g *Gear) { g.PenOffset = -0.5 }},
		{"zero stator aspect", func(g *Gear) { g.StatorAspect = 0 }},
		{"zero rotor aspect", func(g *Gear) { g.RotorAspect = 0 }},
		{"bad hint", func(g *Gear) { g.Ratio = &Fraction{Num: 1, Den: 0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := DefaultGear()
			tt.mutate(&g)
			err := g.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, dynamo.ErrParameterBounds)
		})
	}
}

func TestZeroOffsetIsValid(t *testing.T) {
	g := DefaultGear()
	g.PenOffset = 0
	assert.NoError(t, g.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gear.yaml")
	cfg := GetPreset("lens")
	cfg.Pen.Color = "#ff8800"
	cfg.Playback.Speed = 4

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gear:\n  stator_radius: 120\n  rotor_radius: 40\n  pen_offset: 30\n  stator_aspect: 1\n  rotor_aspect: 1\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120.0, cfg.Gear.StatorRadius)
	assert.Equal(t, DefaultDt, cfg.Playback.Dt)
	assert.Equal(t, DefaultTheme, cfg.Playback.Theme)
}

func TestLoadRejectsInvalidGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gear:\n  rotor_radius: -3\n"), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, dynamo.ErrParameterBounds)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"named pen color", func(c *Config) { c.Pen.Color = "red" }},
		{"short hex without hash", func(c *Config) { c.Pen.Color = "ff0000" }},
		{"bad hex digit", func(c *Config) { c.Pen.Color = "#ff00zz" }},
		{"five digit hex", func(c *Config) { c.Pen.Color = "#ff000" }},
		{"unknown theme", func(c *Config) { c.Playback.Theme = "solarized" }},
		{"zero dt", func(c *Config) { c.Playback.Dt = 0 }},
		{"negative pen width", func(c *Config) { c.Pen.Width = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, dynamo.ErrParameterBounds)
		})
	}
}

func TestConfigValidateAcceptsColorsAndThemes(t *testing.T) {
	for _, col := range []string{"", "#fff", "#FF8800", "#0a0B0c"} {
		cfg := DefaultConfig()
		cfg.Pen.Color = col
		assert.NoError(t, cfg.Validate(), col)
	}
	for _, name := range []string{"", "dark", "light", "blueprint"} {
		cfg := DefaultConfig()
		cfg.Playback.Theme = name
		assert.NoError(t, cfg.Validate(), name)
	}
}

func TestLoadRejectsBadColorAndTheme(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"color.yaml": "pen:\n  color: red\n",
		"theme.yaml": "playback:\n  theme: solarized\n",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))

		_, err := Load(path)
		assert.ErrorIs(t, err, dynamo.ErrParameterBounds, name)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := GetPreset("classic")
	require.NotNil(t, cfg.Gear.Ratio)

	cfg.ApplyOverrides(0, 0, "")
	assert.NotNil(t, cfg.Gear.Ratio, "no overrides keeps the hint")
	assert.Equal(t, DefaultTheme, cfg.Playback.Theme)

	cfg.ApplyOverrides(0, 48, "light")
	assert.Equal(t, 48.0, cfg.Gear.RotorRadius)
	assert.Equal(t, Presets["classic"].StatorRadius, cfg.Gear.StatorRadius)
	assert.Nil(t, cfg.Gear.Ratio)
	assert.Equal(t, "light", cfg.Playback.Theme)
	assert.NoError(t, cfg.Validate())

	cfg = GetPreset("classic")
	cfg.ApplyOverrides(160, 0, "")
	assert.Equal(t, 160.0, cfg.Gear.StatorRadius)
	assert.Nil(t, cfg.Gear.Ratio)

	cfg.ApplyOverrides(-5, 0, "")
	assert.ErrorIs(t, cfg.Validate(), dynamo.ErrParameterBounds)
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	require.NotEmpty(t, names)
	for _, name := range names {
		cfg := GetPreset(name)
		require.NotNil(t, cfg, name)
		assert.NoError(t, cfg.Validate(), name)
	}
	assert.Nil(t, GetPreset("nonexistent"))
}
