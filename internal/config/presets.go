package config

import "sort"

var Presets = map[string]Gear{
	"classic": {
		StatorRadius: 150, RotorRadius: 52, PenOffset: 70, StatorAspect: 1, RotorAspect: 1,
		Ratio: &Fraction{Num: 26, Den: 75},
	},
	"star": {
		StatorRadius: 150, RotorRadius: 60, PenOffset: 60, StatorAspect: 1, RotorAspect: 1,
		Ratio: &Fraction{Num: 2, Den: 5},
	},
	"rose": {
		StatorRadius: 150, RotorRadius: 90, PenOffset: 85, StatorAspect: 1, RotorAspect: 1,
		Ratio: &Fraction{Num: 3, Den: 5},
	},
	"tight": {
		StatorRadius: 150, RotorRadius: 17, PenOffset: 14, StatorAspect: 1, RotorAspect: 1,
	},
	"oval": {
		StatorRadius: 150, RotorRadius: 52, PenOffset: 70, StatorAspect: 0.7, RotorAspect: 1,
	},
	"egg": {
		StatorRadius: 150, RotorRadius: 48, PenOffset: 40, StatorAspect: 1, RotorAspect: 0.6,
	},
	"lens": {
		StatorRadius: 140, RotorRadius: 55, PenOffset: 65, StatorAspect: 0.8, RotorAspect: 0.75,
	},
}

// GetPreset returns a full config with the named gear, or nil.
func GetPreset(name string) *Config {
	g, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Gear = g
	if g.Ratio != nil {
		r := *g.Ratio
		cfg.Gear.Ratio = &r
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
