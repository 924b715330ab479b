package config

import "sort"

var Presets = map[string]*Config{
	"two_link": {
		Name: "two_link", Lengths: []float64{1, 0.2}, Angles: []float64{45, 60}, Units: UnitsDegrees, Dimension: 2,
		Style: StyleConfig{LinkColor: "blue", JointColor: "red", MarkerSize: 6, LinkWidth: 2, ShowGrid: true, Title: "two link arm"},
	},
	"three_link": {
		Name: "three_link", Lengths: []float64{3, 2, 1.5}, Angles: []float64{30, 45, -60}, Units: UnitsDegrees, Dimension: 2,
		Style: StyleConfig{LinkColor: "green", JointColor: "black", MarkerSize: 10, LinkWidth: 8, ShowGrid: true, Title: "three link arm"},
	},
	"three_link_3d": {
		Name: "three_link_3d", Lengths: []float64{3, 2, 1.5}, Angles: []float64{30, 45, -60}, Units: UnitsDegrees, Dimension: 3,
		Style: StyleConfig{LinkColor: "green", JointColor: "black", MarkerSize: 10, LinkWidth: 8, ShowGrid: true, Title: "three link arm 3d"},
	},
	"flat": {
		Name: "flat", Lengths: []float64{1, 1, 1, 1}, Angles: []float64{0, 0, 0, 0}, Units: UnitsRadians, Dimension: 2,
		Style: StyleConfig{LinkColor: "gray", JointColor: "black", MarkerSize: 8, LinkWidth: 4, ShowGrid: true, Title: "flat chain"},
	},
	"scara": {
		Name: "scara", Lengths: []float64{100, 100}, Angles: []float64{60, -90}, Units: UnitsDegrees, Dimension: 2,
		Style: StyleConfig{LinkColor: "orange", JointColor: "navy", MarkerSize: 10, LinkWidth: 6, ShowGrid: false, Title: "scara"},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
