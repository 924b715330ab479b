package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/armkin/internal/kinematics"
	"gopkg.in/yaml.v3"
)

const (
	UnitsRadians = "rad"
	UnitsDegrees = "deg"

	DefaultMarkerSize = 10.0
	DefaultLinkWidth  = 8.0
	DefaultLinkColor  = "green"
	DefaultJointColor = "black"
)

var ErrUnknownUnits = errors.New("config: unknown angle units")

// Config describes one arm and how it should be drawn.
type Config struct {
	Name      string      `yaml:"name"`
	Lengths   []float64   `yaml:"lengths"`
	Angles    []float64   `yaml:"angles"`
	Units     string      `yaml:"units"`
	Dimension int         `yaml:"dimension"`
	Style     StyleConfig `yaml:"style"`
}

type StyleConfig struct {
	LinkColor  string  `yaml:"link_color"`
	JointColor string  `yaml:"joint_color"`
	MarkerSize float64 `yaml:"marker_size"`
	LinkWidth  float64 `yaml:"link_width"`
	ShowGrid   bool    `yaml:"show_grid"`
	Title      string  `yaml:"title"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:      "arm",
		Lengths:   []float64{1, 1},
		Angles:    []float64{0, 0},
		Units:     UnitsRadians,
		Dimension: int(kinematics.Planar),
		Style:     DefaultStyle(),
	}
}

func DefaultStyle() StyleConfig {
	return StyleConfig{
		LinkColor:  DefaultLinkColor,
		JointColor: DefaultJointColor,
		MarkerSize: DefaultMarkerSize,
		LinkWidth:  DefaultLinkWidth,
		ShowGrid:   true,
	}
}

// Load reads a YAML file on top of DefaultConfig. Lists present in the
// file replace the defaults rather than merging with them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Lengths, cfg.Angles = nil, nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Lengths == nil && cfg.Angles == nil {
		def := DefaultConfig()
		cfg.Lengths, cfg.Angles = def.Lengths, def.Angles
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

// Clone returns a deep copy so presets are never mutated by callers.
func (c *Config) Clone() *Config {
	out := *c
	out.Lengths = append([]float64(nil), c.Lengths...)
	out.Angles = append([]float64(nil), c.Angles...)
	return &out
}

// Radians returns the joint angles converted from the configured units.
func (c *Config) Radians() ([]float64, error) {
	out := make([]float64, len(c.Angles))
	switch c.Units {
	case "", UnitsRadians:
		copy(out, c.Angles)
	case UnitsDegrees:
		for i, a := range c.Angles {
			out[i] = a * math.Pi / 180
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnits, c.Units)
	}
	return out, nil
}

func (c *Config) Dim() (kinematics.Dimension, error) {
	if c.Dimension == 0 {
		return kinematics.Planar, nil
	}
	d := kinematics.Dimension(c.Dimension)
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %d", kinematics.ErrUnknownDimension, c.Dimension)
	}
	return d, nil
}

// Validate checks the chain shape, units and dimension. Non-positive
// lengths are allowed through; the solver does not reject them.
func (c *Config) Validate() error {
	if err := kinematics.Validate(c.Lengths, c.Angles); err != nil {
		return err
	}
	if _, err := c.Radians(); err != nil {
		return err
	}
	_, err := c.Dim()
	return err
}

// NonPositiveLinks returns the indices of links with length <= 0.
func (c *Config) NonPositiveLinks() []int {
	var idx []int
	for i, l := range c.Lengths {
		if l <= 0 {
			idx = append(idx, i)
		}
	}
	return idx
}
