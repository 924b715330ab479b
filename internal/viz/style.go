package viz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/armkin/internal/config"
)

var ErrInvalidColor = errors.New("viz: invalid color")

var namedColors = map[string]string{
	"b":       "#0000ff",
	"blue":    "#0000ff",
	"g":       "#008000",
	"green":   "#008000",
	"r":       "#ff0000",
	"red":     "#ff0000",
	"c":       "#00bfbf",
	"cyan":    "#00bfbf",
	"m":       "#bf00bf",
	"magenta": "#bf00bf",
	"y":       "#bfbf00",
	"yellow":  "#bfbf00",
	"k":       "#000000",
	"black":   "#000000",
	"w":       "#ffffff",
	"white":   "#ffffff",
	"gray":    "#808080",
	"grey":    "#808080",
	"orange":  "#ffa500",
	"navy":    "#000080",
	"purple":  "#800080",
}

// Palette is the color order used when cycling colors interactively.
var Palette = []string{"green", "blue", "red", "orange", "purple", "cyan", "magenta", "yellow", "black", "white"}

// ParseColor accepts a hex string ("#rrggbb") or a basic color name.
func ParseColor(s string) (colorful.Color, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[key]; ok {
		key = hex
	}
	c, err := colorful.Hex(key)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}

// Style holds drawing parameters for one render. Style is a value: the
// With methods return modified copies and never touch the receiver.
type Style struct {
	LinkColor  string
	JointColor string
	MarkerSize float64
	LinkWidth  float64
	ShowGrid   bool
	Title      string
}

func DefaultStyle() Style {
	return StyleFromConfig(config.DefaultStyle())
}

// StyleFromConfig fills zero sizes and empty colors with defaults.
func StyleFromConfig(c config.StyleConfig) Style {
	s := Style{
		LinkColor:  c.LinkColor,
		JointColor: c.JointColor,
		MarkerSize: c.MarkerSize,
		LinkWidth:  c.LinkWidth,
		ShowGrid:   c.ShowGrid,
		Title:      c.Title,
	}
	if s.LinkColor == "" {
		s.LinkColor = config.DefaultLinkColor
	}
	if s.JointColor == "" {
		s.JointColor = config.DefaultJointColor
	}
	if s.MarkerSize <= 0 {
		s.MarkerSize = config.DefaultMarkerSize
	}
	if s.LinkWidth <= 0 {
		s.LinkWidth = config.DefaultLinkWidth
	}
	return s
}

func (s Style) Validate() error {
	if _, err := ParseColor(s.LinkColor); err != nil {
		return fmt.Errorf("link color: %w", err)
	}
	if _, err := ParseColor(s.JointColor); err != nil {
		return fmt.Errorf("joint color: %w", err)
	}
	if s.MarkerSize <= 0 || s.LinkWidth <= 0 {
		return fmt.Errorf("viz: marker size and link width must be positive")
	}
	return nil
}

// Link returns the parsed link color, falling back to the default.
func (s Style) Link() colorful.Color { return mustColor(s.LinkColor, config.DefaultLinkColor) }

// Joint returns the parsed joint color, falling back to the default.
func (s Style) Joint() colorful.Color { return mustColor(s.JointColor, config.DefaultJointColor) }

func (s Style) WithLinkColor(c string) Style {
	s.LinkColor = c
	return s
}

func (s Style) WithJointColor(c string) Style {
	s.JointColor = c
	return s
}

func (s Style) WithMarkerSize(v float64) Style {
	s.MarkerSize = v
	return s
}

func (s Style) WithLinkWidth(v float64) Style {
	s.LinkWidth = v
	return s
}

func (s Style) WithGrid(show bool) Style {
	s.ShowGrid = show
	return s
}

func (s Style) WithTitle(title string) Style {
	s.Title = title
	return s
}

func mustColor(s, fallback string) colorful.Color {
	if c, err := ParseColor(s); err == nil {
		return c
	}
	c, _ := ParseColor(fallback)
	return c
}

// NextColor returns the palette entry after current, wrapping around.
func NextColor(current string) string {
	for i, name := range Palette {
		if strings.EqualFold(name, current) {
			return Palette[(i+1)%len(Palette)]
		}
	}
	return Palette[0]
}
