package stdimg

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

type colorState uint8

const (
	stateInvalid colorState = iota
	stateTransparent
	stateOpaque
)

// Color is a pixel value with exactly three states: invalid (the zero
// value), fully transparent, or opaque RGB. There is no partial alpha.
// Colors compare with ==; the transparent color is canonical.
type Color struct {
	r, g, b uint8
	state   colorState
}

var (
	Invalid     = Color{}
	Transparent = Color{state: stateTransparent}
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
)

// Exact and MaxSimilarity bound the colour similarity slider.
const (
	Exact         = 0.0
	MaxSimilarity = 0.30
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{r: r, g: g, b: b, state: stateOpaque}
}

// FromColor collapses any color.Color: alpha below half becomes Transparent,
// anything else becomes opaque with the un-premultiplied RGB. nil is Invalid.
func FromColor(c color.Color) Color {
	if c == nil {
		return Invalid
	}
	if k, ok := c.(Color); ok {
		return k
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A < 0x80 {
		return Transparent
	}
	return RGB(n.R, n.G, n.B)
}

func (c Color) IsValid() bool       { return c.state != stateInvalid }
func (c Color) IsTransparent() bool { return c.state == stateTransparent }
func (c Color) IsOpaque() bool      { return c.state == stateOpaque }

// Components returns the RGB triple; zero for non-opaque colors.
func (c Color) Components() (r, g, b uint8) {
	return c.r, c.g, c.b
}

// NRGBA implements the pixel representation used by Image.
func (c Color) NRGBA() color.NRGBA {
	if !c.IsOpaque() {
		return color.NRGBA{}
	}
	return color.NRGBA{R: c.r, G: c.g, B: c.b, A: 0xff}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func (c Color) String() string {
	switch c.state {
	case stateOpaque:
		return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
	case stateTransparent:
		return "transparent"
	default:
		return "invalid"
	}
}

// ProcessSimilarity turns a 0..1 colour similarity into a threshold on the
// squared euclidean RGB distance.
func ProcessSimilarity(colorSimilarity float64) int {
	return int(colorSimilarity * colorSimilarity * 255 * 255 * 3)
}

// IsSimilarTo reports whether c and other are within processedSimilarity
// (see ProcessSimilarity). A threshold of 0 means exact equality. Transparent
// is only ever similar to transparent.
func (c Color) IsSimilarTo(other Color, processedSimilarity int) bool {
	if processedSimilarity == 0 {
		return c == other
	}
	if !c.IsValid() || !other.IsValid() {
		return false
	}
	if c.IsTransparent() || other.IsTransparent() {
		return c.IsTransparent() && other.IsTransparent()
	}
	dr := int(c.r) - int(other.r)
	dg := int(c.g) - int(other.g)
	db := int(c.b) - int(other.b)
	return dr*dr+dg*dg+db*db <= processedSimilarity
}

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"brown":   "#a52a2a",
	"pink":    "#ffc0cb",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"maroon":  "#800000",
	"navy":    "#000080",
	"olive":   "#808000",
	"teal":    "#008080",
}

// ParseColor accepts "transparent", a basic color name, #rgb or #rrggbb.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Invalid, fmt.Errorf("empty color")
	}
	if s == "transparent" || s == "none" {
		return Transparent, nil
	}
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if s[0] != '#' {
		return Invalid, fmt.Errorf("unsupported color format: %s", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3: // #rgb
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6: // #rrggbb
	default:
		return Invalid, fmt.Errorf("unsupported hex color length: %d", len(hex))
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Invalid, fmt.Errorf("parse color %q: %w", s, err)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
