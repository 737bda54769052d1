package plant

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Organ colors that are not user configurable.
var (
	StemColor      = mustHex("#8b5a2b")
	LeafColor      = mustHex("#2d5a27")
	PetioleColor   = mustHex("#2d6a27")
	StamenColor    = mustHex("#ffcc00")
	HighlightColor = mustHex("#ffcc00")
	GrassColor     = mustHex("#558b2f")
	SoilColor      = mustHex("#8d6e63")
	SkyColor       = mustHex("#87ceeb")
)

// ParseColor converts a "#rrggbb" string to an opaque RGBA value.
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	return toRGBA(c), nil
}

// colorOr parses s, returning fallback when it is empty or malformed.
func colorOr(s string, fallback color.RGBA) color.RGBA {
	if s == "" {
		return fallback
	}
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func mustHex(s string) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
