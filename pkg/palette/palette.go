package palette

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is a packed 0xRRGGBB color.
type RGB uint32

// Fixed scene colors.
const (
	Sky        RGB = 0x44BEE4
	Ground     RGB = 0x005500
	Foundation RGB = 0xA9A9A9
	Building   RGB = 0xAA4A44
	Street     RGB = 0x000000
	White      RGB = 0xFFFFFF
)

// Pack builds an RGB from 8-bit channels.
func Pack(r, g, b uint8) RGB {
	return RGB(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Channels returns the red, green and blue components.
func (c RGB) Channels() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	r, g, b := c.Channels()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hex()
}

func (c RGB) String() string {
	return c.Hex()
}

// ParseHex parses "#rrggbb" (or the "#rgb" shorthand) into a packed color.
func ParseHex(s string) (RGB, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("parsing color %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return Pack(r, g, b), nil
}

// Gradient linearly interpolates each channel between Start and End.
type Gradient struct {
	Start RGB `json:"start"`
	End   RGB `json:"end"`
}

// DefaultGradient runs from light gray to near white.
var DefaultGradient = Gradient{Start: 0xD3D3D3, End: 0xEEEEEE}

// At returns the color at percentage in [0,100]. Each channel is
// floor(start + percentage/100 * (end - start)). Out-of-range input is not
// clamped.
func (g Gradient) At(percentage float64) RGB {
	sr, sg, sb := g.Start.Channels()
	er, eg, eb := g.End.Channels()
	t := percentage / 100
	return Pack(
		lerpChannel(sr, er, t),
		lerpChannel(sg, eg, t),
		lerpChannel(sb, eb, t),
	)
}

func lerpChannel(start, end uint8, t float64) uint8 {
	return uint8(math.Floor(float64(start) + t*(float64(end)-float64(start))))
}
