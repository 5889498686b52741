package render

import "image/color"

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// RGBF builds an opaque color from linear 0..1 channels.
func RGBF(r, g, b float32) Color {
	return Color{R: unit8(r), G: unit8(g), B: unit8(b), A: 0xFF}
}

// Floats returns the channels in 0..1.
func (c Color) Floats() (r, g, b float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

// ImageColor converts to the image/color type used by text drawing.
func (c Color) ImageColor() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func unit8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xFF
	}
	return uint8(v*255 + 0.5)
}
