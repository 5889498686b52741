package render

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// LineHeight is the vertical advance of overlay text in pixels.
const LineHeight = 10

var overlayFont = &proggy.TinySZ8pt7b

// Overlay draws 2D text and panels over a rendered frame.
type Overlay struct {
	img *image.RGBA
}

var _ drivers.Displayer = (*Overlay)(nil)

func NewOverlay(img *image.RGBA) *Overlay { return &Overlay{img: img} }

func (o *Overlay) Size() (x, y int16) {
	if o.img == nil {
		return 0, 0
	}
	b := o.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (o *Overlay) SetPixel(x, y int16, c color.RGBA) {
	if o.img == nil {
		return
	}
	o.blend(int(x), int(y), c)
}

func (o *Overlay) Display() error { return nil }

// Text draws one line with its top-left corner at (x, y).
func (o *Overlay) Text(x, y int, s string, c Color) {
	// tinyfont positions text by its baseline.
	tinyfont.WriteLine(o, overlayFont, int16(x), int16(y+LineHeight-2), s, c.ImageColor())
}

// TextWidth returns the rendered width of s in pixels.
func TextWidth(s string) int {
	_, w := tinyfont.LineWidth(overlayFont, s)
	return int(w)
}

// Panel fills a rectangle, blending by the color's alpha.
func (o *Overlay) Panel(r image.Rectangle, c Color) {
	if o.img == nil {
		return
	}
	r = r.Intersect(o.img.Bounds())
	cc := c.ImageColor()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			o.blend(x, y, cc)
		}
	}
}

func (o *Overlay) blend(x, y int, c color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(o.img.Bounds()) {
		return
	}
	off := o.img.PixOffset(x, y)
	p := o.img.Pix[off : off+4 : off+4]
	if c.A == 0xFF {
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 0xFF
		return
	}
	a := uint32(c.A)
	ia := 255 - a
	p[0] = uint8((uint32(c.R)*a + uint32(p[0])*ia) / 255)
	p[1] = uint8((uint32(c.G)*a + uint32(p[1])*ia) / 255)
	p[2] = uint8((uint32(c.B)*a + uint32(p[2])*ia) / 255)
	p[3] = 0xFF
}
