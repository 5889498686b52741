package render

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// ErrSamples is returned for sample counts that are not 1, 4, 9 or 16.
var ErrSamples = errors.New("render: sample count must be 1, 4, 9 or 16")

// SupersampleFactor returns the per-axis scale for a multisample count.
func SupersampleFactor(samples int) (int, error) {
	switch samples {
	case 1:
		return 1, nil
	case 4:
		return 2, nil
	case 9:
		return 3, nil
	case 16:
		return 4, nil
	}
	return 0, fmt.Errorf("%w (got %d)", ErrSamples, samples)
}

// Frame owns the output image and, when multisampling, the larger image the
// scene is rasterized into before being resolved.
type Frame struct {
	factor int
	out    *image.RGBA
	hi     *image.RGBA
}

// NewFrame allocates a w×h frame with the given sample count.
func NewFrame(w, h, samples int) (*Frame, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: invalid frame size %dx%d", w, h)
	}
	factor, err := SupersampleFactor(samples)
	if err != nil {
		return nil, err
	}
	f := &Frame{
		factor: factor,
		out:    image.NewRGBA(image.Rect(0, 0, w, h)),
	}
	if factor > 1 {
		f.hi = image.NewRGBA(image.Rect(0, 0, w*factor, h*factor))
	}
	return f, nil
}

// Factor is the per-axis supersampling factor.
func (f *Frame) Factor() int { return f.factor }

// Image returns the resolved output of the last Render.
func (f *Frame) Image() *image.RGBA { return f.out }

// Render rasterizes s and resolves it into the output image.
func (f *Frame) Render(r *Renderer, s *Scene) Stats {
	if f.hi == nil {
		return r.Render(&RGBATarget{Img: f.out}, s)
	}
	st := r.Render(&RGBATarget{Img: f.hi}, s)
	draw.CatmullRom.Scale(f.out, f.out.Bounds(), f.hi, f.hi.Bounds(), draw.Src, nil)
	return st
}
