package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// OrbitController provides basic orbit/zoom interactions for a camera.
//
// It does not depend on any input system.
type OrbitController struct {
	Target mgl32.Vec3
	Yaw    float32
	Pitch  float32
	Radius float32

	MinRadius float32
	MaxRadius float32
}

const maxPitch = math32.Pi/2 - 0.01

// OrbitFrom returns a controller that reproduces a camera at position looking at target.
func OrbitFrom(position, target mgl32.Vec3) OrbitController {
	d := position.Sub(target)
	r := d.Len()
	c := OrbitController{Target: target, Radius: r, MinRadius: 0.05, MaxRadius: 500}
	if r == 0 {
		return c
	}
	c.Yaw = math32.Atan2(d[0], d[2])
	c.Pitch = math32.Asin(clampF(d[1]/r, -1, 1))
	return c
}

func (c *OrbitController) Apply(cam *Camera) {
	if cam == nil {
		return
	}
	r := c.Radius
	if r == 0 {
		r = 3
	}
	if c.MinRadius != 0 && r < c.MinRadius {
		r = c.MinRadius
	}
	if c.MaxRadius != 0 && r > c.MaxRadius {
		r = c.MaxRadius
	}

	cp := math32.Cos(c.Pitch)
	off := mgl32.Vec3{
		math32.Sin(c.Yaw) * cp,
		math32.Sin(c.Pitch),
		math32.Cos(c.Yaw) * cp,
	}.Mul(r)

	cam.Position = c.Target.Add(off)
	cam.Target = c.Target
	cam.Up = mgl32.Vec3{0, 1, 0}
}

func (c *OrbitController) Rotate(deltaYaw, deltaPitch float32) {
	c.Yaw += deltaYaw
	c.Pitch = clampF(c.Pitch+deltaPitch, -maxPitch, maxPitch)
}

func (c *OrbitController) Zoom(delta float32) {
	c.Radius += delta
	if c.MinRadius != 0 && c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
	if c.MaxRadius != 0 && c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
