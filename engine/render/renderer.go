package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	depthBuf []float32
}

// Stats reports what the last Render call did.
type Stats struct {
	Draws     int
	Triangles int
	Culled    int
}

// NewRenderer creates a renderer for a given maximum target size.
//
// If enableDepth is true, a depth buffer of size w*h is allocated.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderSolidFlat,
		Depth:      enableDepth,
		ClearColor: RGB(0x46, 0x46, 0x46),
	}
	if enableDepth && w > 0 && h > 0 {
		r.depthBuf = make([]float32, w*h)
	}
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

func (r *Renderer) EnableDepth(on bool, w, h int) {
	r.Depth = on
	if !on {
		r.depthBuf = nil
		return
	}
	if w <= 0 || h <= 0 {
		r.depthBuf = nil
		return
	}
	if cap(r.depthBuf) < w*h {
		r.depthBuf = make([]float32, w*h)
	} else {
		r.depthBuf = r.depthBuf[:w*h]
	}
}

func (r *Renderer) clearDepth() {
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

// Render renders a scene into the target.
func (r *Renderer) Render(t Target, s *Scene) Stats {
	var st Stats
	if r == nil || t == nil || s == nil {
		return st
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return st
	}
	t.Clear(r.ClearColor)

	if r.Depth {
		r.EnableDepth(true, w, h)
		r.clearDepth()
	}

	aspect := float32(w) / float32(h)
	viewProj := s.Camera.Projection(aspect).Mul4(s.Camera.View())

	for _, d := range s.draws {
		st.Draws++
		r.renderMesh(t, w, h, viewProj, d, s, &st)
	}
	return st
}

type screenVertex struct {
	x, y  int
	z     float32
	world mgl32.Vec3
}

func (r *Renderer) renderMesh(t Target, w, h int, viewProj mgl32.Mat4, d Draw, s *Scene, st *Stats) {
	m := d.Mesh
	if m == nil || len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return
	}
	model := d.Model
	if model == (mgl32.Mat4{}) {
		model = mgl32.Ident4()
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0 := int(m.Indices[i+0])
		i1 := int(m.Indices[i+1])
		i2 := int(m.Indices[i+2])
		if i0 >= len(m.Vertices) || i1 >= len(m.Vertices) || i2 >= len(m.Vertices) {
			continue
		}
		st.Triangles++

		v0, ok0 := project(viewProj, model, m.Vertices[i0].Pos, w, h)
		v1, ok1 := project(viewProj, model, m.Vertices[i1].Pos, w, h)
		v2, ok2 := project(viewProj, model, m.Vertices[i2].Pos, w, h)
		// Trivial clip: drop triangles that cross the near plane.
		if !ok0 || !ok1 || !ok2 {
			st.Culled++
			continue
		}

		n := triangleNormal(v0.world, v1.world, v2.world)
		centroid := v0.world.Add(v1.world).Add(v2.world).Mul(1.0 / 3)
		c := shade(m.Material, s, centroid, n)

		switch r.Mode {
		case RenderWireframe:
			r.drawLine(t, v0.x, v0.y, v1.x, v1.y, c)
			r.drawLine(t, v1.x, v1.y, v2.x, v2.y, c)
			r.drawLine(t, v2.x, v2.y, v0.x, v0.y, c)
		default:
			r.fillTriangleFlat(t, w, h, v0, v1, v2, c)
		}
	}
}

func project(viewProj, model mgl32.Mat4, p mgl32.Vec3, w, h int) (screenVertex, bool) {
	world := model.Mul4x1(p.Vec4(1)).Vec3()
	clip := viewProj.Mul4x1(world.Vec4(1))
	if clip[3] <= 1e-6 || clip[2] < -clip[3] {
		return screenVertex{}, false
	}
	inv := 1 / clip[3]
	nx, ny, nz := clip[0]*inv, clip[1]*inv, clip[2]*inv
	sx := (nx*0.5 + 0.5) * float32(w-1)
	sy := (1 - (ny*0.5 + 0.5)) * float32(h-1)
	return screenVertex{x: int(sx + 0.5), y: int(sy + 0.5), z: nz, world: world}, true
}

func triangleNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() == 0 {
		return mgl32.Vec3{}
	}
	return n.Normalize()
}

// shade computes a flat color for a surface point under the scene light.
// Surfaces are two-sided: the normal is flipped to face the camera.
func shade(mat Material, s *Scene, p, n mgl32.Vec3) Color {
	br, bg, bb := mat.BaseColor.Floats()
	light := clamp01(s.Ambient)
	var spec float32

	if s.HasLight && n != (mgl32.Vec3{}) {
		v := s.Camera.Position.Sub(p)
		if v.Len() > 0 {
			v = v.Normalize()
		}
		if n.Dot(v) < 0 {
			n = n.Mul(-1)
		}
		l := s.Light.Position.Sub(p)
		dist := l.Len()
		if dist > 0 {
			l = l.Mul(1 / dist)
			lux := pointIlluminance(s.Light, dist)
			ndl := n.Dot(l)
			if ndl > 0 {
				light += ndl * lux
				spec = specular(mat.Roughness, n, l, v) * lux
			}
		}
	}

	lr, lg, lb := float32(1), float32(1), float32(1)
	if s.HasLight && s.Light.Color != (Color{}) {
		lr, lg, lb = s.Light.Color.Floats()
	}
	return RGBF(br*light*lr+spec, bg*light*lg+spec, bb*light*lb+spec).WithAlpha(mat.BaseColor.A)
}

// pointIlluminance is the inverse-square falloff of a point light, faded
// smoothly to zero at its range.
func pointIlluminance(l PointLight, dist float32) float32 {
	if l.Intensity <= 0 {
		return 0
	}
	lux := l.Intensity / (4 * math32.Pi * dist * dist)
	if l.Range > 0 {
		f := dist / l.Range
		f = clamp01(1 - f*f*f*f)
		lux *= f * f
	}
	return lux
}

func specular(roughness float32, n, l, v mgl32.Vec3) float32 {
	rough := clamp01(roughness)
	if rough >= 1 {
		return 0
	}
	hv := l.Add(v)
	if hv.Len() == 0 {
		return 0
	}
	hv = hv.Normalize()
	nh := n.Dot(hv)
	if nh <= 0 {
		return 0
	}
	a := rough * rough
	shininess := float32(256)
	if a > 0 {
		shininess = math32.Min(2/(a*a)-2, 256)
		if shininess < 1 {
			shininess = 1
		}
	}
	return math32.Pow(nh, shininess) * (1 - rough) * 0.25
}

func (r *Renderer) depthTest(w int, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= w {
		return false
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	// NDC z is in [-1,1]. Map to [0,1].
	d := clamp01(z*0.5 + 0.5)
	if d >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = d
	return true
}

func (r *Renderer) drawLine(t Target, x0, y0, x1, y1 int, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (r *Renderer) fillTriangleFlat(t Target, w, h int, v0, v1, v2 screenVertex, c Color) {
	area := edgeFn(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area == 0 {
		return
	}
	// Accept both windings.
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}

	minX, maxX := min3(v0.x, v1.x, v2.x), max3(v0.x, v1.x, v2.x)
	minY, maxY := min3(v0.y, v1.y, v2.y), max3(v0.y, v1.y, v2.y)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= w {
		maxX = w - 1
	}
	if maxY >= h {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	invArea := 1.0 / float32(area)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(v1.x, v1.y, v2.x, v2.y, x, y)
			w1 := edgeFn(v2.x, v2.y, v0.x, v0.y, x, y)
			w2 := edgeFn(v0.x, v0.y, v1.x, v1.y, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			z := (float32(w0)*v0.z + float32(w1)*v1.z + float32(w2)*v2.z) * invArea
			if !r.depthTest(w, x, y, z) {
				continue
			}
			t.SetPixel(x, y, c)
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
