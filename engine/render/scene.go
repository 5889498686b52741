package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Material is a minimal surface description.
type Material struct {
	BaseColor Color
	// Roughness is the perceptual roughness in 0..1.
	Roughness float32
}

// DefaultMaterial is used for primitives without a material.
var DefaultMaterial = Material{BaseColor: RGB(0xFF, 0xFF, 0xFF), Roughness: 0.5}

// PointLight emits in all directions from Position.
type PointLight struct {
	Position  mgl32.Vec3
	Color     Color
	Intensity float32 // lumens
	Range     float32
}

// Camera describes the viewing transform.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	FOVYRad float32
	Near    float32
	Far     float32
}

// View returns the camera view matrix.
func (c Camera) View() mgl32.Mat4 {
	up := c.Up
	if up == (mgl32.Vec3{}) {
		up = mgl32.Vec3{0, 1, 0}
	}
	return mgl32.LookAtV(c.Position, c.Target, up)
}

// Projection returns the perspective matrix for a target aspect.
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	fov := c.FOVYRad
	if fov == 0 {
		fov = math32.Pi / 4
	}
	near, far := c.Near, c.Far
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = 1000
	}
	return mgl32.Perspective(fov, aspect, near, far)
}

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    mgl32.Vec3
	Normal mgl32.Vec3
}

// Mesh is an indexed triangle list with one material.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material Material
}

// Triangles returns the number of complete triangles in the index list.
func (m *Mesh) Triangles() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// Draw is a mesh placed in the world.
type Draw struct {
	Mesh  *Mesh
	Model mgl32.Mat4
}

// Scene is the per-frame list of things to render.
type Scene struct {
	Camera   Camera
	Light    PointLight
	HasLight bool
	// Ambient is the light added to every surface, 0..1.
	Ambient float32

	draws []Draw
}

// NewScene returns an empty scene with a default camera looking at the origin.
func NewScene() *Scene {
	return &Scene{
		Camera: Camera{
			Position: mgl32.Vec3{0, 0, 3},
			Up:       mgl32.Vec3{0, 1, 0},
			FOVYRad:  math32.Pi / 4,
			Near:     0.1,
			Far:      1000,
		},
		Ambient: 0.05,
	}
}

// Reset drops all draws and the light, keeping capacity.
func (s *Scene) Reset() {
	s.draws = s.draws[:0]
	s.HasLight = false
}

// Add queues a mesh with a model matrix. Nil and empty meshes are ignored.
func (s *Scene) Add(m *Mesh, model mgl32.Mat4) {
	if s == nil || m == nil || len(m.Vertices) == 0 || len(m.Indices) < 3 {
		return
	}
	s.draws = append(s.draws, Draw{Mesh: m, Model: model})
}

// Draws returns the queued draws.
func (s *Scene) Draws() []Draw { return s.draws }

// SetLight sets the scene's point light.
func (s *Scene) SetLight(l PointLight) {
	s.Light = l
	s.HasLight = true
}
