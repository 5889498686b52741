package engine

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/arche/generic"

	"gltfviewer/engine/render"
)

// Extract fills s from the world: the single Camera3D becomes the view, the
// first PointLight lights the scene and every Mesh3D is drawn with its global
// transform. s is reset first; its camera is kept when no camera entity exists.
func Extract(w *World, s *render.Scene) {
	s.Reset()

	if _, cam, g, ok := Single2[Camera3D, GlobalTransform](w); ok {
		s.Camera = cameraFrom(*cam, g.Matrix)
	}

	lq := generic.NewFilter2[PointLight, GlobalTransform]().Query(&w.ECS)
	for lq.Next() {
		l, g := lq.Get()
		if s.HasLight {
			continue
		}
		s.SetLight(render.PointLight{
			Position:  g.Translation(),
			Color:     l.Color,
			Intensity: l.Intensity,
			Range:     l.Range,
		})
	}

	mq := generic.NewFilter2[Mesh3D, GlobalTransform]().Query(&w.ECS)
	for mq.Next() {
		m, g := mq.Get()
		for _, mesh := range m.Meshes {
			s.Add(mesh, g.Matrix)
		}
	}
}

func cameraFrom(c Camera3D, m mgl32.Mat4) render.Camera {
	pos := m.Col(3).Vec3()
	fwd := m.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
	up := m.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	return render.Camera{
		Position: pos,
		Target:   pos.Add(fwd),
		Up:       up,
		FOVYRad:  c.FOVYRad,
		Near:     c.Near,
		Far:      c.Far,
	}
}
