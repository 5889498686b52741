package app

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"gltfviewer/engine"
	"gltfviewer/engine/render"
)

// Static environment.
var (
	CameraPosition = mgl32.Vec3{1, 1.5, -1.5}
	LightPosition  = mgl32.Vec3{50, 50, 50}
)

const (
	PlaneSize      = 1
	PlaneRoughness = 0.8
	LightIntensity = 600000
	LightRange     = 100
)

// setupWorld spawns the camera, the ground plane and the point light.
func setupWorld(w *engine.World) {
	cam := engine.IdentityTransform()
	cam.Translation = CameraPosition
	w.Spawn(
		engine.C(w, engine.Name{Value: "Camera"}),
		engine.C(w, engine.Camera3D{FOVYRad: math32.Pi / 4, Near: 0.1, Far: 1000}),
		engine.C(w, cam.LookingAt(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})),
	)

	plane := render.NewPlane(PlaneSize, render.Material{
		BaseColor: render.RGBF(0.2, 0.2, 0.2),
		Roughness: PlaneRoughness,
	})
	w.Spawn(
		engine.C(w, engine.Name{Value: "Plane"}),
		engine.C(w, engine.Mesh3D{Meshes: []*render.Mesh{plane}}),
		engine.C(w, engine.IdentityTransform()),
	)

	w.Spawn(
		engine.C(w, engine.Name{Value: "PointLight"}),
		engine.C(w, engine.PointLight{
			Color:     render.RGB(0xFF, 0xFF, 0xFF),
			Intensity: LightIntensity,
			Range:     LightRange,
		}),
		engine.C(w, engine.TransformFromXYZ(LightPosition[0], LightPosition[1], LightPosition[2])),
	)
}
