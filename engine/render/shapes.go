package render

import "github.com/go-gl/mathgl/mgl32"

// NewPlane returns a size×size quad on the XZ plane facing +Y.
func NewPlane(size float32, mat Material) *Mesh {
	h := size / 2
	up := mgl32.Vec3{0, 1, 0}
	return &Mesh{
		Name: "plane",
		Vertices: []Vertex{
			{Pos: mgl32.Vec3{-h, 0, -h}, Normal: up},
			{Pos: mgl32.Vec3{h, 0, -h}, Normal: up},
			{Pos: mgl32.Vec3{h, 0, h}, Normal: up},
			{Pos: mgl32.Vec3{-h, 0, h}, Normal: up},
		},
		Indices:  []uint32{0, 2, 1, 0, 3, 2},
		Material: mat,
	}
}
