package render

import "github.com/go-gl/mathgl/mgl32"

// Decompose splits an affine matrix without shear into translation, rotation and scale.
func Decompose(m mgl32.Mat4) (translation mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) {
	c0 := m.Col(0).Vec3()
	c1 := m.Col(1).Vec3()
	c2 := m.Col(2).Vec3()
	translation = m.Col(3).Vec3()
	scale = mgl32.Vec3{c0.Len(), c1.Len(), c2.Len()}
	rotation = mgl32.QuatIdent()
	if scale[0] == 0 || scale[1] == 0 || scale[2] == 0 {
		return translation, rotation, scale
	}
	rot := mgl32.Mat3FromCols(c0.Mul(1/scale[0]), c1.Mul(1/scale[1]), c2.Mul(1/scale[2]))
	rotation = mgl32.Mat4ToQuat(rot.Mat4()).Normalize()
	return translation, rotation, scale
}
