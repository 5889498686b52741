package engine

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"gltfviewer/engine/render"
)

// Transform is an entity's position, rotation and scale relative to its parent.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// GlobalTransform is the world matrix computed by PropagateTransforms.
type GlobalTransform struct {
	Matrix mgl32.Mat4
}

// IdentityTransform returns the transform at the origin with no rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// TransformFromXYZ returns an identity transform moved to (x, y, z).
func TransformFromXYZ(x, y, z float32) Transform {
	t := IdentityTransform()
	t.Translation = mgl32.Vec3{x, y, z}
	return t
}

// TransformFromMat4 decomposes an affine matrix without shear.
func TransformFromMat4(m mgl32.Mat4) Transform {
	t, r, sc := render.Decompose(m)
	return Transform{Translation: t, Rotation: r, Scale: sc}
}

// LookingAt returns t rotated so that its forward axis (-Z) points at target.
// The transform is returned unchanged when target coincides with the translation
// or up is parallel to the view direction.
func (t Transform) LookingAt(target, up mgl32.Vec3) Transform {
	back := t.Translation.Sub(target)
	if back.Len() == 0 {
		return t
	}
	back = back.Normalize()
	right := up.Cross(back)
	if right.Len() == 0 {
		return t
	}
	right = right.Normalize()
	u := back.Cross(right)
	t.Rotation = mgl32.Mat4ToQuat(mgl32.Mat3FromCols(right, u, back).Mat4()).Normalize()
	return t
}

// RotateY rotates the transform about the world vertical axis.
func (t *Transform) RotateY(rad float32) {
	t.Rotation = mgl32.QuatRotate(rad, mgl32.Vec3{0, 1, 0}).Mul(t.Rotation).Normalize()
}

// Yaw returns the rotation about +Y in [0, 2π). Only meaningful for rotations
// about the vertical axis.
func (t Transform) Yaw() float32 {
	y := 2 * math32.Atan2(t.Rotation.V[1], t.Rotation.W)
	return WrapAngle(y)
}

// WrapAngle maps an angle into [0, 2π).
func WrapAngle(rad float32) float32 {
	const twoPi = 2 * math32.Pi
	rad = math32.Mod(rad, twoPi)
	if rad < 0 {
		rad += twoPi
	}
	return rad
}

// Forward is the direction of the transform's -Z axis.
func (t Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

// Up is the direction of the transform's +Y axis.
func (t Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

// Mat4 returns translation * rotation * scale.
func (t Transform) Mat4() mgl32.Mat4 {
	return mgl32.Translate3D(t.Translation[0], t.Translation[1], t.Translation[2]).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// Translation returns the world position encoded in the global matrix.
func (g GlobalTransform) Translation() mgl32.Vec3 {
	return g.Matrix.Col(3).Vec3()
}
