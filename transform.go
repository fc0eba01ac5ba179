package arbor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform holds a node's local position, rotation, and scale, plus the
// derived model matrix. The matrix is recomputed eagerly by every setter so
// matrix and (position, rotation, scale) are never observably inconsistent.
type Transform struct {
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3
	matrix   mgl32.Mat4
}

// NewTransform returns the identity transform.
func NewTransform() Transform {
	return TRS(mgl32.Vec3{}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
}

// TRS builds a transform from explicit position, rotation, and scale.
func TRS(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) Transform {
	t := Transform{position: position, rotation: rotation, scale: scale}
	t.updateMatrix()
	return t
}

// updateMatrix derives the model matrix as translation * rotation * scale.
func (t *Transform) updateMatrix() {
	t.matrix = mgl32.Translate3D(t.position.X(), t.position.Y(), t.position.Z()).
		Mul4(t.rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z()))
}

// Position returns the local position.
func (t *Transform) Position() mgl32.Vec3 { return t.position }

// Rotation returns the local rotation quaternion.
func (t *Transform) Rotation() mgl32.Quat { return t.rotation }

// Scale returns the local scale.
func (t *Transform) Scale() mgl32.Vec3 { return t.scale }

// Matrix returns the derived model matrix.
func (t *Transform) Matrix() mgl32.Mat4 { return t.matrix }

// SetPosition replaces the position.
func (t *Transform) SetPosition(position mgl32.Vec3) *Transform {
	t.position = position
	t.updateMatrix()
	return t
}

// SetRotation replaces the rotation. The quaternion is normalized so repeated
// incremental rotations don't drift off the unit sphere.
func (t *Transform) SetRotation(rotation mgl32.Quat) *Transform {
	t.rotation = rotation.Normalize()
	t.updateMatrix()
	return t
}

// SetScale replaces the scale.
func (t *Transform) SetScale(scale mgl32.Vec3) *Transform {
	t.scale = scale
	t.updateMatrix()
	return t
}

// Translate offsets the position.
func (t *Transform) Translate(offset mgl32.Vec3) *Transform {
	t.position = t.position.Add(offset)
	t.updateMatrix()
	return t
}

// MulScale multiplies the scale component-wise.
func (t *Transform) MulScale(factor mgl32.Vec3) *Transform {
	t.scale = mulVec3(t.scale, factor)
	t.updateMatrix()
	return t
}

// Rotate applies a rotation of degrees around axis on top of the current
// rotation.
func (t *Transform) Rotate(axis mgl32.Vec3, degrees float32) *Transform {
	q := mgl32.QuatRotate(mgl32.DegToRad(degrees), axis)
	t.rotation = q.Mul(t.rotation).Normalize()
	t.updateMatrix()
	return t
}

// RotateEulerXYZ applies X, then Y, then Z axis rotations (degrees) on top of
// the current rotation.
func (t *Transform) RotateEulerXYZ(degrees mgl32.Vec3) *Transform {
	t.rotation = eulerXYZQuat(degrees).Mul(t.rotation).Normalize()
	t.updateMatrix()
	return t
}

// SetEulerXYZ replaces the rotation with X, then Y, then Z axis rotations
// (degrees).
func (t *Transform) SetEulerXYZ(degrees mgl32.Vec3) *Transform {
	t.rotation = eulerXYZQuat(degrees)
	t.updateMatrix()
	return t
}

// Forward returns the local +Z axis rotated into the transform's orientation.
func (t *Transform) Forward() mgl32.Vec3 {
	return t.rotation.Rotate(mgl32.Vec3{0, 0, 1})
}

// Right returns the local +X axis rotated into the transform's orientation.
func (t *Transform) Right() mgl32.Vec3 {
	return t.rotation.Rotate(mgl32.Vec3{1, 0, 0})
}

// Up returns the local +Y axis rotated into the transform's orientation.
func (t *Transform) Up() mgl32.Vec3 {
	return t.rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

// Combine concatenates a parent and a child transform into the child's world
// transform. This is full TRS concatenation: child position is scaled and
// rotated into the parent's frame, rotations and scales compose. Used by
// every traversal in the engine; no code path composes transforms any other
// way.
func Combine(parent, child Transform) Transform {
	position := parent.position.Add(parent.rotation.Rotate(mulVec3(parent.scale, child.position)))
	rotation := parent.rotation.Mul(child.rotation).Normalize()
	scale := mulVec3(parent.scale, child.scale)
	return TRS(position, rotation, scale)
}

// eulerXYZQuat builds the X-then-Y-then-Z rotation quaternion from degrees.
func eulerXYZQuat(degrees mgl32.Vec3) mgl32.Quat {
	qx := mgl32.QuatRotate(mgl32.DegToRad(degrees.X()), mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(mgl32.DegToRad(degrees.Y()), mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(mgl32.DegToRad(degrees.Z()), mgl32.Vec3{0, 0, 1})
	return qx.Mul(qy).Mul(qz).Normalize()
}

// quatFromDirection returns the rotation that maps the +Z reference axis onto
// direction, using the half-vector formulation. Unlike an axis-angle build
// from the cross product, it needs no angular cutoff for near-parallel
// directions (the quaternion w term stays well conditioned there); only the
// anti-parallel case degenerates, and that one flips 180° around X.
func quatFromDirection(direction mgl32.Vec3) mgl32.Quat {
	direction = direction.Normalize()
	reference := mgl32.Vec3{0, 0, 1}

	if direction.Dot(reference) < -1+1e-7 {
		return mgl32.QuatRotate(math32.Pi, mgl32.Vec3{1, 0, 0})
	}
	return mgl32.QuatBetweenVectors(reference, direction).Normalize()
}

// mulVec3 multiplies two vectors component-wise.
func mulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}
