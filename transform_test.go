package arbor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-4

func assertVec3Near(t *testing.T, got, want mgl32.Vec3, msg string) {
	t.Helper()
	if got.Sub(want).Len() > epsilon {
		t.Errorf("%s = %v, want %v", msg, got, want)
	}
}

func assertMat4Near(t *testing.T, got, want mgl32.Mat4, msg string) {
	t.Helper()
	for i := 0; i < 16; i++ {
		d := got[i] - want[i]
		if d > epsilon || d < -epsilon {
			t.Errorf("%s[%d] = %v, want %v", msg, i, got[i], want[i])
			return
		}
	}
}

func TestNewTransformIdentity(t *testing.T) {
	tr := NewTransform()
	assertVec3Near(t, tr.Position(), mgl32.Vec3{}, "Position")
	assertVec3Near(t, tr.Scale(), mgl32.Vec3{1, 1, 1}, "Scale")
	assertMat4Near(t, tr.Matrix(), mgl32.Ident4(), "Matrix")
}

// The matrix must always equal T(position)*R(rotation)*S(scale) recomputed
// from the current fields, after any sequence of mutations.
func TestMatrixNeverStale(t *testing.T) {
	tr := NewTransform()

	ops := []func(){
		func() { tr.SetPosition(mgl32.Vec3{1, 2, 3}) },
		func() { tr.Translate(mgl32.Vec3{-4, 0.5, 9}) },
		func() { tr.Rotate(mgl32.Vec3{0, 1, 0}, 47) },
		func() { tr.SetScale(mgl32.Vec3{2, 2, 0.5}) },
		func() { tr.RotateEulerXYZ(mgl32.Vec3{30, -15, 90}) },
		func() { tr.MulScale(mgl32.Vec3{0.5, 3, 1}) },
		func() { tr.SetEulerXYZ(mgl32.Vec3{10, 20, 30}) },
		func() { tr.SetRotation(mgl32.QuatRotate(1.2, mgl32.Vec3{1, 1, 0}.Normalize())) },
	}

	for i, op := range ops {
		op()
		p := tr.Position()
		want := mgl32.Translate3D(p.X(), p.Y(), p.Z()).
			Mul4(tr.Rotation().Mat4()).
			Mul4(mgl32.Scale3D(tr.Scale().X(), tr.Scale().Y(), tr.Scale().Z()))
		assertMat4Near(t, tr.Matrix(), want, "after op")
		_ = i
	}
}

func TestDirectionVectors(t *testing.T) {
	tr := NewTransform()
	assertVec3Near(t, tr.Forward(), mgl32.Vec3{0, 0, 1}, "Forward")
	assertVec3Near(t, tr.Right(), mgl32.Vec3{1, 0, 0}, "Right")
	assertVec3Near(t, tr.Up(), mgl32.Vec3{0, 1, 0}, "Up")

	// 90° around Y maps +Z onto +X.
	tr.SetRotation(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}))
	assertVec3Near(t, tr.Forward(), mgl32.Vec3{1, 0, 0}, "Forward after yaw")
	assertVec3Near(t, tr.Right(), mgl32.Vec3{0, 0, -1}, "Right after yaw")
	assertVec3Near(t, tr.Up(), mgl32.Vec3{0, 1, 0}, "Up after yaw")
}

func TestCombineTranslations(t *testing.T) {
	parent := NewTransform()
	parent.SetPosition(mgl32.Vec3{1, 0, 0})
	child := NewTransform()
	child.SetPosition(mgl32.Vec3{0, 2, 0})

	world := Combine(parent, child)
	assertVec3Near(t, world.Position(), mgl32.Vec3{1, 2, 0}, "Position")
}

// A rotated parent must rotate the child's offset, not just add it.
func TestCombineRotatedParent(t *testing.T) {
	parent := NewTransform()
	parent.SetRotation(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}))
	child := NewTransform()
	child.SetPosition(mgl32.Vec3{0, 0, 1})

	world := Combine(parent, child)
	assertVec3Near(t, world.Position(), mgl32.Vec3{1, 0, 0}, "Position")
}

func TestCombineScaledParent(t *testing.T) {
	parent := NewTransform()
	parent.SetScale(mgl32.Vec3{2, 2, 2})
	child := NewTransform()
	child.SetPosition(mgl32.Vec3{1, 1, 1})

	world := Combine(parent, child)
	assertVec3Near(t, world.Position(), mgl32.Vec3{2, 2, 2}, "Position")
	assertVec3Near(t, world.Scale(), mgl32.Vec3{2, 2, 2}, "Scale")
}

// Combine must be associative so world transforms are independent of how the
// traversal groups ancestors.
func TestCombineAssociative(t *testing.T) {
	a := TRS(mgl32.Vec3{1, 2, 3}, mgl32.QuatRotate(0.7, mgl32.Vec3{0, 1, 0}), mgl32.Vec3{2, 2, 2})
	b := TRS(mgl32.Vec3{-4, 0, 1}, mgl32.QuatRotate(1.1, mgl32.Vec3{1, 0, 0}), mgl32.Vec3{1, 0.5, 1})
	c := TRS(mgl32.Vec3{0, 3, -2}, mgl32.QuatRotate(-0.4, mgl32.Vec3{0, 0, 1}), mgl32.Vec3{3, 1, 1})

	left := Combine(Combine(a, b), c)
	right := Combine(a, Combine(b, c))

	assertVec3Near(t, left.Position(), right.Position(), "Position")
	assertVec3Near(t, left.Scale(), right.Scale(), "Scale")
	assertMat4Near(t, left.Matrix(), right.Matrix(), "Matrix")
}

// Combining with matrix concatenation and composing TRS fields must agree
// (no shear is introduced by uniformly scaled parents).
func TestCombineMatchesMatrixProduct(t *testing.T) {
	parent := TRS(mgl32.Vec3{5, -1, 2}, mgl32.QuatRotate(0.9, mgl32.Vec3{0, 1, 0}), mgl32.Vec3{2, 2, 2})
	child := TRS(mgl32.Vec3{1, 1, 0}, mgl32.QuatRotate(-0.3, mgl32.Vec3{1, 0, 0}), mgl32.Vec3{0.5, 0.5, 0.5})

	world := Combine(parent, child)
	assertMat4Near(t, world.Matrix(), parent.Matrix().Mul4(child.Matrix()), "Matrix")
}

func TestQuatFromDirectionRoundTrip(t *testing.T) {
	directions := []mgl32.Vec3{
		{0, 0, 1},  // parallel to reference
		{0, 0, -1}, // anti-parallel
		{1, 0, 0},
		{0, 1, 0},
		{1, 1, 1},
		{-0.3, 0.8, 0.2},
		{0, 0.0001, 1},       // near-parallel, under a hundredth of a degree off
		{0.0002, -0.0001, 1}, // near-parallel, off both axes
		{0, 0.01, 1},         // just inside any plausible angular cutoff
	}

	for _, dir := range directions {
		want := dir.Normalize()
		q := quatFromDirection(dir)
		got := q.Rotate(mgl32.Vec3{0, 0, 1})
		if got.Sub(want).Len() > 1e-5 {
			t.Errorf("quatFromDirection(%v): round-trip = %v, want %v", dir, got, want)
		}
	}
}

func TestRotationStaysNormalized(t *testing.T) {
	tr := NewTransform()
	for i := 0; i < 500; i++ {
		tr.Rotate(mgl32.Vec3{0, 1, 0}, 13)
		tr.Rotate(mgl32.Vec3{1, 0, 0}, -7)
	}
	n := tr.Rotation().Len()
	if n < 1-epsilon || n > 1+epsilon {
		t.Errorf("rotation norm = %v after 1000 rotations, want 1", n)
	}
}
