package arbor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

func TestNodeTransformTRS(t *testing.T) {
	node := &gltf.Node{
		Translation: [3]float32{1, 2, 3},
		Rotation:    [4]float32{0, 0.7071068, 0, 0.7071068}, // 90° about Y
		Scale:       [3]float32{2, 2, 2},
	}
	tr := nodeTransform(node)

	assertVec3Near(t, tr.Position(), mgl32.Vec3{1, 2, 3}, "Position")
	assertVec3Near(t, tr.Scale(), mgl32.Vec3{2, 2, 2}, "Scale")
	// +Z rotated 90° about Y lands on +X.
	assertVec3Near(t, tr.Rotation().Rotate(mgl32.Vec3{0, 0, 1}), mgl32.Vec3{1, 0, 0}, "rotated forward")
}

func TestNodeTransformDefaultsToIdentity(t *testing.T) {
	tr := nodeTransform(&gltf.Node{})
	assertMat4Near(t, tr.Matrix(), mgl32.Ident4(), "Matrix")
}

// Matrix-form nodes must place meshes identically to the equivalent TRS
// form.
func TestNodeTransformMatrixForm(t *testing.T) {
	want := TRS(
		mgl32.Vec3{4, -1, 2},
		mgl32.QuatRotate(0.8, mgl32.Vec3{0, 1, 0}),
		mgl32.Vec3{2, 3, 0.5},
	)

	var m [16]float32
	for i, v := range want.Matrix() {
		m[i] = v
	}
	tr := nodeTransform(&gltf.Node{Matrix: m})

	assertVec3Near(t, tr.Position(), want.Position(), "Position")
	assertVec3Near(t, tr.Scale(), want.Scale(), "Scale")
	assertMat4Near(t, tr.Matrix(), want.Matrix(), "Matrix")
}

func TestNodeTransformExplicitIdentityMatrix(t *testing.T) {
	tr := nodeTransform(&gltf.Node{Matrix: gltf.DefaultMatrix})
	assertMat4Near(t, tr.Matrix(), mgl32.Ident4(), "Matrix")
}
