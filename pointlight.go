package arbor

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// PointLight is the payload of an omnidirectional light. Its world position
// is never stored: it is resolved by path accumulation during the shadow
// pass, so re-parenting the node moves the light with no extra bookkeeping.
// Each light renders a 6-face depth map into one slot of the shared cube
// shadow-map array.
type PointLight struct {
	Color     Color
	Intensity float32
	// Near and Far bound the shadow projection around the light.
	Near, Far float32

	// shadowIndex is the slot assigned in the shared cube-map array for
	// the current frame.
	shadowIndex int
}

// cubeFaceVPs returns the six view-projection matrices for an
// omnidirectional depth render from position. Face order and up vectors
// follow the cube-map convention: +X, -X, +Y, -Y, +Z, -Z.
func cubeFaceVPs(position mgl32.Vec3, near, far float32) [6]mgl32.Mat4 {
	projection := mgl32.Perspective(math32.Pi/2, 1, near, far)

	faces := [6]struct {
		target mgl32.Vec3
		up     mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
	}

	var vps [6]mgl32.Mat4
	for i, face := range faces {
		view := mgl32.LookAtV(position, position.Add(face.target), face.up)
		vps[i] = projection.Mul4(view)
	}
	return vps
}

// renderShadowMap renders the scene's shadow geometry from the light's
// resolved world position into its assigned slot of the shared cube-map
// array. Must run between the array's Begin and End.
func (l *PointLight) renderShadowMap(scene *Scene, world Transform, maps *CubeDepthMapArray, index int) {
	l.shadowIndex = index
	position := world.Position()
	vps := cubeFaceVPs(position, l.Near, l.Far)

	depth := maps.Shader()
	depth.Bind()
	depth.SetMat4Slice("shadowMatrices", vps[:])
	depth.SetVec3("lightPos", position)
	depth.SetFloat("farPlane", l.Far)
	depth.SetInt("lightIndex", int32(index))

	scene.Visit(func(w Transform, n *Node) {
		if n.Type == NodeTypeModel {
			n.Model.DrawShadow(depth, w)
		}
	})
}

// bindUniforms publishes the light's parameters to the main shader under
// pointLights[i], using the world position resolved this frame.
func (l *PointLight) bindUniforms(shader *Shader, i int, world Transform) {
	shader.Bind()
	prefix := fmt.Sprintf("pointLights[%d]", i)
	shader.SetVec3(prefix+".position", world.Position())
	shader.SetVec4(prefix+".color", l.Color.Vec4())
	shader.SetFloat(prefix+".intensity", l.Intensity)
	shader.SetFloat(prefix+".nearPlane", l.Near)
	shader.SetFloat(prefix+".farPlane", l.Far)
	shader.SetInt(prefix+".shadowIndex", int32(l.shadowIndex))
}
