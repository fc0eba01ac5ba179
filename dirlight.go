package arbor

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// cascadeNearPlane is the near plane shared by every cascade projection.
const cascadeNearPlane = 0.1

// cascadeLambda blends the logarithmic and uniform split schemes. Higher
// values put more resolution near the camera.
const cascadeLambda = 0.7

// maxCascades caps the per-light cascade count understood by the depth
// shader.
const maxCascades = 4

// cascade is one depth-map layer of the cascaded shadow scheme: a static
// orthographic projection covering a sub-range of view distance. The view
// matrix is rebuilt every frame from the camera position, so it is not
// stored here.
type cascade struct {
	near, far  float32
	projection mgl32.Mat4
}

// DirectionalLight is the payload of a sun-style light: a direction, a
// color, and a cascaded shadow map covering shadowDistance units around the
// active camera. Cascade projections are computed at construction and on
// SetFarPlane; only the light-space view matrices change per frame, so the
// cascades translate with the camera and keep shadow coverage centered.
type DirectionalLight struct {
	Color     Color
	Intensity float32

	direction      mgl32.Vec3
	farPlane       float32
	numCascades    int
	cascadeFactors []float32
	cascades       []cascade

	// Per-frame state: the matrices of the last shadow pass and the layer
	// offset assigned within the shared depth-map array.
	lightSpaceMatrices []mgl32.Mat4
	shadowIndex        int
}

func newDirectionalLight(direction mgl32.Vec3, color Color, shadowDistance float32, cascades int) *DirectionalLight {
	l := &DirectionalLight{
		Color:     color,
		Intensity: 1,
		direction: direction.Normalize(),
	}
	l.setShadowRange(shadowDistance, cascades)
	return l
}

// setShadowRange recomputes split factors and cascade projections. Zero or
// negative cascade counts degrade to a single full-range cascade rather
// than failing.
func (l *DirectionalLight) setShadowRange(farPlane float32, cascades int) {
	if cascades < 1 {
		cascades = 1
	}
	if cascades > maxCascades {
		cascades = maxCascades
	}
	l.farPlane = farPlane
	l.numCascades = cascades
	l.cascadeFactors = computeCascadeSplits(cascadeNearPlane, farPlane, cascades, cascadeLambda)
	l.genCascades()
}

// computeCascadeSplits returns the cascade split fractions of the far plane:
// split_i = λ·log_i + (1-λ)·uniform_i, normalized to (0, 1]. The fractions
// are strictly increasing with i, and the last one is 1 for λ=0 and
// approaches 1 from below as λ grows.
func computeCascadeSplits(nearPlane, farPlane float32, numCascades int, lambda float32) []float32 {
	splits := make([]float32, 0, numCascades)
	for i := 1; i <= numCascades; i++ {
		fraction := float32(i) / float32(numCascades)
		uniform := nearPlane + (farPlane-nearPlane)*fraction
		logarithmic := nearPlane * math32.Pow(farPlane/nearPlane, fraction)
		split := lambda*logarithmic + (1-lambda)*uniform
		splits = append(splits, split/farPlane)
	}
	return splits
}

// genCascades rebuilds the static orthographic projections, one per
// cascade, each sized by half the shadow distance scaled by its split
// factor. A missing factor index falls back to the full range.
func (l *DirectionalLight) genCascades() {
	l.cascades = l.cascades[:0]
	for i := 0; i < l.numCascades; i++ {
		factor := float32(1)
		if i < len(l.cascadeFactors) {
			factor = l.cascadeFactors[i]
		}
		radius := l.farPlane / 2 * factor
		l.cascades = append(l.cascades, cascade{
			near:       cascadeNearPlane,
			far:        l.farPlane,
			projection: mgl32.Ortho(-radius, radius, -radius, radius, cascadeNearPlane, l.farPlane),
		})
	}
}

// CascadeVPs returns the per-cascade light-space view-projection matrices
// for a camera at cameraPos. The view is re-centered on the camera every
// frame, offset back along the light direction; the projections are static.
func (l *DirectionalLight) CascadeVPs(cameraPos mgl32.Vec3) []mgl32.Mat4 {
	offset := l.direction.Mul(l.farPlane / 2)
	view := mgl32.LookAtV(cameraPos.Add(offset), cameraPos, mgl32.Vec3{0, 1, 0})

	vps := make([]mgl32.Mat4, len(l.cascades))
	for i, c := range l.cascades {
		vps[i] = c.projection.Mul4(view)
	}
	return vps
}

// Direction returns the normalized direction the light shines along.
func (l *DirectionalLight) Direction() mgl32.Vec3 {
	return l.direction
}

// SetDirection changes the light direction. The owning node's transform is
// not touched; callers rotating the node should use quatFromDirection-based
// rotation on the node instead.
func (l *DirectionalLight) SetDirection(direction mgl32.Vec3) {
	l.direction = direction.Normalize()
}

// FarPlane returns the shadow distance.
func (l *DirectionalLight) FarPlane() float32 {
	return l.farPlane
}

// SetFarPlane changes the shadow distance and regenerates split factors and
// cascade projections.
func (l *DirectionalLight) SetFarPlane(distance float32) {
	l.setShadowRange(distance, l.numCascades)
}

// NumCascades returns the cascade count.
func (l *DirectionalLight) NumCascades() int {
	return l.numCascades
}

// renderShadowMap renders every model subtree's shadow geometry into the
// shared depth-map array, starting at layer index, from the light's point of
// view centered on the camera's world position. Must run between the
// array's Begin and End.
func (l *DirectionalLight) renderShadowMap(scene *Scene, maps *DepthMapArray, index int, cameraPos mgl32.Vec3) {
	l.shadowIndex = index
	vps := l.CascadeVPs(cameraPos)
	l.lightSpaceMatrices = vps

	depth := maps.Shader()
	depth.Bind()
	depth.SetVec3("light.direction", l.direction)
	depth.SetMat4Slice("light.matrices", vps)
	depth.SetInt("light.index", int32(index))
	depth.SetInt("light.cascadeDepth", int32(l.numCascades))

	scene.Visit(func(world Transform, n *Node) {
		if n.Type == NodeTypeModel {
			n.Model.DrawShadow(depth, world)
		}
	})
}

// bindUniforms publishes the light's parameters to the main shader under
// directLights[i].
func (l *DirectionalLight) bindUniforms(shader *Shader, i int) {
	shader.Bind()
	prefix := fmt.Sprintf("directLights[%d]", i)
	shader.SetVec3(prefix+".direction", l.direction)
	shader.SetVec4(prefix+".color", l.Color.Vec4())
	shader.SetFloat(prefix+".intensity", l.Intensity)
	shader.SetInt(prefix+".shadowIndex", int32(l.shadowIndex))
	shader.SetInt(prefix+".cascadeLevel", int32(l.numCascades))
	shader.SetFloatSlice(prefix+".cascadeSplit", l.cascadeFactors)
	shader.SetFloat(prefix+".farPlane", l.farPlane)
	shader.SetMat4Slice(prefix+".lightSpaceMatrices", l.lightSpaceMatrices)
}
