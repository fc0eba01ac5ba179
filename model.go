package arbor

import (
	"github.com/go-gl/mathgl/mgl32"
)

// meshNode is one named sub-node of a loaded model, holding its local
// transform relative to the model root and its primitives.
type meshNode struct {
	name       string
	transform  Transform
	primitives []*Mesh
}

// Model is a renderable hierarchy of mesh nodes, typically loaded from a
// glTF file. A Model may be attached to several scene nodes at once; each
// instance draws with its own accumulated world transform.
type Model struct {
	name     string
	nodes    []meshNode
	textures []*Texture
}

// Name reports the model's source name.
func (m *Model) Name() string { return m.name }

// Draw renders every mesh node in the main pass. The shader is already
// bound; world is the accumulated scene transform of the owning node.
func (m *Model) Draw(shader *Shader, camPos mgl32.Vec3, vp mgl32.Mat4, world Transform) {
	shader.SetMat4("u_VP", vp)
	shader.SetVec3("camPos", camPos)
	for i := range m.nodes {
		node := &m.nodes[i]
		local := Combine(world, node.transform)
		shader.SetMat4("u_Model", local.Matrix())
		for _, mesh := range node.primitives {
			mesh.draw(shader)
		}
	}
}

// DrawShadow renders every mesh node depth-only into the bound shadow map.
func (m *Model) DrawShadow(depth *Shader, world Transform) {
	for i := range m.nodes {
		node := &m.nodes[i]
		local := Combine(world, node.transform)
		depth.SetMat4("u_Model", local.Matrix())
		for _, mesh := range node.primitives {
			mesh.drawShadow()
		}
	}
}

// Release frees all GPU resources owned by the model.
func (m *Model) Release() {
	for i := range m.nodes {
		for _, mesh := range m.nodes[i].primitives {
			mesh.Release()
		}
	}
	for _, tex := range m.textures {
		tex.Release()
	}
	m.nodes = nil
	m.textures = nil
}
