package arbor

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved layout uploaded for every mesh.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec4
	TexUV    mgl32.Vec2
}

// vertexStride is the byte size of one Vertex in the GL buffer.
const vertexStride = int32(unsafe.Sizeof(Vertex{}))

// Material carries the glTF-derived surface parameters the default shader
// understands.
type Material struct {
	BaseColorFactor mgl32.Vec4
	AlphaCutoff     float32
	AlphaMask       bool
	DoubleSided     bool
}

// Mesh is one GPU-resident primitive: a VAO over interleaved vertices, an
// index buffer, and the textures/material needed to draw it.
type Mesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	textures      []*Texture
	material      Material
}

// NewMesh uploads vertices and indices and records the attribute layout.
func NewMesh(vertices []Vertex, indices []uint32, textures []*Texture, material Material) *Mesh {
	m := &Mesh{
		indexCount: int32(len(indices)),
		textures:   textures,
		material:   material,
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(vertexStride), gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	// position, normal, color, uv
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 12)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, vertexStride, 24)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(3, 2, gl.FLOAT, false, vertexStride, 40)

	gl.BindVertexArray(0)
	return m
}

// draw issues the main-pass draw call. The caller has already bound the
// shader and set u_Model; this binds textures and material uniforms.
func (m *Mesh) draw(shader *Shader) {
	gl.BindVertexArray(m.vao)

	numDiffuse, numSpecular := 0, 0
	for i, tex := range m.textures {
		var slot string
		switch tex.Role() {
		case "diffuse":
			shader.SetBool("useTexture", true)
			slot = fmt.Sprintf("diffuse%d", numDiffuse)
			numDiffuse++
		case "specular":
			slot = fmt.Sprintf("specular%d", numSpecular)
			numSpecular++
		default:
			continue
		}
		shader.SetInt(slot, int32(i))
		tex.Bind(uint32(i))
	}

	shader.SetVec4("baseColorFactor", m.material.BaseColorFactor)
	if m.material.AlphaMask {
		shader.SetBool("useAlphaCutoff", true)
		shader.SetFloat("alphaCutoff", m.material.AlphaCutoff)
	}

	if m.material.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	}
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	if m.material.DoubleSided {
		gl.Enable(gl.CULL_FACE)
	}

	for _, tex := range m.textures {
		tex.Unbind()
	}
	shader.SetBool("useTexture", false)
	shader.SetBool("useAlphaCutoff", false)
	gl.BindVertexArray(0)
}

// drawShadow issues a depth-only draw call. Shader binding and matrix
// uniforms are handled by the owning Model.
func (m *Mesh) drawShadow() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Release frees the GL buffers. Textures are shared across meshes and
// released by the owning Model.
func (m *Mesh) Release() {
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteVertexArrays(1, &m.vao)
}
