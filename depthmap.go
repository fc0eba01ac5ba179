package arbor

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

// depthArrayVert transforms into world space; the geometry stage picks the
// output layer per cascade.
const depthArrayVert = `#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 u_Model;

void main() {
    gl_Position = u_Model * vec4(aPos, 1.0);
}
`

// depthArrayGeom emits each triangle once per cascade, routed to the
// matching layer of the 2D array texture.
const depthArrayGeom = `#version 410 core
layout (triangles) in;
layout (triangle_strip, max_vertices = 12) out;

struct Light {
    vec3 direction;
    mat4 matrices[4];
    int index;
    int cascadeDepth;
};

uniform Light light;

void main() {
    for (int cascade = 0; cascade < light.cascadeDepth; ++cascade) {
        gl_Layer = light.index + cascade;
        for (int i = 0; i < 3; ++i) {
            gl_Position = light.matrices[cascade] * gl_in[i].gl_Position;
            EmitVertex();
        }
        EndPrimitive();
    }
}
`

const depthArrayFrag = `#version 410 core
void main() {
}
`

const cubeDepthVert = `#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 u_Model;

void main() {
    gl_Position = u_Model * vec4(aPos, 1.0);
}
`

// cubeDepthGeom emits each triangle once per cube face of the light's
// slot in the cube map array.
const cubeDepthGeom = `#version 410 core
layout (triangles) in;
layout (triangle_strip, max_vertices = 18) out;

uniform mat4 shadowMatrices[6];
uniform int lightIndex;

out vec4 FragPos;

void main() {
    for (int face = 0; face < 6; ++face) {
        gl_Layer = lightIndex * 6 + face;
        for (int i = 0; i < 3; ++i) {
            FragPos = gl_in[i].gl_Position;
            gl_Position = shadowMatrices[face] * FragPos;
            EmitVertex();
        }
        EndPrimitive();
    }
}
`

// cubeDepthFrag writes linear distance normalized by the far plane, the
// form the main pass compares against.
const cubeDepthFrag = `#version 410 core
in vec4 FragPos;

uniform vec3 lightPos;
uniform float farPlane;

void main() {
    gl_FragDepth = length(FragPos.xyz - lightPos) / farPlane;
}
`

// DepthMapArray is a layered 2D depth texture plus the framebuffer and
// shader used to fill it. Each directional light occupies a contiguous
// run of layers, one per cascade.
type DepthMapArray struct {
	fbo    uint32
	tex    uint32
	size   int32
	layers int32
	shader *Shader
}

// NewDepthMapArray allocates a depth texture array of layers slices of
// size x size texels and compiles the layered depth shader.
func NewDepthMapArray(size, layers int32) (*DepthMapArray, error) {
	shader, err := NewShaderSource(depthArrayVert, depthArrayFrag, depthArrayGeom)
	if err != nil {
		return nil, errors.Wrap(err, "compile depth array shader")
	}

	d := &DepthMapArray{size: size, layers: layers, shader: shader}

	gl.GenTextures(1, &d.tex)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, d.tex)
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.DEPTH_COMPONENT32F, size, size, layers,
		0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	border := [4]float32{1, 1, 1, 1}
	gl.TexParameterfv(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_BORDER_COLOR, &border[0])

	gl.GenFramebuffers(1, &d.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, d.fbo)
	gl.FramebufferTexture(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, d.tex, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return nil, errors.Errorf("depth array framebuffer incomplete (0x%x)", status)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return d, nil
}

// Shader returns the layered depth shader used during Begin/End.
func (d *DepthMapArray) Shader() *Shader { return d.shader }

// Begin binds the framebuffer, clears depth, and binds the depth shader.
// The caller must End() before drawing the main pass.
func (d *DepthMapArray) Begin() {
	gl.Viewport(0, 0, d.size, d.size)
	gl.BindFramebuffer(gl.FRAMEBUFFER, d.fbo)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	d.shader.Bind()
}

// End unbinds the framebuffer and shader.
func (d *DepthMapArray) End() {
	d.shader.Unbind()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// BindForReading exposes the depth array to the given shader as a sampler
// on the given texture unit.
func (d *DepthMapArray) BindForReading(shader *Shader, name string, unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, d.tex)
	shader.SetInt(name, int32(unit))
}

// Release frees the framebuffer, texture, and shader.
func (d *DepthMapArray) Release() {
	gl.DeleteFramebuffers(1, &d.fbo)
	gl.DeleteTextures(1, &d.tex)
	d.shader.Release()
}

// CubeDepthMapArray is a cube map array depth texture for point light
// shadows. Each light occupies one cube (six consecutive layer-faces).
type CubeDepthMapArray struct {
	fbo    uint32
	tex    uint32
	size   int32
	cubes  int32
	shader *Shader
}

// NewCubeDepthMapArray allocates a cube map array with one cube per
// supported point light.
func NewCubeDepthMapArray(size, cubes int32) (*CubeDepthMapArray, error) {
	shader, err := NewShaderSource(cubeDepthVert, cubeDepthFrag, cubeDepthGeom)
	if err != nil {
		return nil, errors.Wrap(err, "compile cube depth shader")
	}

	d := &CubeDepthMapArray{size: size, cubes: cubes, shader: shader}

	gl.GenTextures(1, &d.tex)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP_ARRAY, d.tex)
	gl.TexImage3D(gl.TEXTURE_CUBE_MAP_ARRAY, 0, gl.DEPTH_COMPONENT32F, size, size, cubes*6,
		0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP_ARRAY, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.GenFramebuffers(1, &d.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, d.fbo)
	gl.FramebufferTexture(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, d.tex, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return nil, errors.Errorf("cube depth framebuffer incomplete (0x%x)", status)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return d, nil
}

// Shader returns the cube depth shader used during Begin/End.
func (d *CubeDepthMapArray) Shader() *Shader { return d.shader }

// Begin binds the framebuffer, clears depth, and binds the cube depth
// shader.
func (d *CubeDepthMapArray) Begin() {
	gl.Viewport(0, 0, d.size, d.size)
	gl.BindFramebuffer(gl.FRAMEBUFFER, d.fbo)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	d.shader.Bind()
}

// End unbinds the framebuffer and shader.
func (d *CubeDepthMapArray) End() {
	d.shader.Unbind()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// BindForReading exposes the cube map array to the given shader as a
// sampler on the given texture unit.
func (d *CubeDepthMapArray) BindForReading(shader *Shader, name string, unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP_ARRAY, d.tex)
	shader.SetInt(name, int32(unit))
}

// Release frees the framebuffer, texture, and shader.
func (d *CubeDepthMapArray) Release() {
	gl.DeleteFramebuffers(1, &d.fbo)
	gl.DeleteTextures(1, &d.tex)
	d.shader.Release()
}
