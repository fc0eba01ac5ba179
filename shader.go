package arbor

import (
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Shader wraps a linked GL program. Uniform locations are cached by name;
// setting a uniform the program doesn't have logs a one-time warning and is
// otherwise a no-op, so per-frame rendering never fails on a missing uniform.
type Shader struct {
	program   uint32
	locations map[string]int32
}

// NewShader compiles and links a program from vertex and fragment source
// files, plus an optional geometry stage (empty path to skip). Compilation
// failure is a load-time error and therefore fatal to startup.
func NewShader(vertexPath, fragmentPath, geometryPath string) (*Shader, error) {
	vertex, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, errors.Wrapf(err, "read vertex shader %q", vertexPath)
	}
	fragment, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, errors.Wrapf(err, "read fragment shader %q", fragmentPath)
	}
	var geometry []byte
	if geometryPath != "" {
		if geometry, err = os.ReadFile(geometryPath); err != nil {
			return nil, errors.Wrapf(err, "read geometry shader %q", geometryPath)
		}
	}
	return NewShaderSource(string(vertex), string(fragment), string(geometry))
}

// NewShaderSource compiles and links a program from in-memory GLSL sources.
// geometry may be empty.
func NewShaderSource(vertex, fragment, geometry string) (*Shader, error) {
	program := gl.CreateProgram()

	vs, err := compileStage(gl.VERTEX_SHADER, vertex)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vs)
	gl.AttachShader(program, vs)

	fs, err := compileStage(gl.FRAGMENT_SHADER, fragment)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fs)
	gl.AttachShader(program, fs)

	if geometry != "" {
		gs, err := compileStage(gl.GEOMETRY_SHADER, geometry)
		if err != nil {
			return nil, err
		}
		defer gl.DeleteShader(gs)
		gl.AttachShader(program, gs)
	}

	gl.LinkProgram(program)
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length)+1)
		gl.GetProgramInfoLog(program, length, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return nil, errors.Errorf("link shader program: %s", strings.TrimRight(log, "\x00"))
	}

	return &Shader{program: program, locations: make(map[string]int32)}, nil
}

func compileStage(stage uint32, source string) (uint32, error) {
	id := gl.CreateShader(stage)
	src, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, src, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var length int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length)+1)
		gl.GetShaderInfoLog(id, length, nil, gl.Str(log))
		gl.DeleteShader(id)
		return 0, errors.Errorf("compile %s shader: %s", stageName(stage), strings.TrimRight(log, "\x00"))
	}
	return id, nil
}

func stageName(stage uint32) string {
	switch stage {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	case gl.GEOMETRY_SHADER:
		return "geometry"
	default:
		return "unknown"
	}
}

// Bind makes this program current.
func (s *Shader) Bind() {
	gl.UseProgram(s.program)
}

// Unbind clears the current program.
func (s *Shader) Unbind() {
	gl.UseProgram(0)
}

// Release deletes the GL program.
func (s *Shader) Release() {
	gl.DeleteProgram(s.program)
	s.program = 0
}

// uniformLocation resolves and caches a uniform location. A missing name is
// cached as -1 so the warning fires once per shader and name.
func (s *Shader) uniformLocation(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(s.program, gl.Str(name+"\x00"))
	if loc == -1 {
		warnf("uniform %q does not exist in program %d", name, s.program)
	}
	s.locations[name] = loc
	return loc
}

// SetInt sets an int uniform.
func (s *Shader) SetInt(name string, value int32) {
	gl.Uniform1i(s.uniformLocation(name), value)
}

// SetBool sets a bool uniform.
func (s *Shader) SetBool(name string, value bool) {
	v := int32(0)
	if value {
		v = 1
	}
	gl.Uniform1i(s.uniformLocation(name), v)
}

// SetFloat sets a float uniform.
func (s *Shader) SetFloat(name string, value float32) {
	gl.Uniform1f(s.uniformLocation(name), value)
}

// SetFloatSlice sets a float[] uniform.
func (s *Shader) SetFloatSlice(name string, values []float32) {
	if len(values) == 0 {
		return
	}
	gl.Uniform1fv(s.uniformLocation(name), int32(len(values)), &values[0])
}

// SetVec2 sets a vec2 uniform.
func (s *Shader) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2f(s.uniformLocation(name), v.X(), v.Y())
}

// SetVec3 sets a vec3 uniform.
func (s *Shader) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(s.uniformLocation(name), v.X(), v.Y(), v.Z())
}

// SetVec4 sets a vec4 uniform.
func (s *Shader) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4f(s.uniformLocation(name), v.X(), v.Y(), v.Z(), v.W())
}

// SetMat4 sets a mat4 uniform.
func (s *Shader) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(s.uniformLocation(name), 1, false, &m[0])
}

// SetMat4Slice sets a mat4[] uniform.
func (s *Shader) SetMat4Slice(name string, ms []mgl32.Mat4) {
	if len(ms) == 0 {
		return
	}
	gl.UniformMatrix4fv(s.uniformLocation(name), int32(len(ms)), false, &ms[0][0])
}
