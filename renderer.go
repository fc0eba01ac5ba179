package arbor

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

// initGL loads the GL function pointers and sets the fixed pipeline state
// the engine relies on: depth testing, back-face culling, multisampling,
// and seamless cube-map filtering for the point-light shadows.
func initGL() error {
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "initialize OpenGL")
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return nil
}

// clearFrame clears the color and depth buffers.
func clearFrame() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// setClearColor sets the color the frame is cleared to.
func setClearColor(c Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
}

// setViewport sets the render viewport in pixels.
func setViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// glVersion returns the driver's version string, for the startup log line.
func glVersion() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}
