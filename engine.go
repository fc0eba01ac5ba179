package arbor

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

func init() {
	// GLFW and GL contexts are bound to the thread that created them.
	runtime.LockOSThread()
}

// Texture units reserved for the shadow maps in the main pass. Material
// textures use the low units, so these sit above them.
const (
	shadowMapUnit     = 5
	cubeShadowMapUnit = 2
)

// Engine owns the window, the scene, and the frame loop. One frame runs
// the passes in a fixed order: clear, directional shadow depth, point
// shadow depth, main, UI, update handlers, UI refresh, present.
type Engine struct {
	Window *glfw.Window
	Scene  *Scene
	Input  *Input
	Clock  *Clock
	Config Config

	// Debug turns on per-frame pass timing on stderr.
	Debug bool

	shadowMaps     *DepthMapArray
	cubeShadowMaps *CubeDepthMapArray

	width, height int
}

// New creates the window, the GL context, and the shadow-map storage.
// Must be called from the main goroutine.
func New(cfg Config) (*Engine, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "initialize glfw")
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, cfg.Samples)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "create window")
	}
	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := initGL(); err != nil {
		glfw.Terminate()
		return nil, err
	}
	setClearColor(cfg.ClearColor)

	e := &Engine{
		Window: window,
		Scene:  NewScene(),
		Input:  newInput(),
		Clock:  newClock(),
		Config: cfg,
		width:  cfg.Width,
		height: cfg.Height,
	}
	e.Input.attach(window)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		e.width, e.height = w, h
	})

	e.shadowMaps, err = NewDepthMapArray(cfg.ShadowMapSize, int32(cfg.MaxDirectionalLights*maxCascades))
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	e.cubeShadowMaps, err = NewCubeDepthMapArray(cfg.CubeShadowMapSize, int32(cfg.MaxPointLights))
	if err != nil {
		glfw.Terminate()
		return nil, err
	}

	fmt.Fprintf(os.Stderr, "[arbor] OpenGL %s\n", glVersion())
	return e, nil
}

// Run drives the frame loop until the window closes. Ready handlers fire
// once for the nodes present when the loop starts; nodes added later fire
// theirs on their first frame.
func (e *Engine) Run() {
	ctx := &Context{Input: e.Input, Clock: e.Clock, Scene: e.Scene, Window: e.Window}

	for !e.Window.ShouldClose() {
		e.Clock.update()

		// Late-added nodes get their ready event here too; dispatch
		// marks each receiver so none fires twice.
		e.Scene.emit(EventReady, ctx)

		var stats debugStats
		e.frame(ctx, &stats)

		e.Scene.emit(EventUpdate, ctx)
		e.stepGlides()
		e.refreshUI(ctx)

		if e.Debug {
			debugLog(stats)
		}

		e.Input.update()
		e.Window.SwapBuffers()
		glfw.PollEvents()
	}
}

// frame renders one frame: shadow depth passes, then the main pass, then
// the UI overlay.
func (e *Engine) frame(ctx *Context, stats *debugStats) {
	clearFrame()

	camNode, camAncestor, ok := e.Scene.resolveCameraPath(e.Scene.ActiveCameraPath())
	if !ok {
		warnOnce("camera", "active camera path %v did not resolve; skipping render passes",
			e.Scene.ActiveCameraPath())
		return
	}
	camWorld := Combine(camAncestor, camNode.Transform)
	camPos := camWorld.Position()
	vp := camNode.Camera.ViewProjection(camWorld)

	start := time.Now()
	dirLights := e.shadowDepthPass(camPos)
	stats.shadowTime = time.Since(start)
	stats.dirLightCount = len(dirLights)

	start = time.Now()
	pointLights := e.cubeShadowDepthPass()
	stats.cubeShadowTime = time.Since(start)
	stats.pointLightCount = len(pointLights)

	setViewport(e.width, e.height)

	start = time.Now()
	e.mainPass(camPos, vp, dirLights, pointLights, stats)
	stats.mainTime = time.Since(start)

	start = time.Now()
	e.uiPass(ctx)
	stats.uiTime = time.Since(start)
}

// shadowDepthPass renders every directional light's cascades into the
// shared depth array and returns the lights that were rendered.
func (e *Engine) shadowDepthPass(camPos mgl32.Vec3) []collected {
	lights := e.Scene.collectByType(NodeTypeDirectionalLight)
	if len(lights) > e.Config.MaxDirectionalLights {
		warnOnce("dirlights", "%d directional lights exceed the configured maximum %d; extras ignored",
			len(lights), e.Config.MaxDirectionalLights)
		lights = lights[:e.Config.MaxDirectionalLights]
	}
	if len(lights) == 0 {
		return lights
	}

	e.shadowMaps.Begin()
	for i, light := range lights {
		light.node.DirLight.renderShadowMap(e.Scene, e.shadowMaps, i*maxCascades, camPos)
	}
	e.shadowMaps.End()
	return lights
}

// cubeShadowDepthPass renders every point light's six faces into the
// shared cube array and returns the lights that were rendered. The world
// position of each light comes from the traversal that collected it.
func (e *Engine) cubeShadowDepthPass() []collected {
	lights := e.Scene.collectByType(NodeTypePointLight)
	if len(lights) > e.Config.MaxPointLights {
		warnOnce("pointlights", "%d point lights exceed the configured maximum %d; extras ignored",
			len(lights), e.Config.MaxPointLights)
		lights = lights[:e.Config.MaxPointLights]
	}
	if len(lights) == 0 {
		return lights
	}

	e.cubeShadowMaps.Begin()
	for i, light := range lights {
		light.node.PointLight.renderShadowMap(e.Scene, light.world, e.cubeShadowMaps, i)
	}
	e.cubeShadowMaps.End()
	return lights
}

// mainPass draws every model with the active shader, the frame's light
// uniforms, and both shadow arrays bound for reading.
func (e *Engine) mainPass(camPos mgl32.Vec3, vp mgl32.Mat4, dirLights, pointLights []collected, stats *debugStats) {
	shader, ok := e.Scene.ActiveShader()
	if !ok {
		shader = e.fallbackShader()
		if shader == nil {
			return
		}
	}

	for i, light := range dirLights {
		light.node.DirLight.bindUniforms(shader, i)
	}
	for i, light := range pointLights {
		light.node.PointLight.bindUniforms(shader, i, light.world)
	}

	shader.Bind()
	shader.SetInt("directLightLength", int32(len(dirLights)))
	shader.SetInt("pointLightLength", int32(len(pointLights)))
	shader.SetFloat("scene.ambient", e.Config.AmbientLight)
	shader.SetFloat("scene.biasFactor", e.Config.ShadowBiasFactor)
	shader.SetFloat("scene.biasOffset", e.Config.ShadowBiasOffset)
	e.shadowMaps.BindForReading(shader, "shadowMaps", shadowMapUnit)
	e.cubeShadowMaps.BindForReading(shader, "shadowCubeMaps", cubeShadowMapUnit)

	e.Scene.Visit(func(world Transform, n *Node) {
		if n.Type == NodeTypeModel {
			n.Model.Draw(shader, camPos, vp, world)
			stats.modelCount++
		}
	})
	shader.Unbind()
}

// fallbackShader lazily compiles and registers the built-in shader when no
// shader has been added to the scene.
func (e *Engine) fallbackShader() *Shader {
	warnOnce("shader", "no shader registered; using the built-in default")
	shader, err := NewDefaultShader()
	if err != nil {
		warnOnce("shader/compile", "built-in shader failed to compile: %v", err)
		return nil
	}
	return e.Scene.AddShader("default", shader)
}

// uiPass draws UI node overlays with depth testing off so they always
// land on top of the 3D frame.
func (e *Engine) uiPass(ctx *Context) {
	uis := e.Scene.collectByType(NodeTypeUI)
	if len(uis) == 0 {
		return
	}
	gl.Disable(gl.DEPTH_TEST)
	for _, ui := range uis {
		if ui.node.UI.Render != nil {
			ui.node.UI.Render(ctx)
		}
	}
	gl.Enable(gl.DEPTH_TEST)
}

// refreshUI runs UI refresh hooks after the update handlers so widget
// contents reflect this frame's state.
func (e *Engine) refreshUI(ctx *Context) {
	for _, ui := range e.Scene.collectByType(NodeTypeUI) {
		if ui.node.UI.Refresh != nil {
			ui.node.UI.Refresh(ctx)
		}
	}
}

// stepGlides advances any camera glide animations by the frame delta.
func (e *Engine) stepGlides() {
	dt := e.Clock.Delta()
	e.Scene.Visit(func(_ Transform, n *Node) {
		if n.Type == NodeTypeCamera {
			n.Camera.StepGlide(dt)
		}
	})
}

// Release frees the engine's GPU resources and tears down GLFW. Models
// and shaders owned by the caller are released by the caller.
func (e *Engine) Release() {
	e.shadowMaps.Release()
	e.cubeShadowMaps.Release()
	e.Window.Destroy()
	glfw.Terminate()
}
