package arbor

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// glideAnim holds the active glide-to tweens for camera X, Y, and Z.
type glideAnim struct {
	x, y, z *gween.Tween
	done    bool
}

// Camera is the perspective-projection payload of a camera node. Position and
// orientation live in the owning node's transform; the payload holds the
// projection parameters and the fly-controls state.
type Camera struct {
	// FOV is the vertical field of view in radians.
	FOV float32
	// Aspect is width over height.
	Aspect float32
	// Near and Far are the clip planes.
	Near, Far float32
	// Up is the world up axis used for the view matrix.
	Up mgl32.Vec3
	// MoveSpeed is the fly speed in units per second for TakeInput.
	MoveSpeed float32
	// Sensitivity scales mouse-look rotation.
	Sensitivity float32

	transform *Transform
	glide     *glideAnim
}

func newCamera(transform *Transform, fov, aspect, near, far float32) *Camera {
	return &Camera{
		FOV:         fov,
		Aspect:      aspect,
		Near:        near,
		Far:         far,
		Up:          mgl32.Vec3{0, 1, 0},
		MoveSpeed:   10,
		Sensitivity: 0.5,
		transform:   transform,
	}
}

// Position returns the camera node's local position.
func (c *Camera) Position() mgl32.Vec3 {
	return c.transform.Position()
}

// SetPosition moves the camera node.
func (c *Camera) SetPosition(position mgl32.Vec3) {
	c.transform.SetPosition(position)
}

// SetOrientation points the camera along direction.
func (c *Camera) SetOrientation(direction mgl32.Vec3) {
	c.transform.SetRotation(quatFromDirection(direction))
}

// Orientation returns the camera's forward vector.
func (c *Camera) Orientation() mgl32.Vec3 {
	return c.transform.Forward()
}

// OrientationAngles returns pitch and yaw in degrees, derived from the
// forward vector. Convenient for debug overlays.
func (c *Camera) OrientationAngles() (pitch, yaw float32) {
	forward := c.transform.Forward()
	pitch = mgl32.RadToDeg(math32.Asin(-forward.Y()))
	yaw = mgl32.RadToDeg(math32.Atan2(forward.X(), forward.Z()))
	return pitch, yaw
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// viewMatrixAt builds the view matrix for the camera placed at the given
// world transform (for nested cameras, the combination of the ancestor
// transform with the camera's local one).
func (c *Camera) viewMatrixAt(world Transform) mgl32.Mat4 {
	eye := world.Position()
	return mgl32.LookAtV(eye, eye.Add(world.Forward()), c.Up)
}

// ViewProjection returns projection * view for the camera at the given world
// transform. The main pass hands this to every model draw.
func (c *Camera) ViewProjection(world Transform) mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.viewMatrixAt(world))
}

// Rotate applies a mouse-look style rotation: offset.X yaws around the up
// axis, offset.Y pitches around the current right axis.
func (c *Camera) Rotate(offset mgl32.Vec2, amount float32) {
	forward := c.transform.Forward()
	right := forward.Cross(c.Up).Normalize()

	yaw := mgl32.QuatRotate(-offset.X()*amount, c.Up)
	pitch := mgl32.QuatRotate(-offset.Y()*amount, right)
	combined := yaw.Mul(pitch).Normalize()

	c.transform.SetRotation(combined.Mul(c.transform.Rotation()).Normalize())
}

// TakeInput applies WASD fly movement, Space/Ctrl vertical movement, Shift
// speed boost, and mouse-look from the frame's input snapshot.
func (c *Camera) TakeInput(input *Input, dt float32) {
	speed := c.MoveSpeed * dt
	if input.KeyHeld(glfw.KeyLeftShift) {
		speed *= 5
	}

	forward := c.transform.Forward()
	right := forward.Cross(c.Up).Normalize()

	var offset mgl32.Vec3
	if input.KeyHeld(glfw.KeyW) {
		offset = offset.Add(forward.Mul(speed))
	}
	if input.KeyHeld(glfw.KeyS) {
		offset = offset.Sub(forward.Mul(speed))
	}
	if input.KeyHeld(glfw.KeyA) {
		offset = offset.Sub(right.Mul(speed))
	}
	if input.KeyHeld(glfw.KeyD) {
		offset = offset.Add(right.Mul(speed))
	}
	if input.KeyHeld(glfw.KeySpace) {
		offset = offset.Add(c.Up.Mul(speed))
	}
	if input.KeyHeld(glfw.KeyLeftControl) {
		offset = offset.Sub(c.Up.Mul(speed))
	}
	c.transform.Translate(offset)

	if delta := input.MouseDelta(); delta.Len() > 0 {
		c.Rotate(delta, c.Sensitivity*dt)
	}
}

// GlideTo animates the camera to a world position over duration seconds.
// A glide in progress is replaced. The engine advances glides each frame;
// call StepGlide manually when driving the camera without an Engine.
func (c *Camera) GlideTo(target mgl32.Vec3, duration float32, easeFn ease.TweenFunc) {
	from := c.transform.Position()
	c.glide = &glideAnim{
		x: gween.New(from.X(), target.X(), duration, easeFn),
		y: gween.New(from.Y(), target.Y(), duration, easeFn),
		z: gween.New(from.Z(), target.Z(), duration, easeFn),
	}
}

// StepGlide advances an active glide by dt seconds. Reports whether a glide
// is still running.
func (c *Camera) StepGlide(dt float32) bool {
	if c.glide == nil || c.glide.done {
		return false
	}
	x, doneX := c.glide.x.Update(dt)
	y, doneY := c.glide.y.Update(dt)
	z, doneZ := c.glide.z.Update(dt)
	c.transform.SetPosition(mgl32.Vec3{x, y, z})
	if doneX && doneY && doneZ {
		c.glide.done = true
		c.glide = nil
		return false
	}
	return true
}
