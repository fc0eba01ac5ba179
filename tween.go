package arbor

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Vec3Tween animates a vector between two values, one tween per axis.
// Used for node movement from update handlers; the camera's GlideTo is
// built on the same mechanism.
type Vec3Tween struct {
	x, y, z *gween.Tween
}

// NewVec3Tween creates a tween from begin to end over duration seconds.
func NewVec3Tween(begin, end mgl32.Vec3, duration float32, easeFn ease.TweenFunc) *Vec3Tween {
	return &Vec3Tween{
		x: gween.New(begin.X(), end.X(), duration, easeFn),
		y: gween.New(begin.Y(), end.Y(), duration, easeFn),
		z: gween.New(begin.Z(), end.Z(), duration, easeFn),
	}
}

// Update advances the tween by dt seconds and returns the current value
// and whether the tween has finished.
func (t *Vec3Tween) Update(dt float32) (mgl32.Vec3, bool) {
	x, doneX := t.x.Update(dt)
	y, doneY := t.y.Update(dt)
	z, doneZ := t.z.Update(dt)
	return mgl32.Vec3{x, y, z}, doneX && doneY && doneZ
}

// Reset rewinds the tween to its beginning.
func (t *Vec3Tween) Reset() {
	t.x.Reset()
	t.y.Reset()
	t.z.Reset()
}
