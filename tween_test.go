package arbor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

func TestVec3TweenLinear(t *testing.T) {
	tw := NewVec3Tween(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{10, 20, -30}, 2, ease.Linear)

	v, done := tw.Update(1)
	if done {
		t.Fatal("tween finished halfway through")
	}
	assertVec3Near(t, v, mgl32.Vec3{5, 10, -15}, "halfway value")

	v, done = tw.Update(1)
	if !done {
		t.Fatal("tween should finish at full duration")
	}
	assertVec3Near(t, v, mgl32.Vec3{10, 20, -30}, "end value")
}

func TestVec3TweenOvershootClamps(t *testing.T) {
	tw := NewVec3Tween(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1}, 1, ease.Linear)
	v, done := tw.Update(5)
	if !done {
		t.Fatal("tween should finish on overshoot")
	}
	assertVec3Near(t, v, mgl32.Vec3{1, 1, 1}, "overshoot value")
}

func TestVec3TweenReset(t *testing.T) {
	tw := NewVec3Tween(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{4, 4, 4}, 1, ease.Linear)
	tw.Update(1)
	tw.Reset()

	v, done := tw.Update(0.5)
	if done {
		t.Fatal("tween finished immediately after reset")
	}
	assertVec3Near(t, v, mgl32.Vec3{2, 2, 2}, "value after reset")
}
