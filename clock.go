package arbor

import (
	"time"
)

// Clock tracks frame timing: the delta of the last frame, total elapsed
// time, and a smoothed FPS sampled roughly twice a second.
type Clock struct {
	start     time.Time
	lastFrame time.Time
	delta     float32

	frames     int
	sampleTime float32
	fps        float32
}

func newClock() *Clock {
	now := time.Now()
	return &Clock{start: now, lastFrame: now}
}

// update advances the clock by one frame.
func (c *Clock) update() {
	now := time.Now()
	c.delta = float32(now.Sub(c.lastFrame).Seconds())
	c.lastFrame = now

	c.frames++
	c.sampleTime += c.delta
	if c.sampleTime >= 0.5 {
		c.fps = float32(c.frames) / c.sampleTime
		c.frames = 0
		c.sampleTime = 0
	}
}

// Delta returns the duration of the previous frame in seconds.
func (c *Clock) Delta() float32 {
	return c.delta
}

// Elapsed returns seconds since the clock started.
func (c *Clock) Elapsed() float32 {
	return float32(time.Since(c.start).Seconds())
}

// FPS returns the smoothed frames-per-second estimate. Zero until the
// first half-second sample completes.
func (c *Clock) FPS() float32 {
	return c.fps
}
