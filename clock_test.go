package arbor

import (
	"testing"
	"time"
)

func TestClockDelta(t *testing.T) {
	c := newClock()
	if c.Delta() != 0 {
		t.Fatalf("delta before first update = %v, want 0", c.Delta())
	}

	time.Sleep(10 * time.Millisecond)
	c.update()

	if c.Delta() < 0.005 {
		t.Fatalf("delta = %v, expected at least the sleep duration", c.Delta())
	}
	if c.Delta() > 1 {
		t.Fatalf("delta = %v, implausibly large", c.Delta())
	}
}

func TestClockElapsedGrows(t *testing.T) {
	c := newClock()
	first := c.Elapsed()
	time.Sleep(5 * time.Millisecond)
	if second := c.Elapsed(); second <= first {
		t.Fatalf("elapsed did not grow: %v then %v", first, second)
	}
}

func TestClockFPSSampling(t *testing.T) {
	c := newClock()
	if c.FPS() != 0 {
		t.Fatalf("fps before first sample = %v, want 0", c.FPS())
	}

	// Simulate a half second of 10ms frames without sleeping.
	for i := 0; i < 60; i++ {
		c.delta = 0.01
		c.frames++
		c.sampleTime += c.delta
		if c.sampleTime >= 0.5 {
			c.fps = float32(c.frames) / c.sampleTime
			c.frames = 0
			c.sampleTime = 0
		}
	}

	if c.FPS() < 90 || c.FPS() > 110 {
		t.Fatalf("fps = %v, want about 100", c.FPS())
	}
}
