package arbor

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Input is the per-frame keyboard and mouse snapshot. GLFW callbacks feed
// it between frames; handlers and TakeInput read it during the frame.
type Input struct {
	keys             map[glfw.Key]bool
	keysJustPressed  map[glfw.Key]bool
	mouseHeld        map[glfw.MouseButton]bool
	mouseJustPressed map[glfw.MouseButton]bool

	mousePos     mgl32.Vec2
	lastMousePos mgl32.Vec2
	firstMove    bool

	scroll mgl32.Vec2
}

func newInput() *Input {
	return &Input{
		keys:             make(map[glfw.Key]bool),
		keysJustPressed:  make(map[glfw.Key]bool),
		mouseHeld:        make(map[glfw.MouseButton]bool),
		mouseJustPressed: make(map[glfw.MouseButton]bool),
		firstMove:        true,
	}
}

// attach registers the GLFW callbacks on the window.
func (in *Input) attach(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		in.onKey(key, action)
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		in.onMouseButton(button, action)
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		in.onCursorPos(float32(x), float32(y))
	})
	window.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		in.scroll = in.scroll.Add(mgl32.Vec2{float32(dx), float32(dy)})
	})
}

func (in *Input) onKey(key glfw.Key, action glfw.Action) {
	switch action {
	case glfw.Press:
		in.keys[key] = true
		in.keysJustPressed[key] = true
	case glfw.Release:
		in.keys[key] = false
	}
}

func (in *Input) onMouseButton(button glfw.MouseButton, action glfw.Action) {
	switch action {
	case glfw.Press:
		in.mouseHeld[button] = true
		in.mouseJustPressed[button] = true
	case glfw.Release:
		in.mouseHeld[button] = false
	}
}

func (in *Input) onCursorPos(x, y float32) {
	if in.firstMove {
		// Avoid a huge delta when the cursor first enters the window.
		in.lastMousePos = mgl32.Vec2{x, y}
		in.firstMove = false
	}
	in.mousePos = mgl32.Vec2{x, y}
}

// update rolls the snapshot forward at the end of a frame. Just-pressed
// state and the mouse delta reset here.
func (in *Input) update() {
	for key := range in.keysJustPressed {
		delete(in.keysJustPressed, key)
	}
	for button := range in.mouseJustPressed {
		delete(in.mouseJustPressed, button)
	}
	in.lastMousePos = in.mousePos
	in.scroll = mgl32.Vec2{}
}

// KeyHeld reports whether key is currently held down.
func (in *Input) KeyHeld(key glfw.Key) bool {
	return in.keys[key]
}

// KeyJustPressed reports whether key went down this frame.
func (in *Input) KeyJustPressed(key glfw.Key) bool {
	return in.keysJustPressed[key]
}

// MouseHeld reports whether button is currently held down.
func (in *Input) MouseHeld(button glfw.MouseButton) bool {
	return in.mouseHeld[button]
}

// MouseJustPressed reports whether button went down this frame.
func (in *Input) MouseJustPressed(button glfw.MouseButton) bool {
	return in.mouseJustPressed[button]
}

// MousePos returns the cursor position in window coordinates.
func (in *Input) MousePos() mgl32.Vec2 {
	return in.mousePos
}

// MouseDelta returns the cursor movement since the previous frame.
func (in *Input) MouseDelta() mgl32.Vec2 {
	return in.mousePos.Sub(in.lastMousePos)
}

// Scroll returns the scroll wheel movement accumulated this frame.
func (in *Input) Scroll() mgl32.Vec2 {
	return in.scroll
}
