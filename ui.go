package arbor

// UI is the payload of a UI node. Render draws the overlay after the main
// pass, with depth testing disabled and the main framebuffer bound.
// Refresh runs at the end of the frame, after update handlers, so text
// and widgets reflect this frame's state.
type UI struct {
	Render  func(ctx *Context)
	Refresh func(ctx *Context)
}
