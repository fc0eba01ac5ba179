package arbor

import "github.com/go-gl/glfw/v3.3/glfw"

// Event identifies a node lifecycle event.
type Event uint8

const (
	// EventReady fires once per node, before the first frame.
	EventReady Event = iota
	// EventUpdate fires once per frame during the update pass.
	EventUpdate
)

// Handler is a lifecycle callback. It receives the owning node and the
// frame context. Handlers may mutate node-local state (transform, payload)
// and read other nodes through ctx, but must not add or remove nodes: the
// tree shape is locked during traversal and structural edits return
// ErrSceneLocked.
type Handler func(n *Node, ctx *Context)

// Context is the shared state passed to every lifecycle callback in a frame.
type Context struct {
	// Input is the read-only input snapshot for this frame.
	Input *Input
	// Clock provides delta time and elapsed time.
	Clock *Clock
	// Scene is the root scene, for path queries against other nodes.
	Scene *Scene
	// Window is the host window; nil in tests. Callbacks use it to request
	// shutdown or adjust the cursor mode.
	Window *glfw.Window
}

// DeltaTime returns the seconds elapsed since the previous frame.
func (c *Context) DeltaTime() float32 {
	return c.Clock.Delta()
}

// eventReceiver stores a node's registered callbacks. Ready callbacks fire
// at most once over the node's lifetime, however many times the ready pass
// runs.
type eventReceiver struct {
	ready      []Handler
	update     []Handler
	readyFired bool
}

func (r *eventReceiver) on(event Event, fn Handler) {
	switch event {
	case EventReady:
		r.ready = append(r.ready, fn)
	case EventUpdate:
		r.update = append(r.update, fn)
	}
}

// dispatch invokes the callbacks registered for event, in registration
// order.
func (r *eventReceiver) dispatch(event Event, n *Node, ctx *Context) {
	switch event {
	case EventReady:
		if r.readyFired {
			return
		}
		r.readyFired = true
		for _, fn := range r.ready {
			fn(n, ctx)
		}
	case EventUpdate:
		for _, fn := range r.update {
			fn(n, ctx)
		}
	}
}
