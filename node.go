package arbor

import "github.com/go-gl/mathgl/mgl32"

// Node is one element of the scene graph. A single flat struct is used for
// every variant, tagged by Type, with the variant payload in exactly one of
// the pointer fields. Traversal code switches on Type; there is no runtime
// type assertion anywhere in the engine.
type Node struct {
	// Name is the key the node was inserted under. Set by Scene.Add.
	Name string
	// Type tags the variant. Fixed at construction.
	Type NodeType

	// Transform is the node's local transform. World transforms are the
	// fold of this with every ancestor's local transform, recomputed on
	// every traversal and never cached.
	Transform Transform

	// children is the owned sub-forest, keyed by name.
	children *Scene

	// events holds the registered lifecycle callbacks.
	events eventReceiver

	// Variant payloads. Exactly one is non-nil, matching Type; the rest
	// stay nil. Empty and Container carry no payload.
	Camera     *Camera
	Model      *Model
	DirLight   *DirectionalLight
	PointLight *PointLight
	UI         *UI
}

// newNode sets the common defaults shared by all constructors.
func newNode(typ NodeType) *Node {
	return &Node{
		Type:      typ,
		Transform: NewTransform(),
		children:  NewScene(),
	}
}

// NewEmpty creates a node with no special behavior.
func NewEmpty() *Node {
	return newNode(NodeTypeEmpty)
}

// NewContainer creates a grouping node. Behaviorally identical to Empty; the
// distinct tag exists so scene-building code can state intent.
func NewContainer() *Node {
	return newNode(NodeTypeContainer)
}

// NewCamera creates a perspective camera node at position, looking along
// direction. fov is vertical field of view in radians.
func NewCamera(position, direction mgl32.Vec3, fov, aspect, near, far float32) *Node {
	n := newNode(NodeTypeCamera)
	n.Transform = TRS(position, quatFromDirection(direction), mgl32.Vec3{1, 1, 1})
	n.Camera = newCamera(&n.Transform, fov, aspect, near, far)
	return n
}

// NewModel creates a node rendering the given model. The model's GPU
// resources are owned by the node's scene from this point on.
func NewModel(model *Model) *Node {
	n := newNode(NodeTypeModel)
	n.Model = model
	return n
}

// NewDirectionalLight creates a sun-style light shining along direction,
// casting cascaded shadows out to shadowDistance.
func NewDirectionalLight(direction mgl32.Vec3, color Color, shadowDistance float32, cascades int) *Node {
	n := newNode(NodeTypeDirectionalLight)
	n.DirLight = newDirectionalLight(direction, color, shadowDistance, cascades)
	n.Transform.SetRotation(quatFromDirection(direction))
	return n
}

// NewPointLight creates an omnidirectional light with cube-map shadows. Its
// world position comes from the node's transform, resolved by path
// accumulation at render time.
func NewPointLight(color Color, intensity, near, far float32) *Node {
	n := newNode(NodeTypePointLight)
	n.PointLight = &PointLight{Color: color, Intensity: intensity, Near: near, Far: far}
	return n
}

// NewUI creates an overlay node. Render runs during the UI pass, Refresh
// during the per-frame data step; either may be nil.
func NewUI(ui UI) *Node {
	n := newNode(NodeTypeUI)
	n.UI = &ui
	return n
}

// Children returns the node's child collection.
func (n *Node) Children() *Scene {
	return n.children
}

// On registers a lifecycle callback. Returns the node for chaining during
// scene construction.
func (n *Node) On(event Event, fn Handler) *Node {
	n.events.on(event, fn)
	return n
}

// OnReady registers a callback invoked once, before the first frame.
func (n *Node) OnReady(fn Handler) *Node {
	return n.On(EventReady, fn)
}

// OnUpdate registers a callback invoked every frame.
func (n *Node) OnUpdate(fn Handler) *Node {
	return n.On(EventUpdate, fn)
}
