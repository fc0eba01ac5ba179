package arbor

import "github.com/go-gl/mathgl/mgl32"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is the default light/tint color.
var ColorWhite = Color{1, 1, 1, 1}

// Vec4 returns the color as an mgl32 vector, the form shader uniforms take.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// NodeType distinguishes the behavior of a Node. The variant set is closed:
// traversal code switches exhaustively on it rather than downcasting.
type NodeType uint8

const (
	NodeTypeEmpty            NodeType = iota // plain node with no special behavior
	NodeTypeContainer                        // grouping node, identical to Empty apart from intent
	NodeTypeCamera                           // perspective camera, payload in Node.Camera
	NodeTypeModel                            // rendered mesh hierarchy, payload in Node.Model
	NodeTypeDirectionalLight                 // cascaded-shadow sun light, payload in Node.DirLight
	NodeTypePointLight                       // cube-shadow point light, payload in Node.PointLight
	NodeTypeUI                               // overlay with user draw closures, payload in Node.UI
)

// String returns the variant name, used in warnings and debug output.
func (t NodeType) String() string {
	switch t {
	case NodeTypeEmpty:
		return "Empty"
	case NodeTypeContainer:
		return "Container"
	case NodeTypeCamera:
		return "Camera"
	case NodeTypeModel:
		return "Model"
	case NodeTypeDirectionalLight:
		return "DirectionalLight"
	case NodeTypePointLight:
		return "PointLight"
	case NodeTypeUI:
		return "UI"
	default:
		return "Unknown"
	}
}
