package arbor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func assertNodeDefaults(t *testing.T, n *Node, typ NodeType) {
	t.Helper()
	if n.Type != typ {
		t.Errorf("Type = %v, want %v", n.Type, typ)
	}
	if n.Children() == nil || n.Children().Len() != 0 {
		t.Error("children should be an empty scene")
	}
	if n.Transform.Scale() != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("Scale = %v, want (1, 1, 1)", n.Transform.Scale())
	}
}

func TestNewEmptyDefaults(t *testing.T) {
	n := NewEmpty()
	assertNodeDefaults(t, n, NodeTypeEmpty)
	if n.Camera != nil || n.Model != nil || n.DirLight != nil || n.PointLight != nil || n.UI != nil {
		t.Error("empty node should carry no payload")
	}
}

func TestNewContainerDefaults(t *testing.T) {
	assertNodeDefaults(t, NewContainer(), NodeTypeContainer)
}

func TestNewCameraDefaults(t *testing.T) {
	n := NewCamera(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}, mgl32.DegToRad(45), 16.0/9, 0.1, 100)
	assertNodeDefaults(t, n, NodeTypeCamera)
	if n.Camera == nil {
		t.Fatal("camera payload missing")
	}
	assertVec3Near(t, n.Transform.Position(), mgl32.Vec3{0, 0, 5}, "Position")
	// The node's forward axis must point along the requested direction.
	assertVec3Near(t, n.Transform.Forward(), mgl32.Vec3{0, 0, -1}, "Forward")
}

func TestNewDirectionalLightDefaults(t *testing.T) {
	n := NewDirectionalLight(mgl32.Vec3{0, -1, 0}, ColorWhite, 100, 4)
	assertNodeDefaults(t, n, NodeTypeDirectionalLight)
	if n.DirLight == nil {
		t.Fatal("directional light payload missing")
	}
	assertVec3Near(t, n.Transform.Forward(), mgl32.Vec3{0, -1, 0}, "Forward")
}

func TestNewPointLightDefaults(t *testing.T) {
	n := NewPointLight(Color{1, 0.5, 0, 1}, 2, 0.1, 25)
	assertNodeDefaults(t, n, NodeTypePointLight)
	if n.PointLight == nil {
		t.Fatal("point light payload missing")
	}
	if n.PointLight.Far != 25 || n.PointLight.Intensity != 2 {
		t.Errorf("payload = %+v", n.PointLight)
	}
}

func TestNewUIDefaults(t *testing.T) {
	n := NewUI(UI{})
	assertNodeDefaults(t, n, NodeTypeUI)
	if n.UI == nil {
		t.Fatal("ui payload missing")
	}
}

func TestNodeTypeString(t *testing.T) {
	cases := map[NodeType]string{
		NodeTypeEmpty:            "Empty",
		NodeTypeContainer:        "Container",
		NodeTypeCamera:           "Camera",
		NodeTypeModel:            "Model",
		NodeTypeDirectionalLight: "DirectionalLight",
		NodeTypePointLight:       "PointLight",
		NodeTypeUI:               "UI",
		NodeType(200):            "Unknown",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("NodeType(%d).String() = %q, want %q", typ, got, want)
		}
	}
}
