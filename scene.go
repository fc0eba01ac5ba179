package arbor

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrDuplicateName is returned by Scene.Add when the name is already taken.
// The scene is left unchanged.
var ErrDuplicateName = errors.New("arbor: duplicate node name")

// ErrSceneLocked is returned by Add and Remove while a traversal is walking
// the scene. Structural edits mid-traversal are forbidden; perform them from
// outside the frame's passes. (A deferred edit queue is a possible future
// extension, not a current feature.)
var ErrSceneLocked = errors.New("arbor: scene is locked by an in-progress traversal")

// Scene is an insertion-ordered collection of named, owned nodes: a forest
// of trees. Every node's child collection is itself a Scene. The root Scene
// additionally carries the scene-wide designations: the active camera path,
// the shader registry, and the active shader name.
type Scene struct {
	names []string
	nodes map[string]*Node

	// Scene-wide designations, meaningful on the root scene only. They are
	// explicit fields rather than globals so two engines never share them.
	activeCameraPath []string
	shaders          map[string]*Shader
	activeShader     string

	// locks counts in-progress traversals holding this level of the tree.
	locks int
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{nodes: make(map[string]*Node)}
}

// Add inserts node under name. Fails with ErrDuplicateName if the name is
// taken and ErrSceneLocked during a traversal; in both cases the scene is
// unchanged. The first camera added becomes the active camera if none is set.
func (s *Scene) Add(name string, node *Node) error {
	if s.locks > 0 {
		return errors.Wrapf(ErrSceneLocked, "add %q", name)
	}
	if _, exists := s.nodes[name]; exists {
		return errors.Wrapf(ErrDuplicateName, "add %q", name)
	}
	node.Name = name
	s.names = append(s.names, name)
	s.nodes[name] = node

	if node.Type == NodeTypeCamera && len(s.activeCameraPath) == 0 {
		s.activeCameraPath = []string{name}
	}
	return nil
}

// MustAdd is Add for scene construction code, where a duplicate name is a
// programming error. Panics on failure and returns the node for chaining.
func (s *Scene) MustAdd(name string, node *Node) *Node {
	if err := s.Add(name, node); err != nil {
		panic(err)
	}
	return node
}

// Remove detaches and returns the named node. Fails closed if absent.
func (s *Scene) Remove(name string) (*Node, error) {
	if s.locks > 0 {
		return nil, errors.Wrapf(ErrSceneLocked, "remove %q", name)
	}
	node, ok := s.nodes[name]
	if !ok {
		return nil, errors.Errorf("arbor: remove %q: no such node", name)
	}
	delete(s.nodes, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return node, nil
}

// Get returns the named node, or false if absent.
func (s *Scene) Get(name string) (*Node, bool) {
	n, ok := s.nodes[name]
	return n, ok
}

// GetTyped returns the named node only if it exists and has the requested
// variant. Missing name and wrong variant are both reported as absent, never
// as an error.
func (s *Scene) GetTyped(name string, typ NodeType) (*Node, bool) {
	n, ok := s.nodes[name]
	if !ok || n.Type != typ {
		return nil, false
	}
	return n, true
}

// Len returns the number of direct children.
func (s *Scene) Len() int {
	return len(s.names)
}

// Names returns the insertion-ordered child names. The slice must not be
// mutated by the caller.
func (s *Scene) Names() []string {
	return s.names
}

// Each calls fn for every direct child in insertion order, without
// descending. Use Visit for recursive traversal with world transforms.
func (s *Scene) Each(fn func(*Node)) {
	for _, name := range s.names {
		fn(s.nodes[name])
	}
}

// Resolve walks a /-segmented path ("camera/light/source") through nested
// child scenes. Fails closed: any missing segment returns false, never a
// panic.
func (s *Scene) Resolve(path string) (*Node, bool) {
	if path == "" {
		return nil, false
	}
	current := s
	var node *Node
	for _, segment := range strings.Split(path, "/") {
		n, ok := current.Get(segment)
		if !ok {
			return nil, false
		}
		node = n
		current = n.children
	}
	return node, true
}

// SetActiveCamera designates the root-to-camera name path used by the main
// pass, e.g. SetActiveCamera("rig", "camera") for a camera nested under a
// "rig" node. The path is validated lazily: resolution failure skips the
// affected pass with a warning instead of failing here, because the camera
// may legitimately be added later during setup.
func (s *Scene) SetActiveCamera(path ...string) {
	s.activeCameraPath = append([]string(nil), path...)
}

// ActiveCameraPath returns the stored camera path.
func (s *Scene) ActiveCameraPath() []string {
	return s.activeCameraPath
}

// AddShader registers a compiled shader under name. The first shader added
// becomes the active shader.
func (s *Scene) AddShader(name string, shader *Shader) *Shader {
	if s.shaders == nil {
		s.shaders = make(map[string]*Shader)
	}
	s.shaders[name] = shader
	if s.activeShader == "" {
		s.activeShader = name
	}
	return shader
}

// Shader returns the named shader, or false if absent.
func (s *Scene) Shader(name string) (*Shader, bool) {
	sh, ok := s.shaders[name]
	return sh, ok
}

// ActiveShader returns the shader the main pass binds, or false when none is
// registered. Render passes that need it skip with a warning, never crash.
func (s *Scene) ActiveShader() (*Shader, bool) {
	return s.Shader(s.activeShader)
}

// SetActiveShader switches the main-pass shader. Fails closed if the name is
// not registered.
func (s *Scene) SetActiveShader(name string) bool {
	if _, ok := s.shaders[name]; !ok {
		return false
	}
	s.activeShader = name
	return true
}
