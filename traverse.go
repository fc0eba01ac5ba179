package arbor

// collected pairs a node with its world transform, as accumulated during one
// traversal. The references are only valid for the duration of the current
// frame's passes; nothing in the engine persists them across frames.
type collected struct {
	node  *Node
	world Transform
}

// Visit walks the scene depth-first in pre-order: every node exactly once,
// parent strictly before its descendants, siblings in insertion order. fn
// receives each node with its accumulated world transform. The tree shape is
// locked for the duration of the walk; Add/Remove on any scene level between
// the root and the visited node (including the node's own children) fail
// with ErrSceneLocked.
//
// This one walker backs the ready pass, the update pass, typed collection,
// and the draw passes.
func (s *Scene) Visit(fn func(world Transform, n *Node)) {
	s.visit(NewTransform(), fn)
}

func (s *Scene) visit(parent Transform, fn func(world Transform, n *Node)) {
	s.locks++
	defer func() { s.locks-- }()

	for _, name := range s.names {
		n := s.nodes[name]
		world := Combine(parent, n.Transform)

		// The node's own child scene is locked while its callback runs so a
		// callback cannot reshape the subtree it is about to descend into.
		n.children.locks++
		fn(world, n)
		n.children.locks--

		n.children.visit(world, fn)
	}
}

// collectByType gathers every node of the given variant, however deeply
// nested (a light under a camera under another light is found three times
// over), with correctly accumulated world transforms.
func (s *Scene) collectByType(typ NodeType) []collected {
	var out []collected
	s.Visit(func(world Transform, n *Node) {
		if n.Type == typ {
			out = append(out, collected{node: n, world: world})
		}
	})
	return out
}

// emit runs a lifecycle pass over the whole tree in traversal order.
func (s *Scene) emit(event Event, ctx *Context) {
	s.Visit(func(_ Transform, n *Node) {
		n.events.dispatch(event, n, ctx)
	})
}

// resolveCameraPath descends the stored root-to-camera name path and returns
// the camera node together with the accumulated world transform of its
// ancestors. The camera's own local transform is deliberately excluded so
// callers can combine it as they need. Returns false if the path is empty,
// any segment is missing, or the final node is not a camera.
func (s *Scene) resolveCameraPath(path []string) (*Node, Transform, bool) {
	if len(path) == 0 {
		return nil, Transform{}, false
	}

	current := s
	ancestor := NewTransform()
	var node *Node
	for i, segment := range path {
		n, ok := current.Get(segment)
		if !ok {
			return nil, Transform{}, false
		}
		if i < len(path)-1 {
			ancestor = Combine(ancestor, n.Transform)
		}
		node = n
		current = n.children
	}

	if node.Type != NodeTypeCamera {
		return nil, Transform{}, false
	}
	return node, ancestor, true
}
