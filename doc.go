// Package arbor is a retained-mode 3D scene-graph engine for OpenGL 4.1.
//
// Arbor provides the typed node tree, transform hierarchy, glTF model
// loading, cascaded directional shadows, cube-mapped point-light shadows,
// fly cameras, input handling, and frame orchestration that a small 3D
// application needs.
//
// # Quick start
//
// [New] creates the window and GL context; [Engine.Run] drives the frame
// loop:
//
//	engine, err := arbor.New(arbor.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer engine.Release()
//
//	engine.Scene.MustAdd("camera", arbor.NewCamera(
//		mgl32.Vec3{0, 2, 8}, mgl32.Vec3{0, 0, -1},
//		mgl32.DegToRad(45), 16.0/9.0, 0.1, 1000))
//
//	engine.Run()
//
// # Scene graph
//
// Every element is a [Node] with a closed set of variants: empty,
// container, camera, model, directional light, point light, and UI
// overlay. A node's children form a [Scene], so trees nest arbitrarily
// and every node inherits its parent's transform.
//
// Create nodes with typed constructors: [NewEmpty], [NewContainer],
// [NewCamera], [NewModel], [NewDirectionalLight], [NewPointLight],
// [NewUI].
//
//	sun := arbor.NewDirectionalLight(
//		mgl32.Vec3{-1, -2, -1}, arbor.ColorWhite, 100, 4)
//	engine.Scene.MustAdd("sun", sun)
//
// Nodes react to the frame loop through lifecycle handlers: [Node.OnReady]
// fires once on a node's first frame, [Node.OnUpdate] every frame. Both
// receive a [Context] with the input snapshot, the clock, and the scene,
// so a handler can read input or look up siblings by path:
//
//	player.OnUpdate(func(n *arbor.Node, ctx *arbor.Context) {
//		n.Transform.Rotate(mgl32.Vec3{0, 1, 0}, 45*ctx.DeltaTime())
//	})
//
// # Lights and shadows
//
// Directional lights render cascaded shadow maps re-centered on the
// active camera every frame. Point lights render six-face cube depth
// maps from their accumulated world position, so re-parenting a light
// moves its shadows with it. Both feed the main-pass shader through
// shared texture arrays; [NewDefaultShader] is used when no shader is
// registered on the scene.
package arbor
