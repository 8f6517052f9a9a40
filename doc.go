// Package textmation renders timed 2D animations from a scene graph.
//
// A scene is a tree of elements: a [KindScene] root with groups, rectangles,
// circles, ellipses, lines and text below it. Every element carries named,
// typed properties. A property's value may be a literal ([Number], [Point],
// [Color], ...), a value relative to another property ([Percent], [Offset])
// or a value that changes over time ([Tween], [Keyframes]). Values resolve
// themselves against the property reading them, so no expression language is
// involved.
//
// # Building a scene
//
// Elements live in a [Tree], which owns them. Create them with the typed
// constructors and attach them with [Element.Add]:
//
//	scene := textmation.NewScene(textmation.Size{Width: 320, Height: 240})
//	tree := scene.Tree()
//
//	group := tree.NewGroup(textmation.Point{X: 20, Y: 20})
//	_ = scene.Add(group)
//
//	box := tree.NewRectangle(textmation.Bounds{Width: 40, Height: 40}, textmation.RGB(0.3, 0.7, 1))
//	_ = box.Set("bounds", textmation.Tween{
//		From:     textmation.Bounds{Width: 40, Height: 40},
//		To:       textmation.Bounds{X: 200, Width: 40, Height: 40},
//		Duration: 1,
//		Ease:     "in-out-quad",
//	})
//	_ = group.Add(box)
//
// An element can be added exactly once; there is no reparenting.
//
// # Rendering
//
// Drawing goes through a [Rasterizer]. The raster sub-package provides one
// backed by gogpu/gg:
//
//	frames, err := textmation.RenderAnimation(scene, raster.New())
//
// [Render] produces a single image at a given time. Both reset the tree
// first, then for each frame run [Element.Compute] followed by
// [Renderer.Render]. Compute visits parents before children.
//
// # Errors
//
// Contract violations are returned as errors matching one of
// [ErrTypeConstraint], [ErrDuplicateProperty], [ErrUnknownProperty],
// [ErrOwnership], [ErrMissingRenderHandler], [ErrInvalidRoot] or
// [ErrInvalidElement]. Nothing is retried and no partial image is produced.
//
// # Logging
//
// The package is silent unless a logger is installed with [SetLogger].
package textmation
