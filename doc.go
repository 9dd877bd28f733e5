// Package arbor is a retained-mode scene graph for interactive 2D
// compositions, with partial 3D support, layered over a host surface and a
// host frame loop.
//
// Client code builds a tree of [Node] values under a [Stage]. The graph
// tracks geometry and visual state, decides what must be recomputed and
// when, and drives a draw traversal that repaints only what changed.
// arbor itself never touches a GPU or a window: rendering goes through the
// [Surface] interface, implemented by the ggsurface (software) and
// ebitenhost (Ebitengine) packages.
//
// # Quick start
//
// The simplest way to get a window is ebitenhost.Run:
//
//	stage := arbor.NewStage()
//	box := arbor.NewRectangle("box", 0, 0, 80, 40, arbor.Color{R: 0.3, G: 0.7, B: 1, A: 1})
//	box.SetPosition(100, 50)
//	_ = stage.AddNode(box)
//	ebitenhost.Run(stage, ebitenhost.RunConfig{Title: "demo", Width: 640, Height: 480})
//
// For full control, drive the stage yourself:
//
//	if err := stage.Update(dt); err != nil { ... }
//	if stage.NeedsRedraw() {
//		if err := stage.Draw(surface); err != nil { ... }
//	}
//
// # Scene graph
//
// Every element is a [Node]. A node owns its children exclusively; adding a
// node that already has a parent fails with [ErrTreeIntegrity] instead of
// re-parenting. Drawing behaviour is a [Content] held by the node:
// [Rectangle] and [Ellipse] are built in, and any type implementing
// LocalBounds and Draw works.
//
// Transforms are applied translate, rotate, then scale. [Node.GlobalToLocal]
// maps root coordinates into a node's space.
//
// # Bounds
//
// Each node memoizes three rectangles: [Node.LocalBounds] (its content),
// [Node.LocalCompositeBounds] (content plus visible children, local space)
// and [Node.CompositeBounds] (the latter in the parent's space). Rotated or
// scaled nodes use the pixel-aligned box around the transformed corners.
//
// # Scheduling
//
// Mutations mark nodes update- or redraw-pending, and pending flags climb
// to the Stage. When the Stage goes from idle to pending it calls the host
// [Scheduler]. [Stage.Update] visits only pending nodes; [Stage.Draw]
// paints the visible tree. Redraws requested during a draw are queued and
// applied afterwards.
//
// # Caching
//
// [Node.SetCached] renders a subtree into an offscreen surface and blits it
// until something inside the subtree requests a redraw.
//
// # Input
//
// The Stage's [Router] delivers pointer and key events. Nodes receive events
// by registering a [PointerHandler] or [KeyHandler]; ancestors forward only
// through children that want events, and a node whose local-composite
// bounds miss the pointer is skipped with its whole subtree. Interactions on
// nodes with an EntityID are also sent to an [EventSink], which the ecs
// module implements for donburi.
//
// # Errors and logging
//
// Structural operations return an [*Error] whose Kind matches
// [ErrTreeIntegrity], [ErrLifecycle] or [ErrAssertion] via errors.Is.
// Property setters on a disposed node panic with an [*Error]. Diagnostics go
// through a [log/slog] logger configured with [SetLogger].
//
// # Tweens
//
// Animations are controllers built on [gween]:
//
//	box.AddController(arbor.TweenPosition(box, 300, 50, 1.5, ease.OutQuad))
//
// [gween]: https://github.com/tanema/gween
package arbor
