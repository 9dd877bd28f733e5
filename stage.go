package arbor

// EventSink receives every interaction dispatched to a node with a non-zero
// EntityID. The ecs module implements it over a donburi world.
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for an EventSink.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Modifiers KeyModifiers
	// Key fields (valid for key events)
	Key  int
	Rune rune
}

// StageOption configures a Stage.
type StageOption func(*stageOptions)

type stageOptions struct {
	scheduler   Scheduler
	debug       bool
	depth       bool
	sink        EventSink
	boundsColor Color
}

func defaultStageOptions() stageOptions {
	return stageOptions{boundsColor: Color{1, 0, 1, 1}}
}

// WithScheduler sets the host hook called when the stage goes from idle to
// pending.
func WithScheduler(s Scheduler) StageOption {
	return func(o *stageOptions) { o.scheduler = s }
}

// WithDebug enables consistency checks after every traversal, plus tree
// depth and width warnings.
func WithDebug(enabled bool) StageOption {
	return func(o *stageOptions) { o.debug = enabled }
}

// WithDepth declares that the host surface is 3D-capable, allowing SetZ.
func WithDepth(enabled bool) StageOption {
	return func(o *stageOptions) { o.depth = enabled }
}

// WithEventSink forwards routed interactions to sink.
func WithEventSink(sink EventSink) StageOption {
	return func(o *stageOptions) { o.sink = sink }
}

// WithBoundsColor sets the stroke color of bounds outlines.
func WithBoundsColor(c Color) StageOption {
	return func(o *stageOptions) { o.boundsColor = c }
}

// Stage is the root of a live scene graph. It owns the event router, the
// link to the host scheduler and the queue of redraws requested while a draw
// is in progress.
type Stage struct {
	*Node

	router      *Router
	scheduler   Scheduler
	debug       bool
	depth       bool
	boundsColor Color

	drawing bool
	queued  []*Node
	frames  uint64
}

// NewStage creates a stage. The stage's root node is live from construction.
func NewStage(opts ...StageOption) *Stage {
	o := defaultStageOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Stage{
		Node:        NewNode("stage"),
		scheduler:   o.scheduler,
		debug:       o.debug,
		depth:       o.depth,
		boundsColor: o.boundsColor,
	}
	s.Node.isStage = true
	s.Node.stage = s
	s.router = newRouter(s, o.sink)
	return s
}

// Router returns the stage's event router.
func (s *Stage) Router() *Router { return s.router }

// Root returns the stage's root node.
func (s *Stage) Root() *Node { return s.Node }

// SetScheduler replaces the host scheduler hook.
func (s *Stage) SetScheduler(sch Scheduler) { s.scheduler = sch }

// SetDebug enables or disables debug mode.
func (s *Stage) SetDebug(enabled bool) { s.debug = enabled }

// Debug reports whether debug mode is enabled.
func (s *Stage) Debug() bool { return s.debug }

// Depth reports whether the stage was created for a 3D-capable surface.
func (s *Stage) Depth() bool { return s.depth }

// Frames returns the number of completed draw passes.
func (s *Stage) Frames() uint64 { return s.frames }

// NeedsUpdate reports whether an update pass is pending.
func (s *Stage) NeedsUpdate() bool { return s.updatePending }

// NeedsRedraw reports whether a draw pass is pending.
func (s *Stage) NeedsRedraw() bool { return s.redrawPending }

// Update runs the update traversal over every pending node.
func (s *Stage) Update(dt float64) error {
	if s.disposed {
		return lifecycleError("Update", s.Node, "stage is disposed")
	}
	if s.updatePending {
		s.updateNode(dt)
	}
	if s.debug {
		return s.check("Update")
	}
	return nil
}

// Draw paints the tree into dst. Redraws requested while painting are queued
// and applied once the pass finishes.
func (s *Stage) Draw(dst Surface) error {
	if s.disposed {
		return lifecycleError("Draw", s.Node, "stage is disposed")
	}
	s.drawing = true
	s.drawNode(dst, IdentityMatrix)
	s.drawing = false
	s.frames++
	s.flushQueued()
	if s.debug {
		return s.check("Draw")
	}
	return nil
}

// Frame runs one host frame: the update pass, then a draw pass if anything
// requested a redraw. It reports whether dst was painted.
func (s *Stage) Frame(dt float64, dst Surface) (drawn bool, err error) {
	if err := s.Update(dt); err != nil {
		return false, err
	}
	if !s.redrawPending {
		return false, nil
	}
	if err := s.Draw(dst); err != nil {
		return true, err
	}
	return true, nil
}

func (s *Stage) check(op string) error {
	if err := CheckConsistency(s.Node); err != nil {
		logger.Debug("arbor: consistency check failed", "op", op, "err", err)
		return err
	}
	return nil
}

// wake tells the host a frame is needed. Called only when the stage goes
// from neither update- nor redraw-pending to pending.
func (s *Stage) wake() {
	if s.scheduler != nil {
		s.scheduler.RequestFrame()
	}
}

func (s *Stage) isDrawing() bool { return s != nil && s.drawing }

func (s *Stage) enqueueRedraw(n *Node) {
	if n.redrawQueued {
		return
	}
	n.redrawQueued = true
	s.queued = append(s.queued, n)
}

func (s *Stage) flushQueued() {
	for len(s.queued) > 0 {
		q := s.queued
		s.queued = nil
		for i, n := range q {
			q[i] = nil
			n.redrawQueued = false
			if !n.disposed {
				n.redraw()
			}
		}
	}
}

// --- Scheduling ---

// invalidateNode marks n and its ancestors update-pending, stopping at the
// first ancestor already pending.
func (n *Node) invalidateNode() {
	if n.disposed {
		return
	}
	if n.isStage {
		if !n.updatePending {
			idle := !n.redrawPending
			n.updatePending = true
			if idle {
				n.stage.wake()
			}
		}
		return
	}
	n.updatePending = true
	if p := n.parent; p != nil && !p.updatePending {
		p.invalidateNode()
	}
}

// Redraw requests that the node be painted again. reason is logged at debug
// level.
func (n *Node) Redraw(reason string) {
	logger.Debug("arbor: redraw", "node", n.Name, "reason", reason)
	n.redraw()
}

// redraw marks n and its ancestors redraw-pending. During a draw pass the
// request is queued on the stage instead.
func (n *Node) redraw() {
	if n.disposed {
		return
	}
	if s := n.stage; s != nil && s.drawing {
		s.enqueueRedraw(n)
		return
	}
	if n.redrawPending {
		return
	}
	idle := !n.updatePending
	n.redrawPending = true
	if n.cache != nil {
		n.cache.contentDirty = true
	}
	if n.isStage {
		if idle {
			n.stage.wake()
		}
		return
	}
	if p := n.parent; p != nil {
		p.childRedraw()
	}
}

// childRedraw is a redraw arriving from a child. A cached node's pixels go
// stale even when the node is already pending for a move of its own.
func (n *Node) childRedraw() {
	if n.cache != nil && !n.disposed {
		n.cache.contentDirty = true
	}
	n.redraw()
}

// forceRedraw propagates a redraw even when this node is already pending.
func (n *Node) forceRedraw() {
	if s := n.stage; s == nil || !s.drawing {
		n.redrawPending = false
	}
	n.redraw()
}
