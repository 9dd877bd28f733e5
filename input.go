package arbor

import "slices"

// --- Events ---

// PointerEvent is a pointer interaction in root coordinates. The router
// fills Type, Node and the local coordinates before each handler call.
type PointerEvent struct {
	X, Y      float64
	Button    MouseButton
	Modifiers KeyModifiers

	Type           EventType
	Node           *Node
	LocalX, LocalY float64

	consumed bool
}

// Consume stops further dispatch of the event.
func (e *PointerEvent) Consume() { e.consumed = true }

// Consumed reports whether a node has taken the event.
func (e *PointerEvent) Consumed() bool { return e.consumed }

// KeyEvent is a keyboard interaction. Key is the host's key code; Rune is
// set for typed characters.
type KeyEvent struct {
	Key       int
	Rune      rune
	Modifiers KeyModifiers

	Type EventType
	Node *Node

	consumed bool
}

// Consume stops further dispatch of the event.
func (e *KeyEvent) Consume() { e.consumed = true }

// Consumed reports whether a handler has taken the event.
func (e *KeyEvent) Consumed() bool { return e.consumed }

// PointerHandler groups a node's pointer callbacks. Nil fields are skipped.
type PointerHandler struct {
	OnOver    func(*PointerEvent)
	OnOut     func(*PointerEvent)
	OnMove    func(*PointerEvent)
	OnPress   func(*PointerEvent)
	OnRelease func(*PointerEvent)
	OnClick   func(*PointerEvent)
}

func (h *PointerHandler) fn(t EventType) func(*PointerEvent) {
	switch t {
	case EventPointerOver:
		return h.OnOver
	case EventPointerOut:
		return h.OnOut
	case EventPointerMove:
		return h.OnMove
	case EventPointerPress:
		return h.OnPress
	case EventPointerRelease:
		return h.OnRelease
	case EventPointerClick:
		return h.OnClick
	}
	return nil
}

// KeyHandler groups a node's key callbacks. Nil fields are skipped.
type KeyHandler struct {
	OnTyped    func(*KeyEvent)
	OnPressed  func(*KeyEvent)
	OnReleased func(*KeyEvent)
}

func (h *KeyHandler) fn(t EventType) func(*KeyEvent) {
	switch t {
	case EventKeyType:
		return h.OnTyped
	case EventKeyPress:
		return h.OnPressed
	case EventKeyRelease:
		return h.OnReleased
	}
	return nil
}

// --- Interest ---

type family uint8

const (
	familyPointer family = iota
	familyKey
	familyCount
)

// interest is a node's standing in one event family: whether it dispatches
// or forwards, and which children it forwards to, in insertion order.
type interest struct {
	wants   bool
	forward []*Node
}

func (n *Node) dispatches(f family) bool {
	if f == familyPointer {
		return len(n.pointerHdlrs) > 0
	}
	return len(n.keyHdlrs) > 0
}

func (n *Node) forwards(f family) bool {
	return len(n.interest[f].forward) > 0
}

// DispatchesPointerEvents reports whether the node has pointer handlers.
func (n *Node) DispatchesPointerEvents() bool { return n.dispatches(familyPointer) }

// ForwardsPointerEvents reports whether some child wants pointer events.
func (n *Node) ForwardsPointerEvents() bool { return n.forwards(familyPointer) }

// DispatchesKeyEvents reports whether the node has key handlers.
func (n *Node) DispatchesKeyEvents() bool { return n.dispatches(familyKey) }

// ForwardsKeyEvents reports whether some child wants key events.
func (n *Node) ForwardsKeyEvents() bool { return n.forwards(familyKey) }

// refreshInterest registers or unregisters n with its parent when its
// interest in family f flips.
func (n *Node) refreshInterest(f family) {
	wants := n.dispatches(f) || n.forwards(f)
	if wants == n.interest[f].wants {
		return
	}
	n.interest[f].wants = wants
	if p := n.parent; p != nil {
		if wants {
			p.addForward(f, n)
		} else {
			p.removeForward(f, n)
		}
	}
}

func (n *Node) addForward(f family, child *Node) {
	if slices.Contains(n.interest[f].forward, child) {
		return
	}
	n.interest[f].forward = append(n.interest[f].forward, child)
	n.refreshInterest(f)
}

func (n *Node) removeForward(f family, child *Node) {
	i := slices.Index(n.interest[f].forward, child)
	if i < 0 {
		return
	}
	n.interest[f].forward = slices.Delete(slices.Clone(n.interest[f].forward), i, i+1)
	n.refreshInterest(f)
}

// --- Handler registration ---

// AddPointerHandler registers h on the node. Adding the same handler twice
// is a no-op.
func (n *Node) AddPointerHandler(h *PointerHandler) {
	n.mustBeLive("AddPointerHandler")
	if h == nil || slices.Contains(n.pointerHdlrs, h) {
		return
	}
	n.pointerHdlrs = append(n.pointerHdlrs, h)
	n.refreshInterest(familyPointer)
}

// RemovePointerHandler unregisters h.
func (n *Node) RemovePointerHandler(h *PointerHandler) {
	i := slices.Index(n.pointerHdlrs, h)
	if i < 0 {
		return
	}
	// Copy so a dispatch loop over the old slice is unaffected.
	n.pointerHdlrs = slices.Delete(slices.Clone(n.pointerHdlrs), i, i+1)
	n.refreshInterest(familyPointer)
	if len(n.pointerHdlrs) == 0 && n.stage != nil {
		n.stage.router.forget(n)
	}
}

// AddKeyHandler registers h on the node. Adding the same handler twice is a
// no-op.
func (n *Node) AddKeyHandler(h *KeyHandler) {
	n.mustBeLive("AddKeyHandler")
	if h == nil || slices.Contains(n.keyHdlrs, h) {
		return
	}
	n.keyHdlrs = append(n.keyHdlrs, h)
	n.refreshInterest(familyKey)
}

// RemoveKeyHandler unregisters h.
func (n *Node) RemoveKeyHandler(h *KeyHandler) {
	i := slices.Index(n.keyHdlrs, h)
	if i < 0 {
		return
	}
	n.keyHdlrs = slices.Delete(slices.Clone(n.keyHdlrs), i, i+1)
	n.refreshInterest(familyKey)
}

// --- Hit testing ---

// HitTest reports whether the root-space point (x, y) hits this node's own
// region.
func (n *Node) HitTest(x, y float64) bool {
	lx, ly := n.GlobalToLocal(x, y)
	return n.LocalCompositeBounds().Contains(lx, ly) && n.containsLocal(lx, ly)
}

// containsLocal is the precise predicate, run after the local-composite
// bounds already contain the point. Precedence: hit shape, content
// predicate, local bounds. A node with neither content nor explicit size is
// hit anywhere inside its children's union.
func (n *Node) containsLocal(lx, ly float64) bool {
	if n.hitShape != nil {
		return n.hitShape.Contains(lx, ly)
	}
	local := n.LocalBounds()
	if local.Empty() && n.content == nil {
		return true
	}
	if !local.Contains(lx, ly) {
		return false
	}
	if ht, ok := n.content.(HitTester); ok {
		return ht.Contains(lx, ly)
	}
	return true
}

// --- Router ---

// Router delivers host input to the nodes of a stage. It owns the hover
// state, so several stages can route independently.
type Router struct {
	stage   *Stage
	hovered *Node
	sink    EventSink
}

func newRouter(s *Stage, sink EventSink) *Router {
	return &Router{stage: s, sink: sink}
}

// Hovered returns the node currently under the pointer, or nil.
func (r *Router) Hovered() *Node { return r.hovered }

// SetEventSink replaces the sink receiving interactions of entity nodes.
func (r *Router) SetEventSink(sink EventSink) { r.sink = sink }

// forget drops any reference to n. Called when n leaves the stage or stops
// dispatching pointer events.
func (r *Router) forget(n *Node) {
	if r.hovered == n {
		r.hovered = nil
	}
}

// Pick returns the topmost node dispatching pointer events at the
// root-space point (x, y), or nil.
func (r *Router) Pick(x, y float64) *Node { return r.pick(r.stage.Node, x, y) }

// PointerMoved routes a pointer move, emitting out and over events when the
// node under the pointer changes.
func (r *Router) PointerMoved(e *PointerEvent) {
	target := r.Pick(e.X, e.Y)
	if target != r.hovered {
		if old := r.hovered; old != nil {
			r.hovered = nil
			if !old.disposed && old.dispatches(familyPointer) {
				r.firePointer(old, EventPointerOut, e)
			}
		}
		if target != nil {
			r.hovered = target
			r.firePointer(target, EventPointerOver, e)
		}
	}
	if target != nil {
		r.firePointer(target, EventPointerMove, e)
		e.consumed = true
	}
}

// PointerPressed routes a button press to the topmost hit node.
func (r *Router) PointerPressed(e *PointerEvent) { r.routePointer(EventPointerPress, e) }

// PointerReleased routes a button release to the topmost hit node.
func (r *Router) PointerReleased(e *PointerEvent) { r.routePointer(EventPointerRelease, e) }

// PointerClicked routes a click to the topmost hit node.
func (r *Router) PointerClicked(e *PointerEvent) { r.routePointer(EventPointerClick, e) }

func (r *Router) routePointer(t EventType, e *PointerEvent) {
	if target := r.Pick(e.X, e.Y); target != nil {
		r.firePointer(target, t, e)
		e.consumed = true
	}
}

// pick returns the topmost dispatching node hit by (x, y) below n.
// Forwarding children are tried in reverse insertion order before n itself;
// a node whose local-composite bounds miss the point prunes its subtree.
func (r *Router) pick(n *Node, x, y float64) *Node {
	if !n.visible || n.disposed {
		return nil
	}
	lx, ly := n.GlobalToLocal(x, y)
	if !n.LocalCompositeBounds().Contains(lx, ly) {
		return nil
	}
	fwd := n.interest[familyPointer].forward
	for i := len(fwd) - 1; i >= 0; i-- {
		if hit := r.pick(fwd[i], x, y); hit != nil {
			return hit
		}
	}
	if n.dispatches(familyPointer) && n.containsLocal(lx, ly) {
		return n
	}
	return nil
}

func (r *Router) firePointer(n *Node, t EventType, e *PointerEvent) {
	e.Type = t
	e.Node = n
	e.LocalX, e.LocalY = n.GlobalToLocal(e.X, e.Y)
	for _, h := range n.pointerHdlrs {
		if fn := h.fn(t); fn != nil {
			fn(e)
		}
	}
	if r.sink != nil && n.EntityID != 0 {
		r.sink.EmitEvent(InteractionEvent{
			Type: t, EntityID: n.EntityID,
			GlobalX: e.X, GlobalY: e.Y, LocalX: e.LocalX, LocalY: e.LocalY,
			Button: e.Button, Modifiers: e.Modifiers,
		})
	}
}

// KeyTyped routes a typed character.
func (r *Router) KeyTyped(e *KeyEvent) { r.routeKey(r.stage.Node, EventKeyType, e) }

// KeyPressed routes a key press.
func (r *Router) KeyPressed(e *KeyEvent) { r.routeKey(r.stage.Node, EventKeyPress, e) }

// KeyReleased routes a key release.
func (r *Router) KeyReleased(e *KeyEvent) { r.routeKey(r.stage.Node, EventKeyRelease, e) }

// routeKey walks the key forwarding chain, children before the node itself,
// invoking every dispatching node until a handler consumes the event.
func (r *Router) routeKey(n *Node, t EventType, e *KeyEvent) bool {
	if !n.visible || n.disposed {
		return false
	}
	fwd := n.interest[familyKey].forward
	for i := len(fwd) - 1; i >= 0; i-- {
		if r.routeKey(fwd[i], t, e) {
			return true
		}
	}
	if !n.dispatches(familyKey) {
		return false
	}
	e.Type = t
	e.Node = n
	for _, h := range n.keyHdlrs {
		if fn := h.fn(t); fn != nil {
			fn(e)
		}
	}
	if r.sink != nil && n.EntityID != 0 {
		r.sink.EmitEvent(InteractionEvent{
			Type: t, EntityID: n.EntityID,
			Key: e.Key, Rune: e.Rune, Modifiers: e.Modifiers,
		})
	}
	return e.consumed
}
