package arbor

// nodeIDCounter is a plain counter; the graph is only touched from the frame thread.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single struct serves every
// kind of node; drawing behaviour comes from an optional Content.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Metadata
	UserData any
	EntityID uint32

	// Lifecycle hooks, called when the node joins or leaves the live tree
	// rooted at a Stage.
	OnAddedToSG     func(*Node)
	OnRemovedFromSG func(*Node)

	// Hierarchy
	parent   *Node
	children []*Node
	stage    *Stage // non-nil iff the node is reachable from a Stage
	isStage  bool

	// Transform
	x, y     float64
	rotation float64
	scale    float64
	z        float64

	applyTranslate bool
	applyRotate    bool
	applyScale     bool
	applyTransform bool

	local        Matrix
	inverse      Matrix
	matrixDirty  bool
	inverseDirty bool

	// Content
	content   Content
	hitShape  HitShape
	explicitW float64
	explicitH float64

	// Flags
	visible    bool
	showBounds bool
	disposed   bool

	// Scheduling
	updatePending bool
	redrawPending bool
	redrawQueued  bool

	bounds boundsTracker
	cache  *renderCache

	controllers  []controllerEntry
	nextCtrlID   uint32
	pointerHdlrs []*PointerHandler
	keyHdlrs     []*KeyHandler
	interest     [familyCount]interest
}

// nodeDefaults sets the field values shared by all constructors. A fresh node
// is dirty everywhere until its first update and draw.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.scale = 1
	n.visible = true
	n.local = IdentityMatrix
	n.inverse = IdentityMatrix
	n.matrixDirty = true
	n.inverseDirty = true
	n.updatePending = true
	n.redrawPending = true
	n.bounds = boundsTracker{
		localDirty: true, localChanged: true,
		lcDirty: true, lcChanged: true,
		cDirty: true, cChanged: true,
	}
}

// NewNode creates a group node with no content.
func NewNode(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewContentNode creates a node that draws c.
func NewContentNode(name string, c Content) *Node {
	n := &Node{Name: name, content: c}
	nodeDefaults(n)
	return n
}

// NewRectangle creates a node drawing a solid rectangle at (x, y) in its
// own coordinate space.
func NewRectangle(name string, x, y, w, h float64, c Color) *Node {
	return NewContentNode(name, &Rectangle{X: x, Y: y, Width: w, Height: h, Color: c})
}

// NewEllipse creates a node drawing a solid ellipse centered at (cx, cy).
func NewEllipse(name string, cx, cy, rx, ry float64, c Color) *Node {
	return NewContentNode(name, &Ellipse{CenterX: cx, CenterY: cy, RadiusX: rx, RadiusY: ry, Color: c})
}

// --- Accessors ---

// Parent returns the owning node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node { return n.children[index] }

// Stage returns the Stage this node is attached under, or nil.
func (n *Node) Stage() *Stage { return n.stage }

// IsAddedToSG reports whether the node is reachable from a Stage.
func (n *Node) IsAddedToSG() bool { return n.stage != nil }

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool { return n.disposed }

// IsUpdatePending reports whether the node or a descendant awaits an update pass.
func (n *Node) IsUpdatePending() bool { return n.updatePending }

// IsRedrawPending reports whether the node awaits a draw pass.
func (n *Node) IsRedrawPending() bool { return n.redrawPending }

// Content returns the node's drawable content, or nil.
func (n *Node) Content() Content { return n.content }

// Visible reports whether the node and its subtree are drawn and hit-tested.
func (n *Node) Visible() bool { return n.visible }

// --- Content and visibility ---

// SetContent replaces the node's drawable content.
func (n *Node) SetContent(c Content) {
	n.mustBeLive("SetContent")
	n.content = c
	n.InvalidateContent()
}

// InvalidateContent tells the node that its content's bounds or pixels
// changed. Call it after mutating a Content in place.
func (n *Node) InvalidateContent() {
	n.mustBeLive("InvalidateContent")
	n.invalidateLocalBounds()
	n.redraw()
}

// SetExplicitSize sets the size used for local bounds when the node has no
// content, or content with empty bounds.
func (n *Node) SetExplicitSize(w, h float64) {
	n.mustBeLive("SetExplicitSize")
	if n.explicitW == w && n.explicitH == h {
		return
	}
	n.explicitW, n.explicitH = w, h
	n.invalidateLocalBounds()
	n.redraw()
}

// SetHitShape overrides the precise hit predicate. Pass nil to restore the
// content's own predicate.
func (n *Node) SetHitShape(s HitShape) {
	n.mustBeLive("SetHitShape")
	n.hitShape = s
}

// SetVisible shows or hides the node and its subtree.
func (n *Node) SetVisible(v bool) {
	n.mustBeLive("SetVisible")
	if n.visible == v {
		return
	}
	n.visible = v
	// The parent's union gains or loses this subtree.
	n.invalidateCompositeBounds()
	n.forceRedraw()
}

// --- Tree manipulation ---

// AddNode appends child to this node's children.
func (n *Node) AddNode(child *Node) error {
	return n.insertNode("AddNode", child, len(n.children))
}

// AddNodeAt inserts child at the given index.
func (n *Node) AddNodeAt(child *Node, index int) error {
	return n.insertNode("AddNodeAt", child, index)
}

func (n *Node) insertNode(op string, child *Node, index int) error {
	if err := n.checkAttach(op, child); err != nil {
		return err
	}
	if index < 0 || index > len(n.children) {
		return treeError(op, n, "index %d out of range [0, %d]", index, len(n.children))
	}
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n
	markSubtreeInverseDirty(child)

	if n.stage != nil {
		child.addedToSG(n.stage)
	}
	for f := range familyCount {
		if child.interest[f].wants {
			n.addForward(family(f), child)
		}
	}
	n.structureChanged()
	if n.stage != nil && n.stage.debug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
	return nil
}

func (n *Node) checkAttach(op string, child *Node) error {
	switch {
	case child == nil:
		return treeError(op, n, "child is nil")
	case n.disposed:
		return lifecycleError(op, n, "parent is disposed")
	case child.disposed:
		return lifecycleError(op, n, "child %q is disposed", child.Name)
	case child == n:
		return treeError(op, n, "cannot add a node to itself")
	case child.isStage:
		return treeError(op, n, "a stage cannot be a child")
	case child.parent == n:
		return treeError(op, n, "%q is already a child of this node", child.Name)
	case child.parent != nil:
		return treeError(op, n, "%q is already attached to %q", child.Name, child.parent.Name)
	case isAncestor(child, n):
		return treeError(op, n, "adding %q would create a cycle", child.Name)
	}
	return nil
}

// RemoveNode detaches child from this node. The child is not disposed.
func (n *Node) RemoveNode(child *Node) error {
	const op = "RemoveNode"
	if child == nil {
		return treeError(op, n, "child is nil")
	}
	if n.disposed {
		return lifecycleError(op, n, "node is disposed")
	}
	if child.parent != n {
		return treeError(op, n, "%q is not a child of this node", child.Name)
	}
	n.detachAt(indexOf(n.children, child))
	return nil
}

// RemoveNodeAt removes and returns the child at the given index.
func (n *Node) RemoveNodeAt(index int) (*Node, error) {
	const op = "RemoveNodeAt"
	if n.disposed {
		return nil, lifecycleError(op, n, "node is disposed")
	}
	if index < 0 || index >= len(n.children) {
		return nil, treeError(op, n, "index %d out of range [0, %d)", index, len(n.children))
	}
	return n.detachAt(index), nil
}

// RemoveAllNodes detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveAllNodes() error {
	if n.disposed {
		return lifecycleError("RemoveAllNodes", n, "node is disposed")
	}
	for len(n.children) > 0 {
		n.detachAt(len(n.children) - 1)
	}
	return nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() error {
	if n.parent == nil {
		return nil
	}
	return n.parent.RemoveNode(n)
}

// detachAt unlinks the child at index. Uses copy+nil to avoid retaining a
// dangling pointer in the backing array.
func (n *Node) detachAt(index int) *Node {
	child := n.children[index]
	copy(n.children[index:], n.children[index+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.parent = nil

	for f := range familyCount {
		if child.interest[f].wants {
			n.removeForward(family(f), child)
		}
	}
	if child.stage != nil {
		child.removedFromSG()
	}
	markSubtreeInverseDirty(child)
	n.structureChanged()
	return child
}

// structureChanged runs after every membership change: the union of
// children changed even when the numbers did not.
func (n *Node) structureChanged() {
	n.redraw()
	n.invalidateLocalCompositeBounds()
}

func (n *Node) addedToSG(s *Stage) {
	n.stage = s
	if n.OnAddedToSG != nil {
		n.OnAddedToSG(n)
	}
	for _, c := range n.children {
		c.addedToSG(s)
	}
}

func (n *Node) removedFromSG() {
	s := n.stage
	n.stage = nil
	if s != nil {
		s.router.forget(n)
	}
	if n.OnRemovedFromSG != nil {
		n.OnRemovedFromSG(n)
	}
	for _, c := range n.children {
		c.removedFromSG()
	}
}

// --- Disposal ---

// Dispose detaches this node from its parent, marks it as disposed and
// recursively disposes all descendants. Calling it again is a no-op.
func (n *Node) Dispose() {
	n.dispose(true)
}

// DisposeKeepChildren disposes this node but leaves its children alive and
// ownerless, for the caller to reattach or dispose.
func (n *Node) DisposeKeepChildren() {
	n.dispose(false)
}

func (n *Node) dispose(recursive bool) {
	if n.disposed {
		return
	}
	if n.parent != nil {
		n.parent.detachAt(indexOf(n.parent.children, n))
	} else if n.stage != nil {
		n.removedFromSG()
	}
	n.teardown(recursive)
}

func (n *Node) teardown(recursive bool) {
	children := n.children
	n.children = nil
	for _, c := range children {
		c.parent = nil
		if recursive {
			c.teardown(true)
		} else {
			markSubtreeInverseDirty(c)
		}
	}
	n.disposed = true
	n.ID = 0
	n.parent = nil
	n.stage = nil
	if n.cache != nil {
		n.cache.release()
		n.cache = nil
	}
	n.content = nil
	n.hitShape = nil
	n.controllers = nil
	n.pointerHdlrs = nil
	n.keyHdlrs = nil
	n.interest = [familyCount]interest{}
	n.UserData = nil
	n.OnAddedToSG = nil
	n.OnRemovedFromSG = nil
	n.updatePending = false
	n.redrawPending = false
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func indexOf(nodes []*Node, n *Node) int {
	for i, c := range nodes {
		if c == n {
			return i
		}
	}
	return -1
}

// markSubtreeInverseDirty marks the inverse matrix of node and all its
// descendants stale; their mapping from root coordinates changed.
func markSubtreeInverseDirty(node *Node) {
	node.inverseDirty = true
	for _, child := range node.children {
		markSubtreeInverseDirty(child)
	}
}
