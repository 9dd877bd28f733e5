package arbor

// boundsTracker memoizes the three bounds of a node.
//
// Each bound has a dirty flag (the memo is stale) and a changed flag (the
// value may differ from what the last update pass saw). Dirty flags are
// cleared on read; changed flags are cleared by the update traversal.
type boundsTracker struct {
	local          Rect // content, in local coordinates
	localComposite Rect // local plus visible children, in local coordinates
	composite      Rect // localComposite mapped into the parent's coordinates

	localDirty, localChanged bool
	lcDirty, lcChanged       bool
	cDirty, cChanged         bool
}

// LocalBounds returns the bounds of the node's own content in its local
// coordinates. A node without content uses its explicit size; otherwise the
// result is the empty rect.
func (n *Node) LocalBounds() Rect {
	if n.bounds.localDirty {
		var r Rect
		if n.content != nil {
			r = n.content.LocalBounds()
		}
		if r.Empty() && n.explicitW > 0 && n.explicitH > 0 {
			r = Rect{0, 0, n.explicitW, n.explicitH}
		}
		if r.Empty() {
			r = Rect{}
		}
		n.bounds.local = r
		n.bounds.localDirty = false
	}
	return n.bounds.local
}

// LocalCompositeBounds returns the union of the local bounds and the
// composite bounds of every visible child, in local coordinates.
func (n *Node) LocalCompositeBounds() Rect {
	if n.bounds.lcDirty {
		r := n.LocalBounds()
		for _, c := range n.children {
			if c.visible {
				r = r.Union(c.CompositeBounds())
			}
		}
		n.bounds.localComposite = r
		n.bounds.lcDirty = false
	}
	return n.bounds.localComposite
}

// CompositeBounds returns the local-composite bounds mapped through the
// node's local transform, i.e. in the parent's coordinates. Rotated or
// scaled nodes yield the pixel-aligned box around the transformed corners.
func (n *Node) CompositeBounds() Rect {
	if n.bounds.cDirty {
		lc := n.LocalCompositeBounds()
		var r Rect
		switch {
		case n.applyRotate || n.applyScale:
			r = n.LocalTransform().Bounds(lc)
		case n.applyTranslate:
			r = lc.Offset(n.x, n.y)
		default:
			r = lc
		}
		n.bounds.composite = r
		n.bounds.cDirty = false
	}
	return n.bounds.composite
}

// invalidateLocalBounds marks the local bounds stale, which also stales
// both composites and schedules an update.
func (n *Node) invalidateLocalBounds() {
	n.bounds.localDirty = true
	n.bounds.localChanged = true
	n.invalidateLocalCompositeBounds()
}

func (n *Node) invalidateLocalCompositeBounds() {
	n.bounds.lcDirty = true
	n.bounds.lcChanged = true
	n.invalidateCompositeBounds()
}

// invalidateCompositeBounds stales this node's composite and its parent's
// local composite. The climb stops at the first ancestor already stale.
func (n *Node) invalidateCompositeBounds() {
	n.bounds.cDirty = true
	n.bounds.cChanged = true
	n.invalidateNode()
	if p := n.parent; p != nil && !(p.bounds.lcDirty && p.bounds.lcChanged) {
		p.invalidateLocalCompositeBounds()
	}
}

// clearBoundsChanged runs at the end of a node's update. Revalidating the
// local bounds here keeps content queries off the draw path.
func (n *Node) clearBoundsChanged() {
	if n.bounds.localChanged {
		n.LocalBounds()
		n.bounds.localChanged = false
	}
	if n.bounds.lcChanged {
		n.bounds.lcChanged = false
		if n.cache != nil {
			n.cache.sizeDirty = true
		}
	}
	n.bounds.cChanged = false
}
