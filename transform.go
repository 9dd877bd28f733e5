package arbor

// --- Transform property accessors ---

// X returns the node's local x translation.
func (n *Node) X() float64 { return n.x }

// Y returns the node's local y translation.
func (n *Node) Y() float64 { return n.y }

// Position returns the node's local translation.
func (n *Node) Position() (x, y float64) { return n.x, n.y }

// Rotation returns the node's rotation in radians.
func (n *Node) Rotation() float64 { return n.rotation }

// Scale returns the node's uniform scale factor.
func (n *Node) Scale() float64 { return n.scale }

// Z returns the node's depth offset.
func (n *Node) Z() float64 { return n.z }

// --- Transform property setters ---

// SetPosition sets the node's local translation.
func (n *Node) SetPosition(x, y float64) {
	n.mustBeLive("SetPosition")
	if n.x == x && n.y == y {
		return
	}
	n.x, n.y = x, y
	n.applyTranslate = x != 0 || y != 0
	n.transformChanged()
}

// SetX sets the node's local x translation.
func (n *Node) SetX(x float64) { n.SetPosition(x, n.y) }

// SetY sets the node's local y translation.
func (n *Node) SetY(y float64) { n.SetPosition(n.x, y) }

// MoveBy offsets the node's translation by (dx, dy).
func (n *Node) MoveBy(dx, dy float64) { n.SetPosition(n.x+dx, n.y+dy) }

// SetRotation sets the node's rotation in radians.
func (n *Node) SetRotation(r float64) {
	n.mustBeLive("SetRotation")
	if n.rotation == r {
		return
	}
	n.rotation = r
	n.applyRotate = r != 0
	n.transformChanged()
}

// RotateBy adds dr radians to the node's rotation.
func (n *Node) RotateBy(dr float64) { n.SetRotation(n.rotation + dr) }

// SetScale sets the node's uniform scale factor.
func (n *Node) SetScale(s float64) {
	n.mustBeLive("SetScale")
	if n.scale == s {
		return
	}
	n.scale = s
	n.applyScale = s != 1
	n.transformChanged()
}

// SetZ sets the node's depth offset. Requires a Stage built WithDepth, and
// fails for cached nodes.
func (n *Node) SetZ(z float64) error {
	const op = "SetZ"
	if n.disposed {
		return lifecycleError(op, n, "node is disposed")
	}
	if n.z == z {
		return nil
	}
	if z != 0 {
		if n.stage == nil || !n.stage.depth {
			return lifecycleError(op, n, "depth requires a stage created WithDepth")
		}
		if n.cache != nil {
			return lifecycleError(op, n, "a cached node cannot have a depth offset")
		}
	}
	n.z = z
	n.redraw()
	return nil
}

func (n *Node) transformChanged() {
	n.applyTransform = n.applyTranslate || n.applyRotate || n.applyScale
	n.matrixDirty = true
	n.inverseDirty = true
	n.invalidateTransformation()
	n.invalidateCompositeBounds()
}

// invalidateTransformation marks every descendant's inverse stale and
// requests a redraw. Local matrices of descendants do not depend on this
// node and stay valid, and neither do the pixels of its render cache.
func (n *Node) invalidateTransformation() {
	for _, c := range n.children {
		markSubtreeInverseDirty(c)
	}
	if c := n.cache; c != nil && !c.contentDirty && !n.stage.isDrawing() {
		n.redraw()
		c.contentDirty = false
		return
	}
	n.redraw()
}

// --- Matrices ---

// LocalTransform returns the node's local matrix: translate, then rotate,
// then scale.
func (n *Node) LocalTransform() Matrix {
	if n.matrixDirty {
		n.local = localMatrix(n.x, n.y, n.rotation, n.scale)
		n.matrixDirty = false
	}
	return n.local
}

// globalMatrix composes the local matrices from the root down to n.
func (n *Node) globalMatrix() Matrix {
	m := n.LocalTransform()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalTransform().Mul(m)
	}
	return m
}

// inverseMatrix returns the mapping from root coordinates to local
// coordinates. The draw traversal captures it from the surface; before the
// first draw, or after a transform change, it is derived from the ancestor
// chain instead.
func (n *Node) inverseMatrix() Matrix {
	if n.inverseDirty {
		n.inverse = n.globalMatrix().Invert()
		n.inverseDirty = false
	}
	return n.inverse
}

// captureInverse records the inverse of the surface transform seen while
// drawing this node. base maps the surface's space to root space.
func (n *Node) captureInverse(base Matrix, s Surface) {
	n.inverse = base.Mul(s.Transform()).Invert()
	n.inverseDirty = false
}

// --- Coordinate conversion ---

// GlobalToLocal converts a root-space point to this node's local space.
func (n *Node) GlobalToLocal(x, y float64) (lx, ly float64) {
	return n.inverseMatrix().Apply(x, y)
}

// LocalToGlobal converts a local-space point to root space.
func (n *Node) LocalToGlobal(lx, ly float64) (x, y float64) {
	return n.inverseMatrix().Invert().Apply(lx, ly)
}
