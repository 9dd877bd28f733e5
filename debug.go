package arbor

// debugMaxTreeDepth is the depth above which debug mode warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("arbor: tree depth exceeds threshold",
			"node", n.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugMaxChildCount is the child count above which debug mode warns.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logger.Warn("arbor: node has many children",
			"node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// SetShowBounds draws the node's local-composite bounds as an outline after
// its content.
func (n *Node) SetShowBounds(show bool) {
	n.mustBeLive("SetShowBounds")
	if show && !n.visible {
		logger.Warn("arbor: bounds outline requested on an invisible node", "node", n.Name)
	}
	if n.showBounds == show {
		return
	}
	n.showBounds = show
	n.redraw()
}

// ShowBounds reports whether the bounds outline is enabled.
func (n *Node) ShowBounds() bool { return n.showBounds }

// CheckConsistency walks the tree under root and returns the first broken
// invariant as a KindAssertion error: parent and child links disagree, a
// node appears twice, a disposed node is still linked, a pending child sits
// under a settled parent, or liveness differs between parent and child.
func CheckConsistency(root *Node) error {
	const op = "CheckConsistency"
	if root == nil {
		return nil
	}
	seen := make(map[*Node]struct{})
	var walk func(n *Node) error
	walk = func(n *Node) error {
		if _, dup := seen[n]; dup {
			return assertionError(op, n, "node reached twice")
		}
		seen[n] = struct{}{}
		if n.disposed {
			return assertionError(op, n, "disposed node is still linked")
		}
		for _, c := range n.children {
			switch {
			case c == nil:
				return assertionError(op, n, "nil child")
			case c == n:
				return assertionError(op, n, "node is its own child")
			case c.parent != n:
				return assertionError(op, c, "parent link does not point at %q", n.Name)
			case c.updatePending && !n.updatePending:
				return assertionError(op, c, "update pending under settled parent %q", n.Name)
			case c.redrawPending && c.visible && !n.redrawPending:
				return assertionError(op, c, "redraw pending under settled parent %q", n.Name)
			case c.stage != n.stage:
				return assertionError(op, c, "stage membership differs from parent %q", n.Name)
			}
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return err
	}
	logger.Debug("arbor: consistency check passed", "root", root.Name, "nodes", len(seen))
	return nil
}
