package arbor

// updateNode is the update traversal. It visits only pending nodes, runs
// their controllers, refreshes stale local matrices and settles the bounds
// change flags bottom-up.
func (n *Node) updateNode(dt float64) {
	if n.disposed || !n.updatePending {
		return
	}
	n.updatePending = false

	if len(n.controllers) > 0 {
		n.runControllers(dt)
		if n.disposed {
			return
		}
		// Controllers run every frame until they finish.
		if len(n.controllers) > 0 {
			n.invalidateNode()
		}
	}

	if n.matrixDirty {
		n.LocalTransform()
	}

	// Invisible children are visited too, so no pending flag is stranded
	// below a settled ancestor.
	for i := 0; i < len(n.children); i++ {
		if c := n.children[i]; c.updatePending {
			c.updateNode(dt)
		}
	}
	// A callback may have reshuffled the children mid-loop and left one
	// unvisited; keep the path to it pending.
	if !n.updatePending {
		for _, c := range n.children {
			if c.updatePending {
				n.invalidateNode()
				break
			}
		}
	}

	n.clearBoundsChanged()
}

// drawNode is the draw traversal. base maps dst's coordinate space to root
// space; it is the identity on the host surface and an offset inside a
// render cache.
func (n *Node) drawNode(dst Surface, base Matrix) {
	if !n.visible || n.disposed {
		return
	}
	n.redrawPending = false

	pushed := n.applyTransform || n.z != 0
	if pushed {
		dst.Push()
		if n.applyTranslate {
			dst.Translate(n.x, n.y)
		}
		if n.applyRotate {
			dst.Rotate(n.rotation)
		}
		if n.applyScale {
			dst.Scale(n.scale, n.scale)
		}
		if n.z != 0 {
			if ds, ok := dst.(DepthSurface); ok {
				ds.TranslateZ(n.z)
			}
		}
	}
	if n.inverseDirty {
		n.captureInverse(base, dst)
	}

	if n.cache != nil {
		n.drawCached(dst, base)
	} else {
		n.drawSelf(dst)
		n.drawChildren(dst, base)
	}

	if pushed {
		dst.Pop()
	}
}

// drawSelf paints the node's content and, when enabled, its bounds outline.
func (n *Node) drawSelf(dst Surface) {
	if n.content != nil {
		n.content.Draw(dst)
	}
	if n.showBounds {
		b := n.LocalCompositeBounds()
		if !b.Empty() {
			dst.StrokeRect(b.X, b.Y, b.Width, b.Height, 1, n.boundsColor())
		}
	}
}

func (n *Node) drawChildren(dst Surface, base Matrix) {
	for i := 0; i < len(n.children); i++ {
		if c := n.children[i]; c.visible {
			c.drawNode(dst, base)
		}
	}
}

func (n *Node) boundsColor() Color {
	if n.stage != nil {
		return n.stage.boundsColor
	}
	return defaultStageOptions().boundsColor
}

// settleRedraw clears the redraw flags a draw pass would have cleared, for a
// subtree skipped because it paints nothing.
func (n *Node) settleRedraw() {
	if !n.visible || n.disposed {
		return
	}
	n.redrawPending = false
	for _, c := range n.children {
		c.settleRedraw()
	}
}
