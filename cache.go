package arbor

// renderCache holds the offscreen bitmap of a cached subtree.
type renderCache struct {
	bitmap Surface
	bounds Rect // pixel-aligned local-composite bounds the bitmap covers
	w, h   int

	contentDirty bool // pixels must be re-rendered
	sizeDirty    bool // bounds changed; the bitmap may need reallocating

	renders     int
	allocations int
}

func (c *renderCache) release() {
	if c.bitmap != nil {
		c.bitmap.Release()
		c.bitmap = nil
	}
	c.w, c.h = 0, 0
}

// --- Cache API ---

// SetCached enables or disables caching of this node's subtree in an
// offscreen bitmap. While cached, the subtree is re-rendered only when
// something inside it requests a redraw; otherwise the bitmap is blitted.
func (n *Node) SetCached(enabled bool) error {
	const op = "SetCached"
	switch {
	case n.disposed:
		return lifecycleError(op, n, "node is disposed")
	case n.isStage:
		return lifecycleError(op, n, "the stage cannot be cached")
	case enabled && n.z != 0:
		return lifecycleError(op, n, "a node with a depth offset cannot be cached")
	}
	if enabled == (n.cache != nil) {
		return nil
	}
	if enabled {
		n.cache = &renderCache{contentDirty: true, sizeDirty: true}
	} else {
		n.cache.release()
		n.cache = nil
	}
	n.forceRedraw()
	return nil
}

// IsCached reports whether subtree caching is enabled for this node.
func (n *Node) IsCached() bool {
	return n.cache != nil
}

// CacheDirty reports whether the cached bitmap will be re-rendered on the
// next draw. Always false for uncached nodes.
func (n *Node) CacheDirty() bool {
	return n.cache != nil && n.cache.contentDirty
}

// drawCached paints a cached node. dst already carries the node's transform.
func (n *Node) drawCached(dst Surface, base Matrix) {
	c := n.cache
	b := n.LocalCompositeBounds().Aligned()
	if b.Empty() {
		if c.bitmap != nil {
			logger.Warn("arbor: cached node has empty bounds, releasing bitmap", "node", n.Name)
		}
		c.release()
		c.bounds = Rect{}
		c.sizeDirty = false
		c.contentDirty = false
		for _, ch := range n.children {
			ch.settleRedraw()
		}
		return
	}
	w, h := int(b.Width), int(b.Height)

	if c.bitmap == nil || c.sizeDirty {
		c.sizeDirty = false
		if c.bitmap == nil || c.w != w || c.h != h {
			c.release()
			c.bitmap = dst.NewOffscreen(w, h)
			c.w, c.h = w, h
			c.contentDirty = true
			c.allocations++
			logger.Debug("arbor: cache allocated", "node", n.Name, "w", w, "h", h)
		}
	}
	if b.X != c.bounds.X || b.Y != c.bounds.Y {
		c.contentDirty = true
	}
	c.bounds = b

	if c.contentDirty {
		bm := c.bitmap
		bm.Clear()
		bm.SetTransform(TranslateMatrix(-b.X, -b.Y))
		// Root-space mapping of the bitmap's own coordinates, so hit testing
		// inside the cache sees the same inverses as an uncached draw.
		inner := base.Mul(dst.Transform()).Mul(TranslateMatrix(b.X, b.Y))
		n.drawSelf(bm)
		n.drawChildren(bm, inner)
		c.contentDirty = false
		c.renders++
	}
	dst.DrawSurface(c.bitmap, b.X, b.Y)
}
