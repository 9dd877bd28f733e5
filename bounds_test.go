package arbor

import (
	"math"
	"math/rand/v2"
	"testing"
)

func mustAdd(t *testing.T, parent, child *Node) {
	t.Helper()
	if err := parent.AddNode(child); err != nil {
		t.Fatalf("AddNode(%q, %q): %v", parent.Name, child.Name, err)
	}
}

func mustUpdate(t *testing.T, s *Stage) {
	t.Helper()
	if err := s.Update(1.0 / 60); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func mustFrame(t *testing.T, s *Stage, dst Surface) {
	t.Helper()
	if _, err := s.Frame(1.0/60, dst); err != nil {
		t.Fatalf("Frame: %v", err)
	}
}

func TestMoveChangesCompositeNotLocal(t *testing.T) {
	s := NewStage()
	r := NewRectangle("r", 50, 50, 100, 100, ColorWhite)
	mustAdd(t, s.Node, r)
	mustUpdate(t, s)

	r.SetPosition(10, 10)
	if r.bounds.localChanged {
		t.Error("moving must not mark local bounds changed")
	}
	mustUpdate(t, s)

	if got, want := r.CompositeBounds(), (Rect{60, 60, 100, 100}); got != want {
		t.Errorf("CompositeBounds = %v, want %v", got, want)
	}
	if got, want := r.LocalBounds(), (Rect{50, 50, 100, 100}); got != want {
		t.Errorf("LocalBounds = %v, want %v", got, want)
	}
}

func TestChildMoveGrowsParentLocalComposite(t *testing.T) {
	s := NewStage()
	r1 := NewRectangle("r1", 0, 0, 10, 10, ColorWhite)
	r2 := NewRectangle("r2", 0, 0, 10, 10, ColorWhite)
	mustAdd(t, s.Node, r1)
	mustAdd(t, r1, r2)
	mustUpdate(t, s)

	r2.MoveBy(5, 5)
	mustUpdate(t, s)

	if got, want := r1.LocalCompositeBounds(), (Rect{0, 0, 15, 15}); got != want {
		t.Errorf("r1 LocalCompositeBounds = %v, want %v", got, want)
	}
	if got, want := r1.LocalBounds(), (Rect{0, 0, 10, 10}); got != want {
		t.Errorf("r1 LocalBounds = %v, want %v", got, want)
	}
}

func TestLocalCompositeEmptyUnionReplacement(t *testing.T) {
	g := NewNode("group")
	c := NewRectangle("c", 0, 0, 10, 10, ColorWhite)
	c.SetPosition(100, 100)
	mustAdd(t, g, c)
	if got, want := g.LocalCompositeBounds(), (Rect{100, 100, 10, 10}); got != want {
		t.Errorf("LocalCompositeBounds = %v, want %v (must not stretch to origin)", got, want)
	}
}

func TestInvisibleChildrenExcluded(t *testing.T) {
	g := NewNode("group")
	a := NewRectangle("a", 0, 0, 10, 10, ColorWhite)
	b := NewRectangle("b", 0, 0, 10, 10, ColorWhite)
	b.SetPosition(50, 0)
	mustAdd(t, g, a)
	mustAdd(t, g, b)

	if got := g.LocalCompositeBounds(); got != (Rect{0, 0, 60, 10}) {
		t.Fatalf("LocalCompositeBounds = %v", got)
	}
	b.SetVisible(false)
	if got := g.LocalCompositeBounds(); got != (Rect{0, 0, 10, 10}) {
		t.Errorf("after hide: LocalCompositeBounds = %v, want (0,0,10,10)", got)
	}
	b.SetVisible(true)
	if got := g.LocalCompositeBounds(); got != (Rect{0, 0, 60, 10}) {
		t.Errorf("after show: LocalCompositeBounds = %v", got)
	}
}

func TestExplicitSizeForContentlessNode(t *testing.T) {
	n := NewNode("n")
	if got := n.LocalBounds(); got != (Rect{}) {
		t.Fatalf("LocalBounds = %v, want empty", got)
	}
	n.SetExplicitSize(30, 20)
	if got := n.LocalBounds(); got != (Rect{0, 0, 30, 20}) {
		t.Errorf("LocalBounds = %v, want (0,0,30,20)", got)
	}
}

func TestCompositeBoundsUnderScaleAndRotation(t *testing.T) {
	n := NewRectangle("n", 0, 0, 10, 10, ColorWhite)
	n.SetScale(2)
	if got := n.CompositeBounds(); got != (Rect{0, 0, 20, 20}) {
		t.Errorf("scaled CompositeBounds = %v", got)
	}
	n.SetScale(1)
	n.SetRotation(math.Pi / 4)
	n.SetPosition(100, 0)
	if got := n.CompositeBounds(); got != (Rect{92, 0, 16, 15}) {
		t.Errorf("rotated CompositeBounds = %v", got)
	}
}

func TestContentInvalidation(t *testing.T) {
	s := NewStage()
	rect := &Rectangle{Width: 10, Height: 10}
	n := NewContentNode("n", rect)
	mustAdd(t, s.Node, n)
	mustUpdate(t, s)

	rect.Width = 40
	if got := n.LocalBounds(); got.Width != 10 {
		t.Fatalf("bounds changed before InvalidateContent: %v", got)
	}
	n.InvalidateContent()
	if !n.bounds.localChanged || !s.updatePending {
		t.Error("InvalidateContent should mark local bounds changed and schedule an update")
	}
	mustUpdate(t, s)
	if got := s.LocalCompositeBounds(); got != (Rect{0, 0, 40, 10}) {
		t.Errorf("stage LocalCompositeBounds = %v", got)
	}
}

func TestInvalidationStopsAtStaleAncestor(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewRectangle("c", 0, 0, 5, 5, ColorWhite)
	mustAdd(t, a, b)
	mustAdd(t, b, c)
	a.CompositeBounds()
	a.bounds.lcChanged = false
	b.bounds.lcChanged = false

	// b stale and changed; a must not be touched by a second invalidation.
	b.invalidateLocalCompositeBounds()
	a.bounds.lcChanged = false
	c.invalidateCompositeBounds()
	if a.bounds.lcChanged {
		t.Error("climb should stop at b, which was already stale")
	}
}

// groundTruth recomputes n's composite bounds without memoization.
func groundTruth(n *Node) Rect {
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
	for _, c := range n.children {
		if c.visible {
			r = r.Union(groundTruth(c))
		}
	}
	switch {
	case n.rotation != 0 || n.scale != 1:
		return localMatrix(n.x, n.y, n.rotation, n.scale).Bounds(r)
	case n.x != 0 || n.y != 0:
		return r.Offset(n.x, n.y)
	}
	return r
}

func walk(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		walk(c, fn)
	}
}

func TestMemoizedBoundsMatchGroundTruth(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	s := NewStage()
	nodes := []*Node{s.Node}
	for i := 0; i < 60; i++ {
		n := NewRectangle("n", rng.Float64()*20, rng.Float64()*20, 1+rng.Float64()*30, 1+rng.Float64()*30, ColorWhite)
		if i%5 == 0 {
			n.SetContent(nil)
		}
		mustAdd(t, nodes[rng.IntN(len(nodes))], n)
		nodes = append(nodes, n)
	}
	for round := 0; round < 20; round++ {
		for i := 0; i < 10; i++ {
			n := nodes[1+rng.IntN(len(nodes)-1)]
			switch rng.IntN(5) {
			case 0:
				n.SetPosition(rng.Float64()*100-50, rng.Float64()*100-50)
			case 1:
				n.SetRotation(rng.Float64() * math.Pi)
			case 2:
				n.SetScale(0.5 + rng.Float64())
			case 3:
				n.SetVisible(!n.Visible())
			case 4:
				n.SetExplicitSize(rng.Float64()*10, rng.Float64()*10)
			}
		}
		mustUpdate(t, s)
		walk(s.Node, func(n *Node) {
			if got, want := n.CompositeBounds(), groundTruth(n); got != want {
				t.Fatalf("round %d: node %d CompositeBounds = %v, ground truth %v", round, n.ID, got, want)
			}
		})
	}
}

func TestUnchangedLocalBoundsAreFresh(t *testing.T) {
	s := NewStage()
	rect := &Rectangle{Width: 10, Height: 10}
	n := NewContentNode("n", rect)
	mustAdd(t, s.Node, n)
	mustUpdate(t, s)

	walk(s.Node, func(n *Node) {
		if n.bounds.localChanged {
			t.Errorf("node %q still has localChanged after update", n.Name)
		}
		var fresh Rect
		if n.content != nil {
			fresh = n.content.LocalBounds()
		}
		if fresh.Empty() {
			fresh = Rect{}
		}
		if got := n.LocalBounds(); got != fresh {
			t.Errorf("node %q memoized %v, fresh %v", n.Name, got, fresh)
		}
	})
}
