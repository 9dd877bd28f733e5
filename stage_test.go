package arbor

import (
	"errors"
	"math/rand/v2"
	"testing"
)

// checkPendingChain fails if an update-pending node has a settled ancestor.
func checkPendingChain(t *testing.T, root *Node) {
	t.Helper()
	walk(root, func(n *Node) {
		if !n.updatePending {
			return
		}
		for p := n.parent; p != nil; p = p.parent {
			if !p.updatePending {
				t.Fatalf("node %q pending under settled ancestor %q", n.Name, p.Name)
			}
		}
	})
}

func TestPendingPropagatesToStage(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	s := NewStage()
	nodes := []*Node{s.Node}
	for i := 0; i < 40; i++ {
		n := NewRectangle("n", 0, 0, 5, 5, ColorWhite)
		mustAdd(t, nodes[rng.IntN(len(nodes))], n)
		nodes = append(nodes, n)
	}
	dst := newRecordingSurface(100, 100)
	mustFrame(t, s, dst)
	for round := 0; round < 30; round++ {
		n := nodes[1+rng.IntN(len(nodes)-1)]
		switch rng.IntN(4) {
		case 0:
			n.MoveBy(1, 0)
		case 1:
			n.SetVisible(!n.Visible())
		case 2:
			n.InvalidateContent()
		case 3:
			n.AddController(ControllerFunc(func(*Node, float64) bool { return true }))
		}
		checkPendingChain(t, s.Node)
		if round%3 == 0 {
			mustFrame(t, s, dst)
			checkPendingChain(t, s.Node)
		}
	}
}

func TestUpdateReachesInvisiblePendingNodes(t *testing.T) {
	s := NewStage()
	hidden := NewNode("hidden")
	child := NewRectangle("child", 0, 0, 5, 5, ColorWhite)
	mustAdd(t, s.Node, hidden)
	mustAdd(t, hidden, child)
	hidden.SetVisible(false)
	mustUpdate(t, s)

	child.MoveBy(3, 3)
	if !hidden.IsUpdatePending() || !s.NeedsUpdate() {
		t.Fatal("pending flag did not climb through an invisible ancestor")
	}
	mustUpdate(t, s)
	if child.IsUpdatePending() || hidden.IsUpdatePending() {
		t.Error("update left invisible nodes pending")
	}
}

func TestUpdateKeepsSkippedSiblingReachable(t *testing.T) {
	s := NewStage()
	p := NewNode("p")
	a, b := NewNode("a"), NewNode("b")
	mustAdd(t, s.Node, p)
	mustAdd(t, p, a)
	mustAdd(t, p, b)
	mustUpdate(t, s)

	a.AddController(ControllerFunc(func(n *Node, _ float64) bool {
		_ = n.RemoveFromParent()
		return true
	}))
	b.MoveBy(1, 1)
	mustUpdate(t, s)
	checkPendingChain(t, s.Node)
	if b.IsUpdatePending() && !p.IsUpdatePending() {
		t.Error("skipped sibling stranded")
	}
	mustUpdate(t, s)
	if b.IsUpdatePending() {
		t.Error("sibling still pending after a second update")
	}
}

func TestSchedulerCalledOnIdleToPending(t *testing.T) {
	calls := 0
	s := NewStage(WithScheduler(SchedulerFunc(func() { calls++ })))
	n := NewRectangle("n", 0, 0, 10, 10, ColorWhite)
	mustAdd(t, s.Node, n)
	dst := newRecordingSurface(100, 100)
	mustFrame(t, s, dst)
	calls = 0

	n.SetPosition(5, 5)
	n.SetPosition(6, 6)
	n.Redraw("again")
	if calls != 1 {
		t.Errorf("scheduler calls = %d, want 1", calls)
	}
	mustFrame(t, s, dst)
	if s.NeedsUpdate() || s.NeedsRedraw() {
		t.Fatal("stage still pending after a frame")
	}
	n.SetScale(2)
	if calls != 2 {
		t.Errorf("scheduler calls = %d, want 2", calls)
	}
}

// pendingFlags snapshots every node's scheduling state.
func pendingFlags(root *Node) []bool {
	var out []bool
	walk(root, func(n *Node) {
		out = append(out, n.updatePending, n.redrawPending, n.redrawQueued)
	})
	return out
}

func TestRedrawTwiceEqualsOnce(t *testing.T) {
	build := func() (*Stage, *Node) {
		s := NewStage()
		p := NewNode("p")
		n := NewRectangle("n", 0, 0, 5, 5, ColorWhite)
		mustAdd(t, s.Node, p)
		mustAdd(t, p, n)
		mustFrame(t, s, newRecordingSurface(10, 10))
		return s, n
	}
	s1, n1 := build()
	n1.Redraw("once")
	s2, n2 := build()
	n2.Redraw("twice")
	n2.Redraw("twice")

	f1, f2 := pendingFlags(s1.Node), pendingFlags(s2.Node)
	for i := range f1 {
		if f1[i] != f2[i] {
			t.Fatalf("flags differ: once %v, twice %v", f1, f2)
		}
	}
}

func TestRedrawDuringDrawIsQueuedOnce(t *testing.T) {
	calls := 0
	s := NewStage(WithScheduler(SchedulerFunc(func() { calls++ })))
	target := NewRectangle("target", 0, 0, 5, 5, ColorWhite)
	painter := NewContentNode("painter", &redrawOnDraw{
		Rectangle: Rectangle{Width: 5, Height: 5},
		target:    target,
	})
	mustAdd(t, s.Node, target)
	mustAdd(t, s.Node, painter)
	mustUpdate(t, s)
	calls = 0

	dst := newRecordingSurface(10, 10)
	if err := s.Draw(dst); err != nil {
		t.Fatal(err)
	}
	if len(s.queued) != 0 || target.redrawQueued {
		t.Error("queue not flushed after draw")
	}
	if !target.IsRedrawPending() || !s.NeedsRedraw() {
		t.Error("queued redraw not applied after draw")
	}
	if calls != 1 {
		t.Errorf("scheduler calls = %d, want 1", calls)
	}
	if err := CheckConsistency(s.Node); err != nil {
		t.Error(err)
	}
}

func TestFrameDrawsOnlyWhenPending(t *testing.T) {
	s := NewStage()
	n := NewRectangle("n", 0, 0, 5, 5, ColorWhite)
	mustAdd(t, s.Node, n)
	dst := newRecordingSurface(10, 10)

	drawn, err := s.Frame(0.016, dst)
	if err != nil || !drawn {
		t.Fatalf("first Frame = %v, %v", drawn, err)
	}
	drawn, err = s.Frame(0.016, dst)
	if err != nil || drawn {
		t.Errorf("idle Frame = %v, %v, want no draw", drawn, err)
	}
	n.MoveBy(1, 0)
	if drawn, _ = s.Frame(0.016, dst); !drawn {
		t.Error("Frame after a move did not draw")
	}
	if s.Frames() != 2 {
		t.Errorf("Frames = %d, want 2", s.Frames())
	}
}

func TestDisposedStage(t *testing.T) {
	s := NewStage()
	s.Dispose()
	if err := s.Update(0); !errors.Is(err, ErrLifecycle) {
		t.Errorf("Update = %v", err)
	}
	if err := s.Draw(newRecordingSurface(1, 1)); !errors.Is(err, ErrLifecycle) {
		t.Errorf("Draw = %v", err)
	}
}

func TestDebugModeReportsCorruption(t *testing.T) {
	s := NewStage(WithDebug(true))
	p := NewNode("p")
	c := NewNode("c")
	mustAdd(t, s.Node, p)
	mustAdd(t, p, c)
	mustUpdate(t, s)

	c.parent = nil // corrupt
	if err := s.Update(0); !errors.Is(err, ErrAssertion) {
		t.Errorf("Update = %v, want ErrAssertion", err)
	}
}

func TestStageOptions(t *testing.T) {
	c := Color{0, 1, 0, 1}
	s := NewStage(WithDepth(true), WithDebug(true), WithBoundsColor(c))
	if !s.Depth() || !s.Debug() || s.boundsColor != c {
		t.Error("options not applied")
	}
	s.SetDebug(false)
	if s.Debug() {
		t.Error("SetDebug(false) ignored")
	}
	if s.Root() != s.Node || s.Stage() != s || !s.IsAddedToSG() {
		t.Error("stage root is not live")
	}
}
