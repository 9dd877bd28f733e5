package ebitenhost

import (
	"slices"
	"testing"

	"github.com/phanxgames/arbor"
)

// injectFrame runs one frame of input made only of injected events.
func injectFrame(g *Game) bool {
	in := &frameInput{}
	ok := g.applyInjected(in)
	g.feed(in)
	return ok
}

func TestInjectClick(t *testing.T) {
	g, _, got := newTestGame(t)

	g.InjectClick(15, 15)
	if len(g.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(g.injectQueue))
	}

	// Frame 1: press
	injectFrame(g)
	if len(g.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", len(g.injectQueue))
	}
	if slices.Contains(*got, arbor.EventPointerClick) {
		t.Error("click should not fire on press frame")
	}

	// Frame 2: release, click fires
	injectFrame(g)
	want := []arbor.EventType{
		arbor.EventPointerOver, arbor.EventPointerPress,
		arbor.EventPointerClick, arbor.EventPointerRelease,
	}
	if !slices.Equal(*got, want) {
		t.Errorf("events = %v, want %v", *got, want)
	}
	if injectFrame(g) {
		t.Error("empty queue should not override input")
	}
}

func TestInjectDrag(t *testing.T) {
	g, _, got := newTestGame(t)

	// press at (15,15), two interpolated moves, release at (80,80)
	g.InjectDrag(15, 15, 80, 80, 4)
	if len(g.injectQueue) != 4 {
		t.Fatalf("expected 4 queued events, got %d", len(g.injectQueue))
	}
	mid := g.injectQueue[1]
	if !mid.pressed || mid.x <= 15 || mid.x >= 80 {
		t.Errorf("interpolated move = %+v", mid)
	}
	if g.injectQueue[3].pressed {
		t.Error("last drag event should release")
	}

	for range 4 {
		injectFrame(g)
	}
	want := []arbor.EventType{arbor.EventPointerOver, arbor.EventPointerPress, arbor.EventPointerOut}
	if !slices.Equal(*got, want) {
		t.Errorf("events = %v, want %v", *got, want)
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.InjectDrag(0, 0, 10, 10, 0)
	if len(g.injectQueue) != 2 {
		t.Errorf("expected press and release only, got %d events", len(g.injectQueue))
	}
}

func TestInjectText(t *testing.T) {
	g, btn, _ := newTestGame(t)
	var typed []rune
	btn.AddKeyHandler(&arbor.KeyHandler{
		OnTyped: func(e *arbor.KeyEvent) { typed = append(typed, e.Rune) },
	})

	g.InjectText("ok")
	injectFrame(g)
	injectFrame(g)
	if string(typed) != "ok" {
		t.Errorf("typed = %q, want %q", string(typed), "ok")
	}
}
