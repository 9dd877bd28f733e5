package ebitenhost

import (
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/arbor"
)

func newTestGame(t *testing.T) (*Game, *arbor.Node, *[]arbor.EventType) {
	t.Helper()
	stage := arbor.NewStage()
	btn := arbor.NewRectangle("button", 0, 0, 20, 20, arbor.ColorWhite)
	btn.SetPosition(10, 10)
	if err := stage.AddNode(btn); err != nil {
		t.Fatal(err)
	}
	var got []arbor.EventType
	rec := func(e *arbor.PointerEvent) { got = append(got, e.Type) }
	btn.AddPointerHandler(&arbor.PointerHandler{
		OnOver: rec, OnOut: rec, OnPress: rec, OnRelease: rec, OnClick: rec,
	})
	return NewGame(stage, RunConfig{Width: 100, Height: 100}), btn, &got
}

func TestFeedSynthesizesClick(t *testing.T) {
	g, _, got := newTestGame(t)
	left := MouseButtonSet(1 << arbor.MouseButtonLeft)

	g.feed(&frameInput{x: 15, y: 15})
	g.feed(&frameInput{x: 15, y: 15, buttons: left})
	g.feed(&frameInput{x: 16, y: 15, buttons: left})
	g.feed(&frameInput{x: 16, y: 15})

	want := []arbor.EventType{
		arbor.EventPointerOver, arbor.EventPointerPress,
		arbor.EventPointerClick, arbor.EventPointerRelease,
	}
	if !slices.Equal(*got, want) {
		t.Errorf("events = %v, want %v", *got, want)
	}
}

func TestFeedNoClickWhenReleasedElsewhere(t *testing.T) {
	g, _, got := newTestGame(t)
	left := MouseButtonSet(1 << arbor.MouseButtonLeft)

	g.feed(&frameInput{x: 15, y: 15, buttons: left})
	g.feed(&frameInput{x: 80, y: 80, buttons: left})
	g.feed(&frameInput{x: 80, y: 80})

	want := []arbor.EventType{arbor.EventPointerOver, arbor.EventPointerPress, arbor.EventPointerOut}
	if !slices.Equal(*got, want) {
		t.Errorf("events = %v, want %v", *got, want)
	}
}

func TestFeedForwardsKeys(t *testing.T) {
	g, btn, _ := newTestGame(t)
	var keys []string
	btn.AddKeyHandler(&arbor.KeyHandler{
		OnPressed:  func(e *arbor.KeyEvent) { keys = append(keys, "down") },
		OnReleased: func(e *arbor.KeyEvent) { keys = append(keys, "up") },
		OnTyped:    func(e *arbor.KeyEvent) { keys = append(keys, string(e.Rune)) },
	})
	g.feed(&frameInput{
		pressed:  []ebiten.Key{ebiten.KeyA},
		released: []ebiten.Key{ebiten.KeyB},
		chars:    []rune("hi"),
	})
	if want := []string{"down", "up", "h", "i"}; !slices.Equal(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
}

func TestPrimaryButton(t *testing.T) {
	tests := []struct {
		set  MouseButtonSet
		want arbor.MouseButton
		ok   bool
	}{
		{0, 0, false},
		{1 << arbor.MouseButtonRight, arbor.MouseButtonRight, true},
		{1<<arbor.MouseButtonRight | 1<<arbor.MouseButtonLeft, arbor.MouseButtonLeft, true},
		{1 << arbor.MouseButtonMiddle, arbor.MouseButtonMiddle, true},
	}
	for _, tt := range tests {
		got, ok := tt.set.primary()
		if got != tt.want || ok != tt.ok {
			t.Errorf("%b.primary() = %v, %v, want %v, %v", tt.set, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSchedulerRequestsFrame(t *testing.T) {
	g, btn, _ := newTestGame(t)
	if err := g.stage.Update(0); err != nil {
		t.Fatal(err)
	}
	if err := g.stage.Draw(NewSurface(ebiten.NewImage(100, 100))); err != nil {
		t.Fatal(err)
	}
	g.requested = false
	btn.MoveBy(1, 0)
	if !g.requested {
		t.Error("stage mutation did not request a frame")
	}
}

func TestLayout(t *testing.T) {
	g, _, _ := newTestGame(t)
	if w, h := g.Layout(640, 480); w != 100 || h != 100 {
		t.Errorf("Layout = %dx%d, want configured 100x100", w, h)
	}
	if !g.resized {
		t.Error("first layout should force a repaint")
	}
	g.cfg.Width = 0
	if w, h := g.Layout(640, 480); w != 640 || h != 480 {
		t.Errorf("Layout = %dx%d, want outside size", w, h)
	}
}

func TestShowFPSAddsWidget(t *testing.T) {
	stage := arbor.NewStage()
	NewGame(stage, RunConfig{ShowFPS: true})
	if stage.NumChildren() != 1 || stage.ChildAt(0).Name != "fps_widget" {
		t.Fatalf("children = %v, want the fps widget", stage.Children())
	}
	w := stage.ChildAt(0)
	if got := w.LocalBounds(); got.Width != fpsWidgetW || got.Height != fpsWidgetH {
		t.Errorf("bounds = %+v", got)
	}
	if err := stage.Update(1.0 / 60); err != nil {
		t.Fatal(err)
	}
	if !stage.NeedsRedraw() {
		t.Error("first refresh should request a redraw")
	}
}
