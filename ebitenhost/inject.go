package ebitenhost

import "github.com/phanxgames/arbor"

// injectedPointer is one frame of synthetic pointer input. Coordinates are
// in screen space, the same space the cursor is polled in.
type injectedPointer struct {
	x, y    float64
	pressed bool
}

// InjectPress queues a left-button press at (x, y). Each queued event
// replaces the polled pointer for one frame.
func (g *Game) InjectPress(x, y float64) {
	g.injectQueue = append(g.injectQueue, injectedPointer{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move to (x, y) with the button held. Use it
// between InjectPress and InjectRelease to simulate a drag.
func (g *Game) InjectMove(x, y float64) {
	g.injectQueue = append(g.injectQueue, injectedPointer{x: x, y: y, pressed: true})
}

// InjectRelease queues a button release at (x, y).
func (g *Game) InjectRelease(x, y float64) {
	g.injectQueue = append(g.injectQueue, injectedPointer{x: x, y: y})
}

// InjectClick queues a press and a release at the same point. Consumes two
// frames.
func (g *Game) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves
// and a release at (toX, toY). frames is at least 2.
func (g *Game) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 2)
	g.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	g.InjectRelease(toX, toY)
}

// InjectText queues characters to be delivered as typed keys on the next
// frame.
func (g *Game) InjectText(s string) {
	g.injectRunes = append(g.injectRunes, []rune(s)...)
}

// applyInjected overrides the polled input with the next synthetic event.
// It reports whether the pointer was overridden.
func (g *Game) applyInjected(in *frameInput) bool {
	if len(g.injectRunes) > 0 {
		in.chars = append(in.chars, g.injectRunes...)
		g.injectRunes = g.injectRunes[:0]
	}
	if len(g.injectQueue) == 0 {
		return false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	in.x, in.y = evt.x, evt.y
	in.buttons = 0
	if evt.pressed {
		in.buttons = 1 << arbor.MouseButtonLeft
	}
	return true
}
