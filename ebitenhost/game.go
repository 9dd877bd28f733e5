// Package ebitenhost runs an arbor stage inside an Ebitengine window. It
// provides the Surface the stage paints into, the frame scheduler and the
// input source feeding the stage's router.
//
// For automated visual checks a Game also accepts synthetic input
// (InjectClick, InjectDrag, ...), replays JSON scripts (LoadScript) and
// writes PNG screenshots of painted frames (Screenshot).
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/arbor"
)

// RunConfig configures the window and frame loop.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ClearColor fills the screen before each repaint. Zero means transparent.
	ClearColor arbor.Color
	// TPS is the update rate. Zero keeps Ebitengine's default of 60.
	TPS int
	// ShowFPS adds an FPS and TPS overlay on top of the stage.
	ShowFPS bool
	// ScreenshotDir receives captures from Game.Screenshot. Empty means
	// "screenshots".
	ScreenshotDir string
	// Script, when set, plays scripted input from the first frame. See
	// LoadScript.
	Script *ScriptRunner
}

// pointerState tracks the mouse between frames for press, release and click
// synthesis.
type pointerState struct {
	seen      bool
	down      bool
	button    MouseButtonSet
	lastX     float64
	lastY     float64
	pressNode *arbor.Node
}

// MouseButtonSet is the set of mouse buttons held during a frame.
type MouseButtonSet uint8

func (b MouseButtonSet) primary() (arbor.MouseButton, bool) {
	switch {
	case b&(1<<arbor.MouseButtonLeft) != 0:
		return arbor.MouseButtonLeft, true
	case b&(1<<arbor.MouseButtonRight) != 0:
		return arbor.MouseButtonRight, true
	case b&(1<<arbor.MouseButtonMiddle) != 0:
		return arbor.MouseButtonMiddle, true
	}
	return 0, false
}

// frameInput is one frame of polled host input.
type frameInput struct {
	x, y     float64
	buttons  MouseButtonSet
	mods     arbor.KeyModifiers
	pressed  []ebiten.Key
	released []ebiten.Key
	chars    []rune
}

// Game is an ebiten.Game driving an arbor stage. The stage's scheduler is
// the game itself: updates run only on frames where the stage asked for
// one, and the screen is repainted only when a redraw is pending.
type Game struct {
	stage   *arbor.Stage
	cfg     RunConfig
	surface *Surface

	ptr       pointerState
	in        frameInput
	requested bool
	resized   bool
	w, h      int
	err       error

	injectQueue []injectedPointer
	injectRunes []rune
	runner      *ScriptRunner
	shots       []string
}

var _ ebiten.Game = (*Game)(nil)

// NewGame wires stage to a new game and installs the game as the stage's
// scheduler.
func NewGame(stage *arbor.Stage, cfg RunConfig) *Game {
	g := &Game{stage: stage, cfg: cfg, surface: NewSurface(nil), requested: true, runner: cfg.Script}
	stage.SetScheduler(arbor.SchedulerFunc(g.requestFrame))
	if cfg.ShowFPS {
		if err := stage.AddNode(NewFPSWidget()); err != nil {
			arbor.Logger().Warn("ebitenhost: fps widget", "err", err)
		}
	}
	return g
}

func (g *Game) requestFrame() { g.requested = true }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.runner != nil {
		g.runner.step(g)
	}
	in := g.poll()
	g.applyInjected(in)
	g.feed(in)
	if !g.requested && !g.stage.NeedsUpdate() {
		return nil
	}
	g.requested = false
	dt := 1 / float64(ebiten.TPS())
	return g.stage.Update(dt)
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.stage.NeedsRedraw() && !g.resized && len(g.shots) == 0 {
		return
	}
	g.resized = false
	c := g.cfg.ClearColor
	if c.A > 0 {
		screen.Fill(c.RGBA())
	} else {
		screen.Clear()
	}
	g.surface.reset(screen)
	if err := g.stage.Draw(g.surface); err != nil {
		g.err = err
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.cfg.Width, g.cfg.Height
	if w <= 0 || h <= 0 {
		w, h = outsideWidth, outsideHeight
	}
	if w != g.w || h != g.h {
		g.w, g.h = w, h
		g.resized = true
	}
	return w, h
}

// poll reads the current input state from Ebitengine.
func (g *Game) poll() *frameInput {
	in := &g.in
	mx, my := ebiten.CursorPosition()
	in.x, in.y = float64(mx), float64(my)
	in.buttons = 0
	for _, b := range []struct {
		eb ebiten.MouseButton
		ab arbor.MouseButton
	}{
		{ebiten.MouseButtonLeft, arbor.MouseButtonLeft},
		{ebiten.MouseButtonRight, arbor.MouseButtonRight},
		{ebiten.MouseButtonMiddle, arbor.MouseButtonMiddle},
	} {
		if ebiten.IsMouseButtonPressed(b.eb) {
			in.buttons |= 1 << b.ab
		}
	}
	in.mods = readModifiers()
	in.pressed = inpututil.AppendJustPressedKeys(in.pressed[:0])
	in.released = inpututil.AppendJustReleasedKeys(in.released[:0])
	in.chars = ebiten.AppendInputChars(in.chars[:0])
	return in
}

// feed runs the pointer state machine and forwards keys to the router.
func (g *Game) feed(in *frameInput) {
	r := g.stage.Router()
	ps := &g.ptr
	button, pressed := in.buttons.primary()
	if ps.down {
		button, _ = ps.button.primary()
	}

	if !ps.seen || in.x != ps.lastX || in.y != ps.lastY {
		ps.seen = true
		ps.lastX, ps.lastY = in.x, in.y
		r.PointerMoved(&arbor.PointerEvent{X: in.x, Y: in.y, Button: button, Modifiers: in.mods})
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = in.buttons
		ps.pressNode = r.Pick(in.x, in.y)
		r.PointerPressed(&arbor.PointerEvent{X: in.x, Y: in.y, Button: button, Modifiers: in.mods})
	case !pressed && ps.down:
		if ps.pressNode != nil && r.Pick(in.x, in.y) == ps.pressNode {
			r.PointerClicked(&arbor.PointerEvent{X: in.x, Y: in.y, Button: button, Modifiers: in.mods})
		}
		r.PointerReleased(&arbor.PointerEvent{X: in.x, Y: in.y, Button: button, Modifiers: in.mods})
		ps.down = false
		ps.button = 0
		ps.pressNode = nil
	}

	for _, k := range in.pressed {
		r.KeyPressed(&arbor.KeyEvent{Key: int(k), Modifiers: in.mods})
	}
	for _, k := range in.released {
		r.KeyReleased(&arbor.KeyEvent{Key: int(k), Modifiers: in.mods})
	}
	for _, c := range in.chars {
		r.KeyTyped(&arbor.KeyEvent{Rune: c, Modifiers: in.mods})
	}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() arbor.KeyModifiers {
	var mods arbor.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= arbor.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= arbor.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= arbor.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= arbor.ModMeta
	}
	return mods
}
