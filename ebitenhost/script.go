package ebitenhost

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one action of an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Text   string  `json:"text,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner plays a JSON input script against a running game, one step
// per frame: clicks, drags, typed text, waits and screenshots. It is meant
// for automated visual checks.
//
//	{"steps": [
//	  {"action": "click", "x": 100, "y": 200},
//	  {"action": "wait", "frames": 3},
//	  {"action": "screenshot", "label": "after-click"}
//	]}
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON input script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("ebitenhost: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("ebitenhost: parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "click", "drag", "type", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("ebitenhost: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// SetScript attaches r to the game. Steps start on the next Update.
func (g *Game) SetScript(r *ScriptRunner) { g.runner = r }

// Done reports whether every step ran and its input was consumed.
func (r *ScriptRunner) Done() bool { return r.done }

// step advances the script by one frame. Called from Game.Update before
// input is polled.
func (r *ScriptRunner) step(g *Game) {
	if r.done {
		return
	}
	// Let queued injections drain before the next action.
	if len(g.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	switch st.Action {
	case "screenshot":
		g.Screenshot(st.Label)
	case "click":
		g.InjectClick(st.X, st.Y)
	case "drag":
		g.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "type":
		g.InjectText(st.Text)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(g.injectQueue) == 0 {
		r.done = true
	}
}
