package arbor

import "fmt"

// drawOp is one call recorded by recordingSurface. M is the surface
// transform at the time of the call.
type drawOp struct {
	Op   string
	M    Matrix
	Args [4]float64
}

func (o drawOp) String() string {
	return fmt.Sprintf("%s%v", o.Op, o.Args)
}

// recordingSurface is a Surface that records draw calls instead of
// rasterizing them.
type recordingSurface struct {
	w, h   int
	m      Matrix
	stack  []Matrix
	ops    []drawOp
	depth  bool
	z      float64
	clears int

	offscreens []*recordingSurface
	released   bool
}

func newRecordingSurface(w, h int) *recordingSurface {
	return &recordingSurface{w: w, h: h, m: IdentityMatrix}
}

func (s *recordingSurface) record(op string, args ...float64) {
	o := drawOp{Op: op, M: s.m}
	copy(o.Args[:], args)
	s.ops = append(s.ops, o)
}

// names returns the recorded op names in order.
func (s *recordingSurface) names() []string {
	out := make([]string, len(s.ops))
	for i, o := range s.ops {
		out[i] = o.Op
	}
	return out
}

func (s *recordingSurface) reset() { s.ops = nil }

func (s *recordingSurface) Push() { s.stack = append(s.stack, s.m) }
func (s *recordingSurface) Pop() {
	s.m = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}
func (s *recordingSurface) Translate(x, y float64) { s.m = s.m.Mul(TranslateMatrix(x, y)) }
func (s *recordingSurface) Rotate(a float64)       { s.m = s.m.Mul(RotateMatrix(a)) }
func (s *recordingSurface) Scale(sx, sy float64)   { s.m = s.m.Mul(ScaleMatrix(sx, sy)) }
func (s *recordingSurface) Transform() Matrix      { return s.m }
func (s *recordingSurface) SetTransform(m Matrix)  { s.m = m }
func (s *recordingSurface) Size() (int, int)       { return s.w, s.h }
func (s *recordingSurface) Clear()                 { s.clears++ }

func (s *recordingSurface) FillRect(x, y, w, h float64, _ Color) {
	s.record("FillRect", x, y, w, h)
}

func (s *recordingSurface) FillEllipse(cx, cy, rx, ry float64, _ Color) {
	s.record("FillEllipse", cx, cy, rx, ry)
}

func (s *recordingSurface) StrokeRect(x, y, w, h, _ float64, _ Color) {
	s.record("StrokeRect", x, y, w, h)
}

func (s *recordingSurface) NewOffscreen(w, h int) Surface {
	o := newRecordingSurface(w, h)
	s.offscreens = append(s.offscreens, o)
	return o
}

func (s *recordingSurface) DrawSurface(src Surface, x, y float64) {
	s.record("DrawSurface", x, y)
}

func (s *recordingSurface) Release() { s.released = true }

// depthSurface adds TranslateZ to recordingSurface.
type depthSurface struct {
	*recordingSurface
}

func (s depthSurface) TranslateZ(z float64) {
	s.z += z
	s.record("TranslateZ", z)
}

// countingShape is a HitShape that counts Contains calls.
type countingShape struct {
	Rect
	calls *int
}

func (c countingShape) Contains(x, y float64) bool {
	*c.calls++
	return c.Rect.Contains(x, y)
}

// redrawOnDraw is a Content that requests a redraw on another node while
// being drawn.
type redrawOnDraw struct {
	Rectangle
	target *Node
}

func (r *redrawOnDraw) Draw(s Surface) {
	r.Rectangle.Draw(s)
	r.target.Redraw("test")
	r.target.Redraw("test")
}
