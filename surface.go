package arbor

// Surface is the host drawing context the draw traversal paints into.
//
// The transform calls post-multiply the current transform, canvas style:
// after Translate(10, 0) a point drawn at (0, 0) lands at (10, 0) in the
// coordinates that were current before the call.
type Surface interface {
	// Push saves the current transform; Pop restores the last saved one.
	Push()
	Pop()
	Translate(x, y float64)
	Rotate(angle float64)
	Scale(sx, sy float64)
	// Transform returns the current transform.
	Transform() Matrix
	// SetTransform replaces the current transform.
	SetTransform(m Matrix)

	// Size returns the pixel dimensions of the surface.
	Size() (w, h int)
	// Clear resets every pixel to transparent.
	Clear()

	FillRect(x, y, w, h float64, c Color)
	FillEllipse(cx, cy, rx, ry float64, c Color)
	StrokeRect(x, y, w, h, width float64, c Color)

	// NewOffscreen returns a transparent surface of the given size, with an
	// identity transform, compatible with DrawSurface on this surface.
	NewOffscreen(w, h int) Surface
	// DrawSurface copies src so that its pixel (0, 0) lands at (x, y) under
	// the current transform.
	DrawSurface(src Surface, x, y float64)
	// Release frees resources held by an offscreen surface.
	Release()
}

// DepthSurface is implemented by 3D-capable surfaces. drawNode calls
// TranslateZ for nodes with a non-zero Z.
type DepthSurface interface {
	Surface
	TranslateZ(z float64)
}

// Scheduler is the host's "wake up and schedule a frame" hook. The Stage
// calls RequestFrame when it becomes update- or redraw-pending from idle.
type Scheduler interface {
	RequestFrame()
}

// SchedulerFunc adapts a function to the Scheduler interface.
type SchedulerFunc func()

// RequestFrame calls f.
func (f SchedulerFunc) RequestFrame() { f() }
