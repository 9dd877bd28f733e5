package arbor

// Content is the drawable capability a node may hold. A node without content
// is a pure group: its local bounds come from its explicit size, if any.
//
// LocalBounds must be cheap and must return the same value until the owner
// calls Node.InvalidateContent.
type Content interface {
	LocalBounds() Rect
	Draw(s Surface)
}

// HitTester is implemented by contents with a precise hit predicate.
// Coordinates are in the node's local space.
type HitTester interface {
	Contains(x, y float64) bool
}

// HitShape overrides a node's hit region with an explicit shape in local
// coordinates. It takes precedence over the content's own predicate.
type HitShape interface {
	Contains(x, y float64) bool
}

// --- Built-in contents ---

// Rectangle is a solid axis-aligned rectangle in local coordinates.
type Rectangle struct {
	X, Y, Width, Height float64
	Color               Color
}

// LocalBounds implements Content.
func (r *Rectangle) LocalBounds() Rect {
	return Rect{r.X, r.Y, r.Width, r.Height}
}

// Draw implements Content.
func (r *Rectangle) Draw(s Surface) {
	s.FillRect(r.X, r.Y, r.Width, r.Height, r.Color)
}

// Contains implements HitTester.
func (r *Rectangle) Contains(x, y float64) bool {
	return r.LocalBounds().Contains(x, y)
}

// Ellipse is a solid axis-aligned ellipse in local coordinates.
type Ellipse struct {
	CenterX, CenterY float64
	RadiusX, RadiusY float64
	Color            Color
}

// LocalBounds implements Content.
func (e *Ellipse) LocalBounds() Rect {
	return Rect{e.CenterX - e.RadiusX, e.CenterY - e.RadiusY, 2 * e.RadiusX, 2 * e.RadiusY}
}

// Draw implements Content.
func (e *Ellipse) Draw(s Surface) {
	s.FillEllipse(e.CenterX, e.CenterY, e.RadiusX, e.RadiusY, e.Color)
}

// Contains implements HitTester.
func (e *Ellipse) Contains(x, y float64) bool {
	if e.RadiusX <= 0 || e.RadiusY <= 0 {
		return false
	}
	dx := (x - e.CenterX) / e.RadiusX
	dy := (y - e.CenterY) / e.RadiusY
	return dx*dx+dy*dy <= 1
}

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return Rect{r.X, r.Y, r.Width, r.Height}.Contains(x, y)
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}
