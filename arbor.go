package arbor

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a surface submits the color.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default fill for built-in contents.
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts the color to an 8-bit premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for points and polygon vertices.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward. A rectangle with a non-positive
// width or height is empty.
type Rect struct {
	X, Y, Width, Height float64
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Contains reports whether the point (x, y) lies inside the rectangle.
// The left and top edges are inside, the right and bottom edges are not, so
// adjacent rectangles never both contain a point.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Offset returns r translated by (dx, dy). Empty rectangles stay at the zero
// value so they never leak a position into a later union.
func (r Rect) Offset(dx, dy float64) Rect {
	if r.Empty() {
		return Rect{}
	}
	return Rect{r.X + dx, r.Y + dy, r.Width, r.Height}
}

// Union returns the smallest rectangle covering r and other. An empty operand
// is ignored rather than unioned, so an empty target is replaced by the first
// non-empty source instead of being stretched toward the origin.
func (r Rect) Union(other Rect) Rect {
	if other.Empty() {
		return r
	}
	if r.Empty() {
		return other
	}
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.MaxX(), other.MaxX())
	maxY := math.Max(r.MaxY(), other.MaxY())
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// Aligned returns the smallest rectangle with integer edges covering r.
func (r Rect) Aligned() Rect {
	if r.Empty() {
		return Rect{}
	}
	minX := math.Floor(r.X)
	minY := math.Floor(r.Y)
	return Rect{minX, minY, math.Ceil(r.MaxX()) - minX, math.Ceil(r.MaxY()) - minY}
}

// EventType identifies a kind of routed interaction.
type EventType uint8

const (
	EventPointerMove    EventType = iota // pointer moved over a node
	EventPointerPress                    // a pointer button was pressed
	EventPointerRelease                  // a pointer button was released
	EventPointerClick                    // press then release over the same node
	EventPointerOver                     // pointer entered a node
	EventPointerOut                      // pointer left a node
	EventKeyType                         // a character was typed
	EventKeyPress                        // a key went down
	EventKeyRelease                      // a key went up
)

var eventTypeNames = [...]string{
	"pointerMove", "pointerPress", "pointerRelease", "pointerClick",
	"pointerOver", "pointerOut", "keyType", "keyPress", "keyRelease",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
