package ebitenhost

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/arbor"
)

// ellipseSegments is the number of fan triangles used for ellipses.
const ellipseSegments = 48

// --- White pixel singleton (no sync.Once; the host is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Solid fills are drawn by stretching and tinting it.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// Surface is an arbor.Surface over an *ebiten.Image. Ebitengine has no
// transform stack of its own, so the surface keeps one and converts it to a
// GeoM for every draw call.
type Surface struct {
	img   *ebiten.Image
	m     arbor.Matrix
	stack []arbor.Matrix
	owned bool

	verts []ebiten.Vertex
	inds  []uint16
}

var _ arbor.Surface = (*Surface)(nil)

// NewSurface wraps img with an identity transform.
func NewSurface(img *ebiten.Image) *Surface {
	return &Surface{img: img, m: arbor.IdentityMatrix}
}

// Image returns the wrapped image.
func (s *Surface) Image() *ebiten.Image { return s.img }

// reset retargets the surface at img and drops any transform state. Used
// by the game, which receives a screen image per frame.
func (s *Surface) reset(img *ebiten.Image) {
	s.img = img
	s.m = arbor.IdentityMatrix
	s.stack = s.stack[:0]
}

// --- Transform stack ---

// Push implements arbor.Surface.
func (s *Surface) Push() { s.stack = append(s.stack, s.m) }

// Pop implements arbor.Surface.
func (s *Surface) Pop() {
	if len(s.stack) == 0 {
		return
	}
	s.m = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Translate implements arbor.Surface.
func (s *Surface) Translate(x, y float64) { s.m = s.m.Mul(arbor.TranslateMatrix(x, y)) }

// Rotate implements arbor.Surface.
func (s *Surface) Rotate(angle float64) { s.m = s.m.Mul(arbor.RotateMatrix(angle)) }

// Scale implements arbor.Surface.
func (s *Surface) Scale(sx, sy float64) { s.m = s.m.Mul(arbor.ScaleMatrix(sx, sy)) }

// Transform implements arbor.Surface.
func (s *Surface) Transform() arbor.Matrix { return s.m }

// SetTransform implements arbor.Surface.
func (s *Surface) SetTransform(m arbor.Matrix) { s.m = m }

// GeoM converts an arbor matrix into an ebiten.GeoM.
func GeoM(m arbor.Matrix) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// --- Pixels ---

// Size implements arbor.Surface.
func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear implements arbor.Surface.
func (s *Surface) Clear() { s.img.Clear() }

// FillRect implements arbor.Surface.
func (s *Surface) FillRect(x, y, w, h float64, c arbor.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(GeoM(s.m))
	a := float32(c.A)
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
	s.img.DrawImage(ensureWhitePixel(), &op)
}

// FillEllipse implements arbor.Surface. The ellipse is a triangle fan
// transformed on the CPU.
func (s *Surface) FillEllipse(cx, cy, rx, ry float64, c arbor.Color) {
	if rx <= 0 || ry <= 0 {
		return
	}
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
	cr, cg, cb, ca := float32(c.R), float32(c.G), float32(c.B), float32(c.A)
	vertex := func(x, y float64) ebiten.Vertex {
		dx, dy := s.m.Apply(x, y)
		return ebiten.Vertex{
			DstX: float32(dx), DstY: float32(dy),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}
	s.verts = append(s.verts, vertex(cx, cy))
	for i := 0; i <= ellipseSegments; i++ {
		t := 2 * math.Pi * float64(i) / ellipseSegments
		s.verts = append(s.verts, vertex(cx+rx*math.Cos(t), cy+ry*math.Sin(t)))
	}
	for i := 1; i <= ellipseSegments; i++ {
		s.inds = append(s.inds, 0, uint16(i), uint16(i+1))
	}
	s.img.DrawTriangles(s.verts, s.inds, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{})
}

// StrokeRect implements arbor.Surface. The outline is centred on the
// rectangle edges.
func (s *Surface) StrokeRect(x, y, w, h, width float64, c arbor.Color) {
	hw := width / 2
	s.FillRect(x-hw, y-hw, w+width, width, c)
	s.FillRect(x-hw, y+h-hw, w+width, width, c)
	s.FillRect(x-hw, y+hw, width, h-width, c)
	s.FillRect(x+w-hw, y+hw, width, h-width, c)
}

// drawImage draws img with its top-left corner at local (x, y).
func (s *Surface) drawImage(img *ebiten.Image, x, y float64) {
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(GeoM(s.m))
	s.img.DrawImage(img, &op)
}

// --- Offscreens ---

// NewOffscreen implements arbor.Surface.
func (s *Surface) NewOffscreen(w, h int) arbor.Surface {
	o := NewSurface(ebiten.NewImage(w, h))
	o.owned = true
	return o
}

// DrawSurface implements arbor.Surface. src must be a *Surface.
func (s *Surface) DrawSurface(src arbor.Surface, x, y float64) {
	o, ok := src.(*Surface)
	if !ok {
		arbor.Logger().Warn("ebitenhost: foreign surface ignored", "type", fmt.Sprintf("%T", src))
		return
	}
	s.drawImage(o.img, x, y)
}

// Release implements arbor.Surface. Only offscreens created by
// NewOffscreen are deallocated; a wrapped screen stays owned by the caller.
func (s *Surface) Release() {
	if s.owned && s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
}
