// Package ggsurface implements arbor.Surface over the gogpu/gg software
// rasterizer. It renders without a window, which makes it the surface of
// choice for tests, snapshots and server-side rendering.
package ggsurface

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/phanxgames/arbor"
)

// Surface is an arbor.Surface backed by a *gg.Context.
type Surface struct {
	ctx *gg.Context
}

var _ arbor.Surface = (*Surface)(nil)

// New creates a transparent surface of the given size.
func New(w, h int) *Surface {
	return &Surface{ctx: gg.NewContext(w, h)}
}

// Wrap returns a surface drawing into an existing context. The context's
// transform stack is shared with the caller.
func Wrap(ctx *gg.Context) *Surface {
	return &Surface{ctx: ctx}
}

// Context returns the underlying gg context.
func (s *Surface) Context() *gg.Context { return s.ctx }

// pixmap returns the context's current target, which Resize may replace.
func (s *Surface) pixmap() *gg.Pixmap { return s.ctx.ResizeTarget() }

// Image returns a copy of the surface's pixels.
func (s *Surface) Image() *image.RGBA {
	_ = s.ctx.FlushGPU()
	return s.pixmap().ToImage()
}

// SavePNG writes the surface to path.
func (s *Surface) SavePNG(path string) error {
	if err := s.ctx.SavePNG(path); err != nil {
		return fmt.Errorf("ggsurface: save %s: %w", path, err)
	}
	return nil
}

// --- Transform stack ---

// Push implements arbor.Surface.
func (s *Surface) Push() { s.ctx.Push() }

// Pop implements arbor.Surface.
func (s *Surface) Pop() { s.ctx.Pop() }

// Translate implements arbor.Surface.
func (s *Surface) Translate(x, y float64) { s.ctx.Translate(x, y) }

// Rotate implements arbor.Surface.
func (s *Surface) Rotate(angle float64) { s.ctx.Rotate(angle) }

// Scale implements arbor.Surface.
func (s *Surface) Scale(sx, sy float64) { s.ctx.Scale(sx, sy) }

// Transform implements arbor.Surface.
func (s *Surface) Transform() arbor.Matrix { return FromGG(s.ctx.GetTransform()) }

// SetTransform implements arbor.Surface.
func (s *Surface) SetTransform(m arbor.Matrix) { s.ctx.SetTransform(ToGG(m)) }

// ToGG converts an arbor matrix to gg's row-major layout.
func ToGG(m arbor.Matrix) gg.Matrix {
	return gg.Matrix{A: m[0], B: m[2], C: m[4], D: m[1], E: m[3], F: m[5]}
}

// FromGG converts a gg matrix to arbor's layout.
func FromGG(m gg.Matrix) arbor.Matrix {
	return arbor.Matrix{m.A, m.D, m.B, m.E, m.C, m.F}
}

// --- Pixels ---

// Size implements arbor.Surface.
func (s *Surface) Size() (int, int) { return s.ctx.Width(), s.ctx.Height() }

// Clear implements arbor.Surface.
func (s *Surface) Clear() { s.ctx.Clear() }

// FillRect implements arbor.Surface.
func (s *Surface) FillRect(x, y, w, h float64, c arbor.Color) {
	s.ctx.SetRGBA(c.R, c.G, c.B, c.A)
	s.ctx.DrawRectangle(x, y, w, h)
	s.fill("FillRect")
}

// FillEllipse implements arbor.Surface.
func (s *Surface) FillEllipse(cx, cy, rx, ry float64, c arbor.Color) {
	s.ctx.SetRGBA(c.R, c.G, c.B, c.A)
	s.ctx.DrawEllipse(cx, cy, rx, ry)
	s.fill("FillEllipse")
}

// StrokeRect implements arbor.Surface.
func (s *Surface) StrokeRect(x, y, w, h, width float64, c arbor.Color) {
	s.ctx.SetRGBA(c.R, c.G, c.B, c.A)
	s.ctx.SetLineWidth(width)
	s.ctx.DrawRectangle(x, y, w, h)
	if err := s.ctx.Stroke(); err != nil {
		arbor.Logger().Warn("ggsurface: stroke failed", "op", "StrokeRect", "err", err)
	}
}

func (s *Surface) fill(op string) {
	if err := s.ctx.Fill(); err != nil {
		arbor.Logger().Warn("ggsurface: fill failed", "op", op, "err", err)
	}
}

// --- Offscreens ---

// NewOffscreen implements arbor.Surface.
func (s *Surface) NewOffscreen(w, h int) arbor.Surface { return New(w, h) }

// Release implements arbor.Surface.
func (s *Surface) Release() {
	if s.ctx == nil {
		return
	}
	if err := s.ctx.Close(); err != nil {
		arbor.Logger().Warn("ggsurface: close failed", "err", err)
	}
}

// DrawSurface implements arbor.Surface. src must be a *Surface. Integer
// translations use gg's image blit; any other transform is resampled with
// nearest-neighbour through the inverse transform.
func (s *Surface) DrawSurface(src arbor.Surface, x, y float64) {
	o, ok := src.(*Surface)
	if !ok {
		arbor.Logger().Warn("ggsurface: foreign surface ignored", "type", fmt.Sprintf("%T", src))
		return
	}
	_ = o.ctx.FlushGPU()
	m := s.Transform().Mul(arbor.TranslateMatrix(x, y))
	if isIntegerTranslation(m) {
		s.ctx.DrawImageEx(gg.ImageBufFromImage(o.pixmap().ToImage()), gg.DrawImageOptions{
			X:             x,
			Y:             y,
			Interpolation: gg.InterpNearest,
			Opacity:       1,
			BlendMode:     gg.BlendNormal,
		})
		return
	}
	_ = s.ctx.FlushGPU()
	blit(s.pixmap(), o.pixmap(), m)
}

func isIntegerTranslation(m arbor.Matrix) bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 &&
		m[4] == math.Trunc(m[4]) && m[5] == math.Trunc(m[5])
}

// blit composites src over dst, placing src pixel (0, 0) at m's origin.
// Pixel data is premultiplied RGBA.
func blit(dst, src *gg.Pixmap, m arbor.Matrix) {
	sw, sh := src.Width(), src.Height()
	box := m.Bounds(arbor.Rect{Width: float64(sw), Height: float64(sh)})
	if box.Empty() {
		return
	}
	inv := m.Invert()
	dw, dh := dst.Width(), dst.Height()
	x0 := max(0, int(box.X))
	y0 := max(0, int(box.Y))
	x1 := min(dw, int(box.MaxX()))
	y1 := min(dh, int(box.MaxY()))
	sd, dd := src.Data(), dst.Data()
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			sx, sy := inv.Apply(float64(px)+0.5, float64(py)+0.5)
			ix, iy := int(math.Floor(sx)), int(math.Floor(sy))
			if ix < 0 || iy < 0 || ix >= sw || iy >= sh {
				continue
			}
			si := (iy*sw + ix) * 4
			sa := uint32(sd[si+3])
			if sa == 0 {
				continue
			}
			di := (py*dw + px) * 4
			inv255 := 255 - sa
			for k := 0; k < 4; k++ {
				dd[di+k] = uint8(uint32(sd[si+k]) + (uint32(dd[di+k])*inv255+127)/255)
			}
		}
	}
}
