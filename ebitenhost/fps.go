package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/arbor"
)

const (
	fpsWidgetW     = 100
	fpsWidgetH     = 32
	fpsRefreshSecs = 0.5
)

// fpsContent draws a pre-rendered text image. It only paints on ebitenhost
// surfaces.
type fpsContent struct {
	img *ebiten.Image
}

func (c *fpsContent) LocalBounds() arbor.Rect {
	return arbor.Rect{Width: fpsWidgetW, Height: fpsWidgetH}
}

func (c *fpsContent) Draw(s arbor.Surface) {
	if es, ok := s.(*Surface); ok {
		es.drawImage(c.img, 0, 0)
	}
}

// NewFPSWidget returns a node showing the actual FPS and TPS, refreshed
// about twice a second. Add it last so it draws on top.
func NewFPSWidget() *arbor.Node {
	c := &fpsContent{img: ebiten.NewImage(fpsWidgetW, fpsWidgetH)}
	node := arbor.NewContentNode("fps_widget", c)
	elapsed := fpsRefreshSecs
	node.AddController(arbor.ControllerFunc(func(n *arbor.Node, dt float64) bool {
		elapsed += dt
		if elapsed < fpsRefreshSecs {
			return false
		}
		elapsed = 0
		c.img.Clear()
		c.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(c.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
		n.Redraw("fps refresh")
		return false
	}))
	return node
}
