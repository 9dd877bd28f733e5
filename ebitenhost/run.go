package ebitenhost

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/arbor"
)

// Run opens a window and drives stage until the window closes or a frame
// fails. The screen is not cleared between frames; it is repainted only
// when the stage has a redraw pending.
func Run(stage *arbor.Stage, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("ebitenhost: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	ebiten.SetScreenClearedEveryFrame(false)
	arbor.Logger().Debug("ebitenhost: starting", "title", cfg.Title, "w", cfg.Width, "h", cfg.Height)
	if err := ebiten.RunGame(NewGame(stage, cfg)); err != nil {
		return fmt.Errorf("ebitenhost: run: %w", err)
	}
	return nil
}
