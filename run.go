package scrollfx

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// Resizable lets the window be resized; regions are remeasured on
	// every size change.
	Resizable bool
}

// game adapts a Page to ebiten.Game, adding the optional FPS overlay.
type game struct {
	page *Page
	fps  *fpsOverlay
}

func (g *game) Update() error {
	if err := g.page.Update(); err != nil {
		return err
	}
	if g.fps != nil {
		g.fps.update(1.0 / float64(ebiten.TPS()))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.page.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.page.Layout(outsideWidth, outsideHeight)
}

// Run opens a window and runs page until the window closes or the page's
// update func returns an error. The page is resized to the window first.
func Run(page *Page, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = int(page.viewport.Width)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(page.viewport.Height)
	}
	page.Resize(float64(cfg.Width), float64(cfg.Height))

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := &game{page: page}
	if cfg.ShowFPS {
		g.fps = newFPSOverlay()
	}
	return ebiten.RunGame(g)
}
