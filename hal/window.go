//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow opens a desktop window that presents p's frames and forwards
// keyboard and mouse input. It blocks until the window closes.
func RunWindow(p Program, cfg WindowConfig) error {
	w, h := p.Size()
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	ebiten.SetWindowTitle(p.Title())
	ebiten.SetWindowSize(w*cfg.Scale, h*cfg.Scale)
	ebiten.SetFullscreen(cfg.Fullscreen)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(&hostGame{p: p, w: w, h: h})
}

type hostGame struct {
	p     Program
	w, h  int
	kbd   hostInput
	fbImg *ebiten.Image
}

func (g *hostGame) Update() error {
	g.kbd.poll(g.p.Input())
	g.p.Step()
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	img := g.p.Render()
	if img == nil {
		return
	}
	b := img.Bounds()
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != b.Dx() || g.fbImg.Bounds().Dy() != b.Dy() {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.fbImg.WritePixels(img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.h
}
