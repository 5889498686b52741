// Package hal hosts a frame-stepped program: in a desktop window through
// ebiten, or headless on a ticker.
package hal

import (
	"image"

	"gltfviewer/engine"
)

// Program is what a host drives. Per tick the host records input into
// Input(), calls Step, and in window mode calls Render to present a frame.
type Program interface {
	Title() string
	Size() (w, h int)
	Input() *engine.Input
	Step()
	Render() *image.RGBA
}

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Scale      int
	Fullscreen bool
	TPS        int
}
