//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gltfviewer/engine"
)

var keymap = map[ebiten.Key]engine.Key{
	ebiten.KeyArrowUp:      engine.KeyUp,
	ebiten.KeyArrowDown:    engine.KeyDown,
	ebiten.KeyArrowLeft:    engine.KeyLeft,
	ebiten.KeyArrowRight:   engine.KeyRight,
	ebiten.KeyEnter:        engine.KeyEnter,
	ebiten.KeyNumpadEnter:  engine.KeyEnter,
	ebiten.KeyEscape:       engine.KeyEscape,
	ebiten.KeyBackspace:    engine.KeyBackspace,
	ebiten.KeyTab:          engine.KeyTab,
	ebiten.KeyDelete:       engine.KeyDelete,
	ebiten.KeyHome:         engine.KeyHome,
	ebiten.KeyEnd:          engine.KeyEnd,
	ebiten.KeySpace:        engine.KeySpace,
	ebiten.KeySlash:        engine.KeySlash,
	ebiten.KeyControlLeft:  engine.KeyControlLeft,
	ebiten.KeyControlRight: engine.KeyControlRight,
	ebiten.KeyShiftLeft:    engine.KeyShiftLeft,
	ebiten.KeyShiftRight:   engine.KeyShiftRight,
	ebiten.KeyAltLeft:      engine.KeyAltLeft,
	ebiten.KeyAltRight:     engine.KeyAltRight,
	ebiten.KeyF:            engine.KeyF,
	ebiten.KeyP:            engine.KeyP,
	ebiten.KeyR:            engine.KeyR,
	ebiten.KeyW:            engine.KeyW,
	ebiten.KeyF1:           engine.KeyF1,
	ebiten.KeyF2:           engine.KeyF2,
	ebiten.KeyF3:           engine.KeyF3,
	ebiten.KeyF12:          engine.KeyF12,
}

var mousemap = map[ebiten.MouseButton]engine.MouseButton{
	ebiten.MouseButtonLeft:   engine.MouseLeft,
	ebiten.MouseButtonRight:  engine.MouseRight,
	ebiten.MouseButtonMiddle: engine.MouseMiddle,
}

type hostInput struct {
	keys  []ebiten.Key
	chars []rune
}

// poll records this tick's edges into in.
func (h *hostInput) poll(in *engine.Input) {
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		if ek, ok := keymap[k]; ok {
			in.Press(ek)
		}
	}
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		if ek, ok := keymap[k]; ok {
			in.Release(ek)
		}
	}

	for b, eb := range mousemap {
		if inpututil.IsMouseButtonJustPressed(b) {
			in.PressMouse(eb)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			in.ReleaseMouse(eb)
		}
	}
	in.SetCursor(ebiten.CursorPosition())
	if _, dy := ebiten.Wheel(); dy != 0 {
		in.AddWheel(dy)
	}

	h.chars = ebiten.AppendInputChars(h.chars[:0])
	in.Type(h.chars...)
}
