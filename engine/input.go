package engine

// Key is a minimal key identifier. Hosts map their native key codes onto it.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyDelete
	KeyHome
	KeyEnd
	KeySpace
	KeySlash
	KeyControlLeft
	KeyControlRight
	KeyShiftLeft
	KeyShiftRight
	KeyAltLeft
	KeyAltRight
	KeyF
	KeyP
	KeyR
	KeyW
	KeyF1
	KeyF2
	KeyF3
	KeyF12

	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:      "Unknown",
	KeyUp:           "Up",
	KeyDown:         "Down",
	KeyLeft:         "Left",
	KeyRight:        "Right",
	KeyEnter:        "Enter",
	KeyEscape:       "Escape",
	KeyBackspace:    "Backspace",
	KeyTab:          "Tab",
	KeyDelete:       "Delete",
	KeyHome:         "Home",
	KeyEnd:          "End",
	KeySpace:        "Space",
	KeySlash:        "Slash",
	KeyControlLeft:  "ControlLeft",
	KeyControlRight: "ControlRight",
	KeyShiftLeft:    "ShiftLeft",
	KeyShiftRight:   "ShiftRight",
	KeyAltLeft:      "AltLeft",
	KeyAltRight:     "AltRight",
	KeyF:            "F",
	KeyP:            "P",
	KeyR:            "R",
	KeyW:            "W",
	KeyF1:           "F1",
	KeyF2:           "F2",
	KeyF3:           "F3",
	KeyF12:          "F12",
}

func (k Key) String() string {
	if k >= keyCount {
		return "Unknown"
	}
	return keyNames[k]
}

// Keys returns every known key except KeyUnknown.
func Keys() []Key {
	out := make([]Key, 0, keyCount-1)
	for k := KeyUnknown + 1; k < keyCount; k++ {
		out = append(out, k)
	}
	return out
}

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle

	mouseButtonCount
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "MouseLeft"
	case MouseRight:
		return "MouseRight"
	case MouseMiddle:
		return "MouseMiddle"
	}
	return "MouseUnknown"
}

type buttonState struct {
	pressed      bool
	justPressed  bool
	justReleased bool
}

func (s *buttonState) press() {
	if !s.pressed {
		s.justPressed = true
	}
	s.pressed = true
}

func (s *buttonState) release() {
	if s.pressed {
		s.justReleased = true
	}
	s.pressed = false
}

// Input is the per-frame input state.
//
// The host records presses and releases before the frame systems run and
// calls Clear once they are done, so JustPressed is true for exactly one
// frame per physical press no matter how long the key is held.
type Input struct {
	keys  [keyCount]buttonState
	mouse [mouseButtonCount]buttonState

	cursorX, cursorY int
	prevX, prevY     int
	wheel            float64

	chars []rune

	// TextFocus is set while a text field owns the keyboard.
	TextFocus bool
}

// NewInput returns an empty input state.
func NewInput() *Input {
	return &Input{}
}

func (in *Input) Press(k Key) {
	if k >= keyCount {
		return
	}
	in.keys[k].press()
}

func (in *Input) Release(k Key) {
	if k >= keyCount {
		return
	}
	in.keys[k].release()
}

func (in *Input) Pressed(k Key) bool {
	return k < keyCount && in.keys[k].pressed
}

func (in *Input) JustPressed(k Key) bool {
	return k < keyCount && in.keys[k].justPressed
}

func (in *Input) JustReleased(k Key) bool {
	return k < keyCount && in.keys[k].justReleased
}

func (in *Input) PressMouse(b MouseButton) {
	if b >= mouseButtonCount {
		return
	}
	in.mouse[b].press()
}

func (in *Input) ReleaseMouse(b MouseButton) {
	if b >= mouseButtonCount {
		return
	}
	in.mouse[b].release()
}

func (in *Input) MousePressed(b MouseButton) bool {
	return b < mouseButtonCount && in.mouse[b].pressed
}

func (in *Input) MouseJustPressed(b MouseButton) bool {
	return b < mouseButtonCount && in.mouse[b].justPressed
}

// SetCursor records the cursor position in logical pixels.
func (in *Input) SetCursor(x, y int) {
	in.cursorX, in.cursorY = x, y
}

func (in *Input) Cursor() (x, y int) { return in.cursorX, in.cursorY }

// CursorDelta is the cursor motion since the previous frame.
func (in *Input) CursorDelta() (dx, dy int) {
	return in.cursorX - in.prevX, in.cursorY - in.prevY
}

func (in *Input) AddWheel(dy float64) { in.wheel += dy }

func (in *Input) Wheel() float64 { return in.wheel }

// Type appends typed characters for this frame.
func (in *Input) Type(rs ...rune) {
	in.chars = append(in.chars, rs...)
}

// Chars returns the characters typed this frame.
func (in *Input) Chars() []rune { return in.chars }

// Clear drops per-frame edges, typed characters and wheel motion.
func (in *Input) Clear() {
	for i := range in.keys {
		in.keys[i].justPressed = false
		in.keys[i].justReleased = false
	}
	for i := range in.mouse {
		in.mouse[i].justPressed = false
		in.mouse[i].justReleased = false
	}
	in.chars = in.chars[:0]
	in.wheel = 0
	in.prevX, in.prevY = in.cursorX, in.cursorY
}
