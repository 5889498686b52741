package editor

import (
	"strings"

	"gltfviewer/engine"
)

// Action is something the editor can be asked to do.
type Action uint8

const (
	PlayPauseEditor Action = iota
	PauseUnpauseTime
	FocusSelected
	SelectNext
	SelectPrev
	StartFilter

	actionCount
)

var actionNames = [actionCount]string{
	PlayPauseEditor:  "PlayPauseEditor",
	PauseUnpauseTime: "PauseUnpauseTime",
	FocusSelected:    "FocusSelected",
	SelectNext:       "SelectNext",
	SelectPrev:       "SelectPrev",
	StartFilter:      "StartFilter",
}

func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// Actions lists every action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// Button is a keyboard key or a mouse button.
type Button struct {
	key     engine.Key
	mouse   engine.MouseButton
	isMouse bool
}

func Keyboard(k engine.Key) Button { return Button{key: k} }

func Mouse(b engine.MouseButton) Button { return Button{mouse: b, isMouse: true} }

func (b Button) pressed(in *engine.Input) bool {
	if b.isMouse {
		return in.MousePressed(b.mouse)
	}
	return in.Pressed(b.key)
}

func (b Button) justPressed(in *engine.Input) bool {
	if b.isMouse {
		return in.MouseJustPressed(b.mouse)
	}
	return in.JustPressed(b.key)
}

func (b Button) String() string {
	if b.isMouse {
		return b.mouse.String()
	}
	return b.key.String()
}

// UserInput is a single button or a chord of buttons.
type UserInput struct {
	buttons []Button
}

// Single fires on the button's press edge.
func Single(b Button) UserInput { return UserInput{buttons: []Button{b}} }

// Chord fires when every button is held and at least one of them was pressed
// this frame.
func Chord(bs ...Button) UserInput {
	return UserInput{buttons: append([]Button(nil), bs...)}
}

// Buttons returns the buttons making up the input.
func (u UserInput) Buttons() []Button { return u.buttons }

// Triggered reports whether the input fires this frame.
func (u UserInput) Triggered(in *engine.Input) bool {
	if len(u.buttons) == 0 {
		return false
	}
	edge := false
	for _, b := range u.buttons {
		if !b.pressed(in) && !b.justPressed(in) {
			return false
		}
		if b.justPressed(in) {
			edge = true
		}
	}
	return edge
}

func (u UserInput) String() string {
	parts := make([]string, len(u.buttons))
	for i, b := range u.buttons {
		parts[i] = b.String()
	}
	return strings.Join(parts, "+")
}

// Context is the editor state bindings are checked against.
type Context struct {
	EditorActive     bool
	ListeningForText bool
}

type conditionKind uint8

const (
	condListeningForText conditionKind = iota
	condEditorActive
)

// BindingCondition restricts when a binding may fire.
type BindingCondition struct {
	kind conditionKind
	want bool
}

// ListeningForText holds when a text field's focus state equals b.
func ListeningForText(b bool) BindingCondition {
	return BindingCondition{kind: condListeningForText, want: b}
}

// EditorActive holds when the editor's active state equals b.
func EditorActive(b bool) BindingCondition {
	return BindingCondition{kind: condEditorActive, want: b}
}

func (c BindingCondition) Holds(ctx Context) bool {
	switch c.kind {
	case condListeningForText:
		return ctx.ListeningForText == c.want
	case condEditorActive:
		return ctx.EditorActive == c.want
	}
	return false
}

func (c BindingCondition) String() string {
	name := "ListeningForText"
	if c.kind == condEditorActive {
		name = "EditorActive"
	}
	if c.want {
		return name
	}
	return "!" + name
}

// Binding is an input plus the conditions that must all hold for it to fire.
type Binding struct {
	Input      UserInput
	Conditions []BindingCondition
}

func (b Binding) Triggered(in *engine.Input, ctx Context) bool {
	for _, c := range b.Conditions {
		if !c.Holds(ctx) {
			return false
		}
	}
	return b.Input.Triggered(in)
}

// Controls maps actions to bindings. It is a value: Unbind and Insert return
// modified copies and leave the receiver untouched.
type Controls struct {
	bindings map[Action][]Binding
}

// DefaultBindings is the editor's stock control table.
func DefaultBindings() Controls {
	idle := []BindingCondition{ListeningForText(false)}
	active := []BindingCondition{EditorActive(true), ListeningForText(false)}
	ctrl := Keyboard(engine.KeyControlLeft)
	return Controls{bindings: map[Action][]Binding{
		PlayPauseEditor:  {{Input: Chord(ctrl, Keyboard(engine.KeyEnter)), Conditions: idle}},
		PauseUnpauseTime: {{Input: Chord(ctrl, Keyboard(engine.KeyP)), Conditions: active}},
		FocusSelected:    {{Input: Single(Keyboard(engine.KeyF)), Conditions: active}},
		SelectNext:       {{Input: Single(Keyboard(engine.KeyDown)), Conditions: active}},
		SelectPrev:       {{Input: Single(Keyboard(engine.KeyUp)), Conditions: active}},
		StartFilter:      {{Input: Single(Keyboard(engine.KeySlash)), Conditions: active}},
	}}
}

func (c Controls) clone() Controls {
	out := Controls{bindings: make(map[Action][]Binding, len(c.bindings))}
	for a, bs := range c.bindings {
		out.bindings[a] = append([]Binding(nil), bs...)
	}
	return out
}

// Unbind returns a copy without any binding for a.
func (c Controls) Unbind(a Action) Controls {
	out := c.clone()
	delete(out.bindings, a)
	return out
}

// Insert returns a copy with b appended to a's bindings.
func (c Controls) Insert(a Action, b Binding) Controls {
	out := c.clone()
	b.Conditions = append([]BindingCondition(nil), b.Conditions...)
	out.bindings[a] = append(out.bindings[a], b)
	return out
}

// Bindings returns the bindings for a.
func (c Controls) Bindings(a Action) []Binding {
	return c.bindings[a]
}

// Triggered reports whether any binding for a fires.
func (c Controls) Triggered(a Action, in *engine.Input, ctx Context) bool {
	for _, b := range c.bindings[a] {
		if b.Triggered(in, ctx) {
			return true
		}
	}
	return false
}

// Describe renders a's bindings for help text, e.g. "ControlLeft+Enter".
func (c Controls) Describe(a Action) string {
	bs := c.bindings[a]
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = b.Input.String()
	}
	return strings.Join(parts, " | ")
}
