package editor

import (
	"testing"

	"gltfviewer/engine"
)

func TestSingleFiresOnPressEdge(t *testing.T) {
	in := engine.NewInput()
	u := Single(Keyboard(engine.KeyF))
	if u.Triggered(in) {
		t.Fatal("fired with nothing pressed")
	}
	in.Press(engine.KeyF)
	if !u.Triggered(in) {
		t.Fatal("did not fire on press")
	}
	in.Clear()
	if u.Triggered(in) {
		t.Fatal("fired again while held")
	}
}

func TestChord(t *testing.T) {
	in := engine.NewInput()
	u := Chord(Keyboard(engine.KeyControlLeft), Keyboard(engine.KeyEnter))

	in.Press(engine.KeyEnter)
	if u.Triggered(in) {
		t.Fatal("fired without the modifier")
	}
	in.Release(engine.KeyEnter)
	in.Clear()

	in.Press(engine.KeyControlLeft)
	in.Clear()
	if u.Triggered(in) {
		t.Fatal("fired with only the modifier held")
	}
	in.Press(engine.KeyEnter)
	if !u.Triggered(in) {
		t.Fatal("did not fire when the chord completed")
	}
	in.Clear()
	if u.Triggered(in) {
		t.Fatal("fired again while the chord is held")
	}
	if u.String() != "ControlLeft+Enter" {
		t.Fatalf("String() = %q", u.String())
	}
}

func TestMouseButton(t *testing.T) {
	in := engine.NewInput()
	u := Single(Mouse(engine.MouseRight))
	in.PressMouse(engine.MouseRight)
	if !u.Triggered(in) {
		t.Fatal("mouse binding did not fire")
	}
}

func TestConditions(t *testing.T) {
	tests := []struct {
		c    BindingCondition
		ctx  Context
		want bool
	}{
		{ListeningForText(false), Context{}, true},
		{ListeningForText(false), Context{ListeningForText: true}, false},
		{ListeningForText(true), Context{ListeningForText: true}, true},
		{EditorActive(true), Context{}, false},
		{EditorActive(true), Context{EditorActive: true}, true},
		{EditorActive(false), Context{EditorActive: true}, false},
	}
	for _, tt := range tests {
		if got := tt.c.Holds(tt.ctx); got != tt.want {
			t.Fatalf("%v.Holds(%+v) = %v", tt.c, tt.ctx, got)
		}
	}
}

func TestBindingNeedsAllConditions(t *testing.T) {
	in := engine.NewInput()
	in.Press(engine.KeyF)
	b := Binding{
		Input:      Single(Keyboard(engine.KeyF)),
		Conditions: []BindingCondition{EditorActive(true), ListeningForText(false)},
	}
	if b.Triggered(in, Context{EditorActive: true, ListeningForText: true}) {
		t.Fatal("fired while listening for text")
	}
	if b.Triggered(in, Context{}) {
		t.Fatal("fired while the editor is inactive")
	}
	if !b.Triggered(in, Context{EditorActive: true}) {
		t.Fatal("did not fire with every condition met")
	}
}

func TestDefaultBindings(t *testing.T) {
	c := DefaultBindings()
	for _, a := range Actions() {
		if len(c.Bindings(a)) != 1 {
			t.Fatalf("%v has %d bindings", a, len(c.Bindings(a)))
		}
	}
	if got := c.Describe(PlayPauseEditor); got != "ControlLeft+Enter" {
		t.Fatalf("PlayPauseEditor = %q", got)
	}

	in := engine.NewInput()
	in.Press(engine.KeyEscape)
	if c.Triggered(PlayPauseEditor, in, Context{}) {
		t.Fatal("Escape toggles the editor by default")
	}
}

func TestUnbindInsertCopy(t *testing.T) {
	base := DefaultBindings()
	esc := Binding{Input: Single(Keyboard(engine.KeyEscape))}

	un := base.Unbind(PlayPauseEditor)
	if len(un.Bindings(PlayPauseEditor)) != 0 {
		t.Fatal("Unbind left bindings")
	}
	if len(base.Bindings(PlayPauseEditor)) != 1 {
		t.Fatal("Unbind mutated its receiver")
	}

	one := un.Insert(PlayPauseEditor, esc)
	two := one.Insert(PlayPauseEditor, esc)
	if len(un.Bindings(PlayPauseEditor)) != 0 || len(one.Bindings(PlayPauseEditor)) != 1 {
		t.Fatal("Insert mutated its receiver")
	}
	if len(two.Bindings(PlayPauseEditor)) != 2 {
		t.Fatal("Insert does not append")
	}
	if len(two.Bindings(SelectNext)) != 1 {
		t.Fatal("unrelated actions lost")
	}
}
