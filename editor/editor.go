// Package editor is a small in-viewer inspection tool: an orbit camera,
// an entity list with selection and filtering, and a diagnostics readout.
package editor

import (
	"strings"
	"unicode"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/arche/ecs"
	"go.uber.org/zap"

	"gltfviewer/engine"
	"gltfviewer/engine/render"
)

const (
	orbitSpeed = 0.01
	zoomSpeed  = 0.25
)

// Editor holds the tool's state between frames.
type Editor struct {
	controls Controls
	log      *zap.SugaredLogger

	active    bool
	orbit     render.OrbitController
	orbitInit bool

	selected  ecs.Entity
	filter    []rune
	filtering bool
}

// New returns an inactive editor using controls.
func New(controls Controls, log *zap.SugaredLogger) *Editor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Editor{controls: controls, log: log}
}

func (ed *Editor) Controls() Controls { return ed.controls }

func (ed *Editor) Active() bool { return ed.active }

// Filtering reports whether the filter field holds keyboard focus.
func (ed *Editor) Filtering() bool { return ed.filtering }

func (ed *Editor) Filter() string { return string(ed.filter) }

func (ed *Editor) Selected() ecs.Entity { return ed.selected }

// System is the per-frame editor step.
//
// Bindings are checked against the focus state the frame started with, so the
// key that closes the filter field cannot also fire a binding that requires
// no text focus.
func (ed *Editor) System(w *engine.World) {
	in := w.Input
	ctx := Context{
		EditorActive:     ed.active,
		ListeningForText: ed.filtering || in.TextFocus,
	}

	if ed.filtering {
		ed.editFilter(w)
	}

	if ed.controls.Triggered(PlayPauseEditor, in, ctx) {
		ed.setActive(w, !ed.active)
	}
	if ed.controls.Triggered(PauseUnpauseTime, in, ctx) {
		w.Time.SetPaused(!w.Time.Paused())
		ed.log.Infow("time", "paused", w.Time.Paused())
	}
	if ed.controls.Triggered(SelectNext, in, ctx) {
		ed.step(w, 1)
	}
	if ed.controls.Triggered(SelectPrev, in, ctx) {
		ed.step(w, -1)
	}
	if ed.controls.Triggered(FocusSelected, in, ctx) {
		ed.focus(w)
	}
	if ed.controls.Triggered(StartFilter, in, ctx) {
		ed.filtering = true
		ed.filter = ed.filter[:0]
	}

	if ed.active {
		ed.moveCamera(in)
	}
	in.TextFocus = ed.filtering
}

func (ed *Editor) setActive(w *engine.World, on bool) {
	ed.active = on
	if on && !ed.orbitInit {
		cam := render.NewScene().Camera
		if _, _, g, ok := engine.Single2[engine.Camera3D, engine.GlobalTransform](w); ok {
			cam.Position = g.Translation()
		}
		ed.orbit = render.OrbitFrom(cam.Position, mgl32.Vec3{})
		ed.orbitInit = true
	}
	if !on {
		ed.filtering = false
	}
	ed.log.Infow("editor", "active", on)
}

func (ed *Editor) editFilter(w *engine.World) {
	in := w.Input
	for _, r := range in.Chars() {
		if unicode.IsPrint(r) {
			ed.filter = append(ed.filter, r)
		}
	}
	if in.JustPressed(engine.KeyBackspace) && len(ed.filter) > 0 {
		ed.filter = ed.filter[:len(ed.filter)-1]
	}
	if in.JustPressed(engine.KeyEnter) || in.JustPressed(engine.KeyEscape) {
		ed.filtering = false
	}
	if !ed.matches(w, ed.selected) {
		ed.selected = ecs.Entity{}
		if vis := ed.Visible(w); len(vis) > 0 {
			ed.selected = vis[0]
		}
	}
}

// Visible returns the named entities that match the filter, in spawn order.
func (ed *Editor) Visible(w *engine.World) []ecs.Entity {
	var out []ecs.Entity
	for _, e := range w.Entities() {
		if ed.matches(w, e) {
			out = append(out, e)
		}
	}
	return out
}

func (ed *Editor) matches(w *engine.World, e ecs.Entity) bool {
	if !w.Alive(e) {
		return false
	}
	name := w.Name(e)
	if name == "" {
		return false
	}
	if len(ed.filter) == 0 {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(string(ed.filter)))
}

func (ed *Editor) step(w *engine.World, dir int) {
	vis := ed.Visible(w)
	if len(vis) == 0 {
		ed.selected = ecs.Entity{}
		return
	}
	cur := -1
	for i, e := range vis {
		if e == ed.selected {
			cur = i
			break
		}
	}
	switch {
	case cur < 0 && dir > 0:
		cur = 0
	case cur < 0:
		cur = len(vis) - 1
	default:
		cur = (cur + dir + len(vis)) % len(vis)
	}
	ed.selected = vis[cur]
}

func (ed *Editor) focus(w *engine.World) {
	if !w.Alive(ed.selected) {
		return
	}
	if g := w.GlobalTransform(ed.selected); g != nil {
		ed.orbit.Target = g.Translation()
	}
}

func (ed *Editor) moveCamera(in *engine.Input) {
	if in.MousePressed(engine.MouseLeft) {
		dx, dy := in.CursorDelta()
		ed.orbit.Rotate(-float32(dx)*orbitSpeed, float32(dy)*orbitSpeed)
	}
	if wh := in.Wheel(); wh != 0 {
		ed.orbit.Zoom(-float32(wh) * zoomSpeed)
	}
}

// Camera overrides cam with the editor's orbit camera while active.
func (ed *Editor) Camera(cam *render.Camera) {
	if ed.active {
		ed.orbit.Apply(cam)
	}
}
