package app

import (
	"github.com/chewxy/math32"

	"gltfviewer/engine"
)

// AngularRate is the container's rotation speed in radians per second.
const AngularRate = math32.Pi / 6

// ToggleKey flips rotation on and off.
const ToggleKey = engine.KeySpace

// toggleRotation flips RotationEnabled when the toggle key was pressed this
// frame. It does nothing unless exactly one container exists, and ignores the
// key while a text field has focus.
func toggleRotation(w *engine.World) {
	if w.Input.TextFocus || !w.Input.JustPressed(ToggleKey) {
		return
	}
	_, c, ok := engine.Single[SceneContainer](w)
	if !ok {
		return
	}
	c.RotationEnabled = !c.RotationEnabled
	w.Log.Debugw("rotation toggled", "enabled", c.RotationEnabled)
}

// rotateScene turns the single container about +Y by AngularRate times the
// frame delta.
func rotateScene(w *engine.World) {
	e, c, ok := engine.Single[SceneContainer](w)
	if !ok || !c.RotationEnabled {
		return
	}
	t := w.Transform(e)
	if t == nil {
		return
	}
	t.RotateY(AngularRate * w.Time.DeltaSeconds())
}
