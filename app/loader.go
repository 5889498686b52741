package app

import (
	"gltfviewer/engine"
	"gltfviewer/engine/asset"
)

// DefaultSceneSource is loaded when the viewer is launched without arguments.
const DefaultSceneSource = "models/FlightHelmet/FlightHelmet.gltf#Scene0"

// SceneContainer marks the entity the loaded scene is parented to.
type SceneContainer struct {
	RotationEnabled bool
}

// ResolveSceneSource returns the first launch argument verbatim, or the
// default source when there is none.
func ResolveSceneSource(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return DefaultSceneSource
}

// setupScene requests the scene and spawns the container holding it.
// The request does not block; a bad source is reported by the asset server.
func setupScene(args []string) engine.System {
	return func(w *engine.World) {
		source := ResolveSceneSource(args)
		w.Log.Infow("loading scene", "source", source)

		var h asset.Handle
		if w.Assets != nil {
			h = w.Assets.Load(source)
		}

		container := w.Spawn(
			engine.C(w, engine.Name{Value: "SceneContainer"}),
			engine.C(w, engine.IdentityTransform()),
			engine.C(w, SceneContainer{RotationEnabled: true}),
		)
		gltf := w.Spawn(
			engine.C(w, engine.Name{Value: "Gltf"}),
			engine.C(w, engine.IdentityTransform()),
			engine.C(w, engine.SceneRoot{Handle: h}),
		)
		w.AddChild(container, gltf)

		w.Log.Infof("press %s to toggle rotation", ToggleKey)
	}
}
