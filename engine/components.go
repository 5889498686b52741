package engine

import (
	"github.com/mlange-42/arche/ecs"

	"gltfviewer/engine/asset"
	"gltfviewer/engine/render"
)

// Name labels an entity for tools and logs.
type Name struct {
	Value string
}

// Parent points at the entity this one is attached to.
type Parent struct {
	Entity ecs.Entity
}

// Children lists the entities attached to this one, in attach order.
type Children struct {
	Entities []ecs.Entity
}

// Camera3D marks the entity whose GlobalTransform is used as the view.
type Camera3D struct {
	FOVYRad float32
	Near    float32
	Far     float32
}

// PointLight is a light emitting from the entity's global position.
type PointLight struct {
	Color     render.Color
	Intensity float32
	Range     float32
}

// Mesh3D attaches meshes drawn with the entity's global transform.
type Mesh3D struct {
	Meshes []*render.Mesh
}

// SceneRoot instantiates a loaded scene beneath its entity. The spawner
// replaces the instance whenever the handle's version changes.
type SceneRoot struct {
	Handle asset.Handle

	spawned  uint64
	instance []ecs.Entity
}

// Spawned is the handle version currently instantiated, 0 for none.
func (r *SceneRoot) Spawned() uint64 { return r.spawned }

// Instance returns the top-level entities of the current instance.
func (r *SceneRoot) Instance() []ecs.Entity { return r.instance }
