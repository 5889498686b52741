package engine

import (
	"github.com/mlange-42/arche/ecs"
	"github.com/mlange-42/arche/generic"

	"gltfviewer/engine/asset"
)

// AssetEvents applies finished asset loads.
func AssetEvents(w *World) {
	if w.Assets != nil {
		w.Assets.Update()
	}
}

// SpawnScenes instantiates loaded scenes beneath their SceneRoot entities.
// A root whose handle version changed has its previous instance replaced.
func SpawnScenes(w *World) {
	if w.Assets == nil {
		return
	}
	type pending struct {
		e     ecs.Entity
		graph *asset.SceneGraph
		ver   uint64
	}
	var todo []pending
	q := generic.NewFilter1[SceneRoot]().Query(&w.ECS)
	for q.Next() {
		r := q.Get()
		if r.Handle.State() != asset.Loaded || r.Handle.Version() == r.spawned {
			continue
		}
		if g, ok := w.Assets.Get(r.Handle); ok {
			todo = append(todo, pending{e: q.Entity(), graph: g, ver: r.Handle.Version()})
		}
	}

	for _, p := range todo {
		r := w.roots.Get(p.e)
		old := r.instance
		r.instance = nil
		for _, x := range old {
			w.DespawnRecursive(x)
		}
		inst := spawnGraph(w, p.e, p.graph)
		// Spawning moves components between archetypes; fetch the root again.
		r = w.roots.Get(p.e)
		r.instance = inst
		r.spawned = p.ver
		w.Log.Debugw("scene spawned", "entity", w.Name(p.e), "version", p.ver, "nodes", len(inst))
	}
}

func spawnGraph(w *World, root ecs.Entity, g *asset.SceneGraph) []ecs.Entity {
	spawned := make(map[int]ecs.Entity)
	var top []ecs.Entity
	var visit func(idx int, parent ecs.Entity)
	visit = func(idx int, parent ecs.Entity) {
		if idx < 0 || idx >= len(g.Doc.Nodes) {
			return
		}
		if _, dup := spawned[idx]; dup {
			return
		}
		n := &g.Doc.Nodes[idx]
		comps := []ecs.Component{
			C(w, Name{Value: n.Name}),
			C(w, Transform{Translation: n.Translation, Rotation: n.Rotation, Scale: n.Scale}),
		}
		if len(n.Meshes) > 0 {
			comps = append(comps, C(w, Mesh3D{Meshes: n.Meshes}))
		}
		e := w.Spawn(comps...)
		spawned[idx] = e
		w.AddChild(parent, e)
		if parent == root {
			top = append(top, e)
		}
		for _, c := range n.Children {
			visit(c, e)
		}
	}
	for _, r := range g.Scene.Roots {
		visit(r, root)
	}
	return top
}
