package engine

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/arche/ecs"
	"github.com/mlange-42/arche/generic"
	"go.uber.org/zap"

	"gltfviewer/engine/asset"
)

// World is the entity store plus the resources systems share.
//
// Entity creation and removal must go through World so that hierarchy and
// listing order stay consistent. Structural changes are not allowed while a
// query obtained from ECS is open.
type World struct {
	ECS ecs.World

	Time        *Time
	Input       *Input
	Assets      *asset.Server
	Diagnostics *Diagnostics
	Screenshots *Screenshots
	Log         *zap.SugaredLogger

	names      generic.Map[Name]
	parents    generic.Map[Parent]
	children   generic.Map[Children]
	transforms generic.Map[Transform]
	globals    generic.Map[GlobalTransform]
	roots      generic.Map[SceneRoot]

	order []ecs.Entity
}

// NewWorld returns an empty world. A nil logger discards output.
func NewWorld(assets *asset.Server, log *zap.SugaredLogger) *World {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	w := &World{
		ECS:         ecs.NewWorld(),
		Time:        NewTime(nil),
		Input:       NewInput(),
		Assets:      assets,
		Diagnostics: NewDiagnostics(),
		Log:         log,
	}
	w.Screenshots = NewScreenshots(log)
	w.names = generic.NewMap[Name](&w.ECS)
	w.parents = generic.NewMap[Parent](&w.ECS)
	w.children = generic.NewMap[Children](&w.ECS)
	w.transforms = generic.NewMap[Transform](&w.ECS)
	w.globals = generic.NewMap[GlobalTransform](&w.ECS)
	w.roots = generic.NewMap[SceneRoot](&w.ECS)
	return w
}

// C packs a component value for Spawn and Insert.
func C[T any](w *World, v T) ecs.Component {
	return ecs.Component{ID: ecs.ComponentID[T](&w.ECS), Comp: &v}
}

// Spawn creates an entity with the given components. Entities with a
// Transform also receive a GlobalTransform.
func (w *World) Spawn(comps ...ecs.Component) ecs.Entity {
	tid := ecs.ComponentID[Transform](&w.ECS)
	gid := ecs.ComponentID[GlobalTransform](&w.ECS)
	var hasT, hasG bool
	for _, c := range comps {
		switch c.ID {
		case tid:
			hasT = true
		case gid:
			hasG = true
		}
	}
	if hasT && !hasG {
		comps = append(comps, C(w, GlobalTransform{Matrix: mgl32.Ident4()}))
	}
	e := w.ECS.NewEntityWith(comps...)
	w.order = append(w.order, e)
	return e
}

// Insert adds components to an existing entity. Components it already has are overwritten.
func (w *World) Insert(e ecs.Entity, comps ...ecs.Component) {
	var add []ecs.Component
	for _, c := range comps {
		if w.ECS.Has(e, c.ID) {
			w.ECS.Set(e, c.ID, c.Comp)
			continue
		}
		add = append(add, c)
	}
	if len(add) > 0 {
		w.ECS.Assign(e, add...)
	}
}

// Alive reports whether e exists.
func (w *World) Alive(e ecs.Entity) bool {
	return !e.IsZero() && w.ECS.Alive(e)
}

// AddChild attaches child to parent, detaching it from any previous parent.
func (w *World) AddChild(parent, child ecs.Entity) {
	if p := w.parents.Get(child); p != nil {
		if p.Entity == parent {
			return
		}
		w.detach(p.Entity, child)
		p.Entity = parent
	} else {
		w.ECS.Assign(child, C(w, Parent{Entity: parent}))
	}
	if ch := w.children.Get(parent); ch != nil {
		ch.Entities = append(ch.Entities, child)
		return
	}
	w.ECS.Assign(parent, C(w, Children{Entities: []ecs.Entity{child}}))
}

func (w *World) detach(parent, child ecs.Entity) {
	if !w.Alive(parent) {
		return
	}
	ch := w.children.Get(parent)
	if ch == nil {
		return
	}
	for i, c := range ch.Entities {
		if c == child {
			ch.Entities = append(ch.Entities[:i], ch.Entities[i+1:]...)
			return
		}
	}
}

// ChildrenOf returns the children of e in attach order.
func (w *World) ChildrenOf(e ecs.Entity) []ecs.Entity {
	if ch := w.children.Get(e); ch != nil {
		return ch.Entities
	}
	return nil
}

// ParentOf returns the parent of e, if any.
func (w *World) ParentOf(e ecs.Entity) (ecs.Entity, bool) {
	if p := w.parents.Get(e); p != nil {
		return p.Entity, true
	}
	return ecs.Entity{}, false
}

// DespawnRecursive removes e and all of its descendants.
func (w *World) DespawnRecursive(e ecs.Entity) {
	if !w.Alive(e) {
		return
	}
	if p, ok := w.ParentOf(e); ok {
		w.detach(p, e)
	}
	var doomed []ecs.Entity
	var collect func(ecs.Entity)
	collect = func(x ecs.Entity) {
		doomed = append(doomed, x)
		for _, c := range w.ChildrenOf(x) {
			if w.Alive(c) {
				collect(c)
			}
		}
	}
	collect(e)

	gone := make(map[ecs.Entity]bool, len(doomed))
	for _, x := range doomed {
		w.ECS.RemoveEntity(x)
		gone[x] = true
	}
	kept := w.order[:0]
	for _, x := range w.order {
		if !gone[x] {
			kept = append(kept, x)
		}
	}
	w.order = kept
}

// Entities returns live entities in spawn order. The slice must not be modified.
func (w *World) Entities() []ecs.Entity { return w.order }

// EntityCount is the number of live entities.
func (w *World) EntityCount() int { return len(w.order) }

// Name returns the entity's name or "" when it has none.
func (w *World) Name(e ecs.Entity) string {
	if n := w.names.Get(e); n != nil {
		return n.Value
	}
	return ""
}

// Transform returns the entity's local transform, or nil.
func (w *World) Transform(e ecs.Entity) *Transform { return w.transforms.Get(e) }

// GlobalTransform returns the entity's world transform, or nil.
func (w *World) GlobalTransform(e ecs.Entity) *GlobalTransform { return w.globals.Get(e) }

// SceneRoot returns the entity's scene root component, or nil.
func (w *World) SceneRoot(e ecs.Entity) *SceneRoot { return w.roots.Get(e) }

// Single returns the only entity with component A. ok is false when there are
// none or more than one.
func Single[A any](w *World) (e ecs.Entity, a *A, ok bool) {
	q := generic.NewFilter1[A]().Query(&w.ECS)
	if q.Count() != 1 {
		q.Close()
		return ecs.Entity{}, nil, false
	}
	q.Next()
	e, a = q.Entity(), q.Get()
	q.Close()
	return e, a, true
}

// Single2 is Single for entities carrying both A and B.
func Single2[A, B any](w *World) (e ecs.Entity, a *A, b *B, ok bool) {
	q := generic.NewFilter2[A, B]().Query(&w.ECS)
	if q.Count() != 1 {
		q.Close()
		return ecs.Entity{}, nil, nil, false
	}
	q.Next()
	e = q.Entity()
	a, b = q.Get()
	q.Close()
	return e, a, b, true
}
