package engine

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/arche/ecs"
	"github.com/mlange-42/arche/generic"
)

// PropagateTransforms recomputes GlobalTransform for every entity with a
// Transform, walking down from entities without a Parent.
func PropagateTransforms(w *World) {
	var roots []ecs.Entity
	q := generic.NewFilter1[Transform]().Without(generic.T[Parent]()).Query(&w.ECS)
	for q.Next() {
		roots = append(roots, q.Entity())
	}

	for _, e := range roots {
		propagate(w, e, mgl32.Ident4(), 0)
	}
}

const maxDepth = 256

func propagate(w *World, e ecs.Entity, parent mgl32.Mat4, depth int) {
	if depth > maxDepth || !w.Alive(e) {
		return
	}
	m := parent
	if t := w.transforms.Get(e); t != nil {
		m = parent.Mul4(t.Mat4())
		if g := w.globals.Get(e); g != nil {
			g.Matrix = m
		} else {
			w.ECS.Assign(e, C(w, GlobalTransform{Matrix: m}))
		}
	}
	for _, c := range w.ChildrenOf(e) {
		propagate(w, c, m, depth+1)
	}
}
