package asset

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"gltfviewer/engine/render"
)

// Document is an imported scene file.
type Document struct {
	Path         string
	Nodes        []Node
	Scenes       []Scene
	DefaultScene int
}

// Scene lists the root nodes of one scene of a document.
type Scene struct {
	Name  string
	Roots []int
}

// Node is one node of the document's hierarchy with its local transform.
type Node struct {
	Name        string
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
	Children    []int
	Meshes      []*render.Mesh
}

// SceneGraph is a resolved scene: a document plus the chosen scene.
type SceneGraph struct {
	Doc   *Document
	Scene Scene
}

// Resolve picks the scene for a source from the document.
func (d *Document) Resolve(src Source) (*SceneGraph, error) {
	i := src.SceneIndex()
	if i < 0 {
		i = d.DefaultScene
	}
	if i < 0 || i >= len(d.Scenes) {
		return nil, fmt.Errorf("%w: %s has %d scene(s)", ErrNoScene, src, len(d.Scenes))
	}
	return &SceneGraph{Doc: d, Scene: d.Scenes[i]}, nil
}

// Walk visits every node reachable from the scene roots, depth first.
// depth is 0 for roots. Cycles are not followed.
func (g *SceneGraph) Walk(fn func(idx, depth int, n *Node)) {
	if g == nil || g.Doc == nil {
		return
	}
	seen := make(map[int]bool, len(g.Doc.Nodes))
	var visit func(idx, depth int)
	visit = func(idx, depth int) {
		if idx < 0 || idx >= len(g.Doc.Nodes) || seen[idx] {
			return
		}
		seen[idx] = true
		n := &g.Doc.Nodes[idx]
		fn(idx, depth, n)
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	for _, r := range g.Scene.Roots {
		visit(r, 0)
	}
}

// Triangles counts the triangles of every mesh reachable from the scene.
func (g *SceneGraph) Triangles() int {
	total := 0
	g.Walk(func(_, _ int, n *Node) {
		for _, m := range n.Meshes {
			total += m.Triangles()
		}
	})
	return total
}
