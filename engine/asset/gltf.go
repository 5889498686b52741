package asset

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"gltfviewer/engine/render"
)

// Importer turns a file on disk into a Document.
type Importer interface {
	Import(ctx context.Context, path string) (*Document, error)
}

// ImporterFunc adapts a function to Importer.
type ImporterFunc func(ctx context.Context, path string) (*Document, error)

func (f ImporterFunc) Import(ctx context.Context, path string) (*Document, error) {
	return f(ctx, path)
}

// GLTF imports .gltf and .glb files.
var GLTF Importer = ImporterFunc(ImportGLTF)

// ImportGLTF reads a glTF 2.0 file and converts its triangle primitives.
// Non-triangle primitives and primitives without positions are skipped.
func ImportGLTF(ctx context.Context, path string) (*Document, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("asset: open %s: %w", path, err)
	}

	materials := make([]render.Material, len(doc.Materials))
	for i, m := range doc.Materials {
		materials[i] = convertMaterial(m)
	}

	meshes := make([][]*render.Mesh, len(doc.Meshes))
	for i, m := range doc.Meshes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if m == nil {
			continue
		}
		for j, p := range m.Primitives {
			rm, err := readPrimitive(doc, p, materials)
			if err != nil {
				return nil, fmt.Errorf("asset: %s mesh %d primitive %d: %w", path, i, j, err)
			}
			if rm == nil {
				continue
			}
			rm.Name = fmt.Sprintf("%s/%d", m.Name, j)
			meshes[i] = append(meshes[i], rm)
		}
	}

	out := &Document{Path: path, Nodes: make([]Node, len(doc.Nodes))}
	for i, n := range doc.Nodes {
		if n == nil {
			out.Nodes[i] = Node{Rotation: mgl32.QuatIdent(), Scale: mgl32.Vec3{1, 1, 1}}
			continue
		}
		node := Node{Name: n.Name, Children: indices(n.Children)}
		node.Translation, node.Rotation, node.Scale = nodeTRS(n)
		if n.Mesh != nil && int(*n.Mesh) < len(meshes) {
			node.Meshes = meshes[int(*n.Mesh)]
		}
		out.Nodes[i] = node
	}

	for _, s := range doc.Scenes {
		if s == nil {
			continue
		}
		out.Scenes = append(out.Scenes, Scene{Name: s.Name, Roots: indices(s.Nodes)})
	}
	if doc.Scene != nil {
		out.DefaultScene = int(*doc.Scene)
	}
	if len(out.Scenes) == 0 && len(out.Nodes) > 0 {
		out.Scenes = []Scene{{Name: "implicit", Roots: parentless(out.Nodes)}}
	}
	return out, nil
}

func readPrimitive(doc *gltf.Document, p *gltf.Primitive, materials []render.Material) (*render.Mesh, error) {
	if p == nil || p.Mode != gltf.PrimitiveTriangles {
		return nil, nil
	}
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	acr, err := accessor(doc, int(posIdx))
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if ni, ok := p.Attributes[gltf.NORMAL]; ok {
		acr, err := accessor(doc, int(ni))
		if err != nil {
			return nil, err
		}
		normals, err = modeler.ReadNormal(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
	}

	var indices []uint32
	if p.Indices != nil {
		acr, err := accessor(doc, int(*p.Indices))
		if err != nil {
			return nil, err
		}
		indices, err = modeler.ReadIndices(doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	m := &render.Mesh{
		Vertices: make([]render.Vertex, len(positions)),
		Indices:  indices,
		Material: render.DefaultMaterial,
	}
	for i, pos := range positions {
		m.Vertices[i].Pos = mgl32.Vec3(pos)
		if i < len(normals) {
			m.Vertices[i].Normal = mgl32.Vec3(normals[i])
		}
	}
	if p.Material != nil && int(*p.Material) < len(materials) {
		m.Material = materials[int(*p.Material)]
	}
	return m, nil
}

func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) || doc.Accessors[idx] == nil {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return doc.Accessors[idx], nil
}

func convertMaterial(m *gltf.Material) render.Material {
	mat := render.DefaultMaterial
	if m == nil || m.PBRMetallicRoughness == nil {
		return mat
	}
	pbr := m.PBRMetallicRoughness
	c := pbr.BaseColorFactorOrDefault()
	mat.BaseColor = render.RGBF(float32(c[0]), float32(c[1]), float32(c[2])).WithAlpha(alpha8(c[3]))
	mat.Roughness = float32(pbr.RoughnessFactorOrDefault())
	return mat
}

func nodeTRS(n *gltf.Node) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	if m := n.MatrixOrDefault(); m != identityMatrix {
		var mm mgl32.Mat4
		for i, v := range m {
			mm[i] = float32(v)
		}
		return render.Decompose(mm)
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	rot := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])},
		rot.Normalize(),
		mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func alpha8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xFF
	}
	return uint8(v*255 + 0.5)
}

// indices widens glTF's uint32 index lists.
func indices(in []uint32) []int {
	if len(in) == 0 {
		return nil
	}
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}

func parentless(nodes []Node) []int {
	child := make([]bool, len(nodes))
	for _, n := range nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(child) {
				child[c] = true
			}
		}
	}
	var roots []int
	for i, isChild := range child {
		if !isChild {
			roots = append(roots, i)
		}
	}
	return roots
}
