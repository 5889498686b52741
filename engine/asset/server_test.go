package asset

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"gltfviewer/engine/render"
)

// gatedImporter blocks every import until release is closed.
type gatedImporter struct {
	release chan struct{}
	calls   atomic.Int32

	mu    sync.Mutex
	paths []string
	doc   func(path string) (*Document, error)
}

func newGated(doc func(path string) (*Document, error)) *gatedImporter {
	return &gatedImporter{release: make(chan struct{}), doc: doc}
}

func (g *gatedImporter) Import(ctx context.Context, path string) (*Document, error) {
	g.calls.Add(1)
	g.mu.Lock()
	g.paths = append(g.paths, path)
	g.mu.Unlock()
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.doc(path)
}

func oneTriangleDoc(path string) (*Document, error) {
	mesh := &render.Mesh{
		Vertices: []render.Vertex{{}, {}, {}},
		Indices:  []uint32{0, 1, 2},
	}
	return &Document{
		Path:   path,
		Nodes:  []Node{{Name: "tri", Meshes: []*render.Mesh{mesh}}},
		Scenes: []Scene{{Name: "main", Roots: []int{0}}},
	}, nil
}

func TestServerLoadIsAsync(t *testing.T) {
	imp := newGated(oneTriangleDoc)
	srv := NewServer("assets", WithImporter(imp), WithLogger(zaptest.NewLogger(t).Sugar()))
	defer srv.Close()

	h := srv.Load("models/a.gltf#Scene0")
	if h.State() != Pending {
		t.Fatalf("state after Load = %v, want pending", h.State())
	}
	if srv.Update() != 0 {
		t.Fatal("Update applied a result before the import finished")
	}
	if _, ok := srv.Get(h); ok {
		t.Fatal("Get succeeded on a pending handle")
	}

	close(imp.release)
	srv.Wait()
	if h.State() != Pending {
		t.Fatal("handle changed state without Update")
	}
	if n := srv.Update(); n != 1 {
		t.Fatalf("Update() = %d, want 1", n)
	}
	if h.State() != Loaded || h.Version() != 1 {
		t.Fatalf("state=%v version=%d", h.State(), h.Version())
	}
	g, ok := srv.Get(h)
	if !ok || g.Triangles() != 1 || g.Scene.Name != "main" {
		t.Fatalf("Get = %+v, %v", g, ok)
	}

	want := filepath.Join("assets", "models", "a.gltf")
	if len(imp.paths) != 1 || imp.paths[0] != want {
		t.Fatalf("imported %v, want [%s]", imp.paths, want)
	}
}

func TestServerSameIDSameHandle(t *testing.T) {
	imp := newGated(oneTriangleDoc)
	srv := NewServer("", WithImporter(imp))
	defer srv.Close()

	a := srv.Load("x.gltf")
	b := srv.Load("x.gltf")
	if a != b {
		t.Fatal("repeated Load returned a different handle")
	}
	close(imp.release)
	srv.Wait()
	srv.Update()
	if imp.calls.Load() != 1 {
		t.Fatalf("importer called %d times", imp.calls.Load())
	}
	if a.Version() != 1 {
		t.Fatalf("version = %d", a.Version())
	}
}

func TestServerLabelsShareImport(t *testing.T) {
	imp := newGated(func(path string) (*Document, error) {
		d, _ := oneTriangleDoc(path)
		d.Scenes = append(d.Scenes, Scene{Name: "second"})
		return d, nil
	})
	srv := NewServer("", WithImporter(imp))
	defer srv.Close()

	a := srv.Load("x.gltf#Scene0")
	b := srv.Load("x.gltf#Scene1")
	c := srv.Load("x.gltf#Scene7")
	close(imp.release)
	srv.Wait()
	srv.Update()

	if a.State() != Loaded || b.State() != Loaded {
		t.Fatalf("states %v %v", a.State(), b.State())
	}
	if g, _ := srv.Get(b); g.Scene.Name != "second" {
		t.Fatalf("Scene1 resolved to %q", g.Scene.Name)
	}
	if c.State() != Failed || !errors.Is(c.Err(), ErrNoScene) {
		t.Fatalf("Scene7: state=%v err=%v", c.State(), c.Err())
	}
}

func TestServerFailures(t *testing.T) {
	boom := errors.New("boom")
	imp := newGated(func(string) (*Document, error) { return nil, boom })
	close(imp.release)
	srv := NewServer("", WithImporter(imp))
	defer srv.Close()

	bad := srv.Load("")
	missing := srv.Load("missing.gltf")
	srv.Wait()
	srv.Update()

	if bad.State() != Failed || !errors.Is(bad.Err(), ErrInvalidSource) {
		t.Fatalf("empty source: state=%v err=%v", bad.State(), bad.Err())
	}
	if missing.State() != Failed || !errors.Is(missing.Err(), boom) {
		t.Fatalf("import error: state=%v err=%v", missing.State(), missing.Err())
	}
	if _, ok := srv.Get(missing); ok {
		t.Fatal("Get succeeded on a failed handle")
	}
}

func TestServerReload(t *testing.T) {
	var fail atomic.Bool
	imp := newGated(func(path string) (*Document, error) {
		if fail.Load() {
			return nil, errors.New("truncated file")
		}
		return oneTriangleDoc(path)
	})
	close(imp.release)
	srv := NewServer("root", WithImporter(imp))
	defer srv.Close()

	h := srv.Load("a.gltf")
	srv.Wait()
	srv.Update()
	first, _ := srv.Get(h)

	if n := srv.Reload(filepath.Join("root", "a.gltf")); n != 1 {
		t.Fatalf("Reload matched %d handles", n)
	}
	srv.Wait()
	srv.Update()
	if h.Version() != 2 {
		t.Fatalf("version after reload = %d, want 2", h.Version())
	}
	second, _ := srv.Get(h)
	if second == first {
		t.Fatal("reload did not replace the scene")
	}

	fail.Store(true)
	srv.Reload(filepath.Join("root", "a.gltf"))
	srv.Wait()
	srv.Update()
	if h.State() != Loaded || h.Version() != 2 || h.Err() == nil {
		t.Fatalf("failed reload: state=%v version=%d err=%v", h.State(), h.Version(), h.Err())
	}
	if g, _ := srv.Get(h); g != second {
		t.Fatal("failed reload dropped the previous scene")
	}

	if n := srv.Reload("other.gltf"); n != 0 {
		t.Fatalf("Reload of unknown file matched %d", n)
	}
}

func TestServerReloadSupersedesInFlightImport(t *testing.T) {
	var content atomic.Value
	content.Store("v1")
	var calls atomic.Int32
	firstRead := make(chan struct{})
	release := make(chan struct{})
	imp := ImporterFunc(func(_ context.Context, path string) (*Document, error) {
		name := content.Load().(string)
		if calls.Add(1) == 1 {
			close(firstRead)
			<-release
		}
		d, _ := oneTriangleDoc(path)
		d.Nodes[0].Name = name
		return d, nil
	})
	srv := NewServer("", WithImporter(imp), WithLogger(zaptest.NewLogger(t).Sugar()))
	defer srv.Close()

	h := srv.Load("a.gltf")
	select {
	case <-firstRead:
	case <-time.After(5 * time.Second):
		t.Fatal("import never started")
	}

	// The file changes while the first import still holds the old bytes.
	content.Store("v2")
	if n := srv.Reload("a.gltf"); n != 1 {
		t.Fatalf("Reload matched %d handles", n)
	}
	close(release)
	srv.Wait()
	srv.Update()

	if calls.Load() != 2 {
		t.Fatalf("importer called %d times, want 2", calls.Load())
	}
	g, ok := srv.Get(h)
	if !ok {
		t.Fatalf("state=%v err=%v", h.State(), h.Err())
	}
	if name := g.Doc.Nodes[0].Name; name != "v2" {
		t.Fatalf("scene holds %q, want the reloaded content", name)
	}
	if h.Version() != 1 {
		t.Fatalf("version = %d, want 1", h.Version())
	}
}

func TestServerReloadDir(t *testing.T) {
	imp := newGated(oneTriangleDoc)
	close(imp.release)
	srv := NewServer("root", WithImporter(imp))
	defer srv.Close()

	a := srv.Load("models/a.gltf")
	b := srv.Load("models/b.gltf#Scene0")
	c := srv.Load("other/c.gltf")
	srv.Wait()
	srv.Update()

	if n := srv.ReloadDir(filepath.Join("root", "models")); n != 2 {
		t.Fatalf("ReloadDir matched %d handles, want 2", n)
	}
	srv.Wait()
	srv.Update()
	if a.Version() != 2 || b.Version() != 2 || c.Version() != 1 {
		t.Fatalf("versions a=%d b=%d c=%d", a.Version(), b.Version(), c.Version())
	}
}

func TestServerCloseCancelsImports(t *testing.T) {
	imp := newGated(oneTriangleDoc)
	srv := NewServer("", WithImporter(imp))
	h := srv.Load("slow.gltf")
	if err := srv.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	srv.Update()
	if h.State() != Failed || !errors.Is(h.Err(), context.Canceled) {
		t.Fatalf("state=%v err=%v", h.State(), h.Err())
	}
}

func TestZeroHandle(t *testing.T) {
	var h Handle
	if h.Valid() || h.State() != Failed || h.Version() != 0 || h.ID() != "" {
		t.Fatalf("zero handle: %+v", h)
	}
}
