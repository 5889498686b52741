package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gltfviewer/editor"
	"gltfviewer/engine"
	"gltfviewer/engine/asset"
	"gltfviewer/engine/render"
	"gltfviewer/internal/config"
)

// fakeClock advances only when told to.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func boxDoc() *asset.Document {
	mesh := render.NewPlane(0.5, render.DefaultMaterial)
	return &asset.Document{
		Scenes: []asset.Scene{{Roots: []int{0}}},
		Nodes: []asset.Node{{
			Name:     "helmet",
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
			Meshes:   []*render.Mesh{mesh},
		}},
	}
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Width, cfg.Height, cfg.Samples = 32, 24, 1
	cfg.AssetRoot = "testdata"
	return cfg
}

func newViewer(t *testing.T, cfg config.Config, log *zap.SugaredLogger) (*Viewer, *fakeClock, *[]string) {
	t.Helper()
	var mu sync.Mutex
	var files []string
	imp := asset.ImporterFunc(func(_ context.Context, file string) (*asset.Document, error) {
		mu.Lock()
		files = append(files, file)
		mu.Unlock()
		return boxDoc(), nil
	})
	clock := &fakeClock{now: time.Unix(1000, 0)}
	v, err := New(cfg, log, WithClock(clock.Now), WithImporter(imp))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { v.Close() })
	return v, clock, &files
}

func containerYaw(t *testing.T, w *engine.World) float32 {
	t.Helper()
	e, _, ok := engine.Single[SceneContainer](w)
	if !ok {
		t.Fatal("no single SceneContainer")
	}
	return w.Transform(e).Yaw()
}

func near(a, b float32) bool { return math32.Abs(a-b) < 1e-4 }

func TestResolveSceneSource(t *testing.T) {
	if got := ResolveSceneSource(nil); got != DefaultSceneSource {
		t.Fatalf("no args: %q", got)
	}
	if got := ResolveSceneSource([]string{"a/b.gltf#Scene2", "ignored"}); got != "a/b.gltf#Scene2" {
		t.Fatalf("args: %q", got)
	}
	if got := ResolveSceneSource([]string{"not a scene"}); got != "not a scene" {
		t.Fatalf("source not passed verbatim: %q", got)
	}
}

func TestEditorControls(t *testing.T) {
	c := EditorControls()
	bs := c.Bindings(editor.PlayPauseEditor)
	if len(bs) != 1 {
		t.Fatalf("%d toggle bindings, want 1", len(bs))
	}
	if bs[0].Input.String() != "Escape" {
		t.Fatalf("toggle = %s", bs[0].Input)
	}
	if len(bs[0].Conditions) != 1 || bs[0].Conditions[0] != editor.ListeningForText(false) {
		t.Fatalf("conditions = %v", bs[0].Conditions)
	}
	if len(c.Bindings(editor.SelectNext)) != 1 {
		t.Fatal("other defaults lost")
	}
}

func TestStartupSpawns(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	v, _, files := newViewer(t, testConfig(), zap.New(core).Sugar())
	w := v.World()

	v.Step()
	names := map[string]bool{}
	for _, e := range w.Entities() {
		names[w.Name(e)] = true
	}
	for _, n := range []string{"Camera", "Plane", "PointLight", "SceneContainer", "Gltf"} {
		if !names[n] {
			t.Fatalf("missing %s entity", n)
		}
	}

	if logs.FilterMessage("viewer ready").FilterField(zap.String("asset_root", "testdata")).Len() != 1 {
		t.Fatal("viewer ready not logged with the asset root")
	}
	if logs.FilterMessage("loading scene").Len() != 1 {
		t.Fatal("scene source not logged")
	}
	if logs.FilterMessage("press Space to toggle rotation").Len() != 1 {
		t.Fatal("toggle hint not logged")
	}

	w.Assets.Wait()
	v.Step()
	if len(*files) != 1 || !strings.HasSuffix((*files)[0], "models/FlightHelmet/FlightHelmet.gltf") {
		t.Fatalf("imported %v", *files)
	}
	spawned := false
	for _, e := range w.Entities() {
		spawned = spawned || w.Name(e) == "helmet"
		if r := w.SceneRoot(e); r != nil && (r.Spawned() != 1 || len(r.Instance()) != 1) {
			t.Fatalf("scene root: version %d, %d instance roots", r.Spawned(), len(r.Instance()))
		}
	}
	if !spawned {
		t.Fatal("scene not spawned")
	}

	want := "asset_events,scene_spawner,editor,toggle_rotation,rotate_scene,screenshot,propagate_transforms,diagnostics"
	if got := strings.Join(v.App().Systems(), ","); got != want {
		t.Fatalf("systems = %s", got)
	}
}

func TestRotation(t *testing.T) {
	v, clock, _ := newViewer(t, testConfig(), nil)
	w := v.World()

	v.Step()
	if y := containerYaw(t, w); y != 0 {
		t.Fatalf("first frame rotated by %v", y)
	}

	clock.Advance(time.Second)
	v.Step()
	if y := containerYaw(t, w); !near(y, math32.Pi/6) {
		t.Fatalf("yaw after 1s = %v, want π/6", y)
	}

	// Toggle runs before rotate, so the frame with the press does not turn.
	clock.Advance(time.Second)
	v.Input().Press(ToggleKey)
	v.Step()
	if y := containerYaw(t, w); !near(y, math32.Pi/6) {
		t.Fatalf("rotated while disabled: %v", y)
	}
	v.Input().Release(ToggleKey)

	clock.Advance(time.Second)
	v.Step()
	if y := containerYaw(t, w); !near(y, math32.Pi/6) {
		t.Fatalf("rotated while disabled: %v", y)
	}

	v.Input().Press(ToggleKey)
	clock.Advance(time.Second)
	v.Step()
	if y := containerYaw(t, w); !near(y, math32.Pi/3) {
		t.Fatalf("yaw after re-enable = %v, want π/3", y)
	}
}

func TestToggleIgnoredWithTextFocus(t *testing.T) {
	w := engine.NewWorld(nil, nil)
	w.Spawn(engine.C(w, engine.IdentityTransform()), engine.C(w, SceneContainer{RotationEnabled: true}))
	w.Input.TextFocus = true
	w.Input.Press(ToggleKey)
	toggleRotation(w)
	if _, c, _ := engine.Single[SceneContainer](w); !c.RotationEnabled {
		t.Fatal("toggled while a text field had focus")
	}
}

func TestNoContainerOrMany(t *testing.T) {
	w := engine.NewWorld(nil, nil)
	w.Input.Press(ToggleKey)
	toggleRotation(w)
	rotateScene(w)

	a := w.Spawn(engine.C(w, engine.IdentityTransform()), engine.C(w, SceneContainer{RotationEnabled: true}))
	b := w.Spawn(engine.C(w, engine.IdentityTransform()), engine.C(w, SceneContainer{RotationEnabled: true}))
	clock := &fakeClock{now: time.Unix(0, 0)}
	w.Time = engine.NewTime(clock.Now)
	w.Time.Update()
	clock.Advance(time.Second)
	w.Time.Update()
	toggleRotation(w)
	rotateScene(w)
	if w.Transform(a).Yaw() != 0 || w.Transform(b).Yaw() != 0 {
		t.Fatal("rotated with two containers")
	}
}

func TestRender(t *testing.T) {
	v, clock, _ := newViewer(t, testConfig(), nil)
	v.Step()
	v.World().Assets.Wait()
	clock.Advance(time.Second / 60)
	v.Step()

	img := v.Render()
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 24 {
		t.Fatalf("frame %v", img.Bounds())
	}

	v.Input().Press(engine.KeyEscape)
	v.Step()
	if !v.Editor().Active() {
		t.Fatal("Escape did not open the editor")
	}
	v.Render()
}

func TestScreenshot(t *testing.T) {
	cfg := testConfig()
	cfg.ScreenshotDir = t.TempDir()
	v, clock, _ := newViewer(t, cfg, nil)
	w := v.World()
	v.Step()

	v.Input().Press(ScreenshotKey)
	v.Step()
	if w.Screenshots.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", w.Screenshots.Pending())
	}
	v.Render()
	if errs := w.Screenshots.Wait(); len(errs) != 0 {
		t.Fatalf("screenshot errors: %v", errs)
	}

	want := filepath.Join(cfg.ScreenshotDir, "screenshot-"+clock.Now().Format("20060102-150405.000")+".webp")
	fi, err := os.Stat(want)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if fi.Size() == 0 {
		t.Fatal("empty screenshot")
	}

	v.Input().Release(ScreenshotKey)
	v.Step()
	v.Render()
	w.Screenshots.Wait()
	entries, _ := os.ReadDir(cfg.ScreenshotDir)
	if len(entries) != 1 {
		t.Fatalf("%d files written, want 1", len(entries))
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Samples = 2
	if _, err := New(cfg, nil); err == nil {
		t.Fatal("accepted samples=2")
	}
}
