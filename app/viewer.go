// Package app is the glTF viewer: it wires the scene, the rotation controls
// and the editor into an engine schedule, and renders frames for a host.
package app

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"gltfviewer/editor"
	"gltfviewer/engine"
	"gltfviewer/engine/asset"
	"gltfviewer/engine/render"
	"gltfviewer/internal/buildinfo"
	"gltfviewer/internal/config"
)

// ScreenshotKey queues a screenshot of the next frame.
const ScreenshotKey = engine.KeyF12

// Viewer owns the world, its schedule and the render state.
type Viewer struct {
	cfg   config.Config
	log   *zap.SugaredLogger
	clock func() time.Time

	world  *engine.World
	app    *engine.App
	editor *editor.Editor

	renderer *render.Renderer
	frame    *render.Frame
	scene    *render.Scene

	stopWatch context.CancelFunc
	watchDone chan struct{}
}

type options struct {
	clock    func() time.Time
	importer asset.Importer
}

// Option customizes a Viewer.
type Option func(*options)

// WithClock replaces the wall clock used for frame deltas.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// WithImporter replaces the glTF importer.
func WithImporter(imp asset.Importer) Option {
	return func(o *options) { o.importer = imp }
}

// New builds a viewer from cfg. Nothing runs until the first Step.
func New(cfg config.Config, log *zap.SugaredLogger, opts ...Option) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	frame, err := render.NewFrame(cfg.Width, cfg.Height, cfg.Samples)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	assetOpts := []asset.Option{asset.WithLogger(log.Named("asset"))}
	if o.importer != nil {
		assetOpts = append(assetOpts, asset.WithImporter(o.importer))
	}
	assets := asset.NewServer(cfg.AssetRoot, assetOpts...)

	if o.clock == nil {
		o.clock = time.Now
	}
	w := engine.NewWorld(assets, log)
	w.Time = engine.NewTime(o.clock)

	v := &Viewer{
		cfg:      cfg,
		log:      log,
		clock:    o.clock,
		world:    w,
		editor:   editor.New(EditorControls(), log.Named("editor")),
		renderer: render.NewRenderer(cfg.Width*frame.Factor(), cfg.Height*frame.Factor(), true),
		frame:    frame,
		scene:    render.NewScene(),
	}

	v.app = engine.NewApp(w).
		AddStartupSystem("setup_world", setupWorld).
		AddStartupSystem("setup_scene", setupScene(cfg.SceneArgs())).
		AddSystem("editor", v.editor.System).
		AddSystem("toggle_rotation", toggleRotation).
		AddSystem("rotate_scene", rotateScene).
		AddSystem("screenshot", v.screenshot)

	if cfg.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		v.stopWatch = cancel
		v.watchDone = make(chan struct{})
		go func() {
			defer close(v.watchDone)
			if err := assets.Watch(ctx); err != nil {
				log.Warnw("asset watcher stopped", "error", err)
			}
		}()
	}

	log.Infow("viewer ready", append(buildinfo.Fields(),
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"samples", cfg.Samples,
		"asset_root", assets.Root(),
		"startup", v.app.StartupSystems(),
		"systems", v.app.Systems())...)
	return v, nil
}

// Title is the window title.
func (v *Viewer) Title() string {
	return fmt.Sprintf("%s (%s)", v.cfg.Title, buildinfo.Short())
}

// Size is the logical frame size.
func (v *Viewer) Size() (w, h int) { return v.cfg.Width, v.cfg.Height }

// Input is where the host records this frame's input before Step.
func (v *Viewer) Input() *engine.Input { return v.world.Input }

func (v *Viewer) World() *engine.World { return v.world }

func (v *Viewer) Editor() *editor.Editor { return v.editor }

// App exposes the schedule, e.g. to list system order.
func (v *Viewer) App() *engine.App { return v.app }

// Step runs one frame of systems.
func (v *Viewer) Step() { v.app.Step() }

// Render draws the current world and returns the frame. The image is reused
// by the next Render.
func (v *Viewer) Render() *image.RGBA {
	engine.Extract(v.world, v.scene)
	v.editor.Camera(&v.scene.Camera)
	v.frame.Render(v.renderer, v.scene)

	img := v.frame.Image()
	v.editor.Draw(render.NewOverlay(img), v.world)
	v.world.Screenshots.Capture(img)
	return img
}

func (v *Viewer) screenshot(w *engine.World) {
	if w.Input.TextFocus || !w.Input.JustPressed(ScreenshotKey) {
		return
	}
	name := fmt.Sprintf("screenshot-%s.webp", v.clock().Format("20060102-150405.000"))
	w.Screenshots.Request(filepath.Join(v.cfg.ScreenshotDir, name))
}

// Close stops the watcher and background loads and waits for pending screenshots.
func (v *Viewer) Close() error {
	if v.stopWatch != nil {
		v.stopWatch()
		<-v.watchDone
	}
	err := v.world.Assets.Close()
	for _, e := range v.world.Screenshots.Wait() {
		if err == nil {
			err = e
		}
	}
	return err
}
