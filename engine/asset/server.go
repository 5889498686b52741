package asset

import (
	"context"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// State is the resolution state of a handle.
type State uint8

const (
	Pending State = iota
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// entry is owned by the frame goroutine; loaders never touch it directly.
type entry struct {
	id      string
	src     Source
	file    string
	state   State
	version uint64
	graph   *SceneGraph
	err     error
}

// Handle is an opaque reference to a requested scene. The zero Handle is invalid.
type Handle struct {
	e *entry
}

func (h Handle) Valid() bool { return h.e != nil }

// ID is the identifier the handle was requested with.
func (h Handle) ID() string {
	if h.e == nil {
		return ""
	}
	return h.e.id
}

func (h Handle) State() State {
	if h.e == nil {
		return Failed
	}
	return h.e.state
}

// Version increases on every successful load or reload.
func (h Handle) Version() uint64 {
	if h.e == nil {
		return 0
	}
	return h.e.version
}

// Err is the last load error, if any.
func (h Handle) Err() error {
	if h.e == nil {
		return nil
	}
	return h.e.err
}

type result struct {
	e   *entry
	gen uint64
	doc *Document
	err error
}

// Server resolves scene identifiers asynchronously.
//
// Load returns at once with a pending handle. Import work runs on background
// goroutines and finished results are applied by Update, which the frame loop
// calls once per tick; handles therefore only change state on the frame
// goroutine.
type Server struct {
	root     string
	importer Importer
	log      *zap.SugaredLogger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	group  singleflight.Group

	mu       sync.Mutex
	done     []result
	byFile   map[string][]*entry
	gens     map[string]uint64
	onLoaded func(file string)

	entries map[string]*entry
}

// Option configures a Server.
type Option func(*Server)

// WithImporter replaces the glTF importer.
func WithImporter(imp Importer) Option {
	return func(s *Server) { s.importer = imp }
}

// WithLogger sets the logger used for load results.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Server) { s.log = log }
}

// NewServer returns a server resolving relative paths against root.
func NewServer(root string, opts ...Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		root:     root,
		importer: GLTF,
		log:      zap.NewNop().Sugar(),
		ctx:      ctx,
		cancel:   cancel,
		byFile:   make(map[string][]*entry),
		gens:     make(map[string]uint64),
		entries:  make(map[string]*entry),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Root is the directory relative paths are resolved against.
func (s *Server) Root() string { return s.root }

// Resolve maps a source path onto the filesystem.
func (s *Server) Resolve(path string) string {
	if filepath.IsAbs(path) || s.root == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(s.root, filepath.FromSlash(path))
}

// Load requests a scene. Repeated requests for the same id share one handle.
// Invalid ids yield a handle that fails on the next Update.
func (s *Server) Load(id string) Handle {
	if e, ok := s.entries[id]; ok {
		return Handle{e: e}
	}
	e := &entry{id: id, state: Pending}
	s.entries[id] = e

	src, err := ParseSource(id)
	if err != nil {
		s.finish(result{e: e, err: err})
		return Handle{e: e}
	}
	e.src = src
	e.file = s.Resolve(src.Path)

	s.mu.Lock()
	s.byFile[e.file] = append(s.byFile[e.file], e)
	notify := s.onLoaded
	s.mu.Unlock()
	if notify != nil {
		notify(e.file)
	}

	s.start(e)
	return Handle{e: e}
}

// Reload re-imports every scene backed by file. Handles keep their last good
// scene until the new import succeeds. Imports of file still in flight are
// superseded: their results are dropped.
func (s *Server) Reload(file string) int {
	file = filepath.Clean(file)
	s.mu.Lock()
	entries := append([]*entry(nil), s.byFile[file]...)
	if len(entries) > 0 {
		s.gens[file]++
	}
	s.mu.Unlock()
	for _, e := range entries {
		s.start(e)
	}
	return len(entries)
}

// ReloadDir reloads every requested file in dir, e.g. after one of their
// buffers or images changed.
func (s *Server) ReloadDir(dir string) int {
	dir = filepath.Clean(dir)
	var files []string
	s.mu.Lock()
	for f := range s.byFile {
		if filepath.Dir(f) == dir {
			files = append(files, f)
		}
	}
	s.mu.Unlock()
	n := 0
	for _, f := range files {
		n += s.Reload(f)
	}
	return n
}

func (s *Server) start(e *entry) {
	s.mu.Lock()
	gen := s.gens[e.file]
	s.mu.Unlock()
	key := e.file + "#" + strconv.FormatUint(gen, 10)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		v, err, _ := s.group.Do(key, func() (any, error) {
			return s.importer.Import(s.ctx, e.file)
		})
		doc, _ := v.(*Document)
		s.finish(result{e: e, gen: gen, doc: doc, err: err})
	}()
}

func (s *Server) current(r result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return r.gen == s.gens[r.e.file]
}

func (s *Server) finish(r result) {
	s.mu.Lock()
	s.done = append(s.done, r)
	s.mu.Unlock()
}

// Update applies finished loads and returns how many handles changed.
// It never blocks on import work.
func (s *Server) Update() int {
	s.mu.Lock()
	done := s.done
	s.done = nil
	s.mu.Unlock()

	n := 0
	for _, r := range done {
		if !s.current(r) {
			s.log.Debugw("dropping superseded load", "source", r.e.id, "generation", r.gen)
			continue
		}
		s.apply(r)
		n++
	}
	return n
}

func (s *Server) apply(r result) {
	e := r.e
	if r.err == nil && r.doc != nil {
		g, err := r.doc.Resolve(e.src)
		if err != nil {
			r.err = err
		} else {
			e.graph = g
			e.err = nil
			e.state = Loaded
			e.version++
			s.log.Infow("scene loaded", "source", e.id, "version", e.version, "triangles", g.Triangles())
			return
		}
	}
	e.err = r.err
	if e.state == Loaded {
		s.log.Warnw("scene reload failed, keeping previous", "source", e.id, "error", r.err)
		return
	}
	e.state = Failed
	s.log.Errorw("scene load failed", "source", e.id, "error", r.err)
}

// Get returns the resolved scene for a loaded handle.
func (s *Server) Get(h Handle) (*SceneGraph, bool) {
	if h.e == nil || h.e.state != Loaded {
		return nil, false
	}
	return h.e.graph, true
}

// Files returns the resolved paths of every requested file.
func (s *Server) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.byFile))
	for f := range s.byFile {
		out = append(out, f)
	}
	return out
}

// Wait blocks until every started import has finished. Results still need Update.
func (s *Server) Wait() {
	s.wg.Wait()
}

// Close cancels in-flight imports and waits for them.
func (s *Server) Close() error {
	s.cancel()
	s.wg.Wait()
	return nil
}
