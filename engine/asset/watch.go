package asset

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads requested files when they or other files in their directory
// change on disk. It blocks until ctx is done or the watcher fails. Files
// requested after Watch starts are picked up.
func (s *Server) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("asset: watch: %w", err)
	}
	defer w.Close()

	dirs := make(chan string, 16)
	s.mu.Lock()
	s.onLoaded = func(file string) {
		select {
		case dirs <- filepath.Dir(file):
		default:
		}
	}
	s.mu.Unlock()
	files := s.Files()
	defer func() {
		s.mu.Lock()
		s.onLoaded = nil
		s.mu.Unlock()
	}()

	watched := make(map[string]bool)
	add := func(dir string) {
		if watched[dir] {
			return
		}
		if err := w.Add(dir); err != nil {
			s.log.Warnw("asset watch failed", "dir", dir, "error", err)
			return
		}
		watched[dir] = true
		s.log.Debugw("watching", "dir", dir)
	}
	for _, f := range files {
		add(filepath.Dir(f))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case dir := <-dirs:
			add(dir)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			n := s.Reload(ev.Name)
			if n == 0 {
				// A sibling such as a .bin buffer or a texture changed.
				n = s.ReloadDir(filepath.Dir(ev.Name))
			}
			if n > 0 {
				s.log.Infow("reloading", "file", ev.Name, "handles", n)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("asset: watch: %w", err)
		}
	}
}
