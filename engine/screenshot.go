package engine

import (
	"image"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"gltfviewer/engine/render"
)

// Screenshots queues frame captures. Requests are made by systems; the host
// calls Capture with each rendered frame, and encoding happens off the frame
// goroutine on a copy of the image.
type Screenshots struct {
	log     *zap.SugaredLogger
	pending []string
	wg      sync.WaitGroup

	mu   sync.Mutex
	errs []error
}

func NewScreenshots(log *zap.SugaredLogger) *Screenshots {
	return &Screenshots{log: log}
}

// Request asks for the next rendered frame to be written to path as WebP.
func (s *Screenshots) Request(path string) {
	s.pending = append(s.pending, path)
}

// Pending reports how many captures wait for a frame.
func (s *Screenshots) Pending() int { return len(s.pending) }

// Capture starts writing img for every pending request.
func (s *Screenshots) Capture(img *image.RGBA) {
	if len(s.pending) == 0 || img == nil {
		return
	}
	cp := image.NewRGBA(img.Bounds())
	draw.Draw(cp, cp.Bounds(), img, img.Bounds().Min, draw.Src)
	paths := s.pending
	s.pending = nil

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for _, p := range paths {
			if err := render.SaveWebP(p, cp); err != nil {
				s.log.Errorw("screenshot failed", "path", p, "error", err)
				s.mu.Lock()
				s.errs = append(s.errs, err)
				s.mu.Unlock()
				continue
			}
			s.log.Infow("screenshot saved", "path", p)
		}
	}()
}

// Wait blocks until started captures are written and returns their errors.
func (s *Screenshots) Wait() []error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	errs := s.errs
	s.errs = nil
	return errs
}
