package hal

import (
	"context"
	"fmt"
	"time"

	"gltfviewer/engine"
	"gltfviewer/engine/render"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
	// Output, when set, receives the final frame as WebP.
	Output string
	// Script, when set, is called before each step to inject input.
	Script func(tick uint64, in *engine.Input)
}

// RunHeadless steps p on a ticker until ctx ends or cfg.Ticks steps have run.
func RunHeadless(ctx context.Context, p Program, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("hal: invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			if err := writeOutput(p, cfg.Output); err != nil {
				return err
			}
			return ctx.Err()
		case <-t.C:
			if cfg.Script != nil {
				cfg.Script(tick, p.Input())
			}
			p.Step()
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return writeOutput(p, cfg.Output)
			}
		}
	}
}

func writeOutput(p Program, path string) error {
	if path == "" {
		return nil
	}
	if err := render.SaveWebP(path, p.Render()); err != nil {
		return fmt.Errorf("hal: %w", err)
	}
	return nil
}
