package hal

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gltfviewer/engine"
)

type countingProgram struct {
	in      *engine.Input
	steps   int
	spaces  int
	renders int
}

func newCountingProgram() *countingProgram {
	return &countingProgram{in: engine.NewInput()}
}

func (p *countingProgram) Title() string        { return "test" }
func (p *countingProgram) Size() (int, int)     { return 8, 8 }
func (p *countingProgram) Input() *engine.Input { return p.in }

func (p *countingProgram) Step() {
	if p.in.JustPressed(engine.KeySpace) {
		p.spaces++
	}
	p.steps++
	p.in.Clear()
}

func (p *countingProgram) Render() *image.RGBA {
	p.renders++
	return image.NewRGBA(image.Rect(0, 0, 8, 8))
}

func TestRunHeadlessTicks(t *testing.T) {
	p := newCountingProgram()
	out := filepath.Join(t.TempDir(), "frame.webp")
	cfg := HeadlessConfig{
		Hz:     1000,
		Ticks:  5,
		Output: out,
		Script: func(tick uint64, in *engine.Input) {
			if tick == 2 {
				in.Press(engine.KeySpace)
			}
		},
	}
	if err := RunHeadless(context.Background(), p, cfg); err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if p.steps != 5 || p.spaces != 1 || p.renders != 1 {
		t.Fatalf("steps=%d spaces=%d renders=%d", p.steps, p.spaces, p.renders)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Fatalf("output not written: %v", err)
	}
}

func TestRunHeadlessCancel(t *testing.T) {
	p := newCountingProgram()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := RunHeadless(ctx, p, HeadlessConfig{Hz: 200})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
	if p.renders != 0 {
		t.Fatal("rendered without an output path")
	}
}
