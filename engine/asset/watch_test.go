package asset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReloadsChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTriangle(t, dir)
	srv := NewServer(dir)
	defer srv.Close()

	h := srv.Load("triangle.gltf")
	srv.Wait()
	srv.Update()
	if h.State() != Loaded {
		t.Fatalf("initial load: %v", h.Err())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Watch(ctx) }()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for h.Version() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("file change did not trigger a reload")
		}
		// The watcher registers its directories asynchronously; keep touching
		// the file until an event lands.
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
		srv.Update()
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch: %v", err)
	}
}

func TestWatchReloadsOnSiblingChange(t *testing.T) {
	dir := t.TempDir()
	writeTriangle(t, dir)
	srv := NewServer(dir)
	defer srv.Close()

	h := srv.Load("triangle.gltf")
	srv.Wait()
	srv.Update()
	if h.State() != Loaded {
		t.Fatalf("initial load: %v", h.Err())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Watch(ctx) }()

	bin := filepath.Join(dir, "triangle.bin")
	deadline := time.Now().Add(5 * time.Second)
	for h.Version() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("buffer change did not trigger a reload")
		}
		if err := os.WriteFile(bin, []byte{0, 1, 2, 3}, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
		srv.Update()
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch: %v", err)
	}
}
