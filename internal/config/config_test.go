package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestDefaults(t *testing.T) {
	cfg, err := Loader{LookupEnv: envMap(nil), DotEnv: []string{}}.Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Title != Default().Title || cfg.Width != 640 || cfg.Height != 480 || cfg.Samples != 4 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.SceneArgs() != nil {
		t.Fatalf("SceneArgs() = %v, want none", cfg.SceneArgs())
	}
}

func TestPrecedence(t *testing.T) {
	file := writeFile(t, "viewer.toml", `
title = "from file"
width = 320
height = 200
samples = 9
scene = "file.gltf"
`)
	dot := writeFile(t, ".env", "GLTF_VIEWER_HEIGHT=100\nGLTF_VIEWER_SAMPLES=1\nGLTF_VIEWER_TPS=30\n")
	env := map[string]string{
		EnvPrefix + "CONFIG":  file,
		EnvPrefix + "SAMPLES": "16",
		EnvPrefix + "SCENE":   "env.gltf",
	}
	l := Loader{LookupEnv: envMap(env), DotEnv: []string{dot}, Output: io.Discard}

	cfg, err := l.Load([]string{"-width", "128"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Title != "from file" {
		t.Fatalf("title = %q", cfg.Title)
	}
	if cfg.Height != 100 || cfg.TPS != 30 {
		t.Fatalf(".env not applied: height=%d tps=%d", cfg.Height, cfg.TPS)
	}
	if cfg.Samples != 16 {
		t.Fatalf("environment did not beat .env: samples=%d", cfg.Samples)
	}
	if cfg.Width != 128 {
		t.Fatalf("flag did not win: width=%d", cfg.Width)
	}
	if got := cfg.SceneArgs(); len(got) != 1 || got[0] != "env.gltf" {
		t.Fatalf("SceneArgs() = %v", got)
	}

	cfg, err = l.Load([]string{"-samples", "1", "cli.gltf#Scene1"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Samples != 1 {
		t.Fatalf("samples = %d", cfg.Samples)
	}
	if got := cfg.SceneArgs(); len(got) != 1 || got[0] != "cli.gltf#Scene1" {
		t.Fatalf("positional argument lost: %v", got)
	}
}

func TestInvalid(t *testing.T) {
	l := Loader{LookupEnv: envMap(nil), DotEnv: []string{}, Output: io.Discard}
	if _, err := l.Load([]string{"-samples", "3"}); !errors.Is(err, ErrInvalidSamples) {
		t.Fatalf("samples=3: %v", err)
	}
	if _, err := l.Load([]string{"-width", "0"}); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("width=0: %v", err)
	}

	bad := Loader{LookupEnv: envMap(map[string]string{EnvPrefix + "WIDTH": "wide"}), DotEnv: []string{}}
	if _, err := bad.Load(nil); err == nil {
		t.Fatal("non-numeric width accepted")
	}

	unknown := writeFile(t, "bad.toml", "colour = 1\n")
	if _, err := l.Load([]string{"-config", unknown}); err == nil {
		t.Fatal("unknown TOML key accepted")
	}
}

func TestMissingDotEnvIgnored(t *testing.T) {
	l := Loader{LookupEnv: envMap(nil), DotEnv: []string{filepath.Join(t.TempDir(), "absent.env")}}
	if _, err := l.Load(nil); err != nil {
		t.Fatalf("Load: %v", err)
	}
}
