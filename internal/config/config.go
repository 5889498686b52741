// Package config resolves the viewer's settings.
//
// Sources are applied in increasing priority: built-in defaults, an optional
// TOML file, a .env file, the process environment (GLTF_VIEWER_*), command
// line flags and finally the positional scene argument.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "GLTF_VIEWER_"

var (
	ErrInvalidSamples = errors.New("config: samples must be 1, 4, 9 or 16")
	ErrInvalidSize    = errors.New("config: width, height and scale must be positive")
)

// Config is the resolved configuration.
type Config struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Scale      int    `toml:"scale"`
	Fullscreen bool   `toml:"fullscreen"`
	Samples    int    `toml:"samples"`
	TPS        int    `toml:"tps"`

	// Args holds the positional arguments, the first being the scene source.
	Args []string `toml:"-"`
	// Scene is used when no positional argument is given.
	Scene     string `toml:"scene"`
	AssetRoot string `toml:"asset_root"`
	Watch     bool   `toml:"watch"`

	Headless bool   `toml:"headless"`
	Ticks    uint64 `toml:"ticks"`
	Output   string `toml:"output"`

	ScreenshotDir string `toml:"screenshot_dir"`

	Development bool   `toml:"development"`
	Debug       bool   `toml:"debug"`
	LogFile     string `toml:"log_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Title:         "Gltf Viewer",
		Width:         640,
		Height:        480,
		Scale:         3,
		Samples:       4,
		TPS:           60,
		AssetRoot:     "assets",
		ScreenshotDir: "screenshots",
		Development:   true,
	}
}

// SceneArgs returns the launch arguments naming the scene: the positional
// arguments when present, else the configured scene.
func (c Config) SceneArgs() []string {
	if len(c.Args) > 0 {
		return c.Args
	}
	if c.Scene != "" {
		return []string{c.Scene}
	}
	return nil
}

// Validate reports settings the viewer cannot run with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Scale <= 0 {
		return fmt.Errorf("%w (got %dx%d scale %d)", ErrInvalidSize, c.Width, c.Height, c.Scale)
	}
	switch c.Samples {
	case 1, 4, 9, 16:
	default:
		return fmt.Errorf("%w (got %d)", ErrInvalidSamples, c.Samples)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("config: tps must be positive (got %d)", c.TPS)
	}
	return nil
}

// Loader resolves a Config. The zero Loader reads the process environment
// and ./.env.
type Loader struct {
	// Name is the flag set name used in usage output.
	Name string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
	// DotEnv lists .env files to read; nil means ".env". Missing files are ignored.
	DotEnv []string
	// Output receives flag usage and errors; nil means os.Stderr.
	Output io.Writer
}

// Load resolves the configuration from os.Args-style arguments (without the program name).
func Load(args []string) (Config, error) {
	return Loader{Name: "gltfviewer"}.Load(args)
}

type field struct {
	name  string
	usage string
	ptr   func(*Config) any
}

var fields = []field{
	{"title", "window title", func(c *Config) any { return &c.Title }},
	{"width", "logical width in pixels", func(c *Config) any { return &c.Width }},
	{"height", "logical height in pixels", func(c *Config) any { return &c.Height }},
	{"scale", "window scale factor", func(c *Config) any { return &c.Scale }},
	{"fullscreen", "start fullscreen", func(c *Config) any { return &c.Fullscreen }},
	{"samples", "multisample count (1, 4, 9 or 16)", func(c *Config) any { return &c.Samples }},
	{"tps", "ticks per second", func(c *Config) any { return &c.TPS }},
	{"asset-root", "directory relative scene paths resolve against", func(c *Config) any { return &c.AssetRoot }},
	{"watch", "reload the scene when its file changes", func(c *Config) any { return &c.Watch }},
	{"headless", "run without a window", func(c *Config) any { return &c.Headless }},
	{"ticks", "stop after N ticks in headless mode (0 = run until interrupted)", func(c *Config) any { return &c.Ticks }},
	{"output", "write the last headless frame to this WebP file", func(c *Config) any { return &c.Output }},
	{"screenshot-dir", "directory for F12 screenshots", func(c *Config) any { return &c.ScreenshotDir }},
	{"dev", "human-readable console logging", func(c *Config) any { return &c.Development }},
	{"debug", "debug log level", func(c *Config) any { return &c.Debug }},
	{"log-file", "write logs to this file instead of stderr", func(c *Config) any { return &c.LogFile }},
}

func envKey(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// Load applies every source to the defaults and validates the result.
func (l Loader) Load(args []string) (Config, error) {
	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	files := l.DotEnv
	if files == nil {
		files = []string{".env"}
	}
	dotenv, err := readDotEnv(files)
	if err != nil {
		return Config{}, err
	}
	env := func(k string) (string, bool) {
		if v, ok := lookup(k); ok {
			return v, true
		}
		v, ok := dotenv[k]
		return v, ok
	}

	// Flags are parsed into a scratch copy first so that only the ones given
	// explicitly override file and environment values.
	flagged := Default()
	fs := flag.NewFlagSet(l.Name, flag.ContinueOnError)
	if l.Output != nil {
		fs.SetOutput(l.Output)
	}
	var configPath string
	fs.StringVar(&configPath, "config", "", "TOML configuration file")
	for _, f := range fields {
		switch p := f.ptr(&flagged).(type) {
		case *string:
			fs.StringVar(p, f.name, *p, f.usage)
		case *int:
			fs.IntVar(p, f.name, *p, f.usage)
		case *uint64:
			fs.Uint64Var(p, f.name, *p, f.usage)
		case *bool:
			fs.BoolVar(p, f.name, *p, f.usage)
		}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg := Default()
	if configPath == "" {
		configPath, _ = env(EnvPrefix + "CONFIG")
	}
	if configPath != "" {
		if err := decodeFile(configPath, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, env); err != nil {
		return Config{}, err
	}
	if v, ok := env(EnvPrefix + "SCENE"); ok {
		cfg.Scene = v
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for _, f := range fields {
		if !set[f.name] {
			continue
		}
		copyField(f.ptr(&cfg), f.ptr(&flagged))
	}
	cfg.Args = fs.Args()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readDotEnv(files []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		m, err := godotenv.Read(f)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", f, err)
		}
		for k, v := range m {
			if _, dup := out[k]; !dup {
				out[k] = v
			}
		}
	}
	return out, nil
}

func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, env func(string) (string, bool)) error {
	for _, f := range fields {
		key := envKey(f.name)
		v, ok := env(key)
		if !ok {
			continue
		}
		var err error
		switch p := f.ptr(cfg).(type) {
		case *string:
			*p = v
		case *int:
			*p, err = strconv.Atoi(v)
		case *uint64:
			*p, err = strconv.ParseUint(v, 10, 64)
		case *bool:
			*p, err = strconv.ParseBool(v)
		}
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", key, v, err)
		}
	}
	return nil
}

func copyField(dst, src any) {
	switch d := dst.(type) {
	case *string:
		*d = *src.(*string)
	case *int:
		*d = *src.(*int)
	case *uint64:
		*d = *src.(*uint64)
	case *bool:
		*d = *src.(*bool)
	}
}
