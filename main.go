package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"gltfviewer/app"
	"gltfviewer/hal"
	"gltfviewer/internal/config"
	"gltfviewer/internal/log"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) || errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	logger, err := log.New(cfg.Development, cfg.Debug, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("log: %w", err)
	}
	defer logger.Sync()

	v, err := app.New(cfg, logger.Named("viewer"))
	if err != nil {
		return err
	}
	defer v.Close()

	if cfg.Headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return hal.RunHeadless(ctx, v, hal.HeadlessConfig{
			Hz:     cfg.TPS,
			Ticks:  cfg.Ticks,
			Output: cfg.Output,
		})
	}
	return hal.RunWindow(v, hal.WindowConfig{
		Scale:      cfg.Scale,
		Fullscreen: cfg.Fullscreen,
		TPS:        cfg.TPS,
	})
}
