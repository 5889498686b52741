package engine

import "time"

// System is a procedure run against the world by the schedule.
type System func(w *World)

type namedSystem struct {
	name string
	run  System
}

// App runs startup systems once and frame systems every Step, each in
// registration order.
type App struct {
	World *World

	startup []namedSystem
	frame   []namedSystem
	started bool
}

// NewApp returns an app with the engine's own frame systems registered:
// asset events and the scene spawner first, then whatever the caller adds,
// with transform propagation and diagnostics run last by Step.
func NewApp(w *World) *App {
	a := &App{World: w}
	a.AddSystem("asset_events", AssetEvents)
	a.AddSystem("scene_spawner", SpawnScenes)
	return a
}

// AddStartupSystem registers a system run once before the first frame.
func (a *App) AddStartupSystem(name string, fn System) *App {
	a.startup = append(a.startup, namedSystem{name: name, run: fn})
	return a
}

// AddSystem registers a per-frame system.
func (a *App) AddSystem(name string, fn System) *App {
	a.frame = append(a.frame, namedSystem{name: name, run: fn})
	return a
}

// Systems lists the per-frame systems in the order Step runs them.
func (a *App) Systems() []string {
	out := make([]string, 0, len(a.frame)+2)
	for _, s := range a.frame {
		out = append(out, s.name)
	}
	return append(out, "propagate_transforms", "diagnostics")
}

// StartupSystems lists the startup systems in order.
func (a *App) StartupSystems() []string {
	out := make([]string, 0, len(a.startup))
	for _, s := range a.startup {
		out = append(out, s.name)
	}
	return out
}

// Step advances time and runs one frame. The first call also runs the
// startup systems. Input edges are cleared at the end of the frame.
func (a *App) Step() {
	w := a.World
	start := time.Now()
	w.Time.Update()
	if !a.started {
		a.started = true
		for _, s := range a.startup {
			s.run(w)
		}
		// Startup entities get global transforms before any frame system reads them.
		PropagateTransforms(w)
	}
	for _, s := range a.frame {
		s.run(w)
	}
	PropagateTransforms(w)
	w.Diagnostics.Record(w.Time.Delta(), time.Since(start), w.EntityCount())
	w.Input.Clear()
}
