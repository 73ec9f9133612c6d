package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-view/config"
	"github.com/Carmen-Shannon/oxy-view/demo"
	"github.com/Carmen-Shannon/oxy-view/engine"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/interaction"
	"github.com/Carmen-Shannon/oxy-view/engine/logging"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// explicitKeys reports whether a config key was set by the user.
type explicitKeys interface {
	Explicit(key string) bool
}

// run opens the window for one demo and blocks until it closes.
func (a *app) run(e demo.Entry) error {
	cfg := a.cfg
	d := e.New(settingsFrom(cfg), a.logger)
	log := logging.Component(a.logger, "app").With().Str("demo", d.Name()).Logger()

	title, width, height := windowFrom(d, cfg, a.loader)
	win := window.NewWindow(
		window.WithTitle(title),
		window.WithSize(width, height),
		window.WithLogger(a.logger),
	)

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win, rendererOptions(cfg, a.logger)...)
	if err != nil {
		return fmt.Errorf("start renderer: %w", err)
	}
	defer r.Release()

	camOpts := cameraOptions(d, cfg, a.loader)
	camOpts = append(camOpts, camera.WithViewport(0, 0, win.Width(), win.Height()), camera.WithLogger(a.logger))
	ctx := interaction.NewContext(camera.NewCamera(camOpts...), interaction.WithLogger(a.logger))

	if err := d.Setup(ctx, r); err != nil {
		return fmt.Errorf("set up %s: %w", d.Name(), err)
	}
	defer d.Release()

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithContext(ctx),
		engine.WithProfiling(cfg.Renderer.Profile),
		engine.WithRenderFrameLimit(a.opts.fps),
		engine.WithLogger(a.logger),
	)

	// Reloads arrive on the watcher goroutine and are applied on the loop thread.
	reloads := make(chan config.Config, 1)
	a.loader.Watch(func(c config.Config) {
		select {
		case reloads <- c:
		default:
			// Keep only the newest.
			select {
			case <-reloads:
			default:
			}
			reloads <- c
		}
	})

	eng.SetTickCallback(func(dt float32) {
		select {
		case c := <-reloads:
			a.applyReload(d, c)
			log.Info().Msg("settings applied")
		default:
		}
		d.Tick(dt)
	})
	eng.SetRenderCallback(func(float32) {
		d.Render(eng.Overlay())
	})

	log.Info().Int("width", win.Width()).Int("height", win.Height()).Msg("demo started")
	eng.Run()
	return nil
}

// applyReload pushes reloaded settings into the running demo. Runs on the loop thread.
func (a *app) applyReload(d demo.Demo, c config.Config) {
	d.Apply(settingsFrom(c))
	if !a.levelPinned {
		logging.SetLevel(c.Log.Level)
	}
}

func settingsFrom(cfg config.Config) demo.Settings {
	return demo.Settings{
		FlightDuration: cfg.Animation.FlightDuration,
		BezierDuration: cfg.Animation.BezierDuration,
		Resolution:     cfg.Tessellation.Resolution,
		Workers:        cfg.Tessellation.Workers,
	}
}

// windowFrom picks the demo's title and size unless the user configured them.
func windowFrom(d demo.Demo, cfg config.Config, keys explicitKeys) (string, int, int) {
	title := d.Title()
	width, height := d.WindowSize()
	if keys.Explicit("window.title") {
		title = cfg.Window.Title
	}
	if keys.Explicit("window.width") {
		width = cfg.Window.Width
	}
	if keys.Explicit("window.height") {
		height = cfg.Window.Height
	}
	return title, width, height
}

// cameraOptions starts from the demo's framing. Zoom limits always come from the config;
// rotation, distance and field of view only when the user set them.
func cameraOptions(d demo.Demo, cfg config.Config, keys explicitKeys) []camera.CameraBuilderOption {
	c := cfg.Camera
	opts := append(d.CameraOptions(),
		camera.WithZoomFactor(c.ZoomFactor),
		camera.WithDistanceBounds(c.MinDistance, c.MaxDistance),
	)
	if keys.Explicit("camera.rotation") {
		r := c.RotationVec()
		opts = append(opts, camera.WithRotation(mgl32.Vec3(r)))
	}
	if keys.Explicit("camera.distance") {
		opts = append(opts, camera.WithDistance(c.Distance))
	}
	if keys.Explicit("camera.fov") {
		opts = append(opts, camera.WithFov(c.Fov))
	}
	return opts
}

func rendererOptions(cfg config.Config, logger zerolog.Logger) []renderer.RendererBuilderOption {
	present := renderer.PresentModeVSync
	if !cfg.Renderer.VSync {
		present = renderer.PresentModeUncapped
	}
	msaa := renderer.MSAA4x
	if !cfg.Renderer.MSAA {
		msaa = renderer.MSAAOff
	}
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(present),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.Software),
		renderer.WithLogger(logger),
	}
}
