package main

import (
	"fmt"
	"math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/flora/internal/app"
	"github.com/Faultbox/flora/internal/config"
	"github.com/Faultbox/flora/internal/engine/camera"
	"github.com/Faultbox/flora/internal/engine/debug"
	"github.com/Faultbox/flora/internal/engine/input"
	"github.com/Faultbox/flora/internal/engine/mesh"
	"github.com/Faultbox/flora/internal/engine/picking"
	"github.com/Faultbox/flora/internal/engine/renderer"
	"github.com/Faultbox/flora/internal/engine/window"
	"github.com/Faultbox/flora/internal/logger"
	"github.com/Faultbox/flora/internal/plant"
)

// leafPalette is cycled by the C key on the selected leaf.
var leafPalette = []string{"#2d5a27", "#6b8e23", "#a0522d", "#b22222", "#4682b4", "#9932cc"}

type viewer struct {
	cfg      *config.Config
	log      *zap.Logger
	window   *window.Window
	input    *input.Input
	renderer *renderer.Renderer
	camera   *camera.OrbitCamera
	meshes   *mesh.Cache
	app      *app.App
	shots    *debug.Screenshots
	reloads  <-chan *config.Config

	running    bool
	capture    bool
	param      int
	leafColor  int
	frameDelay time.Duration
}

func newViewer(cfg *config.Config) (*viewer, error) {
	opts, err := cfg.PlantOptions()
	if err != nil {
		return nil, err
	}
	opts.Logger = logger.Named("plant")

	win, err := window.New(window.Config{
		Title:      "Flora",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    4,
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	meshes := mesh.NewCache()
	fbw, fbh := win.DrawableSize()
	rend, err := renderer.New(renderer.Config{
		Width:      fbw,
		Height:     fbh,
		Background: plant.SkyColor,
	}, meshes, logger.Named("renderer"))
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	cam := camera.NewOrbitCamera()
	cam.Distance = cfg.Camera.Distance
	cam.MinDistance = cfg.Camera.MinDistance
	cam.MaxDistance = cfg.Camera.MaxDistance
	cam.FOV = cfg.Camera.FOV

	a := app.New(cfg.Plant, opts, logger.Named("app"))
	a.SetPaused(cfg.Animation.Paused)

	v := &viewer{
		cfg:      cfg,
		log:      logger.Named("viewer"),
		window:   win,
		input:    input.New(),
		renderer: rend,
		camera:   cam,
		meshes:   meshes,
		app:      a,
		shots:    debug.NewScreenshots("screenshots", "flora"),
	}
	if cfg.Graphics.FPSLimit > 0 {
		v.frameDelay = time.Second / time.Duration(cfg.Graphics.FPSLimit)
	}
	return v, nil
}

func (v *viewer) Close() {
	v.renderer.Close()
	v.window.Close()
}

// Run is the main loop: input, update, render, present.
func (v *viewer) Run() error {
	v.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	v.log.Info("starting main loop", zap.Int64("seed", v.app.Config().Seed))

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			break
		}
		for _, event := range v.input.Events() {
			v.handle(event)
		}

		select {
		case next := <-v.reloads:
			v.reload(next)
		default:
		}

		v.app.Frame(now.Sub(start).Seconds(), dt)

		v.renderer.SetViewProjection(v.camera.ViewProjection(v.renderer.Aspect()))
		if err := v.app.Render(v.renderer); err != nil {
			return err
		}
		if v.capture {
			v.capture = false
			v.screenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			st := v.renderer.Stats()
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("draw_calls", st.DrawCalls),
				zap.Int("triangles", st.Triangles),
				zap.Float64("growth", v.app.Growth()),
			)
			v.window.SetTitle(v.title(frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if v.frameDelay > 0 {
			if spent := time.Since(now); spent < v.frameDelay {
				time.Sleep(v.frameDelay - spent)
			}
		}
	}

	return nil
}

func (v *viewer) title(fps int) string {
	p := app.Params[v.param]
	val, _ := v.app.Param(p)
	sel := "none"
	if id := v.app.Selected(); id != "" {
		sel = id
	}
	return fmt.Sprintf("Flora - seed %d - %s=%g - leaf %s - %d fps",
		v.app.Config().Seed, p, val, sel, fps)
}

func (v *viewer) handle(e input.Event) {
	switch e.Type {
	case input.EventWindowResize:
		w, h := v.window.DrawableSize()
		v.renderer.Resize(w, h)

	case input.EventMouseMove:
		if v.input.Dragging() {
			v.camera.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
		}

	case input.EventMouseWheel:
		v.camera.HandleZoom(e.Wheel)

	case input.EventMouseUp:
		if e.Button == sdl.BUTTON_LEFT && v.input.IsClick(e) {
			v.pick(e.MouseX, e.MouseY)
		}

	case input.EventKeyDown:
		v.handleKey(e)
	}
}

func (v *viewer) pick(x, y int) {
	w, h := v.window.Size()
	vp := v.camera.ViewProjection(float32(w) / float32(h))
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), vp.Inverse())
	hit, ok := picking.Pick(ray, v.app.Plant().Graph().Pickables(), v.meshes)
	if !ok {
		v.app.HandleLeafHit("")
		return
	}
	v.app.HandleLeafHit(hit.ID)
}

func (v *viewer) handleKey(e input.Event) {
	step := 1.0
	if e.Shift {
		step = 10
	}

	switch e.Key {
	case sdl.SCANCODE_ESCAPE:
		if v.app.Selected() != "" {
			v.app.HandleLeafHit("")
			return
		}
		v.running = false
	case sdl.SCANCODE_Q:
		v.running = false
	case sdl.SCANCODE_R:
		v.app.Regenerate(0)
	case sdl.SCANCODE_SPACE:
		v.app.TogglePause()
	case sdl.SCANCODE_P:
		v.capture = true
	case sdl.SCANCODE_UP:
		v.param = (v.param + len(app.Params) - 1) % len(app.Params)
	case sdl.SCANCODE_DOWN:
		v.param = (v.param + 1) % len(app.Params)
	case sdl.SCANCODE_LEFT, sdl.SCANCODE_RIGHT:
		if e.Key == sdl.SCANCODE_LEFT {
			step = -step
		}
		v.nudge(step)
	case sdl.SCANCODE_W, sdl.SCANCODE_S:
		up := float32(1)
		if e.Key == sdl.SCANCODE_S {
			up = -1
		}
		v.camera.HandleMovement(0, 0, up)

	// Selected leaf edits
	case sdl.SCANCODE_LEFTBRACKET, sdl.SCANCODE_RIGHTBRACKET:
		d := 0.1
		if e.Key == sdl.SCANCODE_LEFTBRACKET {
			d = -d
		}
		v.app.SetLeafSize(v.leafValue(func(o plant.LeafOverride) *float64 { return o.Size }, 1) + d)
	case sdl.SCANCODE_COMMA, sdl.SCANCODE_PERIOD:
		d := 5.0
		if e.Key == sdl.SCANCODE_COMMA {
			d = -d
		}
		v.app.SetLeafAngle(v.leafValue(func(o plant.LeafOverride) *float64 { return o.Angle }, v.openingDegrees()) + d)
	case sdl.SCANCODE_C:
		v.leafColor = (v.leafColor + 1) % len(leafPalette)
		if err := v.app.SetLeafColor(leafPalette[v.leafColor]); err != nil {
			v.log.Debug("leaf color not applied", zap.Error(err))
		}
	case sdl.SCANCODE_BACKSPACE:
		v.app.ResetLeaf()
	}
}

// reload applies an edited config file. A zero seed keeps the current plant.
func (v *viewer) reload(next *config.Config) {
	p := next.Plant
	if p.Seed == 0 {
		p.Seed = v.app.Config().Seed
	}
	v.app.SetConfig(p)
	v.app.SetPaused(next.Animation.Paused)
	v.cfg.Plant = p
	v.cfg.Animation.Paused = next.Animation.Paused
	v.log.Info("plant parameters reloaded", zap.Int64("seed", p.Seed))
}

// screenshot saves the frame just drawn, before it is presented.
func (v *viewer) screenshot() {
	pixels, w, h := v.renderer.ReadPixels()
	name, err := v.shots.SavePixels(pixels, w, h)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("file", name))
}

// nudge moves the current parameter by step increments of its range.
func (v *viewer) nudge(steps float64) {
	p := app.Params[v.param]
	cur, err := v.app.Param(p)
	if err != nil {
		return
	}
	got, err := v.app.SetParam(p, cur+steps*app.ParamRanges[p].Step)
	if err != nil {
		v.log.Warn("parameter edit rejected", zap.String("param", string(p)), zap.Error(err))
		return
	}
	v.log.Debug("parameter changed", zap.String("param", string(p)), zap.Float64("value", got))
}

func (v *viewer) leafValue(field func(plant.LeafOverride) *float64, fallback float64) float64 {
	id := v.app.Selected()
	if id == "" {
		return fallback
	}
	if ptr := field(v.app.Overrides()[id]); ptr != nil {
		return *ptr
	}
	return fallback
}

// openingDegrees is the generated opening angle of the selected leaf.
func (v *viewer) openingDegrees() float64 {
	id := v.app.Selected()
	for _, l := range v.app.Plant().Leaves() {
		if l.ID == id {
			return l.Opening * 180 / math.Pi
		}
	}
	return 0
}
