// Package app owns the plant parameters, the per-leaf overrides and the
// current selection, and drives a plant.Plant once per frame.
package app

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/flora/internal/plant"
	"github.com/Faultbox/flora/internal/scene"
)

// Renderer draws one frame of the scene.
type Renderer interface {
	Render(items []scene.DrawItem) error
}

// App is the configuration owner. It is not safe for concurrent use; every
// method runs on the host's frame loop.
type App struct {
	log   *zap.Logger
	plant *plant.Plant
	now   func() time.Time

	cfg       plant.Config
	overrides plant.Overrides
	selected  string
	paused    bool
}

// New creates an app and generates the first plant. A zero seed is
// replaced by the wall clock.
func New(cfg plant.Config, opts plant.Options, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Logger == nil {
		opts.Logger = log.Named("plant")
	}
	a := &App{
		log:       log,
		plant:     plant.New(opts),
		now:       time.Now,
		overrides: make(plant.Overrides),
	}
	if cfg.Seed == 0 {
		cfg.Seed = a.clockSeed()
	}
	a.apply(cfg)
	return a
}

func (a *App) clockSeed() int64 {
	return a.now().UnixMilli()
}

// apply hands cfg to the plant. A seed change discards overrides and
// selection.
func (a *App) apply(cfg plant.Config) {
	change := a.plant.Configure(cfg)
	if change.Has(plant.ChangeSeed) {
		clear(a.overrides)
		a.selected = ""
	}
	a.cfg = a.plant.Config()
}

// Frame advances the plant by one host frame.
func (a *App) Frame(elapsed, delta float64) {
	if a.paused {
		delta = 0
	}
	a.plant.Update(plant.Frame{
		Elapsed:   elapsed,
		Delta:     delta,
		Overrides: a.overrides,
		Selected:  a.selected,
	})
}

// Render submits the visible draw list.
func (a *App) Render(r Renderer) error {
	if !a.plant.Configured() {
		return nil
	}
	if err := r.Render(a.plant.Graph().DrawList()); err != nil {
		return fmt.Errorf("rendering frame: %w", err)
	}
	return nil
}

// Regenerate switches to a new seed, or the wall clock when seed is 0.
func (a *App) Regenerate(seed int64) {
	if seed == 0 {
		seed = a.clockSeed()
	}
	if seed == a.cfg.Seed {
		seed++
	}
	cfg := a.cfg
	cfg.Seed = seed
	cfg.ID = ""
	a.apply(cfg)
	a.log.Info("regenerated", zap.Int64("seed", seed), zap.Int("branches", len(a.plant.Branches())))
}

// SetConfig replaces the whole parameter set.
func (a *App) SetConfig(cfg plant.Config) {
	if cfg.Seed != a.cfg.Seed {
		cfg.ID = ""
	}
	a.apply(cfg)
}

// SetParam clamps v into the parameter's range, applies it and returns the
// value actually used.
func (a *App) SetParam(p Param, v float64) (float64, error) {
	r, ok := ParamRanges[p]
	if !ok {
		return 0, fmt.Errorf("unknown parameter %q", p)
	}
	v = r.Clamp(v)
	cfg := a.cfg
	setParam(&cfg, p, v)
	a.apply(cfg)
	return v, nil
}

// Param returns the current value of p.
func (a *App) Param(p Param) (float64, error) {
	return getParam(a.cfg, p)
}

// SetGradient sets the petal gradient colors.
func (a *App) SetGradient(base, tip string) error {
	for _, c := range []string{base, tip} {
		if _, err := colorful.Hex(c); err != nil {
			return fmt.Errorf("invalid gradient color %q: %w", c, err)
		}
	}
	cfg := a.cfg
	cfg.PetalGradientStart = base
	cfg.PetalGradientEnd = tip
	a.apply(cfg)
	return nil
}

// HandleLeafHit reacts to a click on a leaf. The first selection of a leaf
// creates an empty override for it; hitting the selected leaf again or
// hitting nothing ("") clears the selection.
func (a *App) HandleLeafHit(id string) {
	if id == "" || id == a.selected {
		a.selected = ""
		return
	}
	a.selected = id
	if _, ok := a.overrides[id]; !ok {
		a.overrides[id] = plant.LeafOverride{}
	}
	a.log.Debug("leaf selected", zap.String("leaf", id))
}

// SetLeafSize sets the selected leaf's size multiplier.
func (a *App) SetLeafSize(size float64) bool {
	return a.editSelected(func(o *plant.LeafOverride) {
		v := LeafSizeRange.Clamp(size)
		o.Size = &v
	})
}

// SetLeafAngle sets the selected leaf's opening angle in degrees.
func (a *App) SetLeafAngle(deg float64) bool {
	return a.editSelected(func(o *plant.LeafOverride) {
		v := LeafAngleRange.Clamp(deg)
		o.Angle = &v
	})
}

// SetLeafColor sets the selected leaf's color. Invalid colors are rejected.
func (a *App) SetLeafColor(hex string) error {
	if _, err := colorful.Hex(hex); err != nil {
		return fmt.Errorf("invalid leaf color %q: %w", hex, err)
	}
	if !a.editSelected(func(o *plant.LeafOverride) { o.Color = &hex }) {
		return fmt.Errorf("no leaf selected")
	}
	return nil
}

// ResetLeaf drops the selected leaf's override values but keeps it selected.
func (a *App) ResetLeaf() bool {
	return a.editSelected(func(o *plant.LeafOverride) { *o = plant.LeafOverride{} })
}

func (a *App) editSelected(fn func(*plant.LeafOverride)) bool {
	if a.selected == "" {
		return false
	}
	o := a.overrides[a.selected]
	fn(&o)
	a.overrides[a.selected] = o
	return true
}

// TogglePause freezes growth. Wind keeps moving.
func (a *App) TogglePause() bool {
	a.paused = !a.paused
	return a.paused
}

// SetPaused sets the pause state.
func (a *App) SetPaused(p bool) { a.paused = p }

// Paused reports whether growth is frozen.
func (a *App) Paused() bool { return a.paused }

// Config returns the normalized parameters in use.
func (a *App) Config() plant.Config { return a.cfg }

// Overrides returns the live override map. Callers must not keep it across
// a Regenerate.
func (a *App) Overrides() plant.Overrides { return a.overrides }

// Selected returns the selected leaf id, or "".
func (a *App) Selected() string { return a.selected }

// Growth returns the plant's growth progress.
func (a *App) Growth() float64 { return a.plant.Growth() }

// Plant exposes the driven plant.
func (a *App) Plant() *plant.Plant { return a.plant }
