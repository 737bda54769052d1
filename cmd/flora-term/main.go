// Command flora-term grows a plant in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/flora/internal/app"
	"github.com/Faultbox/flora/internal/config"
	"github.com/Faultbox/flora/internal/logger"
	"github.com/Faultbox/flora/internal/preview"
)

const frameInterval = 33 * time.Millisecond

type term struct {
	screen tcell.Screen
	canvas *preview.Canvas
	app    *app.App
	log    *zap.Logger

	param   int
	leaf    int
	buttons tcell.ButtonMask
}

func main() {
	flags := config.BindFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config:\n%v\n", err)
		os.Exit(1)
	}

	// Console logging would tear the screen, so only the file sink is used.
	logOpts := logger.Options{Level: cfg.Logging.Level}
	if cfg.Logging.LogFile != "" {
		logOpts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(logOpts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts, err := cfg.PlantOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	opts.Logger = logger.Named("plant")

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()

	a := app.New(cfg.Plant, opts, logger.Named("app"))
	a.SetPaused(cfg.Animation.Paused)
	t := &term{
		screen: screen,
		canvas: preview.NewCanvas(screen, nil, float32(a.Config().Height)),
		app:    a,
		log:    logger.Named("term"),
	}

	t.run()
	screen.Fini()
	logger.Info("terminal viewer closed", zap.Int64("seed", a.Config().Seed))
}

func (t *term) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	start := time.Now()
	last := start
	for {
		select {
		case ev := <-eventChan:
			if !t.handle(ev) {
				return
			}

		case now := <-ticker.C:
			t.app.Frame(now.Sub(start).Seconds(), now.Sub(last).Seconds())
			last = now
			t.canvas.Status = t.status()
			if err := t.app.Render(t.canvas); err != nil {
				t.log.Error("render failed", zap.Error(err))
				return
			}
		}
	}
}

func (t *term) status() string {
	p := app.Params[t.param]
	val, _ := t.app.Param(p)
	sel := "-"
	if id := t.app.Selected(); id != "" {
		sel = id
	}
	return fmt.Sprintf(" seed %d  growth %3.0f%%  %s=%g  leaf %s  [r]egen [space]pause [tab]leaf [q]uit",
		t.app.Config().Seed, t.app.Growth()*100, p, val, sel)
}

// handle processes one event and reports whether to keep running.
func (t *term) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()

	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0 && t.buttons&tcell.Button1 == 0
		t.buttons = ev.Buttons()
		if pressed {
			x, y := ev.Position()
			t.app.HandleLeafHit(t.canvas.HitAt(x, y))
		}

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape:
			if t.app.Selected() != "" {
				t.app.HandleLeafHit("")
				return true
			}
			return false
		case tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			t.param = (t.param + len(app.Params) - 1) % len(app.Params)
		case tcell.KeyDown:
			t.param = (t.param + 1) % len(app.Params)
		case tcell.KeyLeft:
			t.nudge(-1)
		case tcell.KeyRight:
			t.nudge(1)
		case tcell.KeyTab:
			t.cycleLeaf()
		case tcell.KeyRune:
			return t.handleRune(ev.Rune())
		}
	}
	return true
}

func (t *term) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'r':
		t.app.Regenerate(0)
	case ' ':
		t.app.TogglePause()
	case 'h':
		t.canvas.Yaw -= 0.2
	case 'l':
		t.canvas.Yaw += 0.2
	case '+', '-':
		size := 1.0
		if ov, ok := t.app.Overrides()[t.app.Selected()]; ok && ov.Size != nil {
			size = *ov.Size
		}
		if r == '-' {
			size -= 0.1
		} else {
			size += 0.1
		}
		t.app.SetLeafSize(size)
	case 'x':
		t.app.ResetLeaf()
	}
	return true
}

func (t *term) nudge(steps float64) {
	p := app.Params[t.param]
	cur, err := t.app.Param(p)
	if err != nil {
		return
	}
	if _, err := t.app.SetParam(p, cur+steps*app.ParamRanges[p].Step); err != nil {
		t.log.Warn("parameter edit rejected", zap.String("param", string(p)), zap.Error(err))
	}
	if p == app.ParamHeight {
		t.canvas.Frame(float32(t.app.Config().Height))
	}
}

// cycleLeaf selects the next leaf in branch order.
func (t *term) cycleLeaf() {
	leaves := t.app.Plant().Leaves()
	if len(leaves) == 0 {
		return
	}
	t.leaf = (t.leaf + 1) % len(leaves)
	id := leaves[t.leaf].ID
	if id == t.app.Selected() {
		return
	}
	t.app.HandleLeafHit(id)
}
