// Package ui is an interactive Gio viewer for the movement bounds engine.
//
// The canvas shows the movement area, the content under its current state
// and the legal range of the content origin. Dragging pans with overscroll and
// snaps back on release, scrolling zooms about the pointer, and the toolbar
// switches gravity and fit or loads scene and settings files.
package ui

import (
	"fmt"
	"image"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/x/explorer"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"

	"github.com/OpenTraceLab/panzoom/pkg/controller"
	"github.com/OpenTraceLab/panzoom/pkg/settings"
	"github.com/OpenTraceLab/panzoom/pkg/state"
)

// maxLogLines is how many log entries the log strip keeps.
const maxLogLines = 6

// Options configure a viewer.
type Options struct {
	// ConfigPath is where Save writes settings. Empty disables saving.
	ConfigPath string
	// Verbose mirrors log entries to the standard logger.
	Verbose bool
}

// App drives the viewer window.
type App struct {
	window   *app.Window
	ops      op.Ops
	gvTheme  *theme.Theme
	explorer *explorer.Explorer
	opts     Options

	settings *settings.Settings
	ctrl     *controller.Controller
	st       state.State
	sized    bool

	dragging bool
	lastPos  f32.Point

	// work queued from file picker goroutines, run on the event loop
	pending chan func()

	logMu sync.Mutex
	logs  []string

	resetBtn    widget.Clickable
	rotateBtn   widget.Clickable
	fitBtn      widget.Clickable
	openBtn     widget.Clickable
	saveBtn     widget.Clickable
	gravityBtn  widget.Clickable
	gravityMenu *menu.DropdownMenu
	icons       toolbarIcons
}

// New creates a viewer showing content as configured by cfg. The viewport
// size in cfg is replaced by the canvas size once the window is laid out.
func New(w *app.Window, cfg *settings.Settings, opts Options) *App {
	if w == nil {
		w = new(app.Window)
	}
	if cfg == nil {
		cfg = settings.Default()
	}

	a := &App{
		window:   w,
		gvTheme:  theme.NewTheme("", nil, true),
		explorer: explorer.NewExplorer(w),
		opts:     opts,
		settings: cfg,
		st:       state.New(),
		pending:  make(chan func(), 4),
	}
	a.ctrl = controller.New(cfg, log.New(logSink{a}, "", 0))
	a.icons = loadIcons()
	a.gravityMenu = a.buildGravityMenu()

	a.Logf("[VIEWER] content %v, gravity %v, fit %v", cfg.ContentSize(), cfg.Gravity, cfg.Fit)
	return a
}

// Run processes window events until the window is closed or the user quits.
func (a *App) Run() error {
	for {
		e := a.window.Event()
		a.explorer.ListenEvents(e)
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.runPending()
			if a.layout(gtx) {
				return nil
			}
			ev.Frame(gtx.Ops)
		}
	}
}

// Logf appends a timestamped entry to the log strip. It is safe to call from
// any goroutine.
func (a *App) Logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	entry := fmt.Sprintf("[%s] %s", time.Now().Format(time.StampMilli), msg)

	a.logMu.Lock()
	a.logs = append(a.logs, entry)
	if len(a.logs) > maxLogLines {
		a.logs = a.logs[len(a.logs)-maxLogLines:]
	}
	a.logMu.Unlock()

	if a.opts.Verbose {
		log.Print(msg)
	}
	a.window.Invalidate()
}

func (a *App) logLines() []string {
	a.logMu.Lock()
	defer a.logMu.Unlock()
	return append([]string(nil), a.logs...)
}

// post queues fn to run on the event loop before the next frame.
func (a *App) post(fn func()) {
	a.pending <- fn
	a.window.Invalidate()
}

func (a *App) runPending() {
	for {
		select {
		case fn := <-a.pending:
			fn()
		default:
			return
		}
	}
}

// layout draws a frame and reports whether the user asked to quit.
func (a *App) layout(gtx layout.Context) bool {
	paint.FillShape(gtx.Ops, a.gvTheme.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	quit := false
	layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(a.layoutToolbar),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			dims, q := a.layoutCanvas(gtx)
			quit = q
			return dims
		}),
		layout.Rigid(a.layoutLog),
	)
	return quit
}

// resize adopts the canvas size as the viewport.
func (a *App) resize(size image.Point) {
	if a.settings.ViewportSize().Point() == size && a.sized {
		return
	}
	a.settings.SetViewport(size.X, size.Y)
	if !a.sized {
		a.sized = true
		a.ctrl.ResetState(&a.st)
		return
	}
	a.ctrl.RestrictStateBounds(&a.st, false, false)
}

// logSink routes a log.Logger into the log strip.
type logSink struct{ a *App }

func (s logSink) Write(p []byte) (int, error) {
	s.a.Logf("%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func windowTitle(path string) string {
	if path == "" {
		return "panzoom viewer"
	}
	return "panzoom viewer - " + path
}

// Main opens a window and runs the viewer until it closes, then exits the
// process. It must be called from the main goroutine and does not return.
func Main(cfg *settings.Settings, opts Options) {
	go func() {
		w := new(app.Window)
		w.Option(app.Title(windowTitle(opts.ConfigPath)), app.Size(unit.Dp(1000), unit.Dp(760)))

		if err := New(w, cfg, opts).Run(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
