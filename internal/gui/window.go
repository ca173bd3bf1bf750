package gui

import (
	"log/slog"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/countdown/internal/config"
	"github.com/jmylchreest/countdown/internal/controller"
)

// Toggle button icons.
const (
	IconStart = "media-playback-start-symbolic"
	IconStop  = "media-playback-stop-symbolic"
)

const windowTitle = "Countdown"

// Window is the single countdown screen: a readout label and a start/stop
// button. It implements controller.Display.
type Window struct {
	window *gtk.Window
	label  *gtk.Label
	button *gtk.Button

	ctrl   *controller.Controller
	source *TimeoutSource
	cfg    *config.Config
	logger *slog.Logger
}

// NewWindow builds the window for app. opts.Source is replaced by a GLib
// timeout source.
func NewWindow(app *adw.Application, cfg *config.Config, opts controller.Options) *Window {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w := &Window{
		source: &TimeoutSource{},
		cfg:    cfg,
		logger: logger,
	}

	content := w.buildContent()

	if cfg.GUI.Overlay {
		w.window = gtk.NewWindow()
		w.window.SetApplication(&app.Application)
		w.window.SetDecorated(false)
		w.window.SetResizable(false)
		w.window.SetChild(content)
		w.initOverlay()
	} else {
		win := adw.NewApplicationWindow(&app.Application)
		win.SetTitle(windowTitle)
		win.SetResizable(false)

		outer := gtk.NewBox(gtk.OrientationVertical, 0)
		outer.Append(adw.NewHeaderBar())
		outer.Append(content)
		win.SetContent(outer)

		w.window = &win.Window
	}

	// The controller paints the initial readout, so the widgets must exist.
	opts.Source = w.source
	w.ctrl = controller.New(w, opts)

	w.connectSignals()
	return w
}

// buildContent creates the readout label and the toggle button.
func (w *Window) buildContent() gtk.Widgetter {
	box := gtk.NewBox(gtk.OrientationVertical, 12)
	box.SetMarginTop(24)
	box.SetMarginBottom(24)
	box.SetMarginStart(32)
	box.SetMarginEnd(32)
	box.AddCSSClass("countdown")

	w.label = gtk.NewLabel("")
	w.label.AddCSSClass("title-1")
	w.label.AddCSSClass("numeric")
	box.Append(w.label)

	w.button = gtk.NewButtonFromIconName(IconStart)
	w.button.AddCSSClass("circular")
	w.button.AddCSSClass("suggested-action")
	w.button.SetHAlign(gtk.AlignCenter)
	w.button.SetTooltipText("Start")
	box.Append(w.button)

	return box
}

// connectSignals wires the button, keyboard and visibility signals.
func (w *Window) connectSignals() {
	w.button.ConnectClicked(func() {
		state := w.ctrl.Toggle()
		w.logger.Debug("toggled", "state", state)
	})

	// Visibility scopes the alarm player.
	w.window.ConnectMap(func() {
		w.ctrl.Show()
	})
	w.window.ConnectUnmap(func() {
		w.ctrl.Hide()
	})

	keyCtrl := gtk.NewEventControllerKey()
	keyCtrl.ConnectKeyPressed(func(keyval, _ uint, _ gdk.ModifierType) bool {
		switch keyval {
		case gdk.KEY_q, gdk.KEY_Escape:
			w.window.Close()
			return true
		case gdk.KEY_s:
			w.ctrl.Toggle()
			return true
		}
		return false
	})
	w.window.AddController(keyCtrl)
}

// SetReadout implements controller.Display.
func (w *Window) SetReadout(text string) {
	w.label.SetText(text)
}

// SetRunning implements controller.Display.
func (w *Window) SetRunning(running bool) {
	if running {
		w.button.SetIconName(IconStop)
		w.button.SetTooltipText("Stop")
		w.button.RemoveCSSClass("suggested-action")
		w.button.AddCSSClass("destructive-action")
		return
	}
	w.button.SetIconName(IconStart)
	w.button.SetTooltipText("Start")
	w.button.RemoveCSSClass("destructive-action")
	w.button.AddCSSClass("suggested-action")
}

// Present shows the window.
func (w *Window) Present() {
	w.window.Present()
}

// Close stops the countdown and releases the alarm. The window itself is
// destroyed by the application.
func (w *Window) Close() {
	w.ctrl.Close()
}
