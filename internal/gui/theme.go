package gui

import (
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/countdown/internal/theme"
)

// ThemeLoader applies a CSS theme to the default display and hot-reloads
// user theme files.
type ThemeLoader struct {
	logger   *slog.Logger
	provider *gtk.CSSProvider
	watcher  *theme.Watcher
}

// NewThemeLoader creates a loader with an empty CSS provider.
func NewThemeLoader(logger *slog.Logger) *ThemeLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &ThemeLoader{
		logger:   logger,
		provider: gtk.NewCSSProvider(),
	}
}

// Load resolves name and attaches it to the default display. An unknown
// theme falls back to the bundled default.
func (l *ThemeLoader) Load(name string) {
	dir, err := theme.ThemesDir()
	if err != nil {
		l.logger.Warn("failed to get themes directory", "error", err)
		dir = ""
	}

	t, err := theme.Resolve(name, dir)
	if err != nil {
		l.logger.Warn("theme not found, using default",
			"theme", name, "available", theme.ListEmbeddedThemes(), "error", err)
		t, _ = theme.NewEmbeddedTheme(theme.DefaultThemeName)
	}

	l.provider.LoadFromString(t.CSS)

	display := gdk.DisplayGetDefault()
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}
	gtk.StyleContextAddProviderForDisplay(
		display,
		l.provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
	l.logger.Debug("applied theme", "name", t.Name, "path", t.Path)

	if t.Embedded {
		return
	}

	// Watcher callbacks arrive off the main thread.
	l.watcher, err = theme.NewWatcher(t, func(css string) {
		glib.IdleAdd(func() {
			l.provider.LoadFromString(css)
			l.logger.Info("hot-reloaded theme", "name", t.Name)
		})
	}, l.logger)
	if err != nil {
		l.logger.Warn("failed to create theme watcher", "error", err)
		return
	}
	if err := l.watcher.Start(); err != nil {
		l.logger.Warn("failed to start theme watcher", "error", err)
	}
}

// Close stops hot-reloading.
func (l *ThemeLoader) Close() {
	if l.watcher == nil {
		return
	}
	if err := l.watcher.Stop(); err != nil {
		l.logger.Warn("failed to stop theme watcher", "error", err)
	}
	l.watcher = nil
}
