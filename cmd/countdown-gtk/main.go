// Package main is the entry point for the countdown GTK window.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"

	"github.com/jmylchreest/countdown/internal/alert"
	"github.com/jmylchreest/countdown/internal/config"
	"github.com/jmylchreest/countdown/internal/controller"
	"github.com/jmylchreest/countdown/internal/gui"
)

const (
	appID   = "io.github.jmylchreest.countdown"
	appName = "countdown"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	configPath := flag.String("config", "", "Config file (default $XDG_CONFIG_HOME/countdown/config.toml)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("countdown-gtk version", version)
		os.Exit(0)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	os.Exit(run(cfg, logger))
}

func run(cfg *config.Config, logger *slog.Logger) int {
	app := adw.NewApplication(appID, 0)

	player := alert.NewPlayer(nil, logger)
	visibility := alert.NewVisibility(player, alert.AssetFromPath(cfg.Alert.Sound), logger)

	var notifier *alert.DesktopNotifier
	opts := controller.Options{
		Alarm:  visibility,
		Logger: logger,
	}
	if cfg.Alert.Notify {
		notifier = alert.NewDesktopNotifier(appName, logger)
		opts.Notifier = notifier
	}

	var (
		window *gui.Window
		themes *gui.ThemeLoader
	)

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		glib.IdleAdd(func() {
			app.Quit()
		})
	}()

	app.ConnectActivate(func() {
		if window != nil {
			window.Present()
			return
		}
		themes = gui.NewThemeLoader(logger)
		themes.Load(cfg.GUI.Theme)
		window = gui.NewWindow(app, cfg, opts)
		window.Present()
	})

	app.ConnectShutdown(func() {
		if window != nil {
			window.Close()
		}
		// Covers a window that was never mapped.
		visibility.Hide()
		if themes != nil {
			themes.Close()
		}
		if notifier != nil {
			if err := notifier.Close(); err != nil {
				logger.Warn("error closing notifier", "error", err)
			}
		}
		signal.Stop(sigCh)
	})

	return app.Run(append([]string{os.Args[0]}, flag.Args()...))
}
