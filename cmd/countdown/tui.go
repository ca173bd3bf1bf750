package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/countdown/internal/alert"
	"github.com/jmylchreest/countdown/internal/config"
	"github.com/jmylchreest/countdown/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive countdown",
	Long: `Launch the interactive terminal countdown.

The screen shows the remaining time as M:SS, a progress bar and the
start/stop toggle (▶ when idle, ■ while running). The alarm is held
while the terminal has focus and released when it loses focus or is
suspended; the countdown keeps running either way.

Key bindings:
  space, enter, s   Start/stop
  ctrl+z            Suspend
  ?                 Show help
  q                 Quit

Use --log-file to capture logs while the TUI owns the terminal.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	c := getConfig()

	player := alert.NewPlayer(nil, logger)
	opts := tui.RunOptions{
		Config: c,
		Alarm:  alert.NewVisibility(player, alert.AssetFromPath(c.Alert.Sound), logger),
		Logger: logger,
	}

	if n := newNotifier(c); n != nil {
		defer closeNotifier(n)
		opts.Notifier = n
	}

	return tui.Run(opts)
}

// newNotifier returns the desktop notifier when enabled in config.
func newNotifier(c *config.Config) *alert.DesktopNotifier {
	if !c.Alert.Notify {
		return nil
	}
	return alert.NewDesktopNotifier("countdown", logger)
}

func closeNotifier(n *alert.DesktopNotifier) {
	if err := n.Close(); err != nil {
		logger.Warn("error closing notifier", "error", err)
	}
}
