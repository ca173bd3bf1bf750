package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/countdown/internal/alert"
	"github.com/jmylchreest/countdown/internal/controller"
	"github.com/jmylchreest/countdown/internal/countdown"
	"github.com/jmylchreest/countdown/internal/tui"
)

var runOpts struct {
	plain  bool
	silent bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one countdown without a UI",
	Long: `Start a countdown immediately and print the remaining time.

The readout is rewritten in place, or printed once per second with --plain.
When the countdown reaches 0:00 the alarm plays and the command exits after
the clip ends. Interrupting (ctrl+c) stops the countdown without the alarm.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runOpts.plain, "plain", false,
		"Print one line per second instead of updating in place")
	runCmd.Flags().BoolVar(&runOpts.silent, "silent", false,
		"Do not open the audio device")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := getConfig()
	opts := runnerOptions{
		Plain:  runOpts.plain,
		Logger: logger,
	}
	if !runOpts.silent {
		opts.Alarm = alert.NewVisibility(alert.NewPlayer(nil, logger), alert.AssetFromPath(c.Alert.Sound), logger)
	}
	if n := newNotifier(c); n != nil {
		defer closeNotifier(n)
		opts.Notifier = n
	}

	_, err := runCountdown(ctx, cmd.OutOrStdout(), opts)
	return err
}

// ringer is an alarm whose clip length is known, so the caller can wait for
// it to finish.
type ringer interface {
	controller.Alarm
	Length() time.Duration
}

type runnerOptions struct {
	Plain    bool
	Alarm    ringer
	Notifier controller.Notifier
	Logger   *slog.Logger

	// Source builds the tick source from the loop's post function. Nil
	// uses a wall-clock Ticker.
	Source func(post func(func())) countdown.TickSource
	Clock  countdown.Clock
}

// runCountdown runs a single countdown on a private event loop. It reports
// whether the countdown finished; cancelling ctx stops it silently.
func runCountdown(ctx context.Context, out io.Writer, opts runnerOptions) (bool, error) {
	loop := countdown.NewLoop(16)

	var source countdown.TickSource
	if opts.Source != nil {
		source = opts.Source(loop.Post)
	} else {
		source = countdown.NewTicker(loop.Post)
	}

	display := &lineDisplay{out: out, plain: opts.Plain, done: loop.Quit}
	ctrlOpts := controller.Options{
		Source:   source,
		Notifier: opts.Notifier,
		Clock:    opts.Clock,
		Logger:   opts.Logger,
	}
	if opts.Alarm != nil {
		ctrlOpts.Alarm = opts.Alarm
	}
	ctrl := controller.New(display, ctrlOpts)

	ctrl.Show()
	defer ctrl.Close()

	loop.Post(func() { ctrl.Toggle() })
	err := loop.Run(ctx)

	// The loop has exited, so this goroutine owns the engine now.
	ctrl.Stop()
	display.finishLine()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(out, "stopped")
			return false, nil
		}
		return false, err
	}

	// Let the alarm play out before releasing the device.
	if opts.Alarm != nil {
		if length := opts.Alarm.Length(); length > 0 {
			timer := time.NewTimer(length + alert.DefaultLatency)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
			}
		}
	}
	return true, nil
}

// lineDisplay prints the readout to a terminal or pipe. It calls done when
// the toggle returns to idle.
type lineDisplay struct {
	out     io.Writer
	plain   bool
	last    string
	running bool
	done    func()
}

func (d *lineDisplay) SetReadout(text string) {
	if text == d.last {
		return
	}
	d.last = text
	d.render()
}

func (d *lineDisplay) SetRunning(running bool) {
	wasRunning := d.running
	d.running = running
	if !d.plain {
		d.render()
	}
	if wasRunning && !running && d.done != nil {
		d.done()
	}
}

func (d *lineDisplay) render() {
	if d.plain {
		fmt.Fprintln(d.out, d.last)
		return
	}
	glyph := tui.GlyphStart
	if d.running {
		glyph = tui.GlyphStop
	}
	fmt.Fprintf(d.out, "\r\033[K%s %s", glyph, d.last)
}

// finishLine ends an in-place readout.
func (d *lineDisplay) finishLine() {
	if !d.plain {
		fmt.Fprintln(d.out)
	}
}
