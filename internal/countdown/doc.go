// Package countdown provides the countdown engine: a two-state timer that
// emits periodic tick events and a single finish event. Ticks are driven by a
// pluggable TickSource so the same engine runs under the bubbletea update
// loop, the GTK main loop, or a plain goroutine event loop.
package countdown
