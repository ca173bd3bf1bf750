// Package alert provides the countdown alarm: a single-stream playback pool
// built on the beep library, a built-in synthesized bell, WAV/OGG/MP3 file
// assets, visibility-scoped sessions, and an optional desktop notification.
package alert
