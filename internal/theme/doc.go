// Package theme resolves the CSS themes used by the countdown window and
// watches user theme files for changes.
package theme
