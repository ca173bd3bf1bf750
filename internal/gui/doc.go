// Package gui implements the GTK4/libadwaita countdown window.
package gui
