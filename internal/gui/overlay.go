package gui

import (
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"

	"github.com/jmylchreest/countdown/internal/config"
)

const overlayNamespace = "countdown"

// initOverlay turns the window into a layer-shell surface pinned to the
// configured corner.
func (w *Window) initOverlay() {
	layershell.InitForWindow(w.window)
	layershell.SetLayer(w.window, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(w.window, 0) // Don't reserve space
	layershell.SetKeyboardMode(w.window, layershell.LayerShellKeyboardModeOnDemand)
	layershell.SetNamespace(w.window, overlayNamespace)

	w.updateAnchorPosition()
}

// updateAnchorPosition sets the layer-shell anchors and margins based on config.
func (w *Window) updateAnchorPosition() {
	pos := config.Position(w.cfg.GUI.Position)
	offsetX := w.cfg.GUI.OffsetX
	offsetY := w.cfg.GUI.OffsetY

	// Reset all anchors first
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeTop, false)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeBottom, false)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeLeft, false)
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeRight, false)

	vertical := layershell.LayerShellEdgeTop
	if pos == config.PositionBottomLeft || pos == config.PositionBottomRight {
		vertical = layershell.LayerShellEdgeBottom
	}
	horizontal := layershell.LayerShellEdgeRight
	if pos == config.PositionTopLeft || pos == config.PositionBottomLeft {
		horizontal = layershell.LayerShellEdgeLeft
	}

	layershell.SetAnchor(w.window, vertical, true)
	layershell.SetAnchor(w.window, horizontal, true)
	layershell.SetMargin(w.window, vertical, offsetY)
	layershell.SetMargin(w.window, horizontal, offsetX)

	w.logger.Debug("overlay anchored", "position", pos, "offset_x", offsetX, "offset_y", offsetY)
}
