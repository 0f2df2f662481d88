package gui

import (
	_ "embed"
	"log/slog"
	"strings"

	. "modernc.org/tk9.0"
)

//go:embed assets/appicon.svg
var appIconSVG string

// applyAppIcon sets the window icon from the embedded refs glyph.
func applyAppIcon() {
	svg := strings.TrimSpace(appIconSVG)
	if svg == "" {
		slog.Debug("app icon missing")
		return
	}
	if img := NewPhoto(Data(svg)); img != nil {
		App.IconPhoto(img)
	}
}
