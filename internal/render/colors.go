package render

import (
	"image/color"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Named stroke colors used by the drawable palette.
var namedColors = map[string]string{
	"red":    "#ff0000",
	"blue":   "#0000ff",
	"green":  "#008000",
	"orange": "#ffa500",
	"black":  "#000000",
	"gray":   "#808080",
}

// cssHex resolves a color name or "#rrggbb" string to hex. Unknown names
// fall back to black.
func cssHex(name string) string {
	if strings.HasPrefix(name, "#") {
		return name
	}
	if h, ok := namedColors[strings.ToLower(name)]; ok {
		return h
	}
	return namedColors["black"]
}

func toColor(name string) color.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(cssHex(name), "#"))
}
