package visual

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrUnknownColorScale is returned for a color scale name that is not registered.
var ErrUnknownColorScale = errors.New("unknown color scale")

// ColorScale is a named sequential palette, low values first.
type ColorScale struct {
	Name  string
	Stops []string // hex, "#rrggbb"
}

// Ten-stop samples of the matplotlib perceptual palettes.
var scales = map[string]ColorScale{
	"viridis": {"Viridis", []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}},
	"plasma":  {"Plasma", []string{"#0d0887", "#41049d", "#6a00a8", "#8f0da4", "#b12a90", "#cc4778", "#e16462", "#f2844b", "#fca636", "#f0f921"}},
	"inferno": {"Inferno", []string{"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4"}},
	"magma":   {"Magma", []string{"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"}},
	"cividis": {"Cividis", []string{"#00224e", "#123570", "#3b496c", "#575d6d", "#707173", "#8a8779", "#a69d75", "#c4b56c", "#e4cf5b", "#fee838"}},
	"greys":   {"Greys", []string{"#ffffff", "#f0f0f0", "#d9d9d9", "#bdbdbd", "#969696", "#737373", "#525252", "#252525", "#000000"}},
}

// LookupScale finds a color scale by name, ignoring case.
func LookupScale(name string) (ColorScale, error) {
	s, ok := scales[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ColorScale{}, fmt.Errorf("%w %q (have %s)", ErrUnknownColorScale, name, strings.Join(ScaleNames(), ", "))
	}
	return s, nil
}

// ScaleNames lists the registered scales.
func ScaleNames() []string {
	names := make([]string, 0, len(scales))
	for _, s := range scales {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// At interpolates the scale at t in [0, 1]. Out-of-range t is clamped.
func (s ColorScale) At(t float64) drawing.Color {
	if len(s.Stops) == 0 {
		return drawing.Color{A: 255}
	}
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	pos := t * float64(len(s.Stops)-1)
	lo := int(math.Floor(pos))
	hi := min(lo+1, len(s.Stops)-1)
	frac := pos - float64(lo)

	a, b := parseHex(s.Stops[lo]), parseHex(s.Stops[hi])
	return drawing.Color{
		R: lerp(a.R, b.R, frac),
		G: lerp(a.G, b.G, frac),
		B: lerp(a.B, b.B, frac),
		A: 255,
	}
}

// HexAt is At formatted as "#rrggbb".
func (s ColorScale) HexAt(t float64) string {
	return Hex(s.At(t))
}

// Hex formats c as "#rrggbb".
func Hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func parseHex(h string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(h, "#"))
}

func lerp(a, b uint8, frac float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*frac))
}
