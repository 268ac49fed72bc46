package qrcode

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// parseHexColor accepts #RGB, #RGBA, #RRGGBB and #RRGGBBAA.
func parseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 || len(hex) == 4 {
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 || !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// svgColor renders c as #rrggbb plus an opacity value.
func svgColor(c color.NRGBA) (string, string) {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), strconv.FormatFloat(float64(c.A)/255, 'f', -1, 64)
}
