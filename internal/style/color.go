package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses #rgb, #rrggbb and #rrggbbaa (leading # optional) and
// the keyword "transparent".
func ParseHexColor(param string) (color.NRGBA, error) {
	v := strings.TrimSpace(param)
	if strings.EqualFold(v, "transparent") {
		return color.NRGBA{}, nil
	}
	v = strings.TrimPrefix(v, "#")

	if len(v) == 3 {
		v = string([]byte{v[0], v[0], v[1], v[1], v[2], v[2]})
	}
	if len(v) == 6 {
		v += "ff"
	}
	if len(v) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", param)
	}

	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", param)
	}
	return color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// parseOr returns the parsed color, or def when param is empty or invalid.
func parseOr(param string, def color.NRGBA) color.NRGBA {
	if param == "" {
		return def
	}
	c, err := ParseHexColor(param)
	if err != nil {
		return def
	}
	return c
}

// Hex formats c as #rrggbb, or #rrggbbaa when not fully opaque.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// SameColor compares two color strings case-insensitively.
func SameColor(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
