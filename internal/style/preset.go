package style

import (
	"fmt"
	"strings"
)

// Preset names an atomically applied bundle of style values.
type Preset string

const (
	PresetClassic  Preset = "classic"
	PresetSoft     Preset = "soft"
	PresetContrast Preset = "contrast"
	PresetFlag     Preset = "flag"
)

// Presets lists every preset in display order.
var Presets = []Preset{PresetClassic, PresetSoft, PresetContrast, PresetFlag}

// Fixed flag colors.
const (
	FlagRed   = "#ED1C24"
	FlagWhite = "#FFFFFF"
	FlagGreen = "#00923F"
)

// ParsePreset validates a preset identifier.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Presets {
		if v == p {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown preset %q", s)
}

// ApplyPreset returns a complete style for the preset. Every preset field is
// replaced and BackgroundTransparent is always false. Unknown identifiers
// resolve to classic.
func ApplyPreset(p Preset, theme Theme) RenderStyle {
	s := RenderStyle{PresetID: p, Theme: theme}

	switch p {
	case PresetSoft:
		fg, bg := "#1e293b", "#f4f4f5"
		if theme.dark() {
			fg, bg = "#e5e7eb", "#020617"
		}
		s.PrimaryColor, s.SecondaryColor, s.BackgroundColor = fg, fg, bg
		s.ModuleShape, s.EyeShape = ShapeRounded, ShapeRounded
		s.GradientMode = GradientSolid

	case PresetContrast:
		bg := "#0f172a"
		if theme.dark() {
			bg = "#020617"
		}
		s.PrimaryColor, s.SecondaryColor, s.BackgroundColor = "#22c55e", "#16a34a", bg
		s.ModuleShape, s.EyeShape = ShapeDots, ShapeSquare
		s.EyeColor = "#ffffff"
		s.GradientMode = GradientLinear

	case PresetFlag:
		// Eye colors are left unset so the rasterizer colors the corners.
		s.PrimaryColor, s.SecondaryColor, s.BackgroundColor = FlagRed, FlagGreen, FlagWhite
		s.ModuleShape, s.EyeShape = ShapeSquare, ShapeSquare
		s.GradientMode = GradientLinear

	default:
		s.PresetID = PresetClassic
		s.PrimaryColor, s.SecondaryColor, s.BackgroundColor = "#000000", "#000000", "#ffffff"
		s.ModuleShape, s.EyeShape = ShapeSquare, ShapeSquare
		s.GradientMode = GradientSolid
	}
	return s
}
