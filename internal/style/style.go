// Package style describes how a QR matrix is painted: colors, module and eye
// shapes, gradient fill and the logo overlay. Values are plain snapshots that
// callers pass by value into every render.
package style

import (
	"fmt"
	"strings"
)

// Shape is the geometry drawn for one dark module.
type Shape string

const (
	ShapeSquare  Shape = "square"
	ShapeRounded Shape = "rounded"
	ShapeDots    Shape = "dots"
	ShapePill    Shape = "pill"
	ShapeDiamond Shape = "diamond"
	ShapeCircle  Shape = "circle"
)

// ModuleShapes lists the shapes selectable for data modules.
var ModuleShapes = []Shape{ShapeSquare, ShapeRounded, ShapeDots, ShapePill, ShapeDiamond}

// EyeShapes lists the shapes selectable for finder-pattern modules.
var EyeShapes = []Shape{ShapeSquare, ShapeRounded, ShapeCircle, ShapeDiamond}

// GradientMode selects the fill of data modules.
type GradientMode string

const (
	GradientSolid  GradientMode = "solid"
	GradientLinear GradientMode = "linear"
	GradientRadial GradientMode = "radial"
)

// RenderStyle is an immutable styling snapshot. Empty color strings mean
// "unset": PrimaryColor and BackgroundColor fall back to theme defaults,
// SecondaryColor falls back to the primary color and EyeColor follows the
// primary color (or the flag preset's fixed corner colors).
type RenderStyle struct {
	PrimaryColor          string       `json:"primaryColor"`
	SecondaryColor        string       `json:"secondaryColor"`
	BackgroundColor       string       `json:"backgroundColor"`
	BackgroundTransparent bool         `json:"backgroundTransparent"`
	ModuleShape           Shape        `json:"moduleShape"`
	EyeShape              Shape        `json:"eyeShape"`
	EyeColor              string       `json:"eyeColor,omitempty"`
	GradientMode          GradientMode `json:"gradientMode"`
	PresetID              Preset       `json:"presetId"`
	Theme                 Theme        `json:"theme"`
}

// LogoConfig controls the optional center logo.
type LogoConfig struct {
	// Image holds the encoded logo bytes in any decodable format. Nil means no logo.
	Image        []byte  `json:"-"`
	ScalePercent float64 `json:"scalePercent"`
	Framed       bool    `json:"framed"`
	Opacity      float64 `json:"opacity"`
}

// HasImage reports whether a logo was supplied.
func (l LogoConfig) HasImage() bool { return len(l.Image) > 0 }

// DefaultLogo is the logo configuration a fresh session starts with.
func DefaultLogo() LogoConfig {
	return LogoConfig{ScalePercent: 20, Framed: true, Opacity: 1}
}

// Default returns the classic preset in the given theme.
func Default(theme Theme) RenderStyle {
	return ApplyPreset(PresetClassic, theme)
}

func contains(set []Shape, s Shape) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// ParseModuleShape validates a data-module shape name.
func ParseModuleShape(s string) (Shape, error) {
	v := Shape(strings.ToLower(strings.TrimSpace(s)))
	if !contains(ModuleShapes, v) {
		return "", fmt.Errorf("unsupported module shape %q", s)
	}
	return v, nil
}

// ParseEyeShape validates an eye shape name.
func ParseEyeShape(s string) (Shape, error) {
	v := Shape(strings.ToLower(strings.TrimSpace(s)))
	if !contains(EyeShapes, v) {
		return "", fmt.Errorf("unsupported eye shape %q", s)
	}
	return v, nil
}

// ParseGradientMode validates a gradient mode name.
func ParseGradientMode(s string) (GradientMode, error) {
	switch v := GradientMode(strings.ToLower(strings.TrimSpace(s))); v {
	case GradientSolid, GradientLinear, GradientRadial:
		return v, nil
	default:
		return "", fmt.Errorf("unsupported gradient mode %q", s)
	}
}

// Validate checks enum fields and that every set color parses.
func (s RenderStyle) Validate() error {
	if !contains(ModuleShapes, s.ModuleShape) {
		return fmt.Errorf("unsupported module shape %q", s.ModuleShape)
	}
	if !contains(EyeShapes, s.EyeShape) {
		return fmt.Errorf("unsupported eye shape %q", s.EyeShape)
	}
	if _, err := ParseGradientMode(string(s.GradientMode)); err != nil {
		return err
	}
	for name, c := range map[string]string{
		"primary":    s.PrimaryColor,
		"secondary":  s.SecondaryColor,
		"background": s.BackgroundColor,
		"eye":        s.EyeColor,
	} {
		if c == "" {
			continue
		}
		if _, err := ParseHexColor(c); err != nil {
			return fmt.Errorf("%s color: %w", name, err)
		}
	}
	return nil
}
