package style

import (
	"image/color"
	"strings"
)

// Theme is the host's light/dark signal. It only picks default colors.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps anything other than "dark" to ThemeLight.
func ParseTheme(s string) Theme {
	if strings.EqualFold(strings.TrimSpace(s), string(ThemeDark)) {
		return ThemeDark
	}
	return ThemeLight
}

func (t Theme) dark() bool { return t == ThemeDark }

// DefaultForeground is used when the primary color is unset.
func (t Theme) DefaultForeground() color.NRGBA {
	if t.dark() {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.NRGBA{A: 0xff}
}

// DefaultBackground is used when the background color is unset.
func (t Theme) DefaultBackground() color.NRGBA {
	if t.dark() {
		return color.NRGBA{R: 0x02, G: 0x06, B: 0x17, A: 0xff}
	}
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

// Resolved colors for a style. Unset or unparsable fields take defaults.
type Resolved struct {
	Primary    color.NRGBA
	Secondary  color.NRGBA
	Background color.NRGBA
	// Eye is nil when the style leaves the eye color unset.
	Eye *color.NRGBA
}

// Resolve turns the color strings of s into concrete colors.
func (s RenderStyle) Resolve() Resolved {
	primary := parseOr(s.PrimaryColor, s.Theme.DefaultForeground())
	r := Resolved{
		Primary:    primary,
		Secondary:  parseOr(s.SecondaryColor, primary),
		Background: parseOr(s.BackgroundColor, s.Theme.DefaultBackground()),
	}
	if s.EyeColor != "" {
		if c, err := ParseHexColor(s.EyeColor); err == nil {
			r.Eye = &c
		}
	}
	return r
}

// EffectiveBackground is the logo frame fill: the resolved background, or in
// transparent mode the theme's fallback color.
func (s RenderStyle) EffectiveBackground() color.NRGBA {
	if s.BackgroundTransparent {
		return s.Theme.DefaultBackground()
	}
	return s.Resolve().Background
}
