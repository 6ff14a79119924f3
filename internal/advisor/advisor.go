// Package advisor estimates whether a styled QR code is likely to scan. It is
// a heuristic over the configuration only and never inspects pixels.
package advisor

import "github.com/cristianadrielbraun/qrstudio/internal/style"

// Label is the advisory verdict.
type Label string

const (
	Good  Label = "Good"
	Risky Label = "Risky"
)

// MaxSafeLogoScale is the largest logo scale, in percent, still considered safe.
const MaxSafeLogoScale = 22.0

const (
	reasonRisky = "Try higher contrast colors or a smaller logo."
	reasonGood  = "Looks good, but always test with your phone."
)

// Advice is the result of Evaluate.
type Advice struct {
	Label  Label  `json:"label"`
	Reason string `json:"reason"`
	// Checks lists which conditions tripped, for display.
	Checks []string `json:"checks,omitempty"`
}

// Risky reports whether the advice is a warning.
func (a Advice) Risky() bool { return a.Label == Risky }

// Evaluate flags a style as risky when an opaque background matches the
// primary color or the logo scale exceeds MaxSafeLogoScale.
func Evaluate(s style.RenderStyle, logo style.LogoConfig) Advice {
	var checks []string
	if !s.BackgroundTransparent && sameForeground(s) {
		checks = append(checks, "background matches foreground")
	}
	if logo.ScalePercent > MaxSafeLogoScale {
		checks = append(checks, "logo larger than 22%")
	}

	if len(checks) > 0 {
		return Advice{Label: Risky, Reason: reasonRisky, Checks: checks}
	}
	return Advice{Label: Good, Reason: reasonGood}
}

// sameForeground compares the background and primary colors as entered, or as
// resolved against the theme when either one is unset.
func sameForeground(s style.RenderStyle) bool {
	if s.BackgroundColor != "" && s.PrimaryColor != "" {
		return style.SameColor(s.BackgroundColor, s.PrimaryColor)
	}
	r := s.Resolve()
	return r.Background == r.Primary
}

// ShapeHint describes how reliable a data-module shape is.
type ShapeHint struct {
	Recommended bool   `json:"recommended"`
	Message     string `json:"message"`
}

// HintForShape recommends square and rounded modules; every other shape is
// flagged as experimental.
func HintForShape(s style.Shape) ShapeHint {
	if s == style.ShapeSquare || s == style.ShapeRounded {
		return ShapeHint{
			Recommended: true,
			Message:     "Recommended for real use. These shapes are the most reliable for scanning.",
		}
	}
	return ShapeHint{
		Message: "Fun style: this shape might not scan on all devices. Always test before using it.",
	}
}
