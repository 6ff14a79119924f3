package toast

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
)

type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

type Position string

const (
	PositionTopLeft     Position = "top-left"
	PositionTopRight    Position = "top-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionBottomRight Position = "bottom-right"
)

type Props struct {
	Title       string
	Description string
	Variant     Variant
	Position    Position
	Duration    int // milliseconds before auto-dismiss, 0 keeps it open
	Dismissible bool
	Class       string
}

// ParseVariant maps form values to a Variant. Unknown values are success.
func ParseVariant(s string) Variant {
	switch s {
	case "error", "destructive":
		return VariantError
	case "warning":
		return VariantWarning
	case "info":
		return VariantInfo
	default:
		return VariantSuccess
	}
}

var variantClasses = map[Variant]string{
	VariantSuccess: "border-green-500 bg-green-50 text-green-900",
	VariantError:   "border-red-500 bg-red-50 text-red-900",
	VariantWarning: "border-amber-500 bg-amber-50 text-amber-900",
	VariantInfo:    "border-sky-500 bg-sky-50 text-sky-900",
}

var positionClasses = map[Position]string{
	PositionTopLeft:     "top-4 left-4",
	PositionTopRight:    "top-4 right-4",
	PositionBottomLeft:  "bottom-4 left-4",
	PositionBottomRight: "bottom-4 right-4",
}

func (p Props) position() Position {
	if _, ok := positionClasses[p.Position]; ok {
		return p.Position
	}
	return PositionBottomRight
}

func (p Props) classes() string {
	return twmerge.Merge(
		"fixed z-50 w-80 rounded-lg border p-4 shadow-lg",
		positionClasses[p.position()],
		variantClasses[p.Variant],
		p.Class,
	)
}
