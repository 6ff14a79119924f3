package components

import (
	twmerge "github.com/Oudwins/tailwind-merge-go"
)

// BadgeProps feeds the scanability badge next to the preview.
type BadgeProps struct {
	Label  string
	Reason string
	Risky  bool
	Hint   string
	Class  string
}

func (p BadgeProps) classes() string {
	tone := "border-green-500 bg-green-50 text-green-900"
	if p.Risky {
		tone = "border-amber-500 bg-amber-50 text-amber-900"
	}
	return twmerge.Merge("inline-flex flex-col gap-1 rounded-md border px-3 py-2 text-sm", tone, p.Class)
}
