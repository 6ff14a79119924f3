package style

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		err  bool
	}{
		{"#000000", color.NRGBA{A: 255}, false},
		{"ED1C24", color.NRGBA{R: 0xed, G: 0x1c, B: 0x24, A: 255}, false},
		{"#fff", color.NRGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#00000000", color.NRGBA{}, false},
		{"transparent", color.NRGBA{}, false},
		{" #00923f ", color.NRGBA{G: 0x92, B: 0x3f, A: 255}, false},
		{"#12345", color.NRGBA{}, true},
		{"#zzzzzz", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ed1c24", Hex(color.NRGBA{R: 0xed, G: 0x1c, B: 0x24, A: 255}))
	assert.Equal(t, "#00000080", Hex(color.NRGBA{A: 0x80}))
}

func TestApplyPresetTable(t *testing.T) {
	tests := []struct {
		preset           Preset
		theme            Theme
		primary, second  string
		background       string
		module, eye      Shape
		eyeColor         string
		gradient         GradientMode
	}{
		{PresetClassic, ThemeLight, "#000000", "#000000", "#ffffff", ShapeSquare, ShapeSquare, "", GradientSolid},
		{PresetSoft, ThemeLight, "#1e293b", "#1e293b", "#f4f4f5", ShapeRounded, ShapeRounded, "", GradientSolid},
		{PresetSoft, ThemeDark, "#e5e7eb", "#e5e7eb", "#020617", ShapeRounded, ShapeRounded, "", GradientSolid},
		{PresetContrast, ThemeLight, "#22c55e", "#16a34a", "#0f172a", ShapeDots, ShapeSquare, "#ffffff", GradientLinear},
		{PresetContrast, ThemeDark, "#22c55e", "#16a34a", "#020617", ShapeDots, ShapeSquare, "#ffffff", GradientLinear},
		{PresetFlag, ThemeLight, FlagRed, FlagGreen, FlagWhite, ShapeSquare, ShapeSquare, "", GradientLinear},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset)+"/"+string(tt.theme), func(t *testing.T) {
			s := ApplyPreset(tt.preset, tt.theme)
			assert.Equal(t, tt.preset, s.PresetID)
			assert.Equal(t, tt.primary, s.PrimaryColor)
			assert.Equal(t, tt.second, s.SecondaryColor)
			assert.Equal(t, tt.background, s.BackgroundColor)
			assert.Equal(t, tt.module, s.ModuleShape)
			assert.Equal(t, tt.eye, s.EyeShape)
			assert.Equal(t, tt.eyeColor, s.EyeColor)
			assert.Equal(t, tt.gradient, s.GradientMode)
			assert.False(t, s.BackgroundTransparent)
			assert.NoError(t, s.Validate())
		})
	}
}

func TestApplyPresetIsFullReplacement(t *testing.T) {
	edited := ApplyPreset(PresetContrast, ThemeLight)
	edited.BackgroundTransparent = true
	edited.ModuleShape = ShapePill

	// Applying a preset never merges with an earlier value.
	next := ApplyPreset(PresetClassic, edited.Theme)
	assert.Equal(t, ApplyPreset(PresetClassic, ThemeLight), next)
	assert.Empty(t, next.EyeColor)
	assert.False(t, next.BackgroundTransparent)
}

func TestApplyPresetUnknownFallsBackToClassic(t *testing.T) {
	assert.Equal(t, PresetClassic, ApplyPreset("neon", ThemeLight).PresetID)
	_, err := ParsePreset("neon")
	assert.Error(t, err)
	p, err := ParsePreset(" Flag ")
	require.NoError(t, err)
	assert.Equal(t, PresetFlag, p)
}

func TestResolveDefaults(t *testing.T) {
	s := RenderStyle{Theme: ThemeDark}
	r := s.Resolve()
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, r.Primary)
	assert.Equal(t, r.Primary, r.Secondary, "secondary follows primary")
	assert.Equal(t, color.NRGBA{R: 0x02, G: 0x06, B: 0x17, A: 255}, r.Background)
	assert.Nil(t, r.Eye)

	s = RenderStyle{PrimaryColor: "#ff0000", EyeColor: "#00ff00", Theme: ThemeLight}
	r = s.Resolve()
	require.NotNil(t, r.Eye)
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, *r.Eye)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, r.Secondary)
}

func TestEffectiveBackground(t *testing.T) {
	s := ApplyPreset(PresetSoft, ThemeLight)
	assert.Equal(t, color.NRGBA{R: 0xf4, G: 0xf4, B: 0xf5, A: 255}, s.EffectiveBackground())

	s.BackgroundTransparent = true
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, s.EffectiveBackground())

	s.Theme = ThemeDark
	assert.Equal(t, color.NRGBA{R: 0x02, G: 0x06, B: 0x17, A: 255}, s.EffectiveBackground())
}

func TestValidate(t *testing.T) {
	s := Default(ThemeLight)
	s.ModuleShape = ShapeCircle
	assert.Error(t, s.Validate(), "circle is eye-only")

	s = Default(ThemeLight)
	s.EyeShape = ShapePill
	assert.Error(t, s.Validate(), "pill is module-only")

	s = Default(ThemeLight)
	s.EyeColor = "#nothex"
	assert.Error(t, s.Validate())

	s = Default(ThemeLight)
	s.GradientMode = "conic"
	assert.Error(t, s.Validate())
}

func TestParseShapes(t *testing.T) {
	sh, err := ParseModuleShape("Dots")
	require.NoError(t, err)
	assert.Equal(t, ShapeDots, sh)

	_, err = ParseModuleShape("circle")
	assert.Error(t, err)

	sh, err = ParseEyeShape("circle")
	require.NoError(t, err)
	assert.Equal(t, ShapeCircle, sh)

	assert.Equal(t, ThemeDark, ParseTheme("DARK"))
	assert.Equal(t, ThemeLight, ParseTheme("sepia"))
}
