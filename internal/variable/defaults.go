// SPDX-License-Identifier: MPL-2.0

package variable

// Default axis names.
const (
	Fonts                      = "fonts"
	Directions                 = "directions"
	SizeSteps                  = "size_steps"
	SizeVariants               = "size_variants"
	Palettes                   = "palettes"
	PaletteVariants            = "palette_variants"
	PalettesAndPaletteVariants = "palettes_and_palette_variants"
	DirectionsAndSizeSteps     = "directions_and_size_steps"
	PalettesAndSizeSteps       = "palettes_and_size_steps"
	PalettesAndSizeVariants    = "palettes_and_size_variants"
)

// Defaults returns a fresh table seeded with the framework axes. Combined
// axes are present as empty sequences: their own value is only a switch, the
// entries come from their component axes.
func Defaults() *Table {
	t := NewTable()
	t.Set(Fonts, Sequence("head", "body", "quote", "code"))
	t.Set(Directions, Sequence("top", "right", "bottom", "left"))
	t.Set(SizeSteps, KeyedMap(
		Entry{Key: "1x", Value: "1"},
		Entry{Key: "2x", Value: "2"},
		Entry{Key: "3x", Value: "3"},
		Entry{Key: "4x", Value: "4"},
		Entry{Key: "5x", Value: "5"},
		Entry{Key: "6x", Value: "6"},
		Entry{Key: "7x", Value: "7"},
	))
	t.Set(SizeVariants, KeyedMap(
		Entry{Key: "xs", Value: "0.6"},
		Entry{Key: "sm", Value: "0.8"},
		Entry{Key: "lg", Value: "1.2"},
		Entry{Key: "xl", Value: "1.5"},
	))
	t.Set(Palettes, Sequence(
		"primary",
		"secondary",
		"tertiary",
		"success",
		"warning",
		"danger",
		"dark",
		"medium",
		"light",
		"background",
		"foreground",
	))
	t.Set(PaletteVariants, Sequence("contrast", "shade", "tint"))
	t.Set(PalettesAndPaletteVariants, Sequence())
	t.Set(DirectionsAndSizeSteps, Sequence())
	t.Set(PalettesAndSizeSteps, Sequence())
	t.Set(PalettesAndSizeVariants, Sequence())
	return t
}
