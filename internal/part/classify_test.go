// SPDX-License-Identifier: MPL-2.0

package part

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		entry    string
		children []string
		want     Shape
	}{
		{name: "loose file", entry: "reboot.scss", want: LooseFile},
		{name: "single definition", entry: "button", children: []string{"button.scss"}, want: SingleDefinition},
		{name: "default only", entry: "badge", children: []string{"default.scss"}, want: VariantSet},
		{name: "default and axis", entry: "badge", children: []string{"default.scss", "palettes.scss"}, want: VariantSet},
		{name: "own file plus doc", entry: "card", children: []string{"README.md", "card.scss"}, want: VariantSet},
		{name: "other single file", entry: "card", children: []string{"palettes.scss"}, want: VariantSet},
		{name: "empty folder", entry: "empty", children: nil, want: VariantSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Classify(tt.entry, tt.children); got != tt.want {
				t.Errorf("Classify(%q, %v) = %s, want %s", tt.entry, tt.children, got, tt.want)
			}
		})
	}
}
