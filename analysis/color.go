package analysis

import (
	"github.com/lucasb-eyer/go-colorful"
)

type paletteEntry struct {
	name    string
	r, g, b int
}

// Declaration order matters: on an exact distance tie the earlier entry wins.
var paletteHex = []struct {
	name string
	hex  string
}{
	{"red", "#ff0000"},
	{"yellow", "#ffff00"},
	{"blue", "#0000ff"},
	{"green", "#008000"},
	{"orange", "#ffa500"},
	{"purple", "#800080"},
	{"brown", "#8b4513"},
	{"white", "#ffffff"},
	{"gray", "#808080"},
	{"black", "#000000"},
}

var palette = buildPalette()

func buildPalette() []paletteEntry {
	entries := make([]paletteEntry, 0, len(paletteHex))
	for _, p := range paletteHex {
		c, err := colorful.Hex(p.hex)
		if err != nil {
			panic("analysis: bad palette color " + p.hex)
		}
		r, g, b := c.RGB255()
		entries = append(entries, paletteEntry{name: p.name, r: int(r), g: int(g), b: int(b)})
	}
	return entries
}

// PaletteNames lists the classifier's color names in declaration order.
func PaletteNames() []string {
	names := make([]string, len(palette))
	for i, p := range palette {
		names[i] = p.name
	}
	return names
}

// Classify returns the palette color nearest to (r, g, b) in RGB space.
// Distances are compared squared and in integers so ties are exact.
func Classify(r, g, b uint8) string {
	best := palette[0].name
	bestDist := -1
	for _, p := range palette {
		dr := int(r) - p.r
		dg := int(g) - p.g
		db := int(b) - p.b
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best = p.name
			bestDist = d
		}
	}
	return best
}
