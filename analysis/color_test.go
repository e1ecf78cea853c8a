package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_ExactPaletteHits(t *testing.T) {
	t.Parallel()
	for _, p := range palette {
		assert.Equal(t, p.name, Classify(uint8(p.r), uint8(p.g), uint8(p.b)), p.name)
	}
}

func TestClassify_Nearest(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		desc    string
		r, g, b uint8
		want    string
	}{
		{desc: "dark red", r: 200, g: 10, b: 10, want: "red"},
		{desc: "near black", r: 10, g: 10, b: 10, want: "black"},
		{desc: "light gray reads as white", r: 200, g: 200, b: 200, want: "white"},
		{desc: "sky blue", r: 30, g: 40, b: 230, want: "blue"},
		{desc: "tan brown", r: 140, g: 80, b: 30, want: "brown"},
		{desc: "lemon", r: 250, g: 240, b: 20, want: "yellow"},
		{desc: "tie between green and black goes to green", r: 0, g: 64, b: 0, want: "green"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.r, tc.g, tc.b))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	t.Parallel()
	for v := 0; v < 256; v += 17 {
		c := uint8(v)
		first := Classify(c, 255-c, c/2)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, Classify(c, 255-c, c/2))
		}
	}
}

func TestPaletteNames(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		[]string{"red", "yellow", "blue", "green", "orange", "purple", "brown", "white", "gray", "black"},
		PaletteNames(),
	)
}
