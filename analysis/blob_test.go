package analysis

import (
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func whiteCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func TestSegment_EmptyBuffer(t *testing.T) {
	t.Parallel()
	assert.Nil(t, Segment(NewPixelBuffer(nil), IsInk))
	assert.Nil(t, Segment(NewPixelBuffer(image.NewRGBA(image.Rect(0, 0, 0, 0))), IsInk))
}

func TestSegment_AllBackground(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Segment(NewPixelBuffer(whiteCanvas(20, 20)), IsInk))
}

func TestSegment_TwoSquares(t *testing.T) {
	t.Parallel()
	img := whiteCanvas(10, 10)
	fillRect(img, image.Rect(1, 1, 4, 4), color.Black)
	fillRect(img, image.Rect(6, 6, 8, 8), color.RGBA{R: 255, A: 255})

	blobs := Segment(NewPixelBuffer(img), IsInk)

	require.Len(t, blobs, 2)
	assert.Equal(t, 9, blobs[0].Area)
	assert.Equal(t, 8, blobs[0].Perimeter, "only the centre pixel of a 3x3 square is interior")
	assert.Equal(t, image.Point{X: 1, Y: 1}, blobs[0].Pixels[0], "seeds are picked row-major")
	assert.Equal(t, 4, blobs[1].Area)
	assert.Equal(t, 4, blobs[1].Perimeter)
}

func TestSegment_DiagonalPixelsAreSeparate(t *testing.T) {
	t.Parallel()
	img := whiteCanvas(3, 3)
	img.Set(0, 0, color.Black)
	img.Set(1, 1, color.Black)
	img.Set(2, 2, color.Black)

	blobs := Segment(NewPixelBuffer(img), IsInk)

	assert.Len(t, blobs, 3)
}

func TestSegment_FullCanvasTouchesBounds(t *testing.T) {
	t.Parallel()
	img := whiteCanvas(5, 5)
	fillRect(img, img.Bounds(), color.Black)

	blobs := Segment(NewPixelBuffer(img), IsInk)

	require.Len(t, blobs, 1)
	assert.Equal(t, 25, blobs[0].Area)
	assert.Equal(t, 16, blobs[0].Perimeter, "the 3x3 core is interior, the ring touches the image edge")
}

func TestSegment_NearWhiteIsBackground(t *testing.T) {
	t.Parallel()
	img := whiteCanvas(4, 4)
	img.Set(1, 1, color.RGBA{R: 250, G: 250, B: 250, A: 255})
	img.Set(2, 2, color.RGBA{R: 250, G: 249, B: 250, A: 255})

	blobs := Segment(NewPixelBuffer(img), IsInk)

	require.Len(t, blobs, 1)
	assert.Equal(t, []image.Point{{X: 2, Y: 2}}, blobs[0].Pixels)
}

func TestSegment_Partition(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 20; round++ {
		w, h := 5+rng.Intn(30), 5+rng.Intn(30)
		img := whiteCanvas(w, h)
		foreground := map[image.Point]bool{}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if rng.Float64() < 0.45 {
					img.Set(x, y, color.RGBA{R: uint8(rng.Intn(240)), G: uint8(rng.Intn(240)), B: 0, A: 255})
					foreground[image.Point{X: x, Y: y}] = true
				}
			}
		}

		blobs := Segment(NewPixelBuffer(img), IsInk)

		seen := map[image.Point]bool{}
		for _, b := range blobs {
			assert.GreaterOrEqual(t, b.Area, 1)
			assert.Equal(t, b.Area, len(b.Pixels))
			assert.LessOrEqual(t, b.Perimeter, b.Area)
			assert.LessOrEqual(t, b.Perimeter, 4*b.Area)
			for _, p := range b.Pixels {
				assert.False(t, seen[p], "pixel %v belongs to two blobs", p)
				seen[p] = true
			}
		}
		assert.Equal(t, foreground, seen)
	}
}

func TestLargest(t *testing.T) {
	t.Parallel()
	_, ok := Largest(nil)
	assert.False(t, ok)

	blobs := []Blob{{Area: 3, Perimeter: 3}, {Area: 7, Perimeter: 5}, {Area: 7, Perimeter: 7}}
	got, ok := Largest(blobs)
	require.True(t, ok)
	assert.Equal(t, 5, got.Perimeter, "first blob wins an area tie")
}

func TestBlob_ComplexityRatio(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0.0, Blob{}.ComplexityRatio())
	assert.InDelta(t, 16.0, Blob{Area: 100, Perimeter: 40}.ComplexityRatio(), 1e-9)
}
