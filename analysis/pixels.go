package analysis

import (
	"image"
	"image/color"
	"image/draw"
)

// PixelBuffer is a read-only RGBA view of one submitted image.
type PixelBuffer struct {
	width  int
	height int
	pix    []uint8
}

// NewPixelBuffer flattens img over a white background, so transparent areas
// count as canvas. A nil or empty image yields an empty buffer, which the
// pipeline treats as fully background.
func NewPixelBuffer(img image.Image) PixelBuffer {
	if img == nil || img.Bounds().Empty() {
		return PixelBuffer{}
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Over)
	return PixelBuffer{width: b.Dx(), height: b.Dy(), pix: rgba.Pix}
}

func (pb PixelBuffer) Width() int  { return pb.width }
func (pb PixelBuffer) Height() int { return pb.height }
func (pb PixelBuffer) Len() int    { return pb.width * pb.height }

// RGB returns the color channels at (x, y). The caller must stay in bounds.
func (pb PixelBuffer) RGB(x, y int) (r, g, b uint8) {
	i := (y*pb.width + x) * 4
	return pb.pix[i], pb.pix[i+1], pb.pix[i+2]
}

func (pb PixelBuffer) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < pb.width && y < pb.height
}

// IsInk is the default foreground test: anything that is not near-white.
func IsInk(r, g, b uint8) bool {
	return r < 250 || g < 250 || b < 250
}
