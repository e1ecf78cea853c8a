package canvas

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"doodleparty/domain"

	"github.com/nfnt/resize"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const (
	DefaultCellWidth  = 400
	DefaultCellHeight = 300

	// MaxRasterPixels bounds a submitted raster before it is decoded.
	MaxRasterPixels = 20 * DefaultCellWidth * DefaultCellHeight
)

// Compositor stitches every segment's raster into one image.
type Compositor struct {
	cellWidth  int
	cellHeight int
	interP     resize.InterpolationFunction
}

func NewCompositor(cellWidth, cellHeight int) *Compositor {
	return &Compositor{cellWidth: cellWidth, cellHeight: cellHeight, interP: resize.Bilinear}
}

// Compose draws each segment owner's raster, stretched to its area, onto a
// white canvas. Missing or undecodable rasters leave their area blank.
func (c *Compositor) Compose(layout Layout, segments []Segment, rasters map[string]string) *image.RGBA {
	w, h := layout.Size(c.cellWidth, c.cellHeight)
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for _, seg := range segments {
		if seg.PlayerID == nil {
			continue
		}
		raster, ok := rasters[*seg.PlayerID]
		if !ok || raster == "" {
			continue
		}
		area, ok := layout.Bounds(seg.Area, c.cellWidth, c.cellHeight)
		if !ok {
			continue
		}

		tile, err := DecodeDataURI(raster)
		if err != nil {
			log.Warn().Err(err).Str("player", *seg.PlayerID).Str("area", seg.Area).Msg("skipping undecodable raster")
			continue
		}
		tile = resize.Resize(uint(area.Dx()), uint(area.Dy()), tile, c.interP)
		draw.Draw(out, area, tile, tile.Bounds().Min, draw.Over)
	}
	return out
}

// DecodeDataURI decodes a base64 image data URI. Any format with a
// registered decoder is accepted; images over MaxRasterPixels are rejected
// from their header alone.
func DecodeDataURI(uri string) (image.Image, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, domain.ErrMalformedRaster
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, domain.ErrMalformedRaster
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRaster, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedRaster, strings.TrimSuffix(header, ";base64"))
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRaster, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxRasterPixels/cfg.Height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", domain.ErrMalformedRaster, cfg.Width, cfg.Height, MaxRasterPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedRaster, strings.TrimSuffix(header, ";base64"))
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRaster, err)
	}
	return img, nil
}

// EncodeDataURI encodes img as a PNG data URI.
func EncodeDataURI(img image.Image) (string, error) {
	var w strings.Builder
	w.WriteString("data:image/png;base64,")
	encoder := base64.NewEncoder(base64.StdEncoding, &w)
	if err := png.Encode(encoder, img); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return w.String(), nil
}
