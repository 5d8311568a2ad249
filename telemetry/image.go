package telemetry

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/pthm-cable/lattice/components"
)

// LayerImage renders a width x height slab of attribute colors, one pixel
// per instance. samples is indexed row*width + col. Pixel brightness is the
// shaded color; scale is already folded into it.
func LayerImage(samples []components.Attributes, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(samples) < width*height {
		return nil, fmt.Errorf("layer image: %d samples for %dx%d", len(samples), width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			img.SetRGBA(col, row, toRGBA(samples[row*width+col]))
		}
	}
	return img, nil
}

func toRGBA(a components.Attributes) color.RGBA {
	return color.RGBA{
		R: channel(a.Color[0]),
		G: channel(a.Color[1]),
		B: channel(a.Color[2]),
		A: 255,
	}
}

func channel(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Upscale enlarges img by an integer factor with nearest-neighbor sampling.
func Upscale(img image.Image, factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WriteLayerPNG renders a layer, upscales it by factor and writes it as PNG.
func WriteLayerPNG(path string, samples []components.Attributes, width, height, factor int) error {
	img, err := LayerImage(samples, width, height)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, Upscale(img, factor)); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
