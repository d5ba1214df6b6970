// Package atlas builds sprite atlas pixel payloads for the cell
// renderer. An atlas is a fixed grid of equally sized glyph tiles
// stored as a single-channel (R8) bitmap: in direct-color mode texel
// 255 is the foreground marker, in palette mode texels are color
// indices 0-15.
package atlas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	_ "image/png" // register PNG decoding for Load

	_ "github.com/ftrvxmtrx/tga" // register TGA decoding for Load

	xdraw "golang.org/x/image/draw"
)

// Atlas errors.
var (
	// ErrBadDimensions is returned when an image's size is not an
	// exact multiple of the tile size.
	ErrBadDimensions = errors.New("atlas: image size not a multiple of tile size")

	// ErrEmptyAtlas is returned when the source image has zero area.
	ErrEmptyAtlas = errors.New("atlas: source image is empty")
)

// Atlas is an immutable glyph bitmap: Cols x Rows tiles of
// CellWidth x CellHeight pixels each, one byte per pixel.
type Atlas struct {
	cellWidth  int
	cellHeight int
	cols       int
	rows       int
	pixels     []uint8
}

// CellWidth returns the tile width in pixels.
func (a *Atlas) CellWidth() int { return a.cellWidth }

// CellHeight returns the tile height in pixels.
func (a *Atlas) CellHeight() int { return a.cellHeight }

// Cols returns the atlas width in tiles.
func (a *Atlas) Cols() int { return a.cols }

// Rows returns the atlas height in tiles.
func (a *Atlas) Rows() int { return a.rows }

// PixelWidth returns the atlas width in pixels.
func (a *Atlas) PixelWidth() int { return a.cols * a.cellWidth }

// PixelHeight returns the atlas height in pixels.
func (a *Atlas) PixelHeight() int { return a.rows * a.cellHeight }

// Capacity returns the number of glyph tiles.
func (a *Atlas) Capacity() int { return a.cols * a.rows }

// Pixels returns the R8 payload, row-major over the full atlas image.
// The slice is owned by the atlas and must not be mutated.
func (a *Atlas) Pixels() []uint8 { return a.pixels }

// maskThreshold separates foreground from background when converting
// color images to the binary mask convention.
const maskThreshold = 0x80

// FromMaskImage converts img to a direct-color-mode atlas: pixels with
// every color channel at or above the threshold become the white
// marker (255), everything else 0. The image size must be an exact
// multiple of the tile size.
func FromMaskImage(img image.Image, cellW, cellH int) (*Atlas, error) {
	a, err := newAtlasFor(img, cellW, cellH)
	if err != nil {
		return nil, err
	}
	fillPixels(a, img, func(r, g, b uint8) uint8 {
		if r >= maskThreshold && g >= maskThreshold && b >= maskThreshold {
			return 255
		}
		return 0
	})
	return a, nil
}

// FromIndexedImage converts img to a palette-mode atlas: each pixel's
// red channel is quantized to a color index 0-15.
func FromIndexedImage(img image.Image, cellW, cellH int) (*Atlas, error) {
	a, err := newAtlasFor(img, cellW, cellH)
	if err != nil {
		return nil, err
	}
	fillPixels(a, img, func(r, _, _ uint8) uint8 {
		return r / 17
	})
	return a, nil
}

// Load reads a PNG or TGA file and converts it with FromMaskImage.
func Load(path string, cellW, cellH int) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open atlas: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode atlas %s: %w", path, err)
	}
	return FromMaskImage(img, cellW, cellH)
}

// LoadIndexed reads a PNG or TGA file and converts it with
// FromIndexedImage.
func LoadIndexed(path string, cellW, cellH int) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open atlas: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode atlas %s: %w", path, err)
	}
	return FromIndexedImage(img, cellW, cellH)
}

// Scale resamples img to w x h with nearest-neighbor filtering.
// Useful when a sprite sheet's tile size does not match the renderer's
// cell size; nearest keeps mask and index values exact.
func Scale(img image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}

func newAtlasFor(img image.Image, cellW, cellH int) (*Atlas, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, ErrEmptyAtlas
	}
	if cellW <= 0 || cellH <= 0 || w%cellW != 0 || h%cellH != 0 {
		return nil, fmt.Errorf("%w: %dx%d image, %dx%d tiles", ErrBadDimensions, w, h, cellW, cellH)
	}
	return &Atlas{
		cellWidth:  cellW,
		cellHeight: cellH,
		cols:       w / cellW,
		rows:       h / cellH,
		pixels:     make([]uint8, w*h),
	}, nil
}

func fillPixels(a *Atlas, img image.Image, classify func(r, g, b uint8) uint8) {
	b := img.Bounds()
	w := b.Dx()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			a.pixels[y*w+x] = classify(c.R, c.G, c.B)
		}
	}
}
