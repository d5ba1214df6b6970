// Package capture exports rendered frames as image files.
package capture

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
)

// ErrBadFrameSize reports a pixel payload that does not match the
// declared dimensions.
var ErrBadFrameSize = errors.New("capture: pixel data does not match dimensions")

// FrameImage wraps tightly packed RGBA pixels as an image without
// copying.
func FrameImage(pixels []byte, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrBadFrameSize, len(pixels), width, height)
	}
	return &image.NRGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}

// WriteWebP encodes RGBA pixels as a lossless WebP file. The file is
// written atomically via a temporary sibling.
func WriteWebP(path string, pixels []byte, width, height int) error {
	img, err := FrameImage(pixels, width, height)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".capture-*.webp")
	if err != nil {
		return fmt.Errorf("capture: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := nativewebp.Encode(tmp, img, nil); err != nil {
		tmp.Close()
		return fmt.Errorf("capture: encode webp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("capture: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("capture: rename: %w", err)
	}
	return nil
}

// Sequence names and writes numbered frames into a directory.
type Sequence struct {
	dir    string
	prefix string
	next   int
}

// NewSequence creates the directory if needed and returns a sequence
// writer. Prefix defaults to "frame".
func NewSequence(dir, prefix string) (*Sequence, error) {
	if prefix == "" {
		prefix = "frame"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("capture: create sequence dir: %w", err)
	}
	return &Sequence{dir: dir, prefix: prefix}, nil
}

// Write stores the next numbered frame and returns its path.
func (s *Sequence) Write(pixels []byte, width, height int) (string, error) {
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%05d.webp", s.prefix, s.next))
	if err := WriteWebP(path, pixels, width, height); err != nil {
		return "", err
	}
	s.next++
	return path, nil
}

// Count returns how many frames have been written.
func (s *Sequence) Count() int { return s.next }
