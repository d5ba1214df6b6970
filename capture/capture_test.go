package capture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// solidFrame returns w x h RGBA pixels of one color.
func solidFrame(w, h int, r, g, b, a byte) []byte {
	px := make([]byte, w*h*4)
	for i := 0; i < len(px); i += 4 {
		px[i], px[i+1], px[i+2], px[i+3] = r, g, b, a
	}
	return px
}

func TestFrameImage(t *testing.T) {
	px := solidFrame(4, 3, 10, 20, 30, 255)
	img, err := FrameImage(px, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("bounds = %v, want 4x3", img.Bounds())
	}
	if &img.Pix[0] != &px[0] {
		t.Error("FrameImage copied the pixel data")
	}

	if _, err := FrameImage(px, 5, 3); !errors.Is(err, ErrBadFrameSize) {
		t.Errorf("mismatched dimensions error = %v, want ErrBadFrameSize", err)
	}
	if _, err := FrameImage(px, 0, 0); !errors.Is(err, ErrBadFrameSize) {
		t.Errorf("zero dimensions error = %v, want ErrBadFrameSize", err)
	}
}

func TestWriteWebP(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.webp")

	if err := WriteWebP(path, solidFrame(8, 8, 200, 100, 50, 255), 8, 8); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Errorf("output is not a WebP container (%d bytes)", len(data))
	}

	// No temporary sibling left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries after write, want 1", len(entries))
	}
}

func TestSequence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	seq, err := NewSequence(dir, "")
	if err != nil {
		t.Fatal(err)
	}

	px := solidFrame(4, 4, 0, 0, 0, 255)
	first, err := seq.Write(px, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	second, err := seq.Write(px, 4, 4)
	if err != nil {
		t.Fatal(err)
	}

	if filepath.Base(first) != "frame_00000.webp" {
		t.Errorf("first frame = %s, want frame_00000.webp", filepath.Base(first))
	}
	if filepath.Base(second) != "frame_00001.webp" {
		t.Errorf("second frame = %s, want frame_00001.webp", filepath.Base(second))
	}
	if seq.Count() != 2 {
		t.Errorf("Count() = %d, want 2", seq.Count())
	}
}
