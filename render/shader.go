package render

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

// Embedded WGSL shader sources.
//
//go:embed shaders/cell_direct.wgsl
var cellDirectShaderSource string

//go:embed shaders/cell_palette.wgsl
var cellPaletteShaderSource string

//go:embed shaders/screen.wgsl
var screenShaderSource string

// cellShaderSource returns the cell pass shader for the given mode.
func cellShaderSource(mode ColorMode) string {
	if mode == ColorModePalette {
		return cellPaletteShaderSource
	}
	return cellDirectShaderSource
}

// validateShaders runs every embedded shader through naga once, so a
// malformed shader fails pipeline setup with a compile error instead
// of a backend-specific failure at first draw.
func validateShaders() error {
	sources := map[string]string{
		"cell_direct":  cellDirectShaderSource,
		"cell_palette": cellPaletteShaderSource,
		"screen":       screenShaderSource,
	}
	for name, src := range sources {
		if src == "" {
			return fmt.Errorf("shader %s is empty", name)
		}
		if _, err := naga.Compile(src); err != nil {
			return fmt.Errorf("compile shader %s: %w", name, err)
		}
	}
	return nil
}

// CellShaderSource returns the WGSL source for the cell pass in the
// given color mode.
func CellShaderSource(mode ColorMode) string {
	return cellShaderSource(mode)
}

// ScreenShaderSource returns the WGSL source for the screen pass.
func ScreenShaderSource() string {
	return screenShaderSource
}
