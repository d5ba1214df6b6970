package render

// translateForCell computes the clip-space offset for cell (x, y) on a
// grid that is w x h cells. The grid uses a top-left origin with y
// increasing downward; the translate addresses the cell quad's lower
// left corner in clip space.
func translateForCell(x, y, w, h int) (float32, float32) {
	tx := -1.0 + float32(x)*2.0/float32(w)
	ty := 1.0 - (float32(y)+1.0)*2.0/float32(h)
	return tx, ty
}

// tileForGlyph maps a glyph index to its atlas tile column and row.
// Indices at or beyond cols*rows alias back into the atlas under the
// modulo arithmetic, so callers must clamp first (see clampGlyph).
func tileForGlyph(glyph, cols, rows uint32) (uint32, uint32) {
	_ = rows
	return glyph % cols, glyph / cols
}

// clampGlyph maps out-of-range glyph indices to the fallback tile 0.
// Returns the usable glyph and whether clamping occurred.
func clampGlyph(glyph, capacity uint32) (uint32, bool) {
	if glyph >= capacity {
		return 0, true
	}
	return glyph, false
}

// gcd returns the greatest common divisor of a and b.
func gcd(a, b uint32) uint32 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// letterboxScale computes the per-axis scale factor that letterboxes
// content with the given pixel aspect (gcd-reduced) into a window of
// winW x winH pixels. The scaled region is the largest axis-aligned
// rectangle with the content's aspect ratio that fits the window.
func letterboxScale(contentW, contentH, winW, winH uint32) (float32, float32) {
	if winW == 0 || winH == 0 || contentW == 0 || contentH == 0 {
		return 1, 1
	}
	d := gcd(contentW, contentH)
	ax := contentW / d
	ay := contentH / d

	targetW := winW
	targetH := winH
	if byHeight := winH * ax / ay; byHeight <= winW {
		targetW = byHeight
	} else {
		targetH = winW * ay / ax
	}
	return float32(targetW) / float32(winW), float32(targetH) / float32(winH)
}
