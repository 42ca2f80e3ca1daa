// Package vid2ascii converts raster frames into ASCII art renderings:
// each frame is partitioned into a grid of cells sized from a font's
// metrics, every cell is reduced to a mean color and brightness, the
// brightness picks a glyph from an ordered ramp, and the glyph grid is
// rasterized back into a pixel image. The same pipeline serves single
// images and video frame sequences.
package vid2ascii

import (
	"fmt"
	"math"
)

// GlyphRamp is an ordered set of characters spanning sparse to dense
// visual weight. Index 0 is the sparsest glyph (darkest cell, assuming
// light text on a dark canvas) and the last index is the densest.
// The ramp is an injected configuration value; any component that takes
// one works with a substitute ramp unchanged.
type GlyphRamp []rune

// DefaultRamp matches white-on-black rendering: space for black cells,
// '$' for white ones.
var DefaultRamp = GlyphRamp(" .,-~+=@#%$")

// Validate reports whether the ramp can be used for selection.
func (r GlyphRamp) Validate() error {
	if len(r) == 0 {
		return fmt.Errorf("%w: empty glyph ramp", ErrRenderFailure)
	}
	return nil
}

// Index maps a normalized brightness to a ramp index by rounding
// brightness*(len-1) to the nearest integer. The result is clamped so
// that any float edge value stays in range: brightness 0.0 always
// resolves to the first glyph and 1.0 to the last.
func (r GlyphRamp) Index(brightness float64) int {
	idx := int(math.Round(brightness * float64(len(r)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(r) {
		idx = len(r) - 1
	}
	return idx
}

// Select returns the ramp glyph for a normalized brightness.
func (r GlyphRamp) Select(brightness float64) rune {
	return r[r.Index(brightness)]
}
