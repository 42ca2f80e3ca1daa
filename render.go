package vid2ascii

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// RenderFrame rasterizes a sample grid into an output frame. The
// canvas is exactly (cols*cellWidth) x (rows*cellHeight) pixels,
// filled black; each cell's glyph stamp is tinted with the cell's mean
// color and drawn at the cell's top-left origin.
//
// The ramp and glyph set must agree: the set is expected to hold one
// stamp per ramp glyph at the geometry the grid was sampled with.
func RenderFrame(grid *SampleGrid, ramp GlyphRamp, glyphs *GlyphSet) (*image.RGBA, error) {
	if err := ramp.Validate(); err != nil {
		return nil, err
	}
	if glyphs.Len() != len(ramp) {
		return nil, fmt.Errorf("%w: glyph set has %d stamps for a %d glyph ramp",
			ErrRenderFailure, glyphs.Len(), len(ramp))
	}

	geom := glyphs.Geometry()
	out := image.NewRGBA(image.Rect(0, 0, grid.Cols*geom.Width, grid.Rows*geom.Height))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			cell := grid.At(r, c)
			stamp := glyphs.Stamp(ramp.Index(cell.Brightness))
			drawStamp(out, stamp, c*geom.Width, r*geom.Height, cell.Color.ToColor())
		}
	}

	return out, nil
}

// drawStamp blends one glyph coverage stamp onto the canvas at
// (x0, y0), scaling the fill color by the stamp's alpha. Pixels the
// glyph does not cover keep the black background.
func drawStamp(dst *image.RGBA, stamp *image.Alpha, x0, y0 int, fill color.RGBA) {
	b := stamp.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := stamp.AlphaAt(x, y).A
			if a == 0 {
				continue
			}
			av := uint32(a)
			dst.SetRGBA(x0+x, y0+y, color.RGBA{
				R: uint8((uint32(fill.R)*av + 127) / 255),
				G: uint8((uint32(fill.G)*av + 127) / 255),
				B: uint8((uint32(fill.B)*av + 127) / 255),
				A: 255,
			})
		}
	}
}
