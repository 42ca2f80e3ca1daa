package vid2ascii

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// referenceGlyph is the glyph measured to derive the cell size. Any
// glyph works for a monospaced face; '@' matches the densest part of
// the default ramp.
const referenceGlyph = '@'

// CellGeometry is the pixel size of one monospaced character cell.
// It is derived once per conversion run and shared by every cell of
// every frame; both dimensions are positive.
type CellGeometry struct {
	Width  int
	Height int
}

// LoadFace parses a TrueType font file and returns a face sized at the
// given point size (72 DPI, so points equal pixels).
func LoadFace(path string, pointSize float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading font %s: %v", ErrUnsupportedInput, path, err)
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing font %s: %v", ErrUnsupportedInput, path, err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    pointSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// DefaultFace returns the built-in bitmap face used when no TTF file
// is supplied or the supplied one cannot be loaded.
func DefaultFace() font.Face {
	return basicfont.Face7x13
}

// Measure queries a face for the advance width of the reference glyph
// and the face's line height, yielding the cell geometry for a run.
func Measure(face font.Face) (CellGeometry, error) {
	adv, ok := face.GlyphAdvance(referenceGlyph)
	if !ok {
		adv, ok = face.GlyphAdvance('M')
		if !ok {
			return CellGeometry{}, fmt.Errorf(
				"%w: face has no measurable reference glyph", ErrRenderFailure)
		}
	}
	geom := CellGeometry{
		Width:  adv.Ceil(),
		Height: face.Metrics().Height.Ceil(),
	}
	if geom.Width < 1 || geom.Height < 1 {
		return CellGeometry{}, fmt.Errorf(
			"%w: face reports %dx%d cell", ErrInvalidGeometry, geom.Width, geom.Height)
	}
	return geom, nil
}

// GlyphSet holds one pre-rendered coverage stamp per ramp glyph, all at
// the same cell size. Stamps are rendered once per run; the frame
// renderer tints them with each cell's sampled color.
type GlyphSet struct {
	geom   CellGeometry
	stamps []*image.Alpha
}

// RenderGlyphSet rasterizes every ramp glyph into a cell-sized alpha
// stamp. The glyph is drawn at the cell origin with the baseline at the
// face's ascent, the same placement a text run would use.
func RenderGlyphSet(face font.Face, ramp GlyphRamp, geom CellGeometry) (*GlyphSet, error) {
	if err := ramp.Validate(); err != nil {
		return nil, err
	}
	ascent := face.Metrics().Ascent

	gs := &GlyphSet{
		geom:   geom,
		stamps: make([]*image.Alpha, len(ramp)),
	}
	for i, r := range ramp {
		stamp := image.NewAlpha(image.Rect(0, 0, geom.Width, geom.Height))
		d := font.Drawer{
			Dst:  stamp,
			Src:  image.White,
			Face: face,
			Dot:  fixed.Point26_6{X: 0, Y: ascent},
		}
		d.DrawString(string(r))
		gs.stamps[i] = stamp
	}
	return gs, nil
}

// Geometry returns the cell size the stamps were rendered at.
func (gs *GlyphSet) Geometry() CellGeometry {
	return gs.geom
}

// Len returns the number of stamps in the set.
func (gs *GlyphSet) Len() int {
	return len(gs.stamps)
}

// Stamp returns the coverage stamp for a ramp index.
func (gs *GlyphSet) Stamp(idx int) *image.Alpha {
	return gs.stamps[idx]
}
