package vid2ascii

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"

	"github.com/wbrown/vid2ascii/imageutil"
)

// Converter holds the immutable per-run configuration of the pipeline:
// the glyph ramp, the font face, the cell geometry derived from it, the
// pre-rendered glyph stamps, and the scale factor. Geometry and stamps
// are computed exactly once and reused for every cell of every frame,
// so the cell size never changes mid-run.
type Converter struct {
	face   font.Face
	ramp   GlyphRamp
	scale  float64
	geom   CellGeometry
	glyphs *GlyphSet
}

// Option is a functional option for configuring a Converter.
type Option func(*Converter)

// WithRamp substitutes an alternate glyph ramp for the default one.
func WithRamp(ramp GlyphRamp) Option {
	return func(c *Converter) {
		c.ramp = ramp
	}
}

// WithScale sets the factor frames are scaled by before gridding.
func WithScale(scale float64) Option {
	return func(c *Converter) {
		c.scale = scale
	}
}

// NewConverter builds the per-run configuration from a font face,
// measuring the cell geometry and pre-rendering the ramp glyphs.
func NewConverter(face font.Face, opts ...Option) (*Converter, error) {
	c := &Converter{
		face:  face,
		ramp:  DefaultRamp,
		scale: 1.0,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.ramp.Validate(); err != nil {
		return nil, err
	}
	if c.scale <= 0 {
		return nil, fmt.Errorf("%w: scale factor %g must be positive",
			ErrInvalidGeometry, c.scale)
	}

	geom, err := Measure(face)
	if err != nil {
		return nil, err
	}
	glyphs, err := RenderGlyphSet(face, c.ramp, geom)
	if err != nil {
		return nil, err
	}

	c.geom = geom
	c.glyphs = glyphs
	return c, nil
}

// Geometry returns the cell geometry of the run.
func (c *Converter) Geometry() CellGeometry {
	return c.geom
}

// Ramp returns the glyph ramp of the run.
func (c *Converter) Ramp() GlyphRamp {
	return c.ramp
}

// Scale returns the configured scale factor.
func (c *Converter) Scale() float64 {
	return c.scale
}

// ConvertFrame runs one frame through the full pipeline: rotation and
// scale normalization, cell sampling, glyph selection, and rendering.
// The input frame is not modified; ownership of the returned frame
// passes to the caller.
func (c *Converter) ConvertFrame(frame *imageutil.RGBAImage, rot Rotation) (*image.RGBA, error) {
	norm, err := Normalize(frame, rot, c.scale)
	if err != nil {
		return nil, err
	}
	grid, err := SampleCells(norm, c.geom)
	if err != nil {
		return nil, err
	}
	return RenderFrame(grid, c.ramp, c.glyphs)
}

// ConvertImage converts a single still image. Rotation does not apply
// in image mode; only the scale factor is honored.
func (c *Converter) ConvertImage(frame *imageutil.RGBAImage) (*image.RGBA, error) {
	return c.ConvertFrame(frame, Rotate0)
}

// GridSize reports the glyph grid an input of the given dimensions
// will produce after rotation and scaling, without touching pixels.
func (c *Converter) GridSize(width, height int, rot Rotation) (cols, rows int, err error) {
	if rot == Rotate90 || rot == Rotate270 {
		width, height = height, width
	}
	if c.scale != 1.0 {
		width, height, err = scaledSize(width, height, c.scale)
		if err != nil {
			return 0, 0, err
		}
	}
	cols = width / c.geom.Width
	rows = height / c.geom.Height
	if cols < 1 || rows < 1 {
		return 0, 0, fmt.Errorf("%w: %dx%d input yields %dx%d grid",
			ErrInvalidGeometry, width, height, cols, rows)
	}
	return cols, rows, nil
}

// OutputSize reports the exact pixel dimensions of the frames a run
// over an input of the given dimensions will emit.
func (c *Converter) OutputSize(width, height int, rot Rotation) (outW, outH int, err error) {
	cols, rows, err := c.GridSize(width, height, rot)
	if err != nil {
		return 0, 0, err
	}
	return cols * c.geom.Width, rows * c.geom.Height, nil
}

// FrameSource supplies decoded frames in temporal order. Next returns
// io.EOF once the sequence is exhausted; any other error is fatal to
// the run. Ownership of each returned frame passes to the caller.
type FrameSource interface {
	Next() (*imageutil.RGBAImage, error)
}

// FrameStream is a forward-only, non-restartable sequence of converted
// output frames, produced on demand one input frame at a time. It
// emits exactly one output frame per source frame, in source order.
// The first error is sticky: after a failure no further frames are
// produced.
type FrameStream struct {
	conv  *Converter
	src   FrameSource
	rot   Rotation
	count int
	err   error
}

// Frames returns a stream that lazily converts every frame of src with
// the given rotation correction applied identically to each.
func (c *Converter) Frames(src FrameSource, rot Rotation) *FrameStream {
	return &FrameStream{conv: c, src: src, rot: rot}
}

// Next converts and returns the next output frame. It returns io.EOF
// when the source is exhausted. Once Next has returned an error it
// returns the same error on every subsequent call.
func (s *FrameStream) Next() (*image.RGBA, error) {
	if s.err != nil {
		return nil, s.err
	}
	frame, err := s.src.Next()
	if err != nil {
		s.err = err
		return nil, err
	}
	out, err := s.conv.ConvertFrame(frame, s.rot)
	if err != nil {
		s.err = err
		return nil, err
	}
	s.count++
	return out, nil
}

// Count returns the number of frames emitted so far.
func (s *FrameStream) Count() int {
	return s.count
}

// DefaultOutputPath derives the conventional output path for an input:
// the input path with "_ascii" appended to its base name.
func DefaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_ascii" + ext
}
