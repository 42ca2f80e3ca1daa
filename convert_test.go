package vid2ascii

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/wbrown/vid2ascii/imageutil"
)

// sliceSource feeds a fixed set of frames, then io.EOF. It counts the
// pulls it serves so tests can verify the stream stops asking after a
// failure.
type sliceSource struct {
	frames []*imageutil.RGBAImage
	pulls  int
	failAt int // 1-based pull index that fails; 0 disables
}

func (s *sliceSource) Next() (*imageutil.RGBAImage, error) {
	s.pulls++
	if s.failAt > 0 && s.pulls == s.failAt {
		return nil, fmt.Errorf("%w: corrupt frame", ErrUnsupportedInput)
	}
	if s.pulls > len(s.frames) {
		return nil, io.EOF
	}
	return s.frames[s.pulls-1], nil
}

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()
	conv, err := NewConverter(DefaultFace(), opts...)
	if err != nil {
		t.Fatalf("NewConverter failed: %v", err)
	}
	return conv
}

func gradientFrames(n, w, h int) []*imageutil.RGBAImage {
	frames := make([]*imageutil.RGBAImage, n)
	for i := range frames {
		frames[i] = imageutil.CreateGradientImage(w, h)
	}
	return frames
}

func TestNewConverterDefaults(t *testing.T) {
	conv := newTestConverter(t)
	if conv.Scale() != 1.0 {
		t.Errorf("Default scale = %g, expected 1.0", conv.Scale())
	}
	if string(conv.Ramp()) != string(DefaultRamp) {
		t.Errorf("Default ramp = %q", string(conv.Ramp()))
	}
	if geom := conv.Geometry(); geom.Width != 7 || geom.Height != 13 {
		t.Errorf("Geometry = %v, expected 7x13", geom)
	}
}

func TestNewConverterRejectsBadConfig(t *testing.T) {
	if _, err := NewConverter(DefaultFace(), WithScale(0)); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Zero scale should fail with ErrInvalidGeometry, got %v", err)
	}
	if _, err := NewConverter(DefaultFace(), WithRamp(GlyphRamp(""))); err == nil {
		t.Error("Empty ramp should be rejected")
	}
}

func TestConvertImageDimensions(t *testing.T) {
	conv := newTestConverter(t)
	frame := imageutil.CreateGradientImage(100, 50)

	out, err := conv.ConvertImage(frame)
	if err != nil {
		t.Fatalf("ConvertImage failed: %v", err)
	}

	wantW, wantH, err := conv.OutputSize(100, 50, Rotate0)
	if err != nil {
		t.Fatalf("OutputSize failed: %v", err)
	}
	if out.Bounds().Dx() != wantW || out.Bounds().Dy() != wantH {
		t.Errorf("Output is %dx%d, OutputSize predicted %dx%d",
			out.Bounds().Dx(), out.Bounds().Dy(), wantW, wantH)
	}
	// 100x50 with 7x13 cells: 14 columns, 3 rows
	if wantW != 98 || wantH != 39 {
		t.Errorf("Expected 98x39 output for 100x50 input, got %dx%d", wantW, wantH)
	}
}

func TestConvertImageExtremeDownscaleFails(t *testing.T) {
	// A 100x50 frame at scale 0.01 must fail, not produce a degenerate
	// output
	conv := newTestConverter(t, WithScale(0.01))
	frame := imageutil.CreateGradientImage(100, 50)

	_, err := conv.ConvertImage(frame)
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Expected ErrInvalidGeometry, got %v", err)
	}
}

func TestOutputSizeWithRotation(t *testing.T) {
	conv := newTestConverter(t)

	// 100x50 rotated 90 degrees grids as 50x100: 7 columns, 7 rows
	w, h, err := conv.OutputSize(100, 50, Rotate90)
	if err != nil {
		t.Fatalf("OutputSize failed: %v", err)
	}
	if w != 49 || h != 91 {
		t.Errorf("Expected 49x91, got %dx%d", w, h)
	}

	// The prediction matches the real pipeline
	frame := imageutil.CreateGradientImage(100, 50)
	out, err := conv.ConvertFrame(frame, Rotate90)
	if err != nil {
		t.Fatalf("ConvertFrame failed: %v", err)
	}
	if out.Bounds().Dx() != w || out.Bounds().Dy() != h {
		t.Errorf("ConvertFrame emitted %dx%d, OutputSize predicted %dx%d",
			out.Bounds().Dx(), out.Bounds().Dy(), w, h)
	}
}

func TestOutputSizeDegenerate(t *testing.T) {
	conv := newTestConverter(t)
	if _, _, err := conv.OutputSize(5, 5, Rotate0); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Expected ErrInvalidGeometry, got %v", err)
	}
}

func TestConvertImageDeterministic(t *testing.T) {
	conv := newTestConverter(t)
	frame := imageutil.CreateGradientImage(70, 39)

	first, err := conv.ConvertImage(frame)
	if err != nil {
		t.Fatalf("ConvertImage failed: %v", err)
	}
	second, err := conv.ConvertImage(frame)
	if err != nil {
		t.Fatalf("ConvertImage failed: %v", err)
	}

	a := &imageutil.RGBAImage{RGBA: first}
	b := &imageutil.RGBAImage{RGBA: second}
	if imageutil.CalculateMaxDiff(a, b) != 0 {
		t.Error("Converting the same frame twice should be identical")
	}
}

func TestFrameStreamEmitsAllFramesInOrder(t *testing.T) {
	conv := newTestConverter(t)

	for _, n := range []int{0, 1, 3, 17} {
		src := &sliceSource{frames: gradientFrames(n, 70, 39)}
		stream := conv.Frames(src, Rotate0)

		emitted := 0
		for {
			frame, err := stream.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				t.Fatalf("Next failed at frame %d: %v", emitted+1, err)
			}
			if frame == nil {
				t.Fatal("Next returned a nil frame without error")
			}
			emitted++
		}

		if emitted != n {
			t.Errorf("%d-frame source emitted %d frames", n, emitted)
		}
		if stream.Count() != n {
			t.Errorf("Count() = %d, expected %d", stream.Count(), n)
		}
	}
}

func TestFrameStreamErrorIsSticky(t *testing.T) {
	conv := newTestConverter(t)
	src := &sliceSource{frames: gradientFrames(5, 70, 39), failAt: 3}
	stream := conv.Frames(src, Rotate0)

	for i := 0; i < 2; i++ {
		if _, err := stream.Next(); err != nil {
			t.Fatalf("Frame %d failed early: %v", i+1, err)
		}
	}

	_, err := stream.Next()
	if !errors.Is(err, ErrUnsupportedInput) {
		t.Fatalf("Expected the source error, got %v", err)
	}

	// Subsequent calls return the same error without pulling the source
	pulls := src.pulls
	if _, again := stream.Next(); !errors.Is(again, ErrUnsupportedInput) {
		t.Errorf("Sticky error lost: got %v", again)
	}
	if src.pulls != pulls {
		t.Error("Stream pulled the source after a failure")
	}
	if stream.Count() != 2 {
		t.Errorf("Count() = %d after failure, expected 2", stream.Count())
	}
}

func TestFrameStreamConversionFailureAborts(t *testing.T) {
	// A frame too small to grid aborts the run mid-stream
	conv := newTestConverter(t)
	frames := gradientFrames(3, 70, 39)
	frames[1] = imageutil.CreateGradientImage(3, 3)
	src := &sliceSource{frames: frames}
	stream := conv.Frames(src, Rotate0)

	if _, err := stream.Next(); err != nil {
		t.Fatalf("First frame failed: %v", err)
	}
	if _, err := stream.Next(); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("Expected ErrInvalidGeometry, got %v", err)
	}
	if _, err := stream.Next(); !errors.Is(err, ErrInvalidGeometry) {
		t.Error("Failure should be sticky; no frames after an abort")
	}
}

func TestDefaultOutputPath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"clip.mp4", "clip_ascii.mp4"},
		{"photo.png", "photo_ascii.png"},
		{"dir/movie.mov", "dir/movie_ascii.mov"},
		{"noext", "noext_ascii"},
	}
	for _, c := range cases {
		if got := DefaultOutputPath(c.in); got != c.want {
			t.Errorf("DefaultOutputPath(%q) = %q, expected %q", c.in, got, c.want)
		}
	}
}
