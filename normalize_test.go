package vid2ascii

import (
	"errors"
	"testing"

	"github.com/wbrown/vid2ascii/imageutil"
)

func TestRotationFromDegrees(t *testing.T) {
	cases := []struct {
		deg  int
		want Rotation
	}{
		{0, Rotate0},
		{90, Rotate90},
		{180, Rotate180},
		{270, Rotate270},
		{360, Rotate0},
		{450, Rotate90},
		{-90, Rotate270},
		{-180, Rotate180},
		{-270, Rotate90},
	}
	for _, c := range cases {
		got, err := RotationFromDegrees(c.deg)
		if err != nil {
			t.Errorf("RotationFromDegrees(%d) failed: %v", c.deg, err)
			continue
		}
		if got != c.want {
			t.Errorf("RotationFromDegrees(%d) = %v, expected %v", c.deg, got, c.want)
		}
	}
}

func TestRotationFromDegreesRejectsOblique(t *testing.T) {
	for _, deg := range []int{45, 91, -30, 359} {
		if _, err := RotationFromDegrees(deg); !errors.Is(err, ErrUnsupportedInput) {
			t.Errorf("RotationFromDegrees(%d) should fail with ErrUnsupportedInput, got %v",
				deg, err)
		}
	}
}

func TestNormalizeNoop(t *testing.T) {
	frame := imageutil.CreateGradientImage(100, 50)
	out, err := Normalize(frame, Rotate0, 1.0)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if out.Width() != 100 || out.Height() != 50 {
		t.Errorf("No-op normalization changed dimensions to %dx%d",
			out.Width(), out.Height())
	}
	if imageutil.CalculateMaxDiff(frame, out) != 0 {
		t.Error("No-op normalization should be pixel-identical")
	}
}

func TestNormalizeRotate90SwapsDimensions(t *testing.T) {
	frame := imageutil.CreateGradientImage(100, 50)
	out, err := Normalize(frame, Rotate90, 1.0)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if out.Width() != 50 || out.Height() != 100 {
		t.Errorf("90 degree rotation of 100x50 should yield 50x100, got %dx%d",
			out.Width(), out.Height())
	}
}

func TestNormalizeRotationBeforeScaling(t *testing.T) {
	// Rotation applies first, so the scale acts on the swapped
	// dimensions
	frame := imageutil.CreateGradientImage(100, 50)
	out, err := Normalize(frame, Rotate90, 0.5)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if out.Width() != 25 || out.Height() != 50 {
		t.Errorf("Expected 25x50, got %dx%d", out.Width(), out.Height())
	}
}

func TestNormalizeScalePreservesAspect(t *testing.T) {
	frame := imageutil.CreateGradientImage(100, 50)
	out, err := Normalize(frame, Rotate0, 0.5)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if out.Width() != 50 || out.Height() != 25 {
		t.Errorf("Expected 50x25, got %dx%d", out.Width(), out.Height())
	}

	// Dimensions round to nearest
	out, err = Normalize(frame, Rotate0, 0.25)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if out.Width() != 25 || out.Height() != 13 {
		t.Errorf("Expected 25x13, got %dx%d", out.Width(), out.Height())
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	frame := imageutil.CreateGradientImage(60, 40)
	reference := frame.Clone()

	if _, err := Normalize(frame, Rotate180, 0.5); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if imageutil.CalculateMaxDiff(frame, reference) != 0 {
		t.Error("Normalize must not modify the input frame")
	}
}

func TestNormalizeRejectsNonPositiveScale(t *testing.T) {
	frame := imageutil.CreateGradientImage(10, 10)
	for _, scale := range []float64{0, -1} {
		if _, err := Normalize(frame, Rotate0, scale); !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("Scale %g should fail with ErrInvalidGeometry, got %v", scale, err)
		}
	}
}

func TestNormalizeCollapsedDimensionFails(t *testing.T) {
	// 3x3 scaled by 0.1 rounds both dimensions to zero
	frame := imageutil.CreateGradientImage(3, 3)
	_, err := Normalize(frame, Rotate0, 0.1)
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Expected ErrInvalidGeometry, got %v", err)
	}
}
