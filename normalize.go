package vid2ascii

import (
	"fmt"
	"math"

	"github.com/wbrown/vid2ascii/imageutil"
)

// Rotation is a right-angle rotation correction read once per input
// from container metadata and applied identically to every frame.
// Angles are clockwise.
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// RotationFromDegrees converts a metadata angle in degrees to a
// Rotation. Negative angles and multiples of 360 are normalized;
// anything that is not a multiple of 90 is rejected.
func RotationFromDegrees(deg int) (Rotation, error) {
	norm := ((deg % 360) + 360) % 360
	switch norm {
	case 0:
		return Rotate0, nil
	case 90:
		return Rotate90, nil
	case 180:
		return Rotate180, nil
	case 270:
		return Rotate270, nil
	}
	return Rotate0, fmt.Errorf("%w: rotation angle %d is not a right angle",
		ErrUnsupportedInput, deg)
}

// Degrees returns the clockwise angle of the rotation.
func (r Rotation) Degrees() int {
	return int(r) * 90
}

// Normalize applies rotation correction and a uniform scale factor to
// a frame before it enters the grid pipeline. Rotation happens first,
// swapping width and height for 90 and 270 degrees; scaling then
// multiplies both dimensions by the same factor, rounding each to the
// nearest integer, using bilinear interpolation. A rotation of 0 with
// a scale of 1.0 is a no-op and returns the input unchanged.
//
// The input frame is never mutated. If either scaled dimension rounds
// to zero the call fails with ErrInvalidGeometry instead of clamping.
func Normalize(frame *imageutil.RGBAImage, rot Rotation, scale float64) (*imageutil.RGBAImage, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("%w: scale factor %g must be positive",
			ErrInvalidGeometry, scale)
	}

	switch rot {
	case Rotate0:
		// no rotation
	case Rotate90:
		frame = imageutil.Rotate90(frame)
	case Rotate180:
		frame = imageutil.Rotate180(frame)
	case Rotate270:
		frame = imageutil.Rotate270(frame)
	default:
		return nil, fmt.Errorf("%w: rotation %d", ErrUnsupportedInput, rot)
	}

	if scale != 1.0 {
		w, h, err := scaledSize(frame.Width(), frame.Height(), scale)
		if err != nil {
			return nil, err
		}
		frame = imageutil.Resize(frame, w, h, imageutil.InterpolationLinear)
	}

	return frame, nil
}

// scaledSize multiplies both dimensions by the scale factor and rounds
// to the nearest integer, failing if either side vanishes.
func scaledSize(width, height int, scale float64) (int, int, error) {
	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(height) * scale))
	if w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("%w: %dx%d scaled by %g collapses to %dx%d",
			ErrInvalidGeometry, width, height, scale, w, h)
	}
	return w, h, nil
}
