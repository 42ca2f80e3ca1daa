package vid2ascii

import "errors"

// Error kinds surfaced by the conversion pipeline. Callers match them
// with errors.Is; every error returned by this package wraps exactly one
// of these. No operation retries: the pipeline is deterministic, so a
// retried call would fail identically.
var (
	// ErrInvalidGeometry indicates that a normalized frame or its cell
	// grid collapsed to zero width, height, rows, or columns.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrUnsupportedInput indicates input that cannot be decoded, or
	// rotation metadata that is unreadable or ambiguous.
	ErrUnsupportedInput = errors.New("unsupported input")

	// ErrRenderFailure indicates a failure in the font rendering or
	// canvas stage. It aborts the whole run so that emitted frames stay
	// contiguous and ordered.
	ErrRenderFailure = errors.New("render failure")
)
