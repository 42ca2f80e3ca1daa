package video

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"github.com/wbrown/vid2ascii"
)

// fourCC selects the output codec. MPEG-4 Part 2 is the codec OpenCV
// builds most reliably ship with.
const fourCC = "mp4v"

// Writer encodes output frames into a video file at a fixed frame
// rate. Frames must all have the dimensions the writer was opened
// with, and must be written in presentation order.
type Writer struct {
	path   string
	w      *gocv.VideoWriter
	width  int
	height int
}

// NewWriter creates a video file for writing.
func NewWriter(path string, fps float64, width, height int) (*Writer, error) {
	w, err := gocv.VideoWriterFile(path, fourCC, fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("%w: creating video %s: %v",
			vid2ascii.ErrRenderFailure, path, err)
	}
	if !w.IsOpened() {
		w.Close()
		return nil, fmt.Errorf("%w: encoder rejected %s (%gfps %dx%d)",
			vid2ascii.ErrRenderFailure, path, fps, width, height)
	}
	return &Writer{path: path, w: w, width: width, height: height}, nil
}

// Write appends one frame to the output video.
func (w *Writer) Write(frame *image.RGBA) error {
	b := frame.Bounds()
	if b.Dx() != w.width || b.Dy() != w.height {
		return fmt.Errorf("%w: frame is %dx%d, writer expects %dx%d",
			vid2ascii.ErrRenderFailure, b.Dx(), b.Dy(), w.width, w.height)
	}
	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return fmt.Errorf("%w: converting frame: %v", vid2ascii.ErrRenderFailure, err)
	}
	defer mat.Close()
	if err := w.w.Write(mat); err != nil {
		return fmt.Errorf("%w: encoding frame: %v", vid2ascii.ErrRenderFailure, err)
	}
	return nil
}

// Close finalizes the output file.
func (w *Writer) Close() error {
	return w.w.Close()
}

// Abort closes the writer and removes the partially written file so a
// failed run leaves no truncated output behind.
func (w *Writer) Abort() {
	w.w.Close()
	os.Remove(w.path)
}
