// Package video holds the external media collaborators of the
// pipeline: frame decoding and encoding through OpenCV (gocv) and
// container metadata probing and audio remuxing through the ffmpeg
// command line tools. The core package never touches containers or
// codecs; it consumes and produces plain raster frames.
package video

import (
	"fmt"
	"io"

	"gocv.io/x/gocv"

	"github.com/wbrown/vid2ascii"
	"github.com/wbrown/vid2ascii/imageutil"
)

// Reader decodes the video stream of a media file frame by frame, in
// temporal order. It implements vid2ascii.FrameSource.
type Reader struct {
	path string
	cap  *gocv.VideoCapture
	mat  gocv.Mat
}

// OpenReader opens a media file for frame decoding.
func OpenReader(path string) (*Reader, error) {
	cap, err := gocv.OpenVideoCapture(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening video %s: %v",
			vid2ascii.ErrUnsupportedInput, path, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("%w: cannot decode video %s",
			vid2ascii.ErrUnsupportedInput, path)
	}
	return &Reader{
		path: path,
		cap:  cap,
		mat:  gocv.NewMat(),
	}, nil
}

// FPS returns the container's frame rate.
func (r *Reader) FPS() float64 {
	return r.cap.Get(gocv.VideoCaptureFPS)
}

// Size returns the coded frame dimensions before any rotation
// correction.
func (r *Reader) Size() (width, height int) {
	return int(r.cap.Get(gocv.VideoCaptureFrameWidth)),
		int(r.cap.Get(gocv.VideoCaptureFrameHeight))
}

// FrameCount returns the container's reported frame count. Some
// containers do not carry one, in which case it returns 0.
func (r *Reader) FrameCount() int {
	n := int(r.cap.Get(gocv.VideoCaptureFrameCount))
	if n < 0 {
		return 0
	}
	return n
}

// Next decodes and returns the next frame, or io.EOF after the last
// one. Each call hands ownership of a fresh frame to the caller.
func (r *Reader) Next() (*imageutil.RGBAImage, error) {
	if ok := r.cap.Read(&r.mat); !ok || r.mat.Empty() {
		return nil, io.EOF
	}
	img, err := r.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: decoding frame from %s: %v",
			vid2ascii.ErrUnsupportedInput, r.path, err)
	}
	return imageutil.RGBAImageFromImage(img), nil
}

// Close releases the decoder.
func (r *Reader) Close() error {
	r.mat.Close()
	return r.cap.Close()
}
