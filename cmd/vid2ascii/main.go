// Command vid2ascii converts a video into an ASCII art video of the
// same duration and frame rate: every frame is re-expressed as a grid
// of colored monospaced glyphs and re-encoded, and the source audio
// track, when present, is carried over.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/font"

	"github.com/wbrown/vid2ascii"
	"github.com/wbrown/vid2ascii/video"
)

func main() {
	inputFile := flag.String("input", "",
		"Path to the input video file (required)")
	outputFile := flag.String("output", "",
		"Path to save the output video (default: <input>_ascii.<ext>)")
	fontSize := flag.Float64("fontsize", 10,
		"Font point size; smaller sizes give a finer grid, slower")
	scale := flag.Float64("scale", 1.0,
		"Scale factor applied to each frame before gridding")
	fontPath := flag.String("font", "",
		"Path to a monospaced TTF font (default: built-in face)")
	flag.Parse()

	if *inputFile == "" {
		fmt.Println("Please provide the video using the -input flag")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *outputFile == "" {
		*outputFile = vid2ascii.DefaultOutputPath(*inputFile)
	}

	if err := run(*inputFile, *outputFile, *fontPath, *fontSize, *scale); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(input, output, fontPath string, fontSize, scale float64) error {
	// Rotation and audio presence are read once per input.
	probe, err := video.Probe(input)
	if err != nil {
		return err
	}
	rot, err := vid2ascii.RotationFromDegrees(probe.Rotation)
	if err != nil {
		return err
	}

	reader, err := video.OpenReader(input)
	if err != nil {
		return err
	}
	defer reader.Close()

	fps := reader.FPS()
	if fps <= 0 {
		return fmt.Errorf("%w: %s reports no frame rate",
			vid2ascii.ErrUnsupportedInput, input)
	}

	face := loadFace(fontPath, fontSize)
	conv, err := vid2ascii.NewConverter(face, vid2ascii.WithScale(scale))
	if err != nil {
		return err
	}

	srcW, srcH := reader.Size()
	outW, outH, err := conv.OutputSize(srcW, srcH, rot)
	if err != nil {
		return err
	}
	geom := conv.Geometry()
	fmt.Printf("Resolution: %dx%d\n", srcW, srcH)
	if rot != vid2ascii.Rotate0 {
		fmt.Printf("Rotation: %d degrees\n", rot.Degrees())
	}
	fmt.Printf("Char Size: %dx%d\n", geom.Width, geom.Height)
	fmt.Printf("Grid: %dx%d\n", outW/geom.Width, outH/geom.Height)
	fmt.Printf("Output: %dx%d at %g fps\n", outW, outH, fps)

	// Encode to a sibling temp file; the real output path only ever
	// holds a complete video.
	tmp := tempOutputPath(output)
	writer, err := video.NewWriter(tmp, fps, outW, outH)
	if err != nil {
		return err
	}

	start := time.Now()
	total := reader.FrameCount()
	stream := conv.Frames(reader, rot)
	for {
		frame, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			writer.Abort()
			return fmt.Errorf("frame %d: %w", stream.Count()+1, err)
		}
		if err := writer.Write(frame); err != nil {
			writer.Abort()
			return fmt.Errorf("frame %d: %w", stream.Count(), err)
		}
		if total > 0 {
			fmt.Printf("\rFrames: %d/%d", stream.Count(), total)
		} else {
			fmt.Printf("\rFrames: %d", stream.Count())
		}
	}
	fmt.Println()
	if stream.Count() == 0 {
		writer.Abort()
		return fmt.Errorf("%w: %s has no frames", vid2ascii.ErrUnsupportedInput, input)
	}
	if err := writer.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if probe.HasAudio {
		fmt.Println("Muxing audio...")
		err := video.MuxAudio(tmp, input, output)
		os.Remove(tmp)
		if err != nil {
			return err
		}
	} else if err := os.Rename(tmp, output); err != nil {
		os.Remove(tmp)
		return err
	}

	fmt.Printf("Saved %d frames to %s in %v\n",
		stream.Count(), output, time.Since(start))
	return nil
}

// tempOutputPath builds a sibling path that keeps the output's
// extension, so the container format stays the same.
func tempOutputPath(output string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + ".part" + ext
}

// loadFace loads the requested TTF face, falling back to the built-in
// bitmap face when none is given or loading fails.
func loadFace(path string, size float64) font.Face {
	if path == "" {
		return vid2ascii.DefaultFace()
	}
	face, err := vid2ascii.LoadFace(path, size)
	if err != nil {
		fmt.Printf("Error loading font: %v\n", err)
		fmt.Println("Using built-in face")
		return vid2ascii.DefaultFace()
	}
	fmt.Printf("Font loaded: %s\n", path)
	return face
}
