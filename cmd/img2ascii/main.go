// Command img2ascii converts a single raster image into an ASCII art
// image: the input is partitioned into a grid of font-sized cells,
// each cell becomes one colored glyph, and the glyph grid is written
// back out as an image file.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/image/font"

	"github.com/wbrown/vid2ascii"
	"github.com/wbrown/vid2ascii/imageutil"
)

func main() {
	inputFile := flag.String("input", "",
		"Path to the input image file (required)")
	outputFile := flag.String("output", "",
		"Path to save the output image (default: <input>_ascii.<ext>)")
	fontSize := flag.Float64("fontsize", 10,
		"Font point size; smaller sizes give a finer grid")
	scale := flag.Float64("scale", 1.0,
		"Scale factor applied to the frame before gridding")
	fontPath := flag.String("font", "",
		"Path to a monospaced TTF font (default: built-in face)")
	flag.Parse()

	if *inputFile == "" {
		fmt.Println("Please provide the image using the -input flag")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *outputFile == "" {
		*outputFile = vid2ascii.DefaultOutputPath(*inputFile)
	}

	face := loadFace(*fontPath, *fontSize)
	conv, err := vid2ascii.NewConverter(face, vid2ascii.WithScale(*scale))
	if err != nil {
		fmt.Printf("Error configuring converter: %v\n", err)
		os.Exit(1)
	}

	frame, err := imageutil.LoadImage(*inputFile)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", *inputFile, err)
		os.Exit(1)
	}

	geom := conv.Geometry()
	fmt.Printf("Resolution: %dx%d\n", frame.Width(), frame.Height())
	fmt.Printf("Char Size: %dx%d\n", geom.Width, geom.Height)
	if cols, rows, err := conv.GridSize(frame.Width(), frame.Height(), vid2ascii.Rotate0); err == nil {
		fmt.Printf("Grid: %dx%d\n", cols, rows)
	}

	start := time.Now()
	out, err := conv.ConvertImage(frame)
	if err != nil {
		fmt.Printf("Error converting %s: %v\n", *inputFile, err)
		os.Exit(1)
	}
	if err := imageutil.SaveImage(out, *outputFile); err != nil {
		fmt.Printf("Error writing %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	fmt.Printf("Saved to %s in %v\n", *outputFile, time.Since(start))
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
