package vid2ascii

import (
	"fmt"

	"github.com/wbrown/vid2ascii/imageutil"
)

// CellSample is the reduction of one grid cell: the arithmetic mean
// color of its pixels and the normalized luma of that mean.
type CellSample struct {
	Color      imageutil.RGB
	Brightness float64
}

// SampleGrid holds one CellSample per grid position, row-major.
// A grid is produced fresh for every frame and never reused.
type SampleGrid struct {
	Rows  int
	Cols  int
	cells []CellSample
}

// At returns the sample at row r, column c.
func (g *SampleGrid) At(r, c int) CellSample {
	return g.cells[r*g.Cols+c]
}

// SampleCells partitions a frame into a grid of cells of the given
// geometry and reduces each cell to its mean color and brightness.
// Grid size is floor(height/cellHeight) x floor(width/cellWidth);
// remainder pixels at the right and bottom edges are dropped, not
// padded. The frame is not modified.
//
// Sampling is deterministic: the same frame and geometry always
// produce the same grid.
func SampleCells(frame *imageutil.RGBAImage, geom CellGeometry) (*SampleGrid, error) {
	if geom.Width < 1 || geom.Height < 1 {
		return nil, fmt.Errorf("%w: cell size %dx%d",
			ErrInvalidGeometry, geom.Width, geom.Height)
	}

	rows := frame.Height() / geom.Height
	cols := frame.Width() / geom.Width
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: frame %dx%d yields %dx%d grid for %dx%d cells",
			ErrInvalidGeometry, frame.Width(), frame.Height(),
			cols, rows, geom.Width, geom.Height)
	}

	grid := &SampleGrid{
		Rows:  rows,
		Cols:  cols,
		cells: make([]CellSample, rows*cols),
	}

	n := uint32(geom.Width * geom.Height)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			var sumR, sumG, sumB uint32
			y0 := r * geom.Height
			x0 := c * geom.Width
			for y := y0; y < y0+geom.Height; y++ {
				for x := x0; x < x0+geom.Width; x++ {
					px := frame.GetRGB(x, y)
					sumR += uint32(px.R)
					sumG += uint32(px.G)
					sumB += uint32(px.B)
				}
			}
			// Mean per channel, rounded to nearest
			mean := imageutil.RGB{
				R: uint8((sumR + n/2) / n),
				G: uint8((sumG + n/2) / n),
				B: uint8((sumB + n/2) / n),
			}
			grid.cells[r*cols+c] = CellSample{
				Color:      mean,
				Brightness: Luma(mean) / 255.0,
			}
		}
	}

	return grid, nil
}

// Luma returns the BT.601 luma of a color in the range [0, 255]:
// 0.299 R + 0.587 G + 0.114 B, the same weighting OpenCV uses for
// its RGB-to-grayscale conversion.
func Luma(c imageutil.RGB) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}
