package imageutil

// Rotate90 returns the image rotated 90 degrees clockwise about its
// center. Width and height swap.
func Rotate90(img *RGBAImage) *RGBAImage {
	w, h := img.Width(), img.Height()
	dst := NewRGBAImage(h, w)
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			dst.SetRGB(x, y, img.GetRGB(y, h-1-x))
		}
	}
	return dst
}

// Rotate180 returns the image rotated 180 degrees.
func Rotate180(img *RGBAImage) *RGBAImage {
	w, h := img.Width(), img.Height()
	dst := NewRGBAImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetRGB(x, y, img.GetRGB(w-1-x, h-1-y))
		}
	}
	return dst
}

// Rotate270 returns the image rotated 270 degrees clockwise (90
// counter-clockwise). Width and height swap.
func Rotate270(img *RGBAImage) *RGBAImage {
	w, h := img.Width(), img.Height()
	dst := NewRGBAImage(h, w)
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			dst.SetRGB(x, y, img.GetRGB(w-1-y, x))
		}
	}
	return dst
}
