package kquant

import (
	"image"
	"image/color"
)

// Flatten reads every pixel of img in row-major order,
// discarding the spatial layout.
//
// Alpha is ignored. Images without color channels, like
// those using color.AlphaModel, are rejected.
func Flatten(img image.Image) (Pixels, error) {
	if img == nil {
		return nil, &InvalidImageError{Reason: "nil image"}
	}
	switch img.ColorModel() {
	case color.AlphaModel, color.Alpha16Model:
		return nil, &InvalidImageError{Reason: "alpha-only images have no color channels"}
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, &InvalidImageError{Reason: "image has no pixels"}
	}
	res := make(Pixels, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			res = append(res, NewColor(img.At(x, y)))
		}
	}
	return res, nil
}

// Reshape lays pixels out as a width x height raster.
//
// The number of pixels must be exactly width*height.
func Reshape(pixels Pixels, width, height int) (*image.RGBA, error) {
	if width < 0 || height < 0 || len(pixels) != width*height {
		return nil, &ShapeMismatchError{
			Width:    width,
			Height:   height,
			Expected: width * height,
			Actual:   len(pixels),
		}
	}
	res := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			res.SetRGBA(x, y, pixels[y*width+x].RGBA())
		}
	}
	return res, nil
}
