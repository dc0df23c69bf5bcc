// Package testimage synthesizes a colorful image that is
// handy for trying out quantization.
package testimage

import (
	"image"
	"image/color"
)

const (
	DefaultWidth  = 400
	DefaultHeight = 300
)

// Generate creates a width x height image made of five
// solid color blocks with a gradient patch over the middle.
//
// The left half is split into red, green and blue rows and
// the right half into yellow and magenta rows.
func Generate(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, blockColor(x, y, width, height))
		}
	}

	// The patch covers [h/6, 5h/6] x [w/8, 7w/8], inclusive.
	for y := height / 6; y <= height*5/6 && y < height; y++ {
		for x := width / 8; x <= width*7/8 && x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(y % 256),
				G: uint8(x % 256),
				B: uint8((x + y) % 256),
				A: 0xff,
			})
		}
	}
	return img
}

func blockColor(x, y, width, height int) color.RGBA {
	if x < width/2 {
		switch {
		case y < height/3:
			return color.RGBA{R: 0xff, A: 0xff}
		case y < height*2/3:
			return color.RGBA{G: 0xff, A: 0xff}
		default:
			return color.RGBA{B: 0xff, A: 0xff}
		}
	}
	if y < height/2 {
		return color.RGBA{R: 0xff, G: 0xff, A: 0xff}
	}
	return color.RGBA{R: 0xff, B: 0xff, A: 0xff}
}
