// Package preview renders before/after comparisons.
package preview

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Background fills the gap between the two panels.
var Background = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// SideBySide draws left and right next to each other,
// separated by gap pixels.
//
// The right image is scaled to the height of the left one,
// keeping its aspect ratio, if the heights differ.
func SideBySide(left, right image.Image, gap int) *image.RGBA {
	if gap < 0 {
		gap = 0
	}
	lb := left.Bounds()
	rb := right.Bounds()
	height := lb.Dy()
	rightWidth := rb.Dx()
	if rb.Dy() != height && rb.Dy() > 0 {
		rightWidth = rb.Dx() * height / rb.Dy()
	}

	dst := image.NewRGBA(image.Rect(0, 0, lb.Dx()+gap+rightWidth, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(0, 0, lb.Dx(), height), left, lb.Min, draw.Src)

	rightRect := image.Rect(lb.Dx()+gap, 0, lb.Dx()+gap+rightWidth, height)
	if rightWidth == rb.Dx() && rb.Dy() == height {
		draw.Draw(dst, rightRect, right, rb.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, rightRect, right, rb, draw.Src, nil)
	}
	return dst
}
