package kquant

import (
	"image/color"
	"math"
)

// A Color is an RGB triple with real-valued channels.
//
// Colors read from an image have integer channels in the
// range [0, 255], but centroids are kept as unrounded means
// until they are substituted back into an image.
type Color [3]float64

// Pixels is a row-major collection of colors.
type Pixels []Color

// NewColor converts a standard library color to a Color,
// dropping alpha. The channels are not premultiplied.
func NewColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{float64(n.R), float64(n.G), float64(n.B)}
}

// Add returns the channel-wise sum of c and c1.
func (c Color) Add(c1 Color) Color {
	return Color{c[0] + c1[0], c[1] + c1[1], c[2] + c1[2]}
}

// Scale multiplies every channel by s.
func (c Color) Scale(s float64) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s}
}

// DistSquared computes the squared Euclidean distance
// between c and c1.
func (c Color) DistSquared(c1 Color) float64 {
	d0 := c[0] - c1[0]
	d1 := c[1] - c1[1]
	d2 := c[2] - c1[2]
	return d0*d0 + d1*d1 + d2*d2
}

// Quantized rounds every channel to the nearest integer
// and clamps it to [0, 255].
func (c Color) Quantized() Color {
	var res Color
	for i, x := range c {
		res[i] = float64(clampChannel(x))
	}
	return res
}

// RGBA converts c to an opaque 8-bit color.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: clampChannel(c[0]),
		G: clampChannel(c[1]),
		B: clampChannel(c[2]),
		A: 0xff,
	}
}

func clampChannel(x float64) uint8 {
	x = math.Round(x)
	if x <= 0 || math.IsNaN(x) {
		return 0
	} else if x >= 0xff {
		return 0xff
	}
	return uint8(x)
}
