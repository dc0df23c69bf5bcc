// Package quality measures how far a compressed image has
// drifted from its original.
package quality

import (
	"image"
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A Report summarizes the difference between two images of
// the same size.
type Report struct {
	// MSE is the mean squared error over all channels, on a
	// 0-255 scale.
	MSE float64

	// ChannelMSE holds the mean squared error of R, G and B
	// separately.
	ChannelMSE [3]float64

	// PSNR in decibels. It is +Inf for identical images.
	PSNR float64

	OriginalColors   int
	CompressedColors int
}

// Compare builds a Report for two images with equally
// sized bounds. Alpha is ignored and colors are compared
// unpremultiplied.
func Compare(original, compressed image.Image) (*Report, error) {
	ob, cb := original.Bounds(), compressed.Bounds()
	if ob.Dx() != cb.Dx() || ob.Dy() != cb.Dy() {
		return nil, errors.Errorf("size mismatch: %dx%d vs %dx%d", ob.Dx(), ob.Dy(), cb.Dx(), cb.Dy())
	}
	if ob.Empty() {
		return nil, errors.New("cannot compare empty images")
	}

	n := ob.Dx() * ob.Dy()
	var sqErr [3][]float64
	for i := range sqErr {
		sqErr[i] = make([]float64, 0, n)
	}
	origColors := map[[3]uint8]struct{}{}
	compColors := map[[3]uint8]struct{}{}
	for y := 0; y < ob.Dy(); y++ {
		for x := 0; x < ob.Dx(); x++ {
			o := rgb8(original, ob.Min.X+x, ob.Min.Y+y)
			c := rgb8(compressed, cb.Min.X+x, cb.Min.Y+y)
			origColors[o] = struct{}{}
			compColors[c] = struct{}{}
			for i := range o {
				d := float64(o[i]) - float64(c[i])
				sqErr[i] = append(sqErr[i], d*d)
			}
		}
	}

	r := &Report{
		OriginalColors:   len(origColors),
		CompressedColors: len(compColors),
	}
	for i, errs := range sqErr {
		r.ChannelMSE[i] = stat.Mean(errs, nil)
	}
	r.MSE = floats.Sum(r.ChannelMSE[:]) / 3
	r.PSNR = PSNR(r.MSE)
	return r, nil
}

// PSNR converts a mean squared error on a 0-255 scale to a
// peak signal-to-noise ratio.
func PSNR(mse float64) float64 {
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(255*255/mse)
}

// rgb8 reads non-premultiplied channels, matching the
// values the quantizer clusters.
func rgb8(img image.Image, x, y int) [3]uint8 {
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return [3]uint8{c.R, c.G, c.B}
}
