package testimage

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	img := Generate(DefaultWidth, DefaultHeight)
	assert.Equal(t, image.Rect(0, 0, 400, 300), img.Bounds())

	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(10, 10))
	assert.Equal(t, color.RGBA{G: 0xff, A: 0xff}, img.RGBAAt(10, 150))
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, img.RGBAAt(10, 290))
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, A: 0xff}, img.RGBAAt(390, 10))
	assert.Equal(t, color.RGBA{R: 0xff, B: 0xff, A: 0xff}, img.RGBAAt(390, 290))

	assert.Equal(t, color.RGBA{R: 100, G: 200, B: 44, A: 0xff}, img.RGBAAt(200, 100))
	assert.Equal(t, color.RGBA{R: 250, G: 350 % 256, B: 600 % 256, A: 0xff}, img.RGBAAt(350, 250))
}

func TestGenerateTiny(t *testing.T) {
	img := Generate(1, 1)
	assert.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())
	assert.Equal(t, uint8(0xff), img.RGBAAt(0, 0).A)
}
