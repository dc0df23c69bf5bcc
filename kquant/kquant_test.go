package kquant

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressImage(t *testing.T) {
	img := randomRGBA(40, 30)
	original := append([]uint8{}, img.Pix...)

	res, err := CompressImage(img, &Config{Clusters: 5, Attempts: 2})
	require.NoError(t, err)
	assert.Equal(t, img.Pix, original, "input image was modified")
	assert.Equal(t, img.Bounds().Size(), res.Image.Bounds().Size())

	palette := res.Palette()
	require.Len(t, palette, 5)
	inPalette := map[color.RGBA]bool{}
	for _, c := range palette {
		inPalette[c.(color.RGBA)] = true
	}
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			c := res.Image.RGBAAt(x, y)
			if !inPalette[c] {
				t.Fatalf("pixel (%d, %d) = %v is not in the palette", x, y, c)
			}
		}
	}
}

func TestCompressImageTooManyClusters(t *testing.T) {
	img := randomRGBA(2, 2)
	_, err := CompressImage(img, &Config{Clusters: 5})
	assert.IsType(t, &InvalidClusterCountError{}, err)
}

func TestCompressImageOffsetBounds(t *testing.T) {
	img := randomRGBA(10, 10).SubImage(image.Rect(3, 4, 8, 9))
	res, err := CompressImage(img, &Config{Clusters: 3, Attempts: 1})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 5), res.Image.Bounds())
}
