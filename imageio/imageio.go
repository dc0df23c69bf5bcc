// Package imageio decodes and encodes raster images on
// disk.
//
// Decoding supports PNG, JPEG, GIF, BMP, TIFF and WebP.
// Encoding picks a format from the file extension and
// supports every decodable format except WebP.
package imageio

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultJPEGQuality is used when SaveOptions does not
// specify a quality.
const DefaultJPEGQuality = 90

// Load decodes the image at path.
//
// The returned string names the detected format, e.g.
// "jpeg" or "png".
func Load(path string) (image.Image, string, error) {
	r, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", &FileNotFoundError{Path: path}
		}
		return nil, "", errors.Wrapf(err, "open %s", path)
	}
	defer r.Close()
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", &DecodeError{Path: path, Err: err}
	}
	return img, format, nil
}

type SaveOptions struct {
	// JPEGQuality ranges from 1 to 100.
	// If zero, DefaultJPEGQuality is used.
	JPEGQuality int
}

// Save encodes img to path, choosing the format from the
// extension of path.
//
// The file is written to a temporary file in the same
// directory first and renamed into place, so a failed
// encode never leaves a truncated output behind.
func Save(img image.Image, path string, opts *SaveOptions) error {
	if opts == nil {
		opts = &SaveOptions{}
	}
	encode, err := encoderForPath(path, opts)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "create temporary file")
	}
	tmpPath := tmp.Name()
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "chmod temporary file")
	}
	if err := encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrapf(err, "encode %s", path)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "write %s", path)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrapf(err, "rename into %s", path)
	}
	return nil
}

type encodeFunc func(w io.Writer, img image.Image) error

func encoderForPath(path string, opts *SaveOptions) (encodeFunc, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".jpg", ".jpeg":
		quality := opts.JPEGQuality
		if quality == 0 {
			quality = DefaultJPEGQuality
		}
		if quality < 1 || quality > 100 {
			return nil, errors.Errorf("invalid JPEG quality: %d", quality)
		}
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
		}, nil
	case ".png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
		}
		return enc.Encode, nil
	case ".gif":
		return func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		}, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, &UnsupportedFormatError{Path: path, Ext: ext}
	}
}
