package kquant

import (
	"image"
	"image/color"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/unixpickle/essentials"
)

// DefaultClusters is the default number of colors in a
// compressed image.
const DefaultClusters = 16

// DefaultSeed is the default seed for k-means++
// initialization.
const DefaultSeed = 42

type Config struct {
	// Clusters is the number of colors K.
	// If zero, DefaultClusters is used.
	Clusters int

	// Seed for the pseudo-random initialization.
	Seed int64

	// MaxIters limits Lloyd iterations per run.
	// If zero, DefaultMaxIters is used.
	MaxIters int

	// Attempts is the number of independent initializations.
	// If zero, DefaultAttempts is used.
	Attempts int

	// Workers bounds the goroutines used for the assignment
	// step. If zero, runtime.GOMAXPROCS(0) is used.
	Workers int

	// Logger receives progress messages. If nil, nothing is
	// logged.
	Logger logrus.FieldLogger
}

func (c *Config) clusters() int {
	if c.Clusters == 0 {
		return DefaultClusters
	}
	return c.Clusters
}

func (c *Config) maxIters() int {
	if c.MaxIters <= 0 {
		return DefaultMaxIters
	}
	return c.MaxIters
}

func (c *Config) attempts() int {
	if c.Attempts <= 0 {
		return DefaultAttempts
	}
	return c.Attempts
}

func (c *Config) workers() int {
	if c.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}

func (c *Config) logger() logrus.FieldLogger {
	if c.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return c.Logger
}

// Result is a compressed image along with the clustering
// that produced it.
type Result struct {
	Image      *image.RGBA
	Clustering *Clustering
}

// Palette returns the rounded centroid colors.
func (r *Result) Palette() color.Palette {
	return Palette(r.Clustering.Centroids)
}

// CompressImage reduces img to at most c.Clusters colors.
//
// The original image is never modified.
func CompressImage(img image.Image, c *Config) (*Result, error) {
	if c == nil {
		c = &Config{}
	}
	pixels, err := Flatten(img)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	c.logger().WithFields(logrus.Fields{
		"width":    bounds.Dx(),
		"height":   bounds.Dy(),
		"clusters": c.clusters(),
	}).Info("clustering pixels")

	clustering, err := Quantize(pixels, c.clusters(), c.Seed, c)
	if err != nil {
		return nil, err
	}
	compressed, err := Substitute(pixels, clustering.Centroids, clustering.Assignments)
	if err != nil {
		return nil, essentials.AddCtx("substitute", err)
	}
	out, err := Reshape(compressed, bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, essentials.AddCtx("reshape", err)
	}
	return &Result{Image: out, Clustering: clustering}, nil
}

// Palette converts centroids to opaque 8-bit colors.
func Palette(centroids []Color) color.Palette {
	res := make(color.Palette, len(centroids))
	for i, c := range centroids {
		res[i] = c.RGBA()
	}
	return res
}
