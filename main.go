package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/unixpickle/kquant/config"
	"github.com/unixpickle/kquant/imageio"
	"github.com/unixpickle/kquant/kquant"
	"github.com/unixpickle/kquant/locate"
	"github.com/unixpickle/kquant/preview"
	"github.com/unixpickle/kquant/quality"
	"github.com/unixpickle/kquant/testimage"
)

func main() {
	os.Exit(runMain(os.Stdout))
}

// runMain performs one run and returns the process exit
// status.
func runMain(out io.Writer) int {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf("invalid configuration: %v", err)
		return 1
	}
	if cfg.MaxProcs > 0 {
		runtime.GOMAXPROCS(cfg.MaxProcs)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error(err)
		return 1
	}
	return 0
}

func run(cfg config.Config, logger logrus.FieldLogger) error {
	inputPath, err := resolveInput(cfg, logger)
	if err != nil {
		return err
	}
	logger.Infof("found image: %s", inputPath)

	img, format, err := imageio.Load(inputPath)
	if err != nil {
		return err
	}
	bounds := img.Bounds()
	logger.WithFields(logrus.Fields{
		"format": format,
		"pixels": humanize.Comma(int64(bounds.Dx() * bounds.Dy())),
	}).Infof("original size: %dx%d", bounds.Dx(), bounds.Dy())

	qc := cfg.Quantizer()
	qc.Logger = logger
	result, err := kquant.CompressImage(img, qc)
	if err != nil {
		return errors.Wrap(err, "compress image")
	}
	logger.WithFields(logrus.Fields{
		"iterations": result.Clustering.Iterations,
		"converged":  result.Clustering.Converged,
	}).Info("clustering done")

	err = imageio.Save(result.Image, cfg.Output, &imageio.SaveOptions{JPEGQuality: cfg.JPEGQuality})
	if err != nil {
		return err
	}
	logger.Infof("compressed image saved to %s", cfg.Output)
	reportSizes(logger, inputPath, cfg.Output)

	if report, err := quality.Compare(img, result.Image); err != nil {
		logger.Warnf("quality report unavailable: %v", err)
	} else {
		psnr := "inf"
		if !math.IsInf(report.PSNR, 1) {
			psnr = fmt.Sprintf("%.2f dB", report.PSNR)
		}
		logger.WithFields(logrus.Fields{
			"colors_before": humanize.Comma(int64(report.OriginalColors)),
			"colors_after":  report.CompressedColors,
			"mse":           fmt.Sprintf("%.2f", report.MSE),
			"psnr":          psnr,
		}).Info("quality")
	}

	if cfg.Preview {
		comparison := preview.SideBySide(img, result.Image, 10)
		if err := imageio.Save(comparison, cfg.PreviewPath, nil); err != nil {
			return errors.Wrap(err, "save preview")
		}
		logger.Infof("comparison saved to %s", cfg.PreviewPath)
	}
	return nil
}

// resolveInput finds the first existing candidate. If none
// exists and generation is enabled, a synthetic image is
// written to the first candidate instead.
func resolveInput(cfg config.Config, logger logrus.FieldLogger) (string, error) {
	res := locate.Resolve(cfg.Candidates)
	if res.Found {
		return res.Path, nil
	}
	if !cfg.GenerateTestImage {
		return "", res.Err()
	}
	path := res.Candidates[0]
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrap(err, "generate test image")
	}
	img := testimage.Generate(testimage.DefaultWidth, testimage.DefaultHeight)
	if err := imageio.Save(img, path, &imageio.SaveOptions{JPEGQuality: cfg.JPEGQuality}); err != nil {
		return "", errors.Wrap(err, "generate test image")
	}
	logger.Infof("no input found, generated test image: %s", path)
	return path, nil
}

func reportSizes(logger logrus.FieldLogger, inPath, outPath string) {
	inStats, err := os.Stat(inPath)
	if err != nil {
		return
	}
	outStats, err := os.Stat(outPath)
	if err != nil || inStats.Size() == 0 {
		return
	}
	fracReduction := float64(inStats.Size()-outStats.Size()) / float64(inStats.Size())
	logger.Infof(
		"%s -> %s (%.1f%% reduction)",
		humanize.Bytes(uint64(inStats.Size())),
		humanize.Bytes(uint64(outStats.Size())),
		fracReduction*100,
	)
}
