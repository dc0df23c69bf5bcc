package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// FromEnv overlays KQUANT_* environment variables onto c.
func FromEnv(c *Config) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"KQUANT_CLUSTERS", &c.Clusters},
		{"KQUANT_MAX_ITERS", &c.MaxIters},
		{"KQUANT_ATTEMPTS", &c.Attempts},
		{"KQUANT_MAX_PROCS", &c.MaxProcs},
		{"KQUANT_JPEG_QUALITY", &c.JPEGQuality},
	}
	for _, v := range ints {
		if s := os.Getenv(v.name); s != "" {
			asInt, err := strconv.Atoi(s)
			if err != nil {
				return errors.Wrapf(err, "parse %s as int", v.name)
			}
			*v.dst = asInt
		}
	}

	if v := os.Getenv("KQUANT_SEED"); v != "" {
		asInt, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "parse KQUANT_SEED as int")
		}
		c.Seed = asInt
	}

	if v := os.Getenv("KQUANT_INPUT"); v != "" {
		c.Candidates = filepath.SplitList(v)
	}

	if v := os.Getenv("KQUANT_OUTPUT"); v != "" {
		c.Output = v
	}

	if v := os.Getenv("KQUANT_PREVIEW"); v != "" {
		c.Preview = enabled(v)
	}

	if v := os.Getenv("KQUANT_PREVIEW_PATH"); v != "" {
		c.PreviewPath = v
	}

	if v := os.Getenv("KQUANT_GENERATE_TEST_IMAGE"); v != "" {
		c.GenerateTestImage = enabled(v)
	}

	return nil
}

func enabled(value string) bool {
	switch value {
	case "on", "1", "true", "yes":
		return true
	}
	return false
}
