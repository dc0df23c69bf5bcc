package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixpickle/kquant/config"
	"github.com/unixpickle/kquant/imageio"
	"github.com/unixpickle/kquant/locate"
	"github.com/unixpickle/kquant/testimage"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig(dir string) config.Config {
	cfg := config.Default()
	cfg.Candidates = []string{filepath.Join(dir, "missing.png"), filepath.Join(dir, "in.png")}
	cfg.Output = filepath.Join(dir, "out.jpg")
	cfg.Clusters = 4
	cfg.Attempts = 1
	cfg.MaxIters = 20
	return cfg
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Preview = true
	cfg.PreviewPath = filepath.Join(dir, "cmp.png")
	require.NoError(t, imageio.Save(testimage.Generate(40, 30), cfg.Candidates[1], nil))

	require.NoError(t, run(cfg, quietLogger()))

	out, format, err := imageio.Load(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 40, out.Bounds().Dx())
	assert.Equal(t, 30, out.Bounds().Dy())

	cmp, _, err := imageio.Load(cfg.PreviewPath)
	require.NoError(t, err)
	assert.Equal(t, 90, cmp.Bounds().Dx())
}

func TestRunNoInput(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	err := run(cfg, quietLogger())
	var notFound *locate.NotFoundError
	assert.True(t, errors.As(err, &notFound))
	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr), "output should not be written")
}

func TestRunUndecodable(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	require.NoError(t, os.WriteFile(cfg.Candidates[1], []byte("garbage"), 0644))
	err := run(cfg, quietLogger())
	var decodeErr *imageio.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
	_, statErr := os.Stat(cfg.Output)
	assert.True(t, os.IsNotExist(statErr), "output should not be written")
}

func TestRunGeneratesTestImage(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Candidates = []string{filepath.Join(dir, "images", "test.jpg")}
	cfg.GenerateTestImage = true
	require.NoError(t, run(cfg, quietLogger()))

	_, err := os.Stat(cfg.Candidates[0])
	assert.NoError(t, err)
	_, err = os.Stat(cfg.Output)
	assert.NoError(t, err)
}

func TestRunMainBadConfig(t *testing.T) {
	t.Setenv("KQUANT_CLUSTERS", "abc")
	var out bytes.Buffer
	assert.NotPanics(t, func() {
		assert.Equal(t, 1, runMain(&out))
	})
	assert.Contains(t, out.String(), "invalid configuration")
	assert.Contains(t, out.String(), "KQUANT_CLUSTERS")
}

func TestRunMainExitStatus(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.jpg")
	t.Setenv("KQUANT_INPUT", filepath.Join(dir, "missing.png"))
	t.Setenv("KQUANT_OUTPUT", output)

	var out bytes.Buffer
	assert.Equal(t, 1, runMain(&out))
	assert.Contains(t, out.String(), "missing.png")
	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, imageio.Save(testimage.Generate(20, 10), filepath.Join(dir, "missing.png"), nil))
	t.Setenv("KQUANT_CLUSTERS", "3")
	t.Setenv("KQUANT_ATTEMPTS", "1")
	out.Reset()
	assert.Equal(t, 0, runMain(&out))
	_, err = os.Stat(output)
	assert.NoError(t, err)
}
