package locate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFirstExisting(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "b.png")
	third := filepath.Join(dir, "c.png")
	require.NoError(t, os.WriteFile(second, []byte{1}, 0644))
	require.NoError(t, os.WriteFile(third, []byte{1}, 0644))

	res := Resolve([]string{filepath.Join(dir, "a.png"), second, third})
	assert.True(t, res.Found)
	assert.Equal(t, second, res.Path)
	assert.NoError(t, res.Err())
	assert.Len(t, res.Candidates, 3)
}

func TestResolveSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "test.jpg")
	require.NoError(t, os.Mkdir(sub, 0755))

	res := Resolve([]string{sub})
	assert.False(t, res.Found)
	assert.Empty(t, res.Path)
}

func TestResolveNotFound(t *testing.T) {
	dir := t.TempDir()
	candidates := []string{filepath.Join(dir, "x.jpg"), filepath.Join(dir, "y.png")}
	res := Resolve(candidates)
	require.False(t, res.Found)

	var notFound *NotFoundError
	require.True(t, errors.As(res.Err(), &notFound))
	assert.Equal(t, candidates, notFound.Candidates)
	for _, c := range candidates {
		assert.Contains(t, notFound.Error(), c)
	}
}
