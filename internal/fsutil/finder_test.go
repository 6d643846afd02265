package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for _, name := range []string{"b.go", "a.go", "c.txt", filepath.Join("nested", "d.go")} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	files, err := FindFilesByExtension(dir, "go")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.go"),
		filepath.Join(dir, "b.go"),
		filepath.Join(dir, "nested", "d.go"),
	}, files)

	// Leading dot is optional.
	dotted, err := FindFilesByExtension(dir, ".go")
	require.NoError(t, err)
	assert.Equal(t, files, dotted)

	// Empty extension matches everything.
	all, err := FindFilesByExtension(dir, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "absent"), "go")
	require.Error(t, err)
}
