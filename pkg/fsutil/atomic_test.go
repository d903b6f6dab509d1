package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seglabco/segtok/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes new file with requested mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.txt")
		err := fsutil.WriteAtomic(context.Background(), path, []byte("hello\n"), fsutil.DefaultFileMode)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())
	})

	t.Run("replaces existing content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.txt")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

		err := fsutil.WriteAtomic(context.Background(), path, []byte("new"), fsutil.DefaultFileMode)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("honors cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "out.txt")
		err := fsutil.WriteAtomic(ctx, path, []byte("x"), fsutil.DefaultFileMode)
		require.Error(t, err)
		assert.NoFileExists(t, path)
	})

	t.Run("leaves no temp file behind on failure", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		err := fsutil.WriteAtomic(context.Background(), filepath.Join(dir, "missing", "out.txt"), []byte("x"), fsutil.DefaultFileMode)
		require.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
