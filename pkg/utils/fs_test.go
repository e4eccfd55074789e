package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDirExists(t *testing.T) {
	tempDir := t.TempDir()

	exists, err := IsDirExists(tempDir)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = IsDirExists(filepath.Join(tempDir, "non-existent"))
	assert.NoError(t, err)
	assert.False(t, exists)

	regularFile := filepath.Join(tempDir, "regular")
	err = os.WriteFile(regularFile, []byte("test"), 0600)
	require.NoError(t, err)

	_, err = IsDirExists(regularFile)
	assert.Error(t, err)
}

func TestEnsureDir(t *testing.T) {
	logger := logrus.NewEntry(logrus.New())

	t.Run("creates missing parents", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b", "c")

		err := EnsureDir(logger, dir)
		require.NoError(t, err)

		stat, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, stat.IsDir())
	})

	t.Run("existing directory is left untouched", func(t *testing.T) {
		dir := t.TempDir()
		existingFile := filepath.Join(dir, "keep")
		err := os.WriteFile(existingFile, []byte("keep"), 0600)
		require.NoError(t, err)

		require.NoError(t, EnsureDir(logger, dir))
		require.NoError(t, EnsureDir(logger, dir))

		content, err := os.ReadFile(existingFile)
		require.NoError(t, err)
		assert.Equal(t, "keep", string(content))
	})

	t.Run("path is a regular file", func(t *testing.T) {
		regularFile := filepath.Join(t.TempDir(), "regular")
		err := os.WriteFile(regularFile, []byte("test"), 0600)
		require.NoError(t, err)

		assert.Error(t, EnsureDir(logger, regularFile))
	})
}

func TestReplaceFile(t *testing.T) {
	logger := logrus.NewEntry(logrus.New())

	t.Run("overwrites existing content", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.jsonl")
		err := os.WriteFile(path, []byte("old content that is longer\n"), 0600)
		require.NoError(t, err)

		err = ReplaceFile(logger, path, func(w io.Writer) error {
			_, err := w.Write([]byte("new\n"))
			return err
		})
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new\n", string(content))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("failed write keeps previous content", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.jsonl")
		err := os.WriteFile(path, []byte("previous\n"), 0600)
		require.NoError(t, err)

		writeErr := errors.New("write failed")
		err = ReplaceFile(logger, path, func(w io.Writer) error {
			_, _ = w.Write([]byte("partial"))
			return writeErr
		})
		assert.ErrorIs(t, err, writeErr)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "previous\n", string(content))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
