package utils

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultDirMode  fs.FileMode = 0755
	DefaultFileMode fs.FileMode = 0644
)

func IsDirExists(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}
	if !stat.IsDir() {
		return false, fmt.Errorf("%s exists but is not a directory", path)
	}

	return true, nil
}

// EnsureDir creates path and any missing parents. It does nothing when path
// is already a directory.
func EnsureDir(logger *logrus.Entry, path string) error {
	logger = logger.WithField("dir", path)

	exists, err := IsDirExists(path)
	if err != nil {
		return err
	}
	if exists {
		logger.Debug("directory already exists, skipped creation")
		return nil
	}

	err = os.MkdirAll(path, DefaultDirMode)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	logger.Debug("directory created")

	return nil
}

// ReplaceFile writes the content produced by write into a temporary sibling of
// path and renames it over path once write succeeds.
func ReplaceFile(logger *logrus.Entry, path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	logger = logger.WithFields(logrus.Fields{"path": path, "tmpPath": tmpPath})

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, DefaultFileMode)
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}

	cleanup := func() {
		removeErr := os.Remove(tmpPath)
		if removeErr != nil && !os.IsNotExist(removeErr) {
			logger.Warnf("failed to remove temporary file, err: %s", removeErr)
		}
	}

	err = write(f)
	if err != nil {
		_ = f.Close()
		cleanup()
		return err
	}

	err = f.Close()
	if err != nil {
		cleanup()
		return fmt.Errorf("failed to close temporary file for %s: %w", path, err)
	}

	err = os.Rename(tmpPath, path)
	if err != nil {
		cleanup()
		return fmt.Errorf("failed to move temporary file to %s: %w", path, err)
	}

	logger.Debug("file replaced")

	return nil
}
