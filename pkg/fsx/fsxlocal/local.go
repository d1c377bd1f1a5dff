package fsxlocal

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aidul23/agent-mem/pkg/fsx"
)

// LocalFileSystem stores files under a base directory on disk
type LocalFileSystem struct {
	basePath string
}

// NewLocalFileSystem creates the base directory if needed. Empty means the working directory.
func NewLocalFileSystem(basePath string) (*LocalFileSystem, error) {
	if basePath == "" {
		basePath = "."
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &LocalFileSystem{basePath: abs}, nil
}

var _ fsx.FileSystem = (*LocalFileSystem)(nil)

func (l *LocalFileSystem) GetBasePath() string {
	return l.basePath
}

func (l *LocalFileSystem) resolve(p string) (string, error) {
	cleaned, err := fsx.CleanPath(p)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.basePath, filepath.FromSlash(cleaned)), nil
}

func (l *LocalFileSystem) WriteFile(_ context.Context, p string, data []byte) error {
	full, err := l.resolve(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fsx.ErrWriteFailed(err).WithDetail("path", p)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fsx.ErrWriteFailed(err).WithDetail("path", p)
	}
	return nil
}

func (l *LocalFileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	stream, err := l.ReadFileStream(ctx, p)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fsx.ErrReadFailed(err).WithDetail("path", p)
	}
	return data, nil
}

func (l *LocalFileSystem) ReadFileStream(_ context.Context, p string) (io.ReadCloser, error) {
	full, err := l.resolve(p)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fsx.ErrFileNotFound().WithDetail("path", p)
		}
		return nil, fsx.ErrReadFailed(err).WithDetail("path", p)
	}
	return f, nil
}

func (l *LocalFileSystem) Exists(_ context.Context, p string) (bool, error) {
	full, err := l.resolve(p)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fsx.ErrReadFailed(err).WithDetail("path", p)
}
