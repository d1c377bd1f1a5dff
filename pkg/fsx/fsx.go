package fsx

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/aidul23/agent-mem/pkg/errx"
)

// FileReader reads stored files by their slash-separated path
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileWriter stores files, replacing any existing content
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
}

// FileSystem is the storage used for uploaded documents
type FileSystem interface {
	FileReader
	FileWriter
	Exists(ctx context.Context, path string) (bool, error)
}

var ErrRegistry = errx.NewRegistry("STORAGE")

var (
	CodeFileNotFound = ErrRegistry.Register("FILE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "file not found")
	CodeInvalidPath  = ErrRegistry.Register("INVALID_PATH", errx.TypeValidation, http.StatusBadRequest, "invalid file path")
	CodeWriteFailed  = ErrRegistry.Register("WRITE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "failed to write file")
	CodeReadFailed   = ErrRegistry.Register("READ_FAILED", errx.TypeInternal, http.StatusInternalServerError, "failed to read file")
)

func ErrFileNotFound() *errx.Error {
	return ErrRegistry.New(CodeFileNotFound)
}

func ErrInvalidPath() *errx.Error {
	return ErrRegistry.New(CodeInvalidPath)
}

func ErrWriteFailed(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeWriteFailed, err)
}

func ErrReadFailed(err error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeReadFailed, err)
}

// CleanPath normalizes a relative storage path. Absolute paths and paths
// escaping the root are rejected.
func CleanPath(p string) (string, error) {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" || strings.HasPrefix(p, "/") {
		return "", ErrInvalidPath().WithDetail("path", p)
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath().WithDetail("path", p)
	}
	return cleaned, nil
}
