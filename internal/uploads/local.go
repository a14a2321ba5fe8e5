package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// LocalSink stores files in a directory on the local filesystem.
type LocalSink struct {
	dir string
	now func() time.Time
}

func NewLocalSink(dir string) (*LocalSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalSink{dir: dir, now: time.Now}, nil
}

func (s *LocalSink) Dir() string {
	return s.dir
}

// Store copies r into a temp file and renames it into place, so a reader
// that fails midway never leaves a file under a stored name.
func (s *LocalSink) Store(ctx context.Context, r io.Reader, originalName string) (string, error) {
	name := StoredName(s.now(), originalName)

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, copyErr := io.Copy(tmp, contextReader{ctx: ctx, r: r})
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(tmpPath)
		if copyErr != nil {
			return "", fmt.Errorf("failed to write %s: %w", originalName, copyErr)
		}
		return "", fmt.Errorf("failed to write %s: %w", originalName, closeErr)
	}

	if err := os.Rename(tmpPath, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to store %s: %w", originalName, err)
	}

	return name, nil
}

func (s *LocalSink) Delete(_ context.Context, storedName string) error {
	if err := ValidateStoredName(storedName); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, storedName))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", storedName, err)
	}
	return nil
}

func (s *LocalSink) Open(_ context.Context, storedName string) (io.ReadCloser, error) {
	if err := ValidateStoredName(storedName); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.dir, storedName))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// contextReader stops a copy once the request context is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
