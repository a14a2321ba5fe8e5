// Package uploads persists uploaded files under unique, filesystem-safe names.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidName = errors.New("invalid stored file name")

// Sink stores and removes uploaded files. It enforces no size, type or
// count policy; callers validate before storing.
type Sink interface {
	// Store persists r and returns the unique name it was stored under.
	Store(ctx context.Context, r io.Reader, originalName string) (string, error)
	// Delete removes a stored file. Deleting a missing file is not an error.
	Delete(ctx context.Context, storedName string) error
	Open(ctx context.Context, storedName string) (io.ReadCloser, error)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Sanitized names are capped so that a stored name, prefix included, stays
// well inside the 255 byte file name limit and the image_path column.
const (
	maxSanitizedLen = 100
	maxExtensionLen = 16
)

// SanitizeFilename reduces name to a safe base name made of ASCII letters,
// digits, dots, dashes and underscores, at most 100 bytes long. Long names
// are shortened before the extension.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.TrimLeft(name, "._")
	if name == "" {
		return "file"
	}
	return truncateName(name)
}

func truncateName(name string) string {
	if len(name) <= maxSanitizedLen {
		return name
	}
	ext := filepath.Ext(name)
	if len(ext) > maxExtensionLen {
		ext = ""
	}
	base := strings.TrimRight(name[:maxSanitizedLen-len(ext)], ".")
	if base == "" {
		base = "file"
	}
	return base + ext
}

// StoredName builds a unique name: a microsecond timestamp, a random
// suffix and the sanitized original name.
func StoredName(now time.Time, originalName string) string {
	timestamp := strings.Replace(now.Format("20060102_150405.000000"), ".", "_", 1)
	return fmt.Sprintf("%s_%s_%s",
		timestamp,
		uuid.New().String()[:8],
		SanitizeFilename(originalName),
	)
}

// ValidateStoredName rejects names that could escape the sink.
func ValidateStoredName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}

// Extension returns the lower-cased extension of name without the dot.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
