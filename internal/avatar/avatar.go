package avatar

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Storage persists avatar bytes under a generated name and returns the
// reference clients use to fetch them.
type Storage interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

// CleanFilename strips any client-supplied directory components.
func CleanFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), `\`, "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}

// Extension returns the extension of filename without the dot, as written.
func Extension(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 || i == len(filename)-1 {
		return ""
	}
	return filename[i+1:]
}

// Allowed reports whether filename has a supported image extension, ignoring case.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(Extension(filename))]
}

// NewName returns a collision-proof storage name keeping the original extension.
func NewName(filename string) string {
	return uuid.NewString() + "." + Extension(filename)
}
