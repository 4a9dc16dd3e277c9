package avatar

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes avatars to a directory served under URLPrefix.
type LocalStorage struct {
	dir       string
	urlPrefix string
}

// NewLocalStorage creates dir if needed.
func NewLocalStorage(dir, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create avatar dir: %w", err)
	}
	return &LocalStorage{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

func (s *LocalStorage) Save(_ context.Context, name string, r io.Reader) (ref string, err error) {
	dst := filepath.Join(s.dir, name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close avatar file: %w", cerr)
		}
		if err != nil {
			os.Remove(dst)
		}
	}()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write avatar file: %w", err)
	}
	return s.urlPrefix + "/" + name, nil
}
