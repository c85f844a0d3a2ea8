package infra

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Storage persists uploaded files (product images) on local disk and maps
// them to public URLs served by the static file route.
type Storage struct {
	root    string
	baseURL string
}

func NewStorage(root, baseURL string) *Storage {
	return &Storage{root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload writes the file under root/path, creating parent directories.
// The path is cleaned first so uploads cannot escape the root.
func (s *Storage) Upload(path string, r io.Reader) error {
	clean := filepath.Clean("/" + path)
	full := filepath.Join(s.root, clean)

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return fmt.Errorf("storage: create dir: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("storage: create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("storage: write file: %w", err)
	}
	return nil
}

// PublicURL returns the URL under which an uploaded path is served.
func (s *Storage) PublicURL(path string) string {
	clean := strings.TrimLeft(filepath.ToSlash(filepath.Clean("/"+path)), "/")
	return s.baseURL + "/uploads/" + clean
}

// Root exposes the storage directory for the static file route.
func (s *Storage) Root() string { return s.root }
