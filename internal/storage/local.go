// Package storage persists uploaded images on the local filesystem. Files
// get uuid names so uploads can never collide or traverse paths.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("unsupported file type")

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// LocalStore writes blobs under a base directory and serves them under a
// public URL prefix.
type LocalStore struct {
	baseDir   string
	urlPrefix string
}

func NewLocalStore(baseDir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Save stores the blob under a fresh uuid name, keeping only the extension
// of the original filename. It returns the public URL path.
func (s *LocalStore) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	name := uuid.New().String() + ext
	f, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return s.urlPrefix + "/" + name, nil
}

// Delete removes a previously saved blob by its public URL path. Missing
// files are not an error; deletes are idempotent.
func (s *LocalStore) Delete(publicPath string) error {
	name := filepath.Base(publicPath)
	if name == "." || name == "/" || name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
