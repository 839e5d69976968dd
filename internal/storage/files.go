// Package storage is the upload collaborator: whitelisted files land on
// local disk under generated names and are served back at /uploads/.
package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"synapshare/internal/apperr"
)

// MaxFileSize is the upload cap.
const MaxFileSize = 50 << 20 // 50MB

var allowedTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"application/pdf": true,
	"video/mp4":       true,
	"video/webm":      true,
}

// FileStore writes uploads under Dir and builds public URLs from BaseURL.
type FileStore struct {
	Dir     string
	BaseURL string
}

func NewFileStore(dir, baseURL string) *FileStore {
	return &FileStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Save validates type and size, stores the upload under a unique name and
// returns the public URL.
func (s *FileStore) Save(header *multipart.FileHeader) (string, error) {
	if header.Size > MaxFileSize {
		return "", apperr.Validation("File size exceeds 50MB limit")
	}
	if !allowedTypes[header.Header.Get("Content-Type")] {
		return "", apperr.Validation("Only images, PDFs, and MP4/WebM videos are allowed")
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", apperr.Wrap(apperr.KindStore, "Failed to store file", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	src, err := header.Open()
	if err != nil {
		return "", apperr.Wrap(apperr.KindStore, "Failed to store file", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", apperr.Wrap(apperr.KindStore, "Failed to store file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", apperr.Wrap(apperr.KindStore, "Failed to store file", err)
	}
	return s.BaseURL + "/uploads/" + name, nil
}

// Remove unlinks a previously stored file given its public URL. A missing
// file is not an error; the record it belonged to is already gone.
func (s *FileStore) Remove(fileURL string) error {
	if fileURL == "" {
		return nil
	}
	name := path.Base(fileURL)
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
