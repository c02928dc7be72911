// file: service/file_service.go

package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"echotrace-api/logger"

	"github.com/google/uuid"
)

// FileService stores log attachments on local disk under a single upload
// directory. Stored names are random UUIDs so client-supplied names never
// touch the filesystem.
type FileService struct {
	uploadDir string
}

// NewFileService creates the upload directory if needed.
func NewFileService(uploadDir string) (*FileService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("could not initialize uploads folder: %w", err)
	}
	return &FileService{uploadDir: uploadDir}, nil
}

// SaveFile stores an uploaded file and returns its stored name.
func (s *FileService) SaveFile(header *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(header.Filename)
	if ext == "" {
		return "", errors.New("uploaded file has no extension")
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	storedName := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.uploadDir, storedName))
	if err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	logger.Log.WithField("file", storedName).Info("Stored uploaded file")
	return storedName, nil
}

// FilePath resolves a stored name to its on-disk path, refusing names that
// escape the upload directory.
func (s *FileService) FilePath(storedName string) (string, error) {
	cleaned := filepath.Clean(storedName)
	if cleaned != storedName || cleaned == "." || cleaned == ".." ||
		strings.ContainsRune(cleaned, os.PathSeparator) {
		return "", errors.New("invalid file name")
	}
	return filepath.Join(s.uploadDir, cleaned), nil
}

// DeleteFile removes a stored file by name.
func (s *FileService) DeleteFile(storedName string) error {
	path, err := s.FilePath(storedName)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", storedName, err)
	}
	return nil
}
