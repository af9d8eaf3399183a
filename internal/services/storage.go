package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type StorageService interface {
	SaveExport(filename string, data []byte) (string, error)
	GetFilePath(filename string) string
	EnsureExportDir() error
}

type storageService struct {
	exportPath string
}

func NewStorageService(exportPath string) StorageService {
	return &storageService{
		exportPath: exportPath,
	}
}

func (s *storageService) EnsureExportDir() error {
	if err := os.MkdirAll(s.exportPath, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	return nil
}

// SaveExport writes data under the export directory, overwriting any earlier
// export with the same name.
func (s *storageService) SaveExport(filename string, data []byte) (string, error) {
	if err := s.EnsureExportDir(); err != nil {
		return "", err
	}

	filePath := s.GetFilePath(filename)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save export: %w", err)
	}

	return filePath, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.exportPath, SafeFilename(filename))
}

var pathSeparators = strings.NewReplacer("/", "_", "\\", "_")

// SafeFilename flattens path separators so filename names a single file.
func SafeFilename(filename string) string {
	name := pathSeparators.Replace(filename)
	if name == "" || name == "." || name == ".." {
		return "product.csv"
	}
	return name
}
