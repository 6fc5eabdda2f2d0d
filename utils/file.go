package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// EnsureResourceDir creates the local resources directory if it doesn't exist
func EnsureResourceDir() error {
	return os.MkdirAll("resources", os.ModePerm)
}

// SaveFile saves the uploaded file to the given destination path
func SaveFile(fileHeader *multipart.FileHeader, destPath string) error {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, file)
	return err
}

// GetResourcePath returns the full path for a file inside the resources directory
func GetResourcePath(filename string) string {
	return filepath.Join("resources", filename)
}
