package filestorage

import (
	"io"
	"mime/multipart"
)

// FileStorage defines the interface for staging uploaded files
type FileStorage interface {
	// SaveFile stores an uploaded file and returns the path it was written to
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveReader stores the content of r under a fresh name with the extension of name
	SaveReader(name string, r io.Reader) (string, error)

	// DeleteFile removes a previously stored file
	DeleteFile(filePath string) error
}
