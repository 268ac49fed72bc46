package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"slices"
	"strings"
)

// Storage persists rendered images under slash-separated keys.
type Storage interface {
	// Put writes data under key and returns its public URL.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete removes key. Returns ErrFileNotFound if it does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether key is stored.
	Exists(ctx context.Context, key string) (bool, error)
	// URL returns the public URL for key.
	URL(key string) string
}

// ImageMIMETypes are the upload types accepted for scanning.
var ImageMIMETypes = []string{"image/png", "image/jpeg", "image/gif"}

// cleanKey normalises key to a relative slash path and rejects traversal.
func cleanKey(key string) (string, error) {
	key = strings.ReplaceAll(key, "\\", "/")
	if slices.Contains(strings.Split(key, "/"), "..") || strings.ContainsRune(key, 0) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, key)
	}
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" {
		return "", fmt.Errorf("%w: empty key", ErrInvalidPath)
	}
	return key, nil
}

// OpenUpload validates an uploaded file's size and sniffed content type and
// opens it. The caller closes the returned file.
func OpenUpload(fh *multipart.FileHeader, maxBytes int64, allowed ...string) (multipart.File, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, fmt.Errorf("file size %d bytes exceeds %d bytes limit: %w", fh.Size, maxBytes, ErrFileTooLarge)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}

	if len(allowed) > 0 {
		head := make([]byte, 512)
		n, err := io.ReadFull(f, head)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			_ = f.Close()
			return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
		}
		mimeType := http.DetectContentType(head[:n])
		if !slices.Contains(allowed, mimeType) {
			_ = f.Close()
			return nil, fmt.Errorf("MIME type %s not in allowed types %v: %w", mimeType, allowed, ErrMIMETypeNotAllowed)
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
		}
	}

	return f, nil
}
