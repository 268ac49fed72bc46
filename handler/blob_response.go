package handler

import (
	"fmt"
	"net/http"
	"strconv"
)

type blobResponse struct {
	data        []byte
	contentType string
	filename    string
}

func (b blobResponse) Render(w http.ResponseWriter, r *http.Request) error {
	h := w.Header()
	h.Set("Content-Type", b.contentType)
	h.Set("Content-Length", strconv.Itoa(len(b.data)))
	if b.filename != "" {
		h.Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", b.filename))
	}
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(b.data)
	return err
}

// Blob writes raw bytes, such as a rendered image. filename is optional.
func Blob(data []byte, contentType, filename string) Response {
	return blobResponse{data: data, contentType: contentType, filename: filename}
}
