package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// Func binds r into v, which must be a non-nil pointer.
type Func func(r *http.Request, v any) error

func mediaType(r *http.Request) (string, map[string]string, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return "", nil, ErrMissingContentType
	}
	mt, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}
	return mt, params, nil
}
