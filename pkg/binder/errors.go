package binder

import "errors"

var (
	ErrMissingContentType   = errors.New("missing content type")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrBodyTooLarge         = errors.New("request body too large")
	ErrInvalidJSON          = errors.New("failed to parse JSON request body")
	ErrInvalidQuery         = errors.New("failed to parse query parameters")
	ErrInvalidForm          = errors.New("failed to parse form data")
)
