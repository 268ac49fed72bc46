package handler

import (
	"errors"
	"net/http"
)

var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError carries a status code and a machine-readable code.
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// WithMessage returns a copy of e with a client-facing message.
func (e HTTPError) WithMessage(msg string) HTTPError {
	e.Message = msg
	return e
}

var (
	ErrBadRequest           = HTTPError{Status: http.StatusBadRequest, Code: "bad_request"}
	ErrNotFound             = HTTPError{Status: http.StatusNotFound, Code: "not_found"}
	ErrConflict             = HTTPError{Status: http.StatusConflict, Code: "conflict"}
	ErrPayloadTooLarge      = HTTPError{Status: http.StatusRequestEntityTooLarge, Code: "payload_too_large"}
	ErrUnsupportedMediaType = HTTPError{Status: http.StatusUnsupportedMediaType, Code: "unsupported_media_type"}
	ErrUnprocessable        = HTTPError{Status: http.StatusUnprocessableEntity, Code: "unprocessable_entity"}
	ErrInternal             = HTTPError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal server error"}
)
