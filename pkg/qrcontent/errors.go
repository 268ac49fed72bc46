package qrcontent

import (
	"errors"

	"github.com/dmitrymomot/qrkit/pkg/validator"
)

var (
	// ErrValidation is matched by every validation failure returned from this package.
	ErrValidation = validator.ErrValidationFailed

	// ErrUnknownContentType is returned when parsing a content type tag outside the closed set.
	ErrUnknownContentType = errors.New("unknown content type")

	// ErrStructuredContent is returned by NewPayload for vcard and wifi, which need a record.
	ErrStructuredContent = errors.New("content type requires a structured record")
)
