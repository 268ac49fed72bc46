package qr

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/qrkit/handler"
	"github.com/dmitrymomot/qrkit/pkg/async"
	"github.com/dmitrymomot/qrkit/pkg/file"
	"github.com/dmitrymomot/qrkit/pkg/history"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/qrdecode"
	qrsvc "github.com/dmitrymomot/qrkit/svc/qr"
)

var (
	errDecode     = handler.HTTPError{Status: http.StatusUnprocessableEntity, Code: "decode_error"}
	errSuperseded = handler.HTTPError{Status: http.StatusConflict, Code: "superseded", Message: "preview superseded by a newer request"}
	errTooLong    = handler.HTTPError{Status: http.StatusUnprocessableEntity, Code: "content_too_long", Message: "content does not fit the selected version and error correction level"}
	errBadImage   = handler.HTTPError{Status: http.StatusUnsupportedMediaType, Code: "unsupported_image", Message: "image must be PNG, JPEG or GIF"}
)

// ErrorMappers translates errors of the qr domain into HTTP errors.
func ErrorMappers() []handler.ErrorMapper {
	return []handler.ErrorMapper{mapError}
}

func mapError(err error) (handler.HTTPError, bool) {
	switch {
	case errors.Is(err, qrdecode.ErrImageTooLarge),
		errors.Is(err, qrsvc.ErrUploadTooBig),
		errors.Is(err, file.ErrFileTooLarge):
		return handler.ErrPayloadTooLarge.WithMessage("image file is too large"), true
	case errors.Is(err, qrdecode.ErrNotFound):
		return errDecode.WithMessage("no QR code found in image"), true
	case errors.Is(err, qrdecode.ErrInvalidImage):
		return errDecode.WithMessage("image could not be read"), true
	case errors.Is(err, qrdecode.ErrDecode), errors.Is(err, qrsvc.ErrEmptyScan):
		return errDecode.WithMessage(err.Error()), true
	case errors.Is(err, async.ErrSuperseded):
		return errSuperseded, true
	case errors.Is(err, history.ErrRecordNotFound):
		return handler.ErrNotFound.WithMessage("history record not found"), true
	case errors.Is(err, qrcode.ErrContentTooLong):
		return errTooLong, true
	case errors.Is(err, file.ErrMIMETypeNotAllowed):
		return errBadImage, true
	case errors.Is(err, file.ErrNilFileHeader):
		return handler.ErrBadRequest.WithMessage("image file is required"), true
	}
	return handler.HTTPError{}, false
}
