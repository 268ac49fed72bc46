package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/qrkit/pkg/binder"
	"github.com/dmitrymomot/qrkit/pkg/logger"
	"github.com/dmitrymomot/qrkit/pkg/validator"
)

// ErrorMapper translates a domain error into an HTTPError. Mappers are
// consulted in order before the built-in rules.
type ErrorMapper func(err error) (HTTPError, bool)

// Classify converts err into the status and body the error handler writes.
func Classify(err error, mappers ...ErrorMapper) (int, ErrorDetail) {
	if ve := validator.ExtractValidationErrors(err); ve != nil {
		return http.StatusUnprocessableEntity, ErrorDetail{
			Code:    "validation_error",
			Message: "validation failed",
			Details: ve.Map(),
		}
	}

	for _, m := range mappers {
		if he, ok := m(err); ok {
			return he.Status, detailOf(he)
		}
	}

	var he HTTPError
	if errors.As(err, &he) {
		return he.Status, detailOf(he)
	}

	switch {
	case errors.Is(err, binder.ErrBodyTooLarge):
		return ErrPayloadTooLarge.Status, detailOf(ErrPayloadTooLarge.WithMessage(err.Error()))
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		return ErrUnsupportedMediaType.Status, detailOf(ErrUnsupportedMediaType.WithMessage(err.Error()))
	case errors.Is(err, binder.ErrInvalidJSON), errors.Is(err, binder.ErrInvalidQuery), errors.Is(err, binder.ErrInvalidForm):
		return ErrBadRequest.Status, detailOf(ErrBadRequest.WithMessage(err.Error()))
	}

	return ErrInternal.Status, detailOf(ErrInternal)
}

func detailOf(he HTTPError) ErrorDetail {
	msg := he.Message
	if msg == "" {
		msg = http.StatusText(he.Status)
	}
	return ErrorDetail{Code: he.Code, Message: msg}
}

// NewErrorHandler writes errors as a JSON envelope. Client errors are
// logged at warn, server errors at error. A nil log uses slog.Default.
func NewErrorHandler(log *slog.Logger, mappers ...ErrorMapper) ErrorHandler {
	return func(ctx Context, err error) {
		l := log
		if l == nil {
			l = slog.Default()
		}
		status, detail := Classify(err, mappers...)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		r := ctx.Request()
		l.LogAttrs(ctx, level, "request error",
			logger.Error(err),
			logger.RequestID(middleware.GetReqID(r.Context())),
			slog.Int("status", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		w := ctx.ResponseWriter()
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(Envelope{Error: &detail})
	}
}
