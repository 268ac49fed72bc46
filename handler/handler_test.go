package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/handler"
	"github.com/dmitrymomot/qrkit/pkg/binder"
	"github.com/dmitrymomot/qrkit/pkg/validator"
)

type echoRequest struct {
	Content string `json:"content"`
}

var errGone = errors.New("record gone")

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWrap(t *testing.T) {
	t.Parallel()

	echo := func(ctx handler.Context, req echoRequest) handler.Response {
		if req.Content == "" {
			return handler.Error(validator.Apply(validator.RequiredString("content", req.Content)))
		}
		if req.Content == "gone" {
			return handler.Error(fmt.Errorf("lookup: %w", errGone))
		}
		return handler.JSON(map[string]string{"content": req.Content}, handler.WithStatus(http.StatusCreated))
	}

	gone := func(err error) (handler.HTTPError, bool) {
		if errors.Is(err, errGone) {
			return handler.ErrNotFound.WithMessage("record not found"), true
		}
		return handler.HTTPError{}, false
	}

	h := handler.Wrap(echo,
		handler.WithBinders[echoRequest](binder.JSON(0)),
		handler.WithErrorHandler[echoRequest](handler.NewErrorHandler(nil, gone)),
	)

	do := func(body, ct string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
		if ct != "" {
			r.Header.Set("Content-Type", ct)
		}
		rec := httptest.NewRecorder()
		h(rec, r)
		return rec
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		rec := do(`{"content":"hi"}`, "application/json")
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"data":{"content":"hi"}}`, rec.Body.String())
	})

	t.Run("validation error", func(t *testing.T) {
		t.Parallel()
		rec := do(`{"content":""}`, "application/json")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeEnvelope(t, rec)
		errBody := body["error"].(map[string]any)
		assert.Equal(t, "validation_error", errBody["code"])
		assert.Contains(t, errBody["details"], "content")
	})

	t.Run("mapped domain error", func(t *testing.T) {
		t.Parallel()
		rec := do(`{"content":"gone"}`, "application/json")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":{"code":"not_found","message":"record not found"}}`, rec.Body.String())
	})

	t.Run("bind error", func(t *testing.T) {
		t.Parallel()
		rec := do(`{"content":`, "application/json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", decodeEnvelope(t, rec)["error"].(map[string]any)["code"])
	})

	t.Run("wrong media type", func(t *testing.T) {
		t.Parallel()
		rec := do(`content=hi`, "text/plain")
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestWrap_Decorators(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) handler.Decorator[struct{}] {
		return func(next handler.HandlerFunc[struct{}]) handler.HandlerFunc[struct{}] {
			return func(ctx handler.Context, req struct{}) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Wrap(func(ctx handler.Context, _ struct{}) handler.Response {
		order = append(order, "handler")
		return handler.Empty()
	}, handler.WithDecorators(mark("outer"), mark("inner")))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodDelete, "/history", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestWrap_NilResponse(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil })
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"internal_error","message":"internal server error"}}`, rec.Body.String())
}

func TestBlob(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	err := handler.Blob([]byte("<svg/>"), "image/svg+xml", "qr.svg").Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "6", rec.Header().Get("Content-Length"))
	assert.Equal(t, `inline; filename="qr.svg"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "<svg/>", rec.Body.String())
}

func TestJSON_Meta(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	err := handler.JSON([]int{1, 2}, handler.WithMeta(map[string]any{"total": 2})).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":[1,2],"meta":{"total":2}}`, rec.Body.String())
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"http error", handler.ErrConflict, http.StatusConflict, "conflict"},
		{"wrapped http error", fmt.Errorf("x: %w", handler.ErrNotFound), http.StatusNotFound, "not_found"},
		{"body too large", binder.ErrBodyTooLarge, http.StatusRequestEntityTooLarge, "payload_too_large"},
		{"missing content type", binder.ErrMissingContentType, http.StatusUnsupportedMediaType, "unsupported_media_type"},
		{"invalid query", binder.ErrInvalidQuery, http.StatusBadRequest, "bad_request"},
		{"unknown", errors.New("db down"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status, detail := handler.Classify(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, detail.Code)
			assert.NotEmpty(t, detail.Message)
		})
	}

	t.Run("unknown errors hide internals", func(t *testing.T) {
		t.Parallel()
		_, detail := handler.Classify(errors.New("password=secret"))
		assert.NotContains(t, detail.Message, "secret")
	})
}
