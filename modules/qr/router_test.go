package qr_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qrmod "github.com/dmitrymomot/qrkit/modules/qr"
	"github.com/dmitrymomot/qrkit/pkg/history"
	"github.com/dmitrymomot/qrkit/pkg/httpserver"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/ratelimiter"
	qrsvc "github.com/dmitrymomot/qrkit/svc/qr"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	handler http.Handler
	store   *history.MemoryStore
}

func newServer(t *testing.T, settings qrsvc.Settings, readiness map[string]httpserver.Check) testServer {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	store := history.NewMemoryStore(history.WithMaxItems(settings.MaxHistoryItems))
	svc := qrsvc.NewService(settings, store, qrsvc.WithLogger(log))
	return testServer{
		handler: qrmod.Router(qrmod.RouterOptions{Service: svc, Logger: log, Readiness: readiness}),
		store:   store,
	}
}

func (s testServer) do(t *testing.T, r *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, r)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (s testServer) postJSON(t *testing.T, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return s.do(t, r)
}

func scanUpload(t *testing.T, image []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "code.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/scan", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func qrPNG(t *testing.T, content string) []byte {
	t.Helper()
	img, err := qrcode.NewEncoder().Encode(content, qrcode.Options{Size: 300, Margin: 4})
	require.NoError(t, err)
	return img.Data
}

func TestRouter_Classify(t *testing.T) {
	t.Parallel()
	srv := newServer(t, qrsvc.DefaultSettings(), nil)

	rec, env := srv.postJSON(t, "/classify", `{"content":"mailto:a@b.co"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"content_type":"email","actions":["email","copy"]}`, string(env.Data))

	rec, env = srv.postJSON(t, "/classify", `{"content":"x","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "bad_request", env.Error.Code)
}

func TestRouter_Format(t *testing.T) {
	t.Parallel()
	srv := newServer(t, qrsvc.DefaultSettings(), nil)

	rec, env := srv.postJSON(t, "/format", `{"type":"wifi","wifi":{"ssid":"Cafe","encryption":"nopass","password":"ignored"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"content_type":"wifi","payload":"WIFI:T:nopass;S:Cafe;;"}`, string(env.Data))

	rec, env = srv.postJSON(t, "/format", `{"type":"wifi","wifi":{"password":"x"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "validation_error", env.Error.Code)
	assert.Contains(t, env.Error.Details, "ssid")

	rec, _ = srv.postJSON(t, "/format", `{"type":"fax","content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	records, err := srv.store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRouter_Generate(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		srv := newServer(t, qrsvc.DefaultSettings(), nil)

		rec, env := srv.postJSON(t, "/generate", `{"content":"example.com","type":"url","options":{"size":300}}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var res struct {
			ID          string `json:"id"`
			ContentType string `json:"content_type"`
			Payload     string `json:"payload"`
			MIMEType    string `json:"mime_type"`
			Size        int    `json:"size"`
			DataURI     string `json:"data_uri"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "url", res.ContentType)
		assert.Equal(t, "https://example.com", res.Payload)
		assert.Equal(t, "image/png", res.MIMEType)
		assert.Equal(t, 300, res.Size)
		assert.True(t, strings.HasPrefix(res.DataURI, "data:image/png;base64,"))

		records, err := srv.store.List(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, res.ID, records[0].ID.String())
	})

	t.Run("raw", func(t *testing.T) {
		t.Parallel()
		srv := newServer(t, qrsvc.DefaultSettings(), nil)

		rec, _ := srv.postJSON(t, "/generate?raw=1", `{"content":"hello"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), ".png")

		img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 256, 256), img.Bounds())
	})

	t.Run("invalid options", func(t *testing.T) {
		t.Parallel()
		srv := newServer(t, qrsvc.DefaultSettings(), nil)

		rec, env := srv.postJSON(t, "/generate", `{"content":"hello","options":{"foreground":"red","margin":11}}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Details, "foreground")
		assert.Contains(t, env.Error.Details, "margin")
	})

	t.Run("content too long for version", func(t *testing.T) {
		t.Parallel()
		srv := newServer(t, qrsvc.DefaultSettings(), nil)

		body := `{"content":"` + strings.Repeat("a", 200) + `","options":{"version":1}}`
		rec, env := srv.postJSON(t, "/generate", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "content_too_long", env.Error.Code)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()
		srv := newServer(t, qrsvc.DefaultSettings(), nil)

		r := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader("content=hello"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec, _ := srv.do(t, r)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestRouter_Preview(t *testing.T) {
	t.Parallel()
	srv := newServer(t, qrsvc.DefaultSettings(), nil)

	for _, session := range []string{"", "client-1", "client-1"} {
		r := httptest.NewRequest(http.MethodPost, "/preview", strings.NewReader(`{"content":"+1 555 0100"}`))
		r.Header.Set("Content-Type", "application/json")
		if session != "" {
			r.Header.Set(qrmod.SessionHeader, session)
		}
		rec, env := srv.do(t, r)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, string(env.Data), `"payload":"tel:+15550100"`)
	}

	records, err := srv.store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRouter_Scan(t *testing.T) {
	t.Parallel()

	t.Run("decodes upload", func(t *testing.T) {
		t.Parallel()
		settings := qrsvc.DefaultSettings()
		settings.EnableGeolocation = true
		srv := newServer(t, settings, nil)

		rec, env := srv.do(t, scanUpload(t, qrPNG(t, "https://example.com/x"), map[string]string{"lat": "51.5", "lng": "-0.12"}))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var res struct {
			Content     string            `json:"content"`
			ContentType string            `json:"content_type"`
			Actions     []string          `json:"actions"`
			Location    *history.Location `json:"location"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, "https://example.com/x", res.Content)
		assert.Equal(t, "url", res.ContentType)
		assert.Equal(t, []string{"open_url", "copy"}, res.Actions)
		require.NotNil(t, res.Location)
		assert.Equal(t, history.Location{Lat: 51.5, Lng: -0.12}, *res.Location)
	})

	t.Run("missing image", func(t *testing.T) {
		t.Parallel()
		srv := newServer(t, qrsvc.DefaultSettings(), nil)

		rec, env := srv.do(t, scanUpload(t, nil, map[string]string{"lat": "1"}))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Details, "lng")

		rec, _ = srv.do(t, scanUpload(t, nil, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not an image", func(t *testing.T) {
		t.Parallel()
		srv := newServer(t, qrsvc.DefaultSettings(), nil)

		rec, env := srv.do(t, scanUpload(t, []byte("plain text, not a picture"), nil))
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "unsupported_image", env.Error.Code)
	})

	t.Run("no code in image", func(t *testing.T) {
		t.Parallel()
		srv := newServer(t, qrsvc.DefaultSettings(), nil)

		blank := image.NewGray(image.Rect(0, 0, 100, 100))
		for i := range blank.Pix {
			blank.Pix[i] = 0xff
		}
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, blank))

		rec, env := srv.do(t, scanUpload(t, buf.Bytes(), nil))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "decode_error", env.Error.Code)
	})

	t.Run("upload too large", func(t *testing.T) {
		t.Parallel()
		settings := qrsvc.DefaultSettings()
		settings.MaxUploadSize = 128
		srv := newServer(t, settings, nil)

		rec, env := srv.do(t, scanUpload(t, qrPNG(t, "hello"), nil))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "payload_too_large", env.Error.Code)
	})
}

func TestRouter_HistoryAndStats(t *testing.T) {
	t.Parallel()
	srv := newServer(t, qrsvc.DefaultSettings(), nil)

	for _, body := range []string{`{"content":"https://a.example"}`, `{"content":"hello"}`, `{"content":"https://b.example"}`} {
		rec, _ := srv.postJSON(t, "/generate", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, env := srv.do(t, httptest.NewRequest(http.MethodGet, "/history?limit=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var records []history.Record
	require.NoError(t, json.Unmarshal(env.Data, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "https://b.example", records[0].Content)
	assert.EqualValues(t, 2, env.Meta["count"])

	rec, _ = srv.do(t, httptest.NewRequest(http.MethodGet, "/history?limit=-1", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = srv.do(t, httptest.NewRequest(http.MethodGet, "/history?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = srv.do(t, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var stats history.Stats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 3, stats.Generated)
	assert.Equal(t, "url", string(stats.MostCommon))

	id := records[0].ID.String()
	rec, _ = srv.do(t, httptest.NewRequest(http.MethodDelete, "/history/"+id, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = srv.do(t, httptest.NewRequest(http.MethodDelete, "/history/"+id, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "not_found", env.Error.Code)

	rec, _ = srv.do(t, httptest.NewRequest(http.MethodDelete, "/history/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = srv.do(t, httptest.NewRequest(http.MethodDelete, "/history", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, env = srv.do(t, httptest.NewRequest(http.MethodGet, "/history", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	srv := newServer(t, qrsvc.DefaultSettings(), map[string]httpserver.Check{
		"history": func(context.Context) error { return nil },
		"storage": func(context.Context) error { return errors.New("bucket unreachable") },
	})

	rec, _ := srv.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = srv.do(t, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "bucket unreachable")
}

func TestErrorMappers(t *testing.T) {
	t.Parallel()

	mappers := qrmod.ErrorMappers()
	require.NotEmpty(t, mappers)

	he, ok := mappers[0](history.ErrRecordNotFound)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)

	_, ok = mappers[0](errors.New("something else"))
	assert.False(t, ok)
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	bucket, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(10),
		ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	log := slog.New(slog.DiscardHandler)
	svc := qrsvc.NewService(qrsvc.DefaultSettings(), history.NewMemoryStore(), qrsvc.WithLogger(log))
	h := qrmod.Router(qrmod.RouterOptions{Service: svc, Logger: log, RateLimit: bucket})

	post := func(path string) int {
		r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"content":"hi"}`))
		r.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, post("/generate"))
	assert.Equal(t, http.StatusTooManyRequests, post("/generate"))
	assert.Equal(t, http.StatusTooManyRequests, post("/preview"))
	assert.Equal(t, http.StatusOK, post("/classify"), "cheap endpoints are not limited")
}
