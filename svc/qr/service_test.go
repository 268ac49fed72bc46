package qr_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/pkg/file"
	"github.com/dmitrymomot/qrkit/pkg/history"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
	"github.com/dmitrymomot/qrkit/pkg/qrdecode"
	"github.com/dmitrymomot/qrkit/pkg/validator"
	"github.com/dmitrymomot/qrkit/svc/qr"
)

func newService(t *testing.T, settings qr.Settings, opts ...qr.Option) (*qr.Service, *history.MemoryStore) {
	t.Helper()
	store := history.NewMemoryStore(history.WithMaxItems(settings.MaxHistoryItems))
	opts = append([]qr.Option{qr.WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	return qr.NewService(settings, store, opts...), store
}

func pngOf(t *testing.T, content string) []byte {
	t.Helper()
	img, err := qrcode.NewEncoder().Encode(content, qrcode.Options{Size: 300, Margin: 4})
	require.NoError(t, err)
	return img.Data
}

type failingStore struct {
	history.Store
	err error
}

func (s failingStore) Append(context.Context, history.Record) error { return s.err }

func blankPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 120, 120))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSettings(t *testing.T) {
	t.Parallel()

	s := qr.DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, qrcode.DefaultOptions(), s.EncoderDefaults())

	s.DefaultSize = 5000
	s.DefaultForeground = "blue"
	ve := validator.ExtractValidationErrors(s.Validate())
	assert.True(t, ve.Has("size"))
	assert.True(t, ve.Has("foreground"))
}

func TestService_Classify(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t, qr.DefaultSettings())

	res := svc.Classify("https://example.com")
	assert.Equal(t, qrcontent.URL, res.ContentType)
	assert.Equal(t, []qrcontent.Action{qrcontent.ActionOpenURL, qrcontent.ActionCopy}, res.Actions)

	res = svc.Classify("just words")
	assert.Equal(t, qrcontent.Text, res.ContentType)
	assert.Equal(t, []qrcontent.Action{qrcontent.ActionCopy}, res.Actions)
}

func TestService_Format(t *testing.T) {
	t.Parallel()
	svc, _ := newService(t, qr.DefaultSettings())

	tests := []struct {
		name    string
		req     qr.GenerateRequest
		wantCT  qrcontent.ContentType
		payload string
	}{
		{"inferred url", qr.GenerateRequest{Content: "https://example.com"}, qrcontent.URL, "https://example.com"},
		{"inferred phone", qr.GenerateRequest{Content: "+1 (555) 123-4567"}, qrcontent.Phone, "tel:+15551234567"},
		{"inferred email", qr.GenerateRequest{Content: "john@example.com"}, qrcontent.Email, "mailto:john@example.com"},
		{"inferred text", qr.GenerateRequest{Content: "hello"}, qrcontent.Text, "hello"},
		{"explicit url gets scheme", qr.GenerateRequest{Type: qrcontent.URL, Content: "example.com"}, qrcontent.URL, "https://example.com"},
		{"sms fields", qr.GenerateRequest{Type: qrcontent.SMS, Phone: "+1 555", Message: "hi there"}, qrcontent.SMS, "sms:+1555?body=hi%20there"},
		{"sms free form", qr.GenerateRequest{Type: qrcontent.SMS, Content: "+1555 hi there"}, qrcontent.SMS, "sms:+1555?body=hi%20there"},
		{"sms phone infers type", qr.GenerateRequest{Phone: "+1555"}, qrcontent.SMS, "sms:+1555"},
		{
			"wifi record infers type",
			qr.GenerateRequest{WiFi: &qrcontent.WiFiRecord{SSID: "Home", Password: "pw", Encryption: qrcontent.EncryptionWPA}},
			qrcontent.WiFi, "WIFI:T:WPA;S:Home;P:pw;;",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := svc.Format(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCT, res.ContentType)
			assert.Equal(t, tt.payload, res.Payload)
		})
	}

	t.Run("vcard record", func(t *testing.T) {
		t.Parallel()
		res, err := svc.Format(qr.GenerateRequest{VCard: &qrcontent.VCardRecord{FirstName: "Jane", LastName: "Doe"}})
		require.NoError(t, err)
		assert.Equal(t, qrcontent.VCard, res.ContentType)
		assert.True(t, strings.HasPrefix(res.Payload, "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Jane Doe\r\n"))
	})

	invalid := []struct {
		name  string
		req   qr.GenerateRequest
		field string
	}{
		{"blank text", qr.GenerateRequest{Type: qrcontent.Text, Content: "   "}, "content"},
		{"empty inferred", qr.GenerateRequest{}, "content"},
		{"blank sms", qr.GenerateRequest{Type: qrcontent.SMS}, "content"},
		{"vcard with only organization", qr.GenerateRequest{Type: qrcontent.VCard, VCard: &qrcontent.VCardRecord{Organization: "Acme"}}, "vcard"},
		{"vcard without record", qr.GenerateRequest{Type: qrcontent.VCard}, "vcard"},
		{"wifi without ssid", qr.GenerateRequest{Type: qrcontent.WiFi, WiFi: &qrcontent.WiFiRecord{Password: "x"}}, "ssid"},
		{"unknown type", qr.GenerateRequest{Type: "fax", Content: "x"}, "type"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Format(tt.req)
			require.ErrorIs(t, err, qrcontent.ErrValidation)
			assert.True(t, validator.ExtractValidationErrors(err).Has(tt.field), err.Error())
		})
	}
}

func TestService_Generate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("records history with metadata", func(t *testing.T) {
		t.Parallel()
		svc, store := newService(t, qr.DefaultSettings())

		res, err := svc.Generate(ctx, qr.GenerateRequest{Content: "https://example.com"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, res.ID)
		assert.Equal(t, "image/png", res.MIMEType)
		assert.True(t, strings.HasPrefix(res.DataURI, "data:image/png;base64,"))
		assert.Equal(t, 256, res.Size)
		assert.Empty(t, res.URL)

		records, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, records, 1)
		rec := records[0]
		assert.Equal(t, res.ID, rec.ID)
		assert.Equal(t, history.KindGenerated, rec.Kind)
		assert.Equal(t, qrcontent.URL, rec.ContentType)
		assert.Equal(t, "https://example.com", rec.Content)
		require.NotNil(t, rec.Metadata)
		assert.Equal(t, history.Metadata{Size: 256, ErrorCorrection: "M", Foreground: "#000000", Background: "#FFFFFF", Format: "png"}, *rec.Metadata)
		assert.Nil(t, rec.Location)
	})

	t.Run("options override defaults", func(t *testing.T) {
		t.Parallel()
		svc, store := newService(t, qr.DefaultSettings())
		margin := 0

		res, err := svc.Generate(ctx, qr.GenerateRequest{
			Content: "hello",
			Options: qr.RenderOptions{Format: "SVG", Size: 400, Margin: &margin, Foreground: "#007AFF", ErrorCorrection: "h"},
		})
		require.NoError(t, err)
		assert.Equal(t, "image/svg+xml", res.MIMEType)
		assert.Contains(t, string(res.Image.Data), "<svg")

		records, err := store.List(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "svg", records[0].Metadata.Format)
		assert.Equal(t, "#007AFF", records[0].Metadata.Foreground)
		assert.Equal(t, "h", records[0].Metadata.ErrorCorrection)
	})

	t.Run("settings defaults apply", func(t *testing.T) {
		t.Parallel()
		settings := qr.DefaultSettings()
		settings.DefaultFormat = "jpeg"
		settings.DefaultSize = 512
		svc, _ := newService(t, settings)

		res, err := svc.Generate(ctx, qr.GenerateRequest{Content: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", res.MIMEType)
		assert.Equal(t, 512, res.Size)
	})

	t.Run("invalid options write nothing", func(t *testing.T) {
		t.Parallel()
		svc, store := newService(t, qr.DefaultSettings())

		_, err := svc.Generate(ctx, qr.GenerateRequest{Content: "hello", Options: qr.RenderOptions{Size: 50}})
		require.ErrorIs(t, err, validator.ErrValidationFailed)
		assert.True(t, validator.ExtractValidationErrors(err).Has("size"))

		records, err := store.List(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("stores image when storage configured", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		files, err := file.NewLocalStorage(dir, "/files/")
		require.NoError(t, err)
		svc, _ := newService(t, qr.DefaultSettings(), qr.WithFileStorage(files))

		res, err := svc.Generate(ctx, qr.GenerateRequest{Content: "stored"})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(res.URL, "/files/generated/"))
		assert.True(t, strings.HasSuffix(res.URL, res.ID.String()+".png"))

		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(res.URL, "/files/"))))
		require.NoError(t, err)
		assert.Equal(t, res.Image.Data, data)
	})

	t.Run("history failure removes stored image", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		files, err := file.NewLocalStorage(dir, "/files/")
		require.NoError(t, err)

		store := failingStore{Store: history.NewMemoryStore(), err: history.ErrStoreFailed}
		svc := qr.NewService(qr.DefaultSettings(), store,
			qr.WithLogger(slog.New(slog.DiscardHandler)),
			qr.WithFileStorage(files),
		)

		_, err = svc.Generate(ctx, qr.GenerateRequest{Content: "orphan"})
		require.ErrorIs(t, err, history.ErrStoreFailed)

		var stored []string
		require.NoError(t, filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err == nil && !d.IsDir() {
				stored = append(stored, path)
			}
			return err
		}))
		assert.Empty(t, stored)
	})

	t.Run("history is capped", func(t *testing.T) {
		t.Parallel()
		settings := qr.DefaultSettings()
		settings.MaxHistoryItems = 2
		svc, store := newService(t, settings)

		for _, c := range []string{"one", "two", "three"} {
			_, err := svc.Generate(ctx, qr.GenerateRequest{Content: c})
			require.NoError(t, err)
		}
		records, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "three", records[0].Content)
		assert.Equal(t, "two", records[1].Content)
	})
}

func TestService_Scan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	loc := &history.Location{Lat: 40.7, Lng: -74}

	t.Run("decodes and classifies", func(t *testing.T) {
		t.Parallel()
		svc, store := newService(t, qr.DefaultSettings())

		res, err := svc.Scan(ctx, qr.ScanRequest{Image: bytes.NewReader(pngOf(t, "tel:+15551234567")), Location: loc})
		require.NoError(t, err)
		assert.Equal(t, "tel:+15551234567", res.Content)
		assert.Equal(t, qrcontent.Phone, res.ContentType)
		assert.Equal(t, []qrcontent.Action{qrcontent.ActionCall, qrcontent.ActionCopy}, res.Actions)
		assert.Nil(t, res.Location, "geolocation is disabled by default")

		records, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, history.KindScanned, records[0].Kind)
		assert.Equal(t, res.ID, records[0].ID)
		assert.Nil(t, records[0].Location)
	})

	t.Run("keeps location when enabled", func(t *testing.T) {
		t.Parallel()
		settings := qr.DefaultSettings()
		settings.EnableGeolocation = true
		svc, store := newService(t, settings)

		res, err := svc.Scan(ctx, qr.ScanRequest{Image: bytes.NewReader(pngOf(t, "hello")), Location: loc})
		require.NoError(t, err)
		require.NotNil(t, res.Location)
		assert.Equal(t, *loc, *res.Location)

		records, err := store.List(ctx, 0)
		require.NoError(t, err)
		require.NotNil(t, records[0].Location)
		assert.Equal(t, *loc, *records[0].Location)
	})

	t.Run("no code found", func(t *testing.T) {
		t.Parallel()
		svc, store := newService(t, qr.DefaultSettings())

		_, err := svc.Scan(ctx, qr.ScanRequest{Image: bytes.NewReader(blankPNG(t))})
		assert.ErrorIs(t, err, qrdecode.ErrNotFound)
		assert.ErrorIs(t, err, qrdecode.ErrDecode)

		records, err := store.List(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("upload over limit", func(t *testing.T) {
		t.Parallel()
		settings := qr.DefaultSettings()
		settings.MaxUploadSize = 64
		svc, _ := newService(t, settings)

		_, err := svc.Scan(ctx, qr.ScanRequest{Image: bytes.NewReader(pngOf(t, "hello"))})
		assert.ErrorIs(t, err, qrdecode.ErrImageTooLarge)
	})

	t.Run("declared size over limit", func(t *testing.T) {
		t.Parallel()
		svc, _ := newService(t, qr.DefaultSettings())

		_, err := svc.Scan(ctx, qr.ScanRequest{Image: bytes.NewReader(nil), Size: 11 << 20})
		assert.ErrorIs(t, err, qr.ErrUploadTooBig)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		svc, _ := newService(t, qr.DefaultSettings())
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := svc.Scan(cctx, qr.ScanRequest{Image: bytes.NewReader(pngOf(t, "hello"))})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestService_HistoryAndStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newService(t, qr.DefaultSettings())

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Equal(t, qrcontent.Text, stats.MostCommon)

	first, err := svc.Generate(ctx, qr.GenerateRequest{Content: "https://a.example"})
	require.NoError(t, err)
	_, err = svc.Generate(ctx, qr.GenerateRequest{Content: "https://b.example"})
	require.NoError(t, err)
	_, err = svc.Scan(ctx, qr.ScanRequest{Image: bytes.NewReader(pngOf(t, "plain"))})
	require.NoError(t, err)

	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Generated)
	assert.Equal(t, 1, stats.Scanned)
	assert.Equal(t, 2, stats.ByContentType[qrcontent.URL])
	assert.Equal(t, qrcontent.URL, stats.MostCommon)

	records, err := svc.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, history.KindScanned, records[0].Kind)

	require.NoError(t, svc.Remove(ctx, first.ID))
	assert.ErrorIs(t, svc.Remove(ctx, first.ID), history.ErrRecordNotFound)

	records, err = svc.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	require.NoError(t, svc.Clear(ctx))
	records, err = svc.History(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}
