package qr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/qrkit/pkg/async"
	"github.com/dmitrymomot/qrkit/pkg/file"
	"github.com/dmitrymomot/qrkit/pkg/history"
	"github.com/dmitrymomot/qrkit/pkg/logger"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
	"github.com/dmitrymomot/qrkit/pkg/qrdecode"
)

// Service generates and scans QR codes and keeps their history.
type Service struct {
	settings Settings
	store    history.Store
	encoder  *qrcode.Encoder
	decoder  *qrdecode.Decoder
	files    file.Storage
	log      *slog.Logger
}

type Option func(*Service)

// WithFileStorage stores every generated image and reports its URL.
func WithFileStorage(s file.Storage) Option {
	return func(svc *Service) { svc.files = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.log = l
		}
	}
}

// WithDecoder replaces the decoder built from settings.
func WithDecoder(d *qrdecode.Decoder) Option {
	return func(svc *Service) {
		if d != nil {
			svc.decoder = d
		}
	}
}

// NewService wires a service over store. The encoder takes its defaults
// from settings and the decoder its upload limit.
func NewService(settings Settings, store history.Store, opts ...Option) *Service {
	svc := &Service{
		settings: settings,
		store:    store,
		encoder:  qrcode.NewEncoder(qrcode.WithDefaults(settings.EncoderDefaults())),
		decoder:  qrdecode.NewDecoder(qrdecode.WithMaxBytes(settings.MaxUploadSize)),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.log = svc.log.With(logger.Component("qr"))
	return svc
}

// Settings returns the settings the service was built with.
func (s *Service) Settings() Settings {
	return s.settings
}

type ClassifyResult struct {
	ContentType qrcontent.ContentType `json:"content_type"`
	Actions     []qrcontent.Action    `json:"actions"`
}

// Classify reports the content type of raw text and what a reader could do with it.
func (s *Service) Classify(content string) ClassifyResult {
	ct := qrcontent.Classify(content)
	return ClassifyResult{ContentType: ct, Actions: qrcontent.Actions(ct)}
}

type FormatResult struct {
	ContentType qrcontent.ContentType `json:"content_type"`
	Payload     string                `json:"payload"`
}

// Format validates req and returns the text that would be encoded.
func (s *Service) Format(req GenerateRequest) (FormatResult, error) {
	p, err := req.payload()
	if err != nil {
		return FormatResult{}, err
	}
	text, err := qrcontent.Format(p)
	if err != nil {
		return FormatResult{}, err
	}
	return FormatResult{ContentType: p.ContentType(), Payload: text}, nil
}

type GenerateResult struct {
	ID          uuid.UUID             `json:"id"`
	ContentType qrcontent.ContentType `json:"content_type"`
	Payload     string                `json:"payload"`
	MIMEType    string                `json:"mime_type"`
	Size        int                   `json:"size"`
	DataURI     string                `json:"data_uri"`
	URL         string                `json:"url,omitempty"`
	Image       *qrcode.Image         `json:"-"`
}

// render formats and encodes req without touching history or storage.
func (s *Service) render(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	f, err := s.Format(req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := s.encoder.Encode(f.Payload, req.Options.resolve(s.encoder.Defaults()))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &GenerateResult{
		ContentType: f.ContentType,
		Payload:     f.Payload,
		MIMEType:    img.MIMEType(),
		Size:        img.Size,
		DataURI:     img.DataURI(),
		Image:       img,
	}, nil
}

// Generate renders req, stores the image when file storage is configured
// and appends a generated record to history.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	start := time.Now()

	res, err := s.render(ctx, req)
	if err != nil {
		return nil, err
	}

	rec := history.NewRecord(history.KindGenerated, res.ContentType, res.Payload)
	res.ID = rec.ID
	opts := req.Options.resolve(s.encoder.Defaults())
	rec.Metadata = &history.Metadata{
		Size:            res.Size,
		ErrorCorrection: string(orDefault(opts.ErrorCorrection, s.encoder.Defaults().ErrorCorrection)),
		Foreground:      orDefault(opts.Foreground, s.encoder.Defaults().Foreground),
		Background:      orDefault(opts.Background, s.encoder.Defaults().Background),
		Format:          string(res.Image.Format),
	}

	var key string
	if s.files != nil {
		key = fmt.Sprintf("generated/%s/%s%s", rec.Timestamp.Format("2006/01"), rec.ID, res.Image.Format.Extension())
		url, err := s.files.Put(ctx, key, res.Image.Data, res.MIMEType)
		if err != nil {
			return nil, errors.Join(ErrStoreImage, err)
		}
		res.URL = url
	}

	if err := s.store.Append(ctx, rec); err != nil {
		if key != "" {
			// The image is unreferenced without its record.
			if derr := s.files.Delete(context.WithoutCancel(ctx), key); derr != nil {
				s.log.WarnContext(ctx, "failed to remove orphaned image",
					logger.RecordID(rec.ID),
					logger.Error(derr),
				)
			}
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "qr code generated",
		logger.RecordID(rec.ID),
		logger.ContentType(res.ContentType),
		logger.ImageFormat(res.Image.Format),
		logger.Duration(time.Since(start)),
	)
	return res, nil
}

func orDefault[T ~string](v, d T) T {
	if v == "" {
		return d
	}
	return v
}

// ScanRequest carries an uploaded image and an optional client location.
// Size, when known, is checked against MaxUploadSize before decoding.
type ScanRequest struct {
	Image    io.Reader
	Size     int64
	Location *history.Location
}

type ScanResult struct {
	ID          uuid.UUID             `json:"id"`
	Content     string                `json:"content"`
	ContentType qrcontent.ContentType `json:"content_type"`
	Actions     []qrcontent.Action    `json:"actions"`
	Timestamp   time.Time             `json:"timestamp"`
	Location    *history.Location     `json:"location,omitempty"`
}

// Scan decodes the image, classifies the text and records a scanned entry.
// The location is kept only when geolocation is enabled.
func (s *Service) Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	if limit := s.settings.MaxUploadSize; limit > 0 && req.Size > limit {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrUploadTooBig, req.Size, limit)
	}

	fut := async.Async(ctx, req.Image, s.decoder.Decode)
	text, err := fut.AwaitContext(ctx)
	if err != nil {
		if errors.Is(err, qrdecode.ErrDecode) {
			s.log.WarnContext(ctx, "qr decode failed", logger.Error(err))
		}
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyScan
	}

	ct := qrcontent.Classify(text)
	rec := history.NewRecord(history.KindScanned, ct, text)
	if s.settings.EnableGeolocation && req.Location != nil {
		loc := *req.Location
		rec.Location = &loc
	}
	if err := s.store.Append(ctx, rec); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "qr code scanned", logger.RecordID(rec.ID), logger.ContentType(ct))
	return &ScanResult{
		ID:          rec.ID,
		Content:     text,
		ContentType: ct,
		Actions:     qrcontent.Actions(ct),
		Timestamp:   rec.Timestamp,
		Location:    rec.Location,
	}, nil
}

// History lists up to limit records, newest first. limit <= 0 lists all.
func (s *Service) History(ctx context.Context, limit int) ([]history.Record, error) {
	return s.store.List(ctx, limit)
}

func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}
	s.log.DebugContext(ctx, "history record removed", logger.RecordID(id))
	return nil
}

func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "history cleared")
	return nil
}

// Stats summarises the whole history.
func (s *Service) Stats(ctx context.Context) (history.Stats, error) {
	records, err := s.store.List(ctx, 0)
	if err != nil {
		return history.Stats{}, err
	}
	return history.Summarize(records), nil
}
