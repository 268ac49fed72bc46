package qrcode

import (
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

// Encoder turns text into QR images. Output is deterministic: the same
// content and options always produce the same bytes.
type Encoder struct {
	defaults Options
}

// EncoderOption configures an Encoder.
type EncoderOption func(*Encoder)

// WithDefaults sets the options used for fields left blank in Encode calls.
func WithDefaults(d Options) EncoderOption {
	return func(e *Encoder) {
		e.defaults = d.withDefaults(DefaultOptions())
	}
}

// NewEncoder creates an encoder with DefaultOptions unless overridden.
func NewEncoder(opts ...EncoderOption) *Encoder {
	e := &Encoder{defaults: DefaultOptions()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Defaults returns the options applied to blank fields.
func (e *Encoder) Defaults() Options {
	return e.defaults
}

// Encode renders content with opts. Blank option fields take the encoder
// defaults; invalid values yield validator.ValidationErrors.
func (e *Encoder) Encode(content string, opts Options) (*Image, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	opts = opts.withDefaults(e.defaults)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	fg, err := parseHexColor(opts.Foreground)
	if err != nil {
		return nil, errors.Join(ErrorFailedToGenerateQRCode, err)
	}
	bg, err := parseHexColor(opts.Background)
	if err != nil {
		return nil, errors.Join(ErrorFailedToGenerateQRCode, err)
	}

	q, err := newSymbol(content, opts)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true

	l := newLayout(q.Bitmap(), opts.Margin, opts.Size)
	format := Format(strings.ToLower(string(opts.Format)))

	var data []byte
	switch format {
	case FormatPNG:
		data, err = encodePNG(l, fg, bg)
	case FormatJPEG:
		data, err = encodeJPEG(l, fg, bg)
	case FormatSVG:
		data = encodeSVG(l, fg, bg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
	if err != nil {
		return nil, errors.Join(ErrorFailedToGenerateQRCode, err)
	}

	return &Image{Data: data, Format: format, Size: l.size}, nil
}

func newSymbol(content string, opts Options) (*skipqrcode.QRCode, error) {
	level := opts.ErrorCorrection.level()
	if opts.Version == 0 {
		q, err := skipqrcode.New(content, level)
		if err != nil {
			return nil, errors.Join(ErrorFailedToGenerateQRCode, ErrContentTooLong, err)
		}
		return q, nil
	}

	q, err := skipqrcode.NewWithForcedVersion(content, opts.Version, level)
	if err != nil {
		return nil, errors.Join(ErrorFailedToGenerateQRCode, ErrContentTooLong, err)
	}
	return q, nil
}
