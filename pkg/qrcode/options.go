package qrcode

import (
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"

	"github.com/dmitrymomot/qrkit/pkg/validator"
)

// ErrorCorrection is the QR error correction level.
type ErrorCorrection string

const (
	ErrorCorrectionL ErrorCorrection = "L" // ~7% recovery
	ErrorCorrectionM ErrorCorrection = "M" // ~15% recovery
	ErrorCorrectionQ ErrorCorrection = "Q" // ~25% recovery
	ErrorCorrectionH ErrorCorrection = "H" // ~30% recovery
)

func (e ErrorCorrection) level() skipqrcode.RecoveryLevel {
	switch ErrorCorrection(strings.ToUpper(string(e))) {
	case ErrorCorrectionL:
		return skipqrcode.Low
	case ErrorCorrectionQ:
		return skipqrcode.High
	case ErrorCorrectionH:
		return skipqrcode.Highest
	default:
		return skipqrcode.Medium
	}
}

// Format is the output image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatJPEG Format = "jpeg"
)

// MIMEType returns the media type for f.
func (f Format) MIMEType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/" + string(f)
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

const (
	defaultSize       = 256
	defaultMargin     = 4
	defaultForeground = "#000000"
	defaultBackground = "#FFFFFF"

	MinSize    = 100
	MaxSize    = 2000
	MaxMargin  = 10
	MaxVersion = 40
)

// Options controls rendering. Zero values of ErrorCorrection, Size,
// Foreground, Background and Format fall back to defaults; a zero Margin
// means no quiet zone and a zero Version lets the encoder pick the smallest
// version that fits.
type Options struct {
	ErrorCorrection ErrorCorrection `json:"error_correction,omitempty"`
	Size            int             `json:"size,omitempty"`
	Margin          int             `json:"margin"`
	Foreground      string          `json:"foreground,omitempty"`
	Background      string          `json:"background,omitempty"`
	Version         int             `json:"version,omitempty"`
	Format          Format          `json:"format,omitempty"`
}

// DefaultOptions returns 256px, level M, margin 4, black on white PNG.
func DefaultOptions() Options {
	return Options{
		ErrorCorrection: ErrorCorrectionM,
		Size:            defaultSize,
		Margin:          defaultMargin,
		Foreground:      defaultForeground,
		Background:      defaultBackground,
		Format:          FormatPNG,
	}
}

// Validate checks option ranges and enumerations.
func (o Options) Validate() error {
	return validator.Apply(
		validator.InListString("error_correction", strings.ToUpper(string(o.ErrorCorrection)),
			[]string{"L", "M", "Q", "H"}),
		validator.Custom("size", "must be between 100 and 2000", func() bool {
			return o.Size == 0 || (o.Size >= MinSize && o.Size <= MaxSize)
		}),
		validator.RangeNum("margin", o.Margin, 0, MaxMargin),
		validator.RangeNum("version", o.Version, 0, MaxVersion),
		validator.ValidHexColor("foreground", o.Foreground),
		validator.ValidHexColor("background", o.Background),
		validator.InListString("format", string(o.Format),
			[]string{string(FormatPNG), string(FormatSVG), string(FormatJPEG)}),
	)
}

// withDefaults fills blank fields from d.
func (o Options) withDefaults(d Options) Options {
	if o.ErrorCorrection == "" {
		o.ErrorCorrection = d.ErrorCorrection
	}
	if o.Size <= 0 {
		o.Size = d.Size
	}
	if o.Foreground == "" {
		o.Foreground = d.Foreground
	}
	if o.Background == "" {
		o.Background = d.Background
	}
	if o.Format == "" {
		o.Format = d.Format
	}
	return o
}
