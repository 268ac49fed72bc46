package qrdecode

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
)

const defaultMaxBytes = 10 << 20

// Decoder reads QR codes from images. It is safe for concurrent use.
type Decoder struct {
	maxBytes  int64
	tryHarder bool
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithMaxBytes caps the number of bytes read from the input.
func WithMaxBytes(n int64) Option {
	return func(d *Decoder) {
		if n > 0 {
			d.maxBytes = n
		}
	}
}

// WithTryHarder toggles the slower, more thorough detector mode. Enabled by default.
func WithTryHarder(enabled bool) Option {
	return func(d *Decoder) {
		d.tryHarder = enabled
	}
}

// NewDecoder creates a decoder with a 10 MiB input limit.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{maxBytes: defaultMaxBytes, tryHarder: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reads an image from r and returns the text of the first QR code found.
func (d *Decoder) Decode(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lr := &io.LimitedReader{R: r, N: d.maxBytes + 1}
	img, _, err := image.Decode(lr)
	if lr.N <= 0 {
		return "", ErrImageTooLarge
	}
	if err != nil {
		return "", errors.Join(ErrInvalidImage, err)
	}

	return d.DecodeImage(ctx, img)
}

// DecodeImage scans an already decoded image.
func (d *Decoder) DecodeImage(ctx context.Context, img image.Image) (string, error) {
	text, err := d.scan(img)
	if err == nil {
		return text, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err = d.scan(invert(img))
	if err != nil {
		return "", err
	}
	return text, nil
}

func (d *Decoder) scan(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", errors.Join(ErrInvalidImage, err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{}
	if d.tryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}

	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return result.GetText(), nil
}

// invert returns a negative copy of img, keeping alpha.
func invert(img image.Image) image.Image {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff - out.Pix[i]
		out.Pix[i+1] = 0xff - out.Pix[i+1]
		out.Pix[i+2] = 0xff - out.Pix[i+2]
	}
	return out
}
