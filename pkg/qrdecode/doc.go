// Package qrdecode extracts the text of a QR code from an image.
//
// Images are decoded with the standard image codecs (PNG, JPEG, GIF) and
// scanned with github.com/makiuchi-d/gozxing. When the first pass finds
// nothing the image is inverted and scanned again, so light-on-dark codes
// are read as well.
//
// # Usage
//
//	dec := qrdecode.NewDecoder(qrdecode.WithMaxBytes(10 << 20))
//	text, err := dec.Decode(ctx, file)
//	switch {
//	case errors.Is(err, qrdecode.ErrNotFound):
//		// the image has no readable QR code
//	case errors.Is(err, qrdecode.ErrInvalidImage):
//		// the upload is not an image
//	}
//
// Every decode failure matches ErrDecode.
package qrdecode
