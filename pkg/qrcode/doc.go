// Package qrcode renders text into QR code images.
//
// Matrix generation is delegated to github.com/skip2/go-qrcode; this package
// lays the modules out on a square canvas with a configurable quiet zone and
// encodes the result as PNG, JPEG or SVG.
//
// # Usage
//
//	enc := qrcode.NewEncoder()
//	img, err := enc.Encode("https://example.com", qrcode.Options{
//		ErrorCorrection: qrcode.ErrorCorrectionQ,
//		Size:            512,
//		Margin:          4,
//		Foreground:      "#1d1d1f",
//		Format:          qrcode.FormatSVG,
//	})
//	if err != nil {
//		// handle error
//	}
//	_ = img.DataURI() // data:image/svg+xml;base64,...
//
// Blank option fields take the encoder defaults (see DefaultOptions and
// WithDefaults). Margin is always taken as given, so zero means no quiet zone.
//
// The Generate and GenerateBase64Image helpers produce a default PNG for
// callers that only need a size.
//
// # Error Handling
//
//   - ErrEmptyContent: the content is empty or whitespace.
//   - ErrContentTooLong: the content does not fit the forced (or largest) version.
//   - ErrorFailedToGenerateQRCode: wraps every failure from the matrix encoder
//     or image codecs.
//   - validator.ValidationErrors: an option is out of range.
package qrcode
