package qrcode

var defaultEncoder = NewEncoder()

// Generate creates a QR code image in PNG format with the given content.
// Returns the image as a byte slice or an error if generation fails.
func Generate(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultSize
	}
	img, err := defaultEncoder.Encode(content, Options{Size: size, Margin: defaultMargin, Format: FormatPNG})
	if err != nil {
		return nil, err
	}
	return img.Data, nil
}

// GenerateBase64Image creates a base64 encoded string representation of a QR code
// image with the given content. Returns the base64 encoded string or an error if
// generation fails.
//
// Usage:
//
//	base64Image, err := GenerateBase64Image("https://example.com", 256)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// And then use the base64Image string in an HTML template like this:
//
//	<img src="{{.QrCode}}">
func GenerateBase64Image(content string, size int) (string, error) {
	if size <= 0 {
		size = defaultSize
	}
	img, err := defaultEncoder.Encode(content, Options{Size: size, Margin: defaultMargin, Format: FormatPNG})
	if err != nil {
		return "", err
	}
	return img.DataURI(), nil
}
