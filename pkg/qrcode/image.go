package qrcode

import "encoding/base64"

// Image is a rendered QR code.
type Image struct {
	Data   []byte
	Format Format
	// Size is the edge length in pixels (user units for SVG).
	Size int
}

// MIMEType returns the media type of the encoded image.
func (i *Image) MIMEType() string {
	return i.Format.MIMEType()
}

// DataURI returns the image as a base64 data URI usable in an <img> tag.
func (i *Image) DataURI() string {
	return "data:" + i.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}
