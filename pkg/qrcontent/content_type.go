package qrcontent

import (
	"fmt"
	"strings"
)

// ContentType is the semantic category of a QR payload.
type ContentType string

const (
	Text  ContentType = "text"
	URL   ContentType = "url"
	Phone ContentType = "phone"
	Email ContentType = "email"
	VCard ContentType = "vcard"
	WiFi  ContentType = "wifi"
	SMS   ContentType = "sms"
)

// ContentTypes lists every content type in declaration order.
func ContentTypes() []ContentType {
	return []ContentType{Text, URL, Phone, Email, VCard, WiFi, SMS}
}

func (c ContentType) String() string {
	return string(c)
}

// Valid reports whether c belongs to the closed set.
func (c ContentType) Valid() bool {
	switch c {
	case Text, URL, Phone, Email, VCard, WiFi, SMS:
		return true
	}
	return false
}

// ParseContentType parses a tag case-insensitively.
func ParseContentType(s string) (ContentType, error) {
	c := ContentType(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownContentType, s)
	}
	return c, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c ContentType) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value is
// accepted and means "not specified".
func (c *ContentType) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*c = ""
		return nil
	}
	parsed, err := ParseContentType(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
