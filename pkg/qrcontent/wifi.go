package qrcontent

import (
	"strings"

	"github.com/dmitrymomot/qrkit/pkg/validator"
)

// Encryption is the WiFi security token.
type Encryption string

const (
	EncryptionWPA    Encryption = "WPA"
	EncryptionWEP    Encryption = "WEP"
	EncryptionNoPass Encryption = "nopass"
)

// IsOpen reports whether the network has no password.
func (e Encryption) IsOpen() bool {
	return strings.EqualFold(string(e), string(EncryptionNoPass))
}

// token renders the T: value. nopass is always lower-case, WPA is kept as
// given, anything else is upper-cased.
func (e Encryption) token() string {
	switch {
	case e.IsOpen():
		return string(EncryptionNoPass)
	case e == EncryptionWPA:
		return string(EncryptionWPA)
	default:
		return strings.ToUpper(string(e))
	}
}

// WiFiRecord describes a network join payload. SSID is the only required field.
type WiFiRecord struct {
	SSID       string     `json:"ssid"`
	Password   string     `json:"password,omitempty"`
	Encryption Encryption `json:"encryption"`
	Hidden     bool       `json:"hidden,omitempty"`
}

// Validate checks the required fields.
func (r WiFiRecord) Validate() error {
	return validator.Apply(
		validator.Custom("ssid", "field is required", func() bool { return r.SSID != "" }),
	)
}

// FormatWiFi renders r as WIFI:T:<security>;S:<ssid>;P:<password>;H:true;;
//
// P is omitted for open networks, even when a password is set, and when the
// password is empty. H is emitted only for hidden networks.
func FormatWiFi(r WiFiRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("WIFI:T:")
	b.WriteString(r.Encryption.token())
	b.WriteString(";S:")
	b.WriteString(escapeWiFi(r.SSID))

	if !r.Encryption.IsOpen() && r.Password != "" {
		b.WriteString(";P:")
		b.WriteString(escapeWiFi(r.Password))
	}

	if r.Hidden {
		b.WriteString(";H:true")
	}

	b.WriteString(";;")
	return b.String(), nil
}
