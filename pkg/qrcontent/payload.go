package qrcontent

import "fmt"

// Payload is a typed QR input. The set of implementations is closed; use
// Format to render any of them.
type Payload interface {
	ContentType() ContentType
	payload()
}

type (
	// TextPayload is encoded verbatim.
	TextPayload struct{ Value string }
	// URLPayload gets an https:// scheme when it has none.
	URLPayload struct{ Value string }
	// PhonePayload becomes a tel: URI.
	PhonePayload struct{ Number string }
	// EmailPayload becomes a mailto: URI.
	EmailPayload struct{ Address string }
	// SMSPayload becomes an sms: URI with optional body.
	SMSPayload struct{ Phone, Message string }
	// VCardPayload becomes a vCard 3.0 block.
	VCardPayload struct{ Record VCardRecord }
	// WiFiPayload becomes a WIFI: network string.
	WiFiPayload struct{ Record WiFiRecord }
)

func (TextPayload) ContentType() ContentType  { return Text }
func (URLPayload) ContentType() ContentType   { return URL }
func (PhonePayload) ContentType() ContentType { return Phone }
func (EmailPayload) ContentType() ContentType { return Email }
func (SMSPayload) ContentType() ContentType   { return SMS }
func (VCardPayload) ContentType() ContentType { return VCard }
func (WiFiPayload) ContentType() ContentType  { return WiFi }

func (TextPayload) payload()  {}
func (URLPayload) payload()   {}
func (PhonePayload) payload() {}
func (EmailPayload) payload() {}
func (SMSPayload) payload()   {}
func (VCardPayload) payload() {}
func (WiFiPayload) payload()  {}

// Format renders p into the text that gets encoded into the QR symbol.
func Format(p Payload) (string, error) {
	switch v := p.(type) {
	case TextPayload:
		return v.Value, nil
	case URLPayload:
		return FormatURL(v.Value), nil
	case PhonePayload:
		return FormatPhone(v.Number), nil
	case EmailPayload:
		return FormatEmail(v.Address), nil
	case SMSPayload:
		return FormatSMS(v.Phone, v.Message), nil
	case VCardPayload:
		return FormatVCard(v.Record), nil
	case WiFiPayload:
		return FormatWiFi(v.Record)
	case nil:
		return "", fmt.Errorf("%w: nil payload", ErrUnknownContentType)
	}
	return "", fmt.Errorf("%w: %T", ErrUnknownContentType, p)
}

// NewPayload builds a payload from raw text for the string-shaped content
// types. SMS content is split into phone and message on the first whitespace
// run. VCard and WiFi need a record and return ErrStructuredContent.
func NewPayload(ct ContentType, raw string) (Payload, error) {
	switch ct {
	case Text:
		return TextPayload{Value: raw}, nil
	case URL:
		return URLPayload{Value: raw}, nil
	case Phone:
		return PhonePayload{Number: raw}, nil
	case Email:
		return EmailPayload{Address: raw}, nil
	case SMS:
		phone, message := SplitSMS(raw)
		return SMSPayload{Phone: phone, Message: message}, nil
	case VCard, WiFi:
		return nil, fmt.Errorf("%w: %s", ErrStructuredContent, ct)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, string(ct))
}
