package qr

import (
	"strings"

	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
	"github.com/dmitrymomot/qrkit/pkg/validator"
)

// GenerateRequest describes a code to produce. Type may be empty, in which
// case it is inferred: a vcard or wifi record selects that type, otherwise
// Content is classified.
type GenerateRequest struct {
	Type    qrcontent.ContentType  `json:"type,omitempty"`
	Content string                 `json:"content,omitempty"`
	Phone   string                 `json:"phone,omitempty"`
	Message string                 `json:"message,omitempty"`
	VCard   *qrcontent.VCardRecord `json:"vcard,omitempty"`
	WiFi    *qrcontent.WiFiRecord  `json:"wifi,omitempty"`
	Options RenderOptions          `json:"options"`
}

// RenderOptions are per-request encoder overrides. Zero values and a nil
// Margin take the service defaults.
type RenderOptions struct {
	ErrorCorrection qrcode.ErrorCorrection `json:"error_correction,omitempty"`
	Size            int                    `json:"size,omitempty"`
	Margin          *int                   `json:"margin,omitempty"`
	Foreground      string                 `json:"foreground,omitempty"`
	Background      string                 `json:"background,omitempty"`
	Version         int                    `json:"version,omitempty"`
	Format          qrcode.Format          `json:"format,omitempty"`
}

func (o RenderOptions) resolve(d qrcode.Options) qrcode.Options {
	out := qrcode.Options{
		ErrorCorrection: o.ErrorCorrection,
		Size:            o.Size,
		Margin:          d.Margin,
		Foreground:      o.Foreground,
		Background:      o.Background,
		Version:         o.Version,
		Format:          qrcode.Format(strings.ToLower(string(o.Format))),
	}
	if o.Margin != nil {
		out.Margin = *o.Margin
	}
	return out
}

func (r GenerateRequest) contentType() qrcontent.ContentType {
	switch {
	case r.Type != "":
		return r.Type
	case r.VCard != nil:
		return qrcontent.VCard
	case r.WiFi != nil:
		return qrcontent.WiFi
	case r.Phone != "":
		return qrcontent.SMS
	}
	return qrcontent.Classify(r.Content)
}

// payload resolves the content type and applies the input rules for it.
func (r GenerateRequest) payload() (qrcontent.Payload, error) {
	ct := r.contentType()
	if !ct.Valid() {
		return nil, validator.Apply(validator.InListString("type", string(ct), contentTypeNames()))
	}

	switch ct {
	case qrcontent.VCard:
		var rec qrcontent.VCardRecord
		if r.VCard != nil {
			rec = *r.VCard
		}
		err := validator.Apply(validator.Custom("vcard",
			"at least one of first name, last name, phone or email is required",
			func() bool {
				return strings.TrimSpace(rec.FirstName+rec.LastName+rec.Phone+rec.Email) != ""
			}))
		if err != nil {
			return nil, err
		}
		return qrcontent.VCardPayload{Record: rec}, nil

	case qrcontent.WiFi:
		var rec qrcontent.WiFiRecord
		if r.WiFi != nil {
			rec = *r.WiFi
		}
		if err := rec.Validate(); err != nil {
			return nil, err
		}
		return qrcontent.WiFiPayload{Record: rec}, nil

	case qrcontent.SMS:
		if r.Phone != "" {
			return qrcontent.SMSPayload{Phone: r.Phone, Message: r.Message}, nil
		}
	}

	if err := validator.Apply(validator.RequiredString("content", r.Content)); err != nil {
		return nil, err
	}
	return qrcontent.NewPayload(ct, r.Content)
}

func contentTypeNames() []string {
	types := qrcontent.ContentTypes()
	names := make([]string, len(types))
	for i, ct := range types {
		names[i] = string(ct)
	}
	return names
}
