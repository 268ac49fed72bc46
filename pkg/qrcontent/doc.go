// Package qrcontent classifies raw QR payload text and formats structured
// records into the exact wire text QR readers expect.
//
// Everything in this package is pure: no I/O, no shared state, no logging.
// Callers decide the ordering between Classify and the formatters; when the
// content type is auto-detected, Classify must settle before formatting since
// the tag selects which formatter runs.
//
// # Content types
//
// ContentType is a closed set: text, url, phone, email, vcard, wifi, sms.
// Payload is the matching tagged union (Text, URL, Phone, Email, SMS, VCard,
// WiFi); Format dispatches over it with a type switch.
//
// # Classification
//
//	qrcontent.Classify("https://example.com") // url
//	qrcontent.Classify("tel:+1234567890")     // phone
//	qrcontent.Classify("a@b.com")             // email
//	qrcontent.Classify("")                    // text
//
// Rules are checked in a fixed order and the first match wins. Any digit-only
// string, even a single digit, classifies as phone.
//
// # Wire formats
//
//   - vCard 3.0, CRLF-terminated (FormatVCard)
//   - WIFI:T:<security>;S:<ssid>;P:<password>;H:true;; (FormatWiFi)
//   - tel:, mailto:, sms: URIs (FormatPhone, FormatEmail, FormatSMS)
//
// # Errors
//
// Only FormatWiFi can fail: an empty SSID yields validator.ValidationErrors,
// which matches ErrValidation with errors.Is. Phone, email and SMS formatting
// degrade to best-effort output instead of failing.
package qrcontent
