// Package qr exposes the QR service as a JSON API over chi.
//
// Routes:
//
//	POST   /classify        {"content": "..."} -> content type and actions
//	POST   /format          generate request -> formatted payload, no image
//	POST   /generate        generate request -> image as data URI; ?raw=1 streams the bytes
//	POST   /preview         like /generate without history; X-Session-ID scopes supersession
//	POST   /scan            multipart "image" with optional "lat"/"lng"
//	GET    /history         ?limit=N, newest first
//	DELETE /history         clear
//	DELETE /history/{id}
//	GET    /stats
//	GET    /healthz, /readyz
//
// Every JSON body is wrapped as {"data": ...} or {"error": {...}}.
package qr
