// Package file stores rendered QR images and validates uploaded ones.
//
// Storage has two implementations: LocalStorage writes below a directory
// that the HTTP server can expose as static files, and S3Storage puts
// objects into an S3 (or S3-compatible) bucket through aws-sdk-go-v2.
//
//	store, err := file.NewLocalStorage("./data/qr", "/files/")
//	url, err := store.Put(ctx, "2025/01/abc.png", img.Data, img.MIMEType())
//
// Keys are slash-separated and relative; any ".." segment is rejected with
// ErrInvalidPath.
//
// OpenUpload checks a multipart upload against a byte limit and a list of
// allowed sniffed MIME types before handing it to a decoder.
package file
