// Package qr is the application service behind the QR toolkit. It ties the
// content classifier and formatter to the encoder, the decoder, the history
// store and optional image storage.
//
//	svc := qr.NewService(settings, store, qr.WithFileStorage(files), qr.WithLogger(log))
//	res, err := svc.Generate(ctx, qr.GenerateRequest{Content: "https://example.com"})
//	// res.ContentType == qrcontent.URL, res.DataURI holds a PNG
//
// Generate validates input per content type and returns
// validator.ValidationErrors for bad input. Scan returns errors matching
// qrdecode.ErrDecode when the image holds no readable code. Preview runs
// through a Session so that only the newest request per client wins.
package qr
