package qr

import "errors"

var (
	ErrEmptyScan    = errors.New("qr code decoded but content is empty")
	ErrUploadTooBig = errors.New("image file is too large")
	ErrStoreImage   = errors.New("failed to store rendered image")
)
