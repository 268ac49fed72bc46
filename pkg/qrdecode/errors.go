package qrdecode

import "errors"

var (
	// ErrDecode is matched by every decode failure.
	ErrDecode = errors.New("qr decode failed")
	// ErrNotFound is returned when the image contains no readable QR code.
	ErrNotFound = &decodeError{msg: "no QR code found in image"}
	// ErrInvalidImage is returned when the input cannot be decoded as an image.
	ErrInvalidImage = &decodeError{msg: "invalid or unsupported image"}
	// ErrImageTooLarge is returned when the input exceeds the configured limit.
	ErrImageTooLarge = &decodeError{msg: "image too large"}
)

type decodeError struct {
	msg string
}

func (e *decodeError) Error() string { return e.msg }

func (e *decodeError) Is(target error) bool { return target == ErrDecode }
