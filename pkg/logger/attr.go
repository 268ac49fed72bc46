package logger

import (
	"log/slog"
	"time"
)

// Error returns an "error" attribute, or an empty Attr when err is nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID returns a "request_id" attribute, or an empty Attr for "".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// ContentType records a QR payload type such as "url" or "wifi".
func ContentType[T ~string](ct T) slog.Attr {
	return slog.String("content_type", string(ct))
}

// Kind records whether a history record was generated or scanned.
func Kind[T ~string](k T) slog.Attr {
	return slog.String("kind", string(k))
}

// RecordID records a history record id. Nil ids yield an empty Attr.
func RecordID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("record_id", id)
}

// ImageFormat records an output image format.
func ImageFormat[T ~string](f T) slog.Attr {
	return slog.String("format", string(f))
}

func Driver(name string) slog.Attr {
	return slog.String("driver", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
