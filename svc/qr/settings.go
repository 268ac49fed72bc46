package qr

import (
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
)

// Settings are the user-facing preferences of the service, loaded from the
// environment once at startup.
type Settings struct {
	MaxHistoryItems        int    `env:"QR_MAX_HISTORY_ITEMS" envDefault:"50"`
	EnableGeolocation      bool   `env:"QR_ENABLE_GEOLOCATION" envDefault:"false"`
	DefaultSize            int    `env:"QR_DEFAULT_SIZE" envDefault:"256"`
	DefaultErrorCorrection string `env:"QR_DEFAULT_ERROR_CORRECTION" envDefault:"M"`
	DefaultMargin          int    `env:"QR_DEFAULT_MARGIN" envDefault:"4"`
	DefaultForeground      string `env:"QR_DEFAULT_FOREGROUND" envDefault:"#000000"`
	DefaultBackground      string `env:"QR_DEFAULT_BACKGROUND" envDefault:"#FFFFFF"`
	DefaultFormat          string `env:"QR_DEFAULT_FORMAT" envDefault:"png"`
	MaxUploadSize          int64  `env:"QR_MAX_UPLOAD_SIZE" envDefault:"10485760"`
}

// DefaultSettings mirrors the env defaults for callers that do not load
// configuration, such as tests.
func DefaultSettings() Settings {
	return Settings{
		MaxHistoryItems:        50,
		DefaultSize:            256,
		DefaultErrorCorrection: "M",
		DefaultMargin:          4,
		DefaultForeground:      "#000000",
		DefaultBackground:      "#FFFFFF",
		DefaultFormat:          "png",
		MaxUploadSize:          10 << 20,
	}
}

// EncoderDefaults converts the settings into encoder options.
func (s Settings) EncoderDefaults() qrcode.Options {
	return qrcode.Options{
		ErrorCorrection: qrcode.ErrorCorrection(s.DefaultErrorCorrection),
		Size:            s.DefaultSize,
		Margin:          s.DefaultMargin,
		Foreground:      s.DefaultForeground,
		Background:      s.DefaultBackground,
		Format:          qrcode.Format(s.DefaultFormat),
	}
}

// Validate checks the defaults against the encoder limits.
func (s Settings) Validate() error {
	return s.EncoderDefaults().Validate()
}
