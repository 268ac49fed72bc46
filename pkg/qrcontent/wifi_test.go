package qrcontent_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
	"github.com/dmitrymomot/qrkit/pkg/validator"
)

func TestFormatWiFi(t *testing.T) {
	t.Parallel()

	t.Run("formats WPA network", func(t *testing.T) {
		t.Parallel()
		wifi, err := qrcontent.FormatWiFi(qrcontent.WiFiRecord{
			SSID:       "MyNetwork",
			Password:   "MyPassword",
			Encryption: qrcontent.EncryptionWPA,
		})
		require.NoError(t, err)
		assert.Contains(t, wifi, "WIFI:")
		assert.Contains(t, wifi, "T:WPA")
		assert.Contains(t, wifi, "S:MyNetwork")
		assert.Contains(t, wifi, "P:MyPassword")
		assert.Equal(t, "WIFI:T:WPA;S:MyNetwork;P:MyPassword;;", wifi)
	})

	t.Run("open network omits password", func(t *testing.T) {
		t.Parallel()
		wifi, err := qrcontent.FormatWiFi(qrcontent.WiFiRecord{
			SSID:       "OpenNetwork",
			Password:   "",
			Encryption: qrcontent.EncryptionNoPass,
		})
		require.NoError(t, err)
		assert.Contains(t, wifi, "T:nopass")
		assert.NotContains(t, wifi, "P:")
	})

	t.Run("open network never leaks a set password", func(t *testing.T) {
		t.Parallel()
		wifi, err := qrcontent.FormatWiFi(qrcontent.WiFiRecord{
			SSID:       "Cafe",
			Password:   "secret",
			Encryption: qrcontent.EncryptionNoPass,
		})
		require.NoError(t, err)
		assert.Equal(t, "WIFI:T:nopass;S:Cafe;;", wifi)
		assert.NotContains(t, wifi, "secret")
	})

	t.Run("WEP and unknown tokens are upper-cased", func(t *testing.T) {
		t.Parallel()
		wifi, err := qrcontent.FormatWiFi(qrcontent.WiFiRecord{SSID: "Old", Password: "k", Encryption: "wep"})
		require.NoError(t, err)
		assert.Equal(t, "WIFI:T:WEP;S:Old;P:k;;", wifi)

		wifi, err = qrcontent.FormatWiFi(qrcontent.WiFiRecord{SSID: "New", Password: "k", Encryption: "sae"})
		require.NoError(t, err)
		assert.Contains(t, wifi, "T:SAE;")
	})

	t.Run("hidden flag", func(t *testing.T) {
		t.Parallel()
		wifi, err := qrcontent.FormatWiFi(qrcontent.WiFiRecord{
			SSID: "Stealth", Password: "pw", Encryption: qrcontent.EncryptionWPA, Hidden: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "WIFI:T:WPA;S:Stealth;P:pw;H:true;;", wifi)

		wifi, err = qrcontent.FormatWiFi(qrcontent.WiFiRecord{SSID: "Visible", Encryption: qrcontent.EncryptionNoPass})
		require.NoError(t, err)
		assert.NotContains(t, wifi, "H:")
	})

	t.Run("escapes structural characters", func(t *testing.T) {
		t.Parallel()
		wifi, err := qrcontent.FormatWiFi(qrcontent.WiFiRecord{
			SSID:       `My;Net:"A",B\`,
			Password:   `p;a:s,s"\`,
			Encryption: qrcontent.EncryptionWPA,
		})
		require.NoError(t, err)
		assert.Equal(t, `WIFI:T:WPA;S:My\;Net\:\"A\"\,B\\;P:p\;a\:s\,s\"\\;;`, wifi)
	})

	t.Run("empty SSID is a validation error", func(t *testing.T) {
		t.Parallel()
		wifi, err := qrcontent.FormatWiFi(qrcontent.WiFiRecord{Password: "pw", Encryption: qrcontent.EncryptionWPA})
		require.Error(t, err)
		assert.Empty(t, wifi)
		assert.True(t, errors.Is(err, qrcontent.ErrValidation))
		assert.True(t, validator.ExtractValidationErrors(err).Has("ssid"))
	})
}
