package qr_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrkit/pkg/async"
	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
	"github.com/dmitrymomot/qrkit/svc/qr"
)

func TestSession_Preview(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("renders without history", func(t *testing.T) {
		t.Parallel()
		svc, store := newService(t, qr.DefaultSettings())
		sess := svc.NewSession()
		defer sess.Close()

		res, err := sess.Preview(ctx, qr.GenerateRequest{Content: "john@example.com"})
		require.NoError(t, err)
		assert.Equal(t, qrcontent.Email, res.ContentType)
		assert.NotEmpty(t, res.DataURI)

		records, err := store.List(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("validation errors pass through", func(t *testing.T) {
		t.Parallel()
		svc, _ := newService(t, qr.DefaultSettings())
		sess := svc.NewSession()

		_, err := sess.Preview(ctx, qr.GenerateRequest{Type: qrcontent.WiFi})
		assert.ErrorIs(t, err, qrcontent.ErrValidation)
	})

	t.Run("last submission wins", func(t *testing.T) {
		t.Parallel()
		svc, _ := newService(t, qr.DefaultSettings())
		sess := svc.NewSession()

		const n = 8
		var wg sync.WaitGroup
		results := make([]error, n)
		for i := range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, results[i] = sess.Preview(ctx, qr.GenerateRequest{Content: "preview"})
			}()
		}
		wg.Wait()

		// Whatever the interleaving, the newest submission can never be
		// superseded, so at least one call succeeds and every failure is a
		// supersession.
		var ok int
		for _, err := range results {
			if err == nil {
				ok++
				continue
			}
			assert.True(t, errors.Is(err, async.ErrSuperseded) || errors.Is(err, context.Canceled), err.Error())
		}
		assert.GreaterOrEqual(t, ok, 1)

		res, err := sess.Preview(ctx, qr.GenerateRequest{Content: "after"})
		require.NoError(t, err)
		assert.Equal(t, "after", res.Payload)
	})
}
