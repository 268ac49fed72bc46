package qr

import (
	"context"
	"errors"

	"github.com/dmitrymomot/qrkit/pkg/async"
	"github.com/dmitrymomot/qrkit/pkg/logger"
)

// Session is one client's live preview channel. A new Preview cancels the
// one still rendering, and the older call returns async.ErrSuperseded even
// if its rendering finished. Previews never touch history or storage.
type Session struct {
	svc    *Service
	latest async.Latest[*GenerateResult]
}

func (s *Service) NewSession() *Session {
	return &Session{svc: s}
}

// Preview renders req unless a newer Preview arrives first.
func (sess *Session) Preview(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	res, err := sess.latest.Submit(ctx, func(ctx context.Context) (*GenerateResult, error) {
		return sess.svc.render(ctx, req)
	}).Await()
	if errors.Is(err, async.ErrSuperseded) {
		sess.svc.log.DebugContext(ctx, "preview superseded", logger.Event("preview_superseded"))
	}
	return res, err
}

// Close cancels any in-flight preview.
func (sess *Session) Close() {
	sess.latest.Cancel()
}
