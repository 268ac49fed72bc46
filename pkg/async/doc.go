// Package async provides generic helpers for running work in goroutines and
// collecting the result later.
//
// Async starts a function and returns a *Future. Await blocks until it
// finishes, AwaitContext stops waiting when a context ends, and IsComplete
// polls without blocking.
//
// Latest coordinates a stream of submissions where only the newest result
// matters, such as a live preview re-rendered on every keystroke:
//
//	var preview async.Latest[*qrcode.Image]
//
//	f := preview.Submit(ctx, func(ctx context.Context) (*qrcode.Image, error) {
//		return render(ctx, input)
//	})
//	img, err := f.Await()
//	if errors.Is(err, async.ErrSuperseded) {
//		// a newer preview was submitted; drop this one
//	}
//
// Each submission gets a sequence number. Submitting cancels the previous
// task's context, and a task that completes after a newer submission
// resolves to ErrSuperseded, so a slow stale result can never overwrite a
// fresher one.
package async
