package async

import (
	"context"
	"sync"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or for ctx to be done, whichever comes
// first. The computation keeps running if ctx ends first.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// IsComplete reports whether the computation has finished, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async runs fn(ctx, param) in its own goroutine and returns a Future for its result.
// If ctx is already done, fn is not called and the Future resolves to ctx.Err().
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}

		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// Latest runs submitted tasks so that only the most recent submission wins.
// Submitting cancels the context of the previous in-flight task, and any
// task that finishes after a newer one was submitted resolves to
// ErrSuperseded, whatever it returned. The zero value is ready to use.
type Latest[T any] struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Submit starts fn under a context derived from ctx and returns its Future.
func (l *Latest[T]) Submit(ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	l.mu.Lock()
	l.seq++
	token := l.seq
	if l.cancel != nil {
		l.cancel()
	}
	taskCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	return Async(ctx, token, func(_ context.Context, token uint64) (T, error) {
		defer cancel()
		res, err := fn(taskCtx)

		if !l.release(token) {
			var zero T
			return zero, ErrSuperseded
		}
		return res, err
	})
}

// release reports whether token is still the newest submission and, if so,
// forgets its cancel func.
func (l *Latest[T]) release(token uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if token != l.seq {
		return false
	}
	l.cancel = nil
	return true
}

// Cancel aborts the in-flight task, if any. Its Future resolves to ErrSuperseded.
func (l *Latest[T]) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
