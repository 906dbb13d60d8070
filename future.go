package msql

import "context"

// Future is the handle to an asynchronously running repository
// operation. It completes exactly once, either with the result of the
// operation or with its error.
// Abandoning a future is allowed, the underlying operation still runs
// to completion
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) complete(value T, err error) {
	f.value = value
	f.err = err
	close(f.done)
}

// Wait blocks until the operation completed or the context expired.
// Waiting multiple times returns the same result
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed once the operation completed
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}
