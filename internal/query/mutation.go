package query

import (
	"context"
	"errors"
	"sync"
)

// ErrMutationInFlight is returned when Mutate is called while a previous
// call on the same Mutation has not finished.
var ErrMutationInFlight = errors.New("mutation already in flight")

// Mutation wraps a write operation and tracks its lifecycle. OnSuccess runs
// after the write has returned successfully and before Mutate returns, which
// is where callers invalidate the queries the write affects.
type Mutation[In, Out any] struct {
	fn        func(context.Context, In) (Out, error)
	onSuccess func(context.Context, In, Out)

	mu     sync.Mutex
	status Status
	data   Out
	err    error
}

// NewMutation creates a Mutation. onSuccess may be nil.
func NewMutation[In, Out any](fn func(context.Context, In) (Out, error), onSuccess func(context.Context, In, Out)) *Mutation[In, Out] {
	return &Mutation[In, Out]{fn: fn, onSuccess: onSuccess}
}

// Mutate runs the write. Only one call may be in flight at a time.
func (m *Mutation[In, Out]) Mutate(ctx context.Context, in In) (Out, error) {
	var zero Out

	m.mu.Lock()
	if m.status == StatusPending {
		m.mu.Unlock()
		return zero, ErrMutationInFlight
	}
	m.status = StatusPending
	m.err = nil
	m.mu.Unlock()

	out, err := m.fn(ctx, in)
	if err != nil {
		m.mu.Lock()
		m.status = StatusError
		m.err = err
		m.mu.Unlock()
		return zero, err
	}

	if m.onSuccess != nil {
		m.onSuccess(ctx, in, out)
	}

	m.mu.Lock()
	m.status = StatusSuccess
	m.data = out
	m.mu.Unlock()
	return out, nil
}

// Status returns the lifecycle of the most recent call.
func (m *Mutation[In, Out]) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Err returns the error of the most recent failed call.
func (m *Mutation[In, Out]) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Data returns the result of the most recent successful call.
func (m *Mutation[In, Out]) Data() (Out, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data, m.status == StatusSuccess
}

// Reset returns the mutation to idle. It has no effect while a call is in
// flight.
func (m *Mutation[In, Out]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == StatusPending {
		return
	}
	var zero Out
	m.status = StatusIdle
	m.data = zero
	m.err = nil
}
