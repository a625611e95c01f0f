package query

import "time"

// Status is the lifecycle of a cached query.
type Status int

const (
	// StatusIdle means nothing has been requested for the key.
	StatusIdle Status = iota
	// StatusPending means the first fetch is in flight and there is no data.
	StatusPending
	// StatusSuccess means the last fetch succeeded.
	StatusSuccess
	// StatusError means the last fetch failed after retries.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is a read-only snapshot of a cached query as seen by a consumer.
type State[T any] struct {
	Data T
	// HasData is false until the first successful fetch. A failed refetch
	// keeps the previous Data and sets Status to StatusError.
	HasData    bool
	Status     Status
	Err        error
	UpdatedAt  time.Time
	IsFetching bool
}

// IsLoading reports whether the consumer is waiting for the first result.
func (s State[T]) IsLoading() bool {
	return s.Status == StatusPending
}

// IsError reports whether the last fetch failed.
func (s State[T]) IsError() bool {
	return s.Status == StatusError
}

// IsSuccess reports whether the last fetch succeeded.
func (s State[T]) IsSuccess() bool {
	return s.Status == StatusSuccess
}
