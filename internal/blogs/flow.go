package blogs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/hoanghai1803/inkwell/internal/models"
)

// ErrSubmitInFlight is returned when a form is submitted twice.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// FlowState is where a create form is in its lifecycle.
type FlowState int

const (
	FlowIdle FlowState = iota
	FlowSubmitting
	FlowSucceeded
	// FlowFailed behaves like FlowIdle: the form stays editable and can be
	// submitted again. LastError holds the reason.
	FlowFailed
)

func (s FlowState) String() string {
	switch s {
	case FlowIdle:
		return "idle"
	case FlowSubmitting:
		return "submitting"
	case FlowSucceeded:
		return "succeeded"
	case FlowFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Creator creates posts. *Service implements it.
type Creator interface {
	CreateBlog(ctx context.Context, payload models.NewBlog) (models.Blog, error)
}

// CreateFlow drives one create form. Invalid drafts are rejected before any
// request is made; remote failures are kept for display and never swallowed.
type CreateFlow struct {
	creator Creator
	now     func() time.Time

	mu      sync.Mutex
	state   FlowState
	lastErr error
	created models.Blog
}

// NewCreateFlow creates an idle flow.
func NewCreateFlow(creator Creator) *CreateFlow {
	return &CreateFlow{creator: creator, now: time.Now}
}

// Submit validates d and creates the post.
func (f *CreateFlow) Submit(ctx context.Context, d Draft) (models.Blog, error) {
	f.mu.Lock()
	if f.state == FlowSubmitting {
		f.mu.Unlock()
		return models.Blog{}, ErrSubmitInFlight
	}
	if err := d.Validate(); err != nil {
		f.state = FlowFailed
		f.lastErr = err
		f.mu.Unlock()
		return models.Blog{}, err
	}
	f.state = FlowSubmitting
	f.lastErr = nil
	now := f.now()
	f.mu.Unlock()

	created, err := f.creator.CreateBlog(ctx, d.Payload(now))

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = FlowFailed
		f.lastErr = err
		return models.Blog{}, err
	}
	f.state = FlowSucceeded
	f.created = created
	return created, nil
}

// State returns the current state.
func (f *CreateFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// LastError returns why the last submission failed, or nil.
func (f *CreateFlow) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Created returns the post made by the last successful submission.
func (f *CreateFlow) Created() (models.Blog, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created, f.state == FlowSucceeded
}
