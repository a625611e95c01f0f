package blogs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanghai1803/inkwell/internal/models"
)

type fakeCreator struct {
	calls   int
	err     error
	gate    chan struct{}
	started chan struct{}
	got     models.NewBlog
}

func (f *fakeCreator) CreateBlog(_ context.Context, payload models.NewBlog) (models.Blog, error) {
	f.calls++
	f.got = payload
	if f.started != nil {
		close(f.started)
	}
	if f.gate != nil {
		<-f.gate
	}
	if f.err != nil {
		return models.Blog{}, f.err
	}
	return payload.WithID("101"), nil
}

func TestCreateFlow_Success(t *testing.T) {
	creator := &fakeCreator{}
	flow := NewCreateFlow(creator)
	flow.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, FlowIdle, flow.State())

	created, err := flow.Submit(context.Background(), validDraft())
	require.NoError(t, err)
	assert.Equal(t, models.ID("101"), created.ID)
	assert.Equal(t, FlowSucceeded, flow.State())
	assert.Equal(t, "2024-05-01T00:00:00.000Z", creator.got.Date)

	got, ok := flow.Created()
	assert.True(t, ok)
	assert.Equal(t, created, got)
}

func TestCreateFlow_InvalidDraftMakesNoRequest(t *testing.T) {
	creator := &fakeCreator{}
	flow := NewCreateFlow(creator)

	_, err := flow.Submit(context.Background(), Draft{Title: "only a title"})

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, 0, creator.calls)
	assert.Equal(t, FlowFailed, flow.State())
	assert.Equal(t, err, flow.LastError())
}

func TestCreateFlow_RemoteFailureIsKept(t *testing.T) {
	creator := &fakeCreator{err: errors.New("service unavailable")}
	flow := NewCreateFlow(creator)

	_, err := flow.Submit(context.Background(), validDraft())
	assert.EqualError(t, err, "service unavailable")
	assert.Equal(t, FlowFailed, flow.State())
	assert.EqualError(t, flow.LastError(), "service unavailable")

	_, ok := flow.Created()
	assert.False(t, ok)

	creator.err = nil
	_, err = flow.Submit(context.Background(), validDraft())
	require.NoError(t, err, "a failed form can be resubmitted")
	assert.NoError(t, flow.LastError())
}

func TestCreateFlow_RejectsDoubleSubmit(t *testing.T) {
	creator := &fakeCreator{gate: make(chan struct{}), started: make(chan struct{})}
	flow := NewCreateFlow(creator)

	errc := make(chan error, 1)
	go func() {
		_, err := flow.Submit(context.Background(), validDraft())
		errc <- err
	}()

	<-creator.started
	assert.Equal(t, FlowSubmitting, flow.State())

	_, err := flow.Submit(context.Background(), validDraft())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(creator.gate)
	require.NoError(t, <-errc)
	assert.Equal(t, 1, creator.calls)
}
