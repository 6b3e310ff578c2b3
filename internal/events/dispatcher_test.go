package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatcherPublishesToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventSiteCreated, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventSiteCreated, SiteID: "site-1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "site-1", got[0].SiteID)

	// Unrelated event types do not reach the handler.
	err = d.Publish(context.Background(), Event{Type: EventSiteDeleted, SiteID: "site-2"})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestDispatcherContinuesPastFailingHandler(t *testing.T) {
	d := NewInMemoryDispatcher()

	invoked := 0
	d.Subscribe(EventAccessTokenIssued, func(ctx context.Context, e Event) error {
		invoked++
		return errors.New("handler failed")
	})
	d.Subscribe(EventAccessTokenIssued, func(ctx context.Context, e Event) error {
		invoked++
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventAccessTokenIssued})
	require.NoError(t, err)
	require.Equal(t, 2, invoked)
}
