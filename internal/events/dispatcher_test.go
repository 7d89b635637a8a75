package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventUserRegistered, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventPlaceCreated, func(ctx context.Context, e Event) error {
		t.Fatal("handler for other event type invoked")
		return nil
	})

	err := d.Publish(context.Background(), Event{ID: "e1", Type: EventUserRegistered, UserID: "u1"})
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "e1" {
		t.Fatalf("expected one delivered event, got %+v", got)
	}
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()

	var secondCalled bool
	d.Subscribe(EventPlaceDeleted, func(ctx context.Context, e Event) error {
		return errors.New("first handler failed")
	})
	d.Subscribe(EventPlaceDeleted, func(ctx context.Context, e Event) error {
		secondCalled = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventPlaceDeleted}); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if !secondCalled {
		t.Fatal("second handler not invoked after first failed")
	}
}
