package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherRoutesByType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var created, archived int
	d.Subscribe(EventTicketCreated, func(ctx context.Context, e Event) error {
		created++
		return nil
	})
	d.Subscribe(EventTicketArchived, func(ctx context.Context, e Event) error {
		archived++
		return nil
	})

	ctx := context.Background()
	if err := d.Publish(ctx, Event{Type: EventTicketCreated}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := d.Publish(ctx, Event{Type: EventTicketCreated}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := d.Publish(ctx, Event{Type: EventTicketArchived}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if created != 2 || archived != 1 {
		t.Fatalf("expected 2 created / 1 archived, got %d / %d", created, archived)
	}
}

func TestDispatcherSwallowsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	reached := false
	d.Subscribe(EventTicketCreated, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventTicketCreated, func(ctx context.Context, e Event) error {
		reached = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketCreated}); err != nil {
		t.Fatalf("publish must not propagate handler errors, got %v", err)
	}
	if !reached {
		t.Fatal("later handler must still run after an earlier failure")
	}
}
