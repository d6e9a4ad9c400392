package notify

import (
	"context"
	"testing"
)

func TestChannelNotifierDelivers(t *testing.T) {
	sub := NewChannelNotifier("sub-1", 2)

	evt := NewEvent("reachability.reachable_on_wifi", "reachable_on_wifi")
	if err := sub.Notify(context.Background(), evt); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	select {
	case got := <-sub.Events():
		if got.Name != evt.Name {
			t.Fatalf("got %q", got.Name)
		}
	default:
		t.Fatalf("event not delivered")
	}
}

func TestChannelNotifierFullBufferErrors(t *testing.T) {
	sub := NewChannelNotifier("sub-1", 1)

	if err := sub.Notify(context.Background(), Event{}); err != nil {
		t.Fatalf("first Notify: %v", err)
	}
	if err := sub.Notify(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error when buffer is full")
	}
}
