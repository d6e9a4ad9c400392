package notify

import (
	"context"
	"fmt"
)

// ChannelNotifier delivers events to an in-process subscriber channel, for
// callers that want to observe transitions directly instead of going
// through an external sink.
type ChannelNotifier struct {
	id string
	ch chan Event
}

// NewChannelNotifier creates a subscriber with the given buffer size.
func NewChannelNotifier(id string, buffer int) *ChannelNotifier {
	if buffer <= 0 {
		buffer = 16
	}
	return &ChannelNotifier{id: id, ch: make(chan Event, buffer)}
}

func (c *ChannelNotifier) ID() string   { return c.id }
func (c *ChannelNotifier) Type() string { return "channel" }

// Events returns the subscription channel.
func (c *ChannelNotifier) Events() <-chan Event { return c.ch }

// Notify delivers the event without blocking; a full buffer is an error so
// the fanout surfaces the stalled subscriber.
func (c *ChannelNotifier) Notify(ctx context.Context, evt Event) error {
	select {
	case c.ch <- evt:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("subscriber %q buffer full", c.id)
	}
}
