package notify

import "context"

// Notifier delivers events to a downstream sink (SQS, SNS, HTTP, etc).
type Notifier interface {
	ID() string
	Type() string
	Notify(ctx context.Context, evt Event) error
}
