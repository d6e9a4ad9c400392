package notify

import "time"

// Event is a named broadcast notification. Reachability transitions map
// 1:1 onto event names; the payload carries nothing beyond the name, the
// state it reflects, and when it was emitted.
type Event struct {
	Name      string    `json:"name"`
	State     string    `json:"state"`
	EmittedAt time.Time `json:"emitted_at"`
}

// NewEvent constructs an Event stamped with the current time.
func NewEvent(name, state string) Event {
	return Event{
		Name:      name,
		State:     state,
		EmittedAt: time.Now().UTC(),
	}
}
