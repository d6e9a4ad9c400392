package reachability

// Package reachability observes host network connectivity and forwards
// each state change as a named broadcast notification.

// State is the host's network-connectivity state.
type State int

const (
	// Unknown means connectivity could not be determined.
	Unknown State = iota
	// NotReachable means the network is down or unusable.
	NotReachable
	// ReachableOnWiFi means the host is online via LAN or WiFi.
	ReachableOnWiFi
	// ReachableOnCellular means the host is online via a cellular link.
	ReachableOnCellular
)

// String returns a short name for the state.
func (s State) String() string {
	switch s {
	case NotReachable:
		return "not_reachable"
	case ReachableOnWiFi:
		return "reachable_on_wifi"
	case ReachableOnCellular:
		return "reachable_on_cellular"
	default:
		return "unknown"
	}
}

// NotificationName maps the state to its broadcast event name. The mapping
// is 1:1 with no payload logic beyond the name.
func (s State) NotificationName() string {
	return "reachability." + s.String()
}
