package reachability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samvad-hq/samvad-api-router/pkg/notify"
)

// Monitor polls a prober and forwards each state change through a notifier
// fanout. It performs no logic beyond the 1:1 state-to-event mapping.
type Monitor struct {
	prober   Prober
	fanout   *notify.Fanout
	interval time.Duration
	log      notify.Logger

	mu    sync.RWMutex
	state State
}

// NewMonitor builds a monitor. The caller owns the fanout's lifetime.
func NewMonitor(prober Prober, fanout *notify.Fanout, interval time.Duration, log notify.Logger) (*Monitor, error) {
	if prober == nil {
		return nil, fmt.Errorf("prober must not be nil")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("probe interval must be positive")
	}

	return &Monitor{
		prober:   prober,
		fanout:   fanout,
		interval: interval,
		log:      ensureLogger(log),
		state:    Unknown,
	}, nil
}

// State returns the last observed connectivity state.
func (m *Monitor) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Run probes immediately, then on every tick, until the context is
// cancelled. Each observed change is broadcast once.
func (m *Monitor) Run(ctx context.Context) error {
	if m == nil || m.prober == nil {
		return fmt.Errorf("monitor is not initialized")
	}

	m.observe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.observe(ctx)
		}
	}
}

// observe probes once and broadcasts when the state changed.
func (m *Monitor) observe(ctx context.Context) {
	current := m.prober.Probe(ctx)

	m.mu.Lock()
	previous := m.state
	m.state = current
	m.mu.Unlock()

	if current == previous {
		return
	}

	evt := notify.NewEvent(current.NotificationName(), current.String())
	delivered, err := m.fanout.Notify(ctx, evt)
	if err != nil {
		m.log.WarnObj("reachability broadcast partially failed", "reachability_notify_error", map[string]any{
			"state":     current.String(),
			"delivered": delivered,
			"error":     err.Error(),
		})
		return
	}
	m.log.InfoObj("reachability state changed", "reachability_transition", map[string]any{
		"from":      previous.String(),
		"to":        current.String(),
		"delivered": delivered,
	})
}

func ensureLogger(log notify.Logger) notify.Logger {
	if log == nil {
		return nopLogger{}
	}
	return log
}

type nopLogger struct{}

func (nopLogger) InfoObj(string, string, interface{})  {}
func (nopLogger) DebugObj(string, string, interface{}) {}
func (nopLogger) WarnObj(string, string, interface{})  {}
func (nopLogger) ErrorObj(string, string, interface{}) {}
