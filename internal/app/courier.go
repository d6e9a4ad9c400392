package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/samvad-api-router/internal/config"
	"github.com/samvad-hq/samvad-api-router/internal/logger"
	"github.com/samvad-hq/samvad-api-router/pkg/notify"
	"github.com/samvad-hq/samvad-api-router/pkg/reachability"
	"github.com/samvad-hq/samvad-api-router/pkg/route"
	"github.com/samvad-hq/samvad-api-router/pkg/router"
	"github.com/samvad-hq/samvad-api-router/pkg/transport"
)

// Courier wires together the route registry, router, notifiers, and the
// reachability monitor, and executes configured routes on an interval.
type Courier struct {
	cfg      *config.Config
	routeReg *route.Registry
	rt       *router.Router
	fanout   *notify.Fanout
	monitor  *reachability.Monitor
	interval time.Duration
	log      logger.Logger
}

// NewCourier builds a courier runtime from config files.
func NewCourier(ctx context.Context, cfg *config.Config, log logger.Logger) (*Courier, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	routeReg, err := route.LoadRegistry(cfg.RoutesFile)
	if err != nil {
		return nil, fmt.Errorf("load routes registry: %w", err)
	}
	routeList := routeReg.All()
	routeIDs := make([]string, 0, len(routeList))
	for _, r := range routeList {
		routeIDs = append(routeIDs, r.ID)
	}
	log.InfoObj("routes registry loaded", "routes_meta", map[string]any{
		"count": len(routeIDs),
		"ids":   routeIDs,
	})

	notifierReg, err := notify.LoadRegistry(cfg.NotifiersFile)
	if err != nil {
		return nil, fmt.Errorf("load notifiers registry: %w", err)
	}

	enabledNotifiers := notifierReg.Enabled()
	if len(enabledNotifiers) == 0 {
		return nil, fmt.Errorf("no notifiers configured")
	}

	builderReg := notify.DefaultRegistry()
	sinks, err := notify.BuildAll(ctx, builderReg, enabledNotifiers, log)
	if err != nil {
		return nil, fmt.Errorf("build notifiers: %w", err)
	}
	fanout := notify.NewFanout(sinks)
	notifierSummaries := make([]map[string]string, 0, len(enabledNotifiers))
	for _, nCfg := range enabledNotifiers {
		notifierSummaries = append(notifierSummaries, map[string]string{
			"id":   nCfg.ID,
			"type": nCfg.Type,
		})
	}
	log.InfoObj("notifiers registry loaded", "notifiers_meta", map[string]any{
		"count":     len(notifierSummaries),
		"notifiers": notifierSummaries,
	})

	rt := router.New(
		router.WithRequestLog(func(req *transport.Request) {
			log.DebugObj("dispatching request", "outgoing_request", map[string]any{
				"request_id": req.ID,
				"method":     req.Method,
				"url":        req.URL.String(),
				"body_bytes": len(req.Body),
			})
		}),
	)

	monitor, err := reachability.NewMonitor(
		reachability.NewHTTPProber(cfg.ProbeURL),
		fanout,
		cfg.ProbeInterval,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("init reachability monitor: %w", err)
	}

	return &Courier{
		cfg:      cfg,
		routeReg: routeReg,
		rt:       rt,
		fanout:   fanout,
		monitor:  monitor,
		interval: cfg.DispatchInterval,
		log:      log,
	}, nil
}

// Run starts the reachability monitor and the dispatch loop until the
// context is cancelled.
func (c *Courier) Run(ctx context.Context) error {
	if c == nil || c.rt == nil {
		return fmt.Errorf("courier is not initialized")
	}
	defer c.fanout.Close()

	go func() {
		if err := c.monitor.Run(ctx); err != nil && ctx.Err() == nil {
			c.log.ErrorObj("reachability monitor stopped", "error", err)
		}
	}()

	routes := c.routeReg.Enabled()
	if len(routes) == 0 {
		c.log.WarnObj("no routes configured; courier idle", "routes_file", c.cfg.RoutesFile)
		<-ctx.Done()
		return ctx.Err()
	}

	c.log.InfoObj("courier loop starting", "courier_state", map[string]any{
		"routes_count":      len(routes),
		"notifiers_count":   c.fanout.Size(),
		"dispatch_interval": c.interval.String(),
	})

	if err := c.runOnce(ctx, routes); err != nil {
		c.log.ErrorObj("initial dispatch failed", "error", err)
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.InfoObj("courier loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := c.runOnce(ctx, routes); err != nil {
				c.log.ErrorObj("scheduled dispatch failed", "error", err)
			}
		}
	}
}

// runOnce executes every enabled route and logs the outcome.
func (c *Courier) runOnce(ctx context.Context, routes []route.Config) error {
	start := time.Now()
	failures := 0

	for _, cfg := range routes {
		ep, err := cfg.Endpoint()
		if err != nil {
			failures++
			c.log.ErrorObj("route descriptor invalid", "route_error", map[string]any{
				"route_id": cfg.ID,
				"error":    err.Error(),
			})
			continue
		}

		var payload map[string]any
		if err := c.rt.Execute(ctx, ep, &payload); err != nil {
			failures++
			c.log.ErrorObj("route dispatch failed", "route_error", map[string]any{
				"route_id": cfg.ID,
				"kind":     router.KindOf(err).String(),
				"error":    err.Error(),
			})
			continue
		}

		c.log.InfoObj("route dispatch completed", "route_result", map[string]any{
			"route_id":    cfg.ID,
			"field_count": len(payload),
		})
	}

	c.log.InfoObj("dispatch pass completed", "dispatch_meta", map[string]any{
		"routes_count": len(routes),
		"failures":     failures,
		"elapsed_ms":   time.Since(start).Milliseconds(),
	})

	if failures == len(routes) && len(routes) > 0 {
		return fmt.Errorf("all %d routes failed", len(routes))
	}
	return nil
}
