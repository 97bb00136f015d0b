// Package simulation hosts the Timekeeper driver loop: the tick/resolve
// /drain/tock cadence spec.md §5 and §7 describe, expressed as four
// mediator commands so the same PrometheusMiddleware instrumentation the
// teacher wires around every other use-case also covers the simulation
// clock.
package simulation

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/cyclus-go/cyclus/internal/application/common"
	"github.com/cyclus-go/cyclus/internal/domain/agent"
	"github.com/cyclus-go/cyclus/internal/domain/clearing"
	"github.com/cyclus-go/cyclus/internal/domain/shared"
)

// Timekeeper owns the simulation horizon and drives every root agent and
// market through one tick/resolve/drain/tock cycle per period, per
// spec.md §5: "for t in [0, horizon): root.handle_tick(t); every
// Market.resolve(t); drain_until_done(); root.handle_tock(t);
// drain_until_done()."
type Timekeeper struct {
	roots   []agent.Capability
	markets []*clearing.Market
	horizon int

	mediator common.Mediator
	logger   common.Logger
	clock    shared.Clock
	throttle *rate.Limiter
}

// Option configures a Timekeeper at construction.
type Option func(*Timekeeper)

// WithClock overrides the default real clock, primarily for tests.
func WithClock(clock shared.Clock) Option {
	return func(tk *Timekeeper) { tk.clock = clock }
}

// WithThrottle paces the loop to at most one period per interval
// rather than running the horizon as fast as the CPU allows. The CLI
// does not set it.
func WithThrottle(limiter *rate.Limiter) Option {
	return func(tk *Timekeeper) { tk.throttle = limiter }
}

// WithLogger overrides the no-op default logger.
func WithLogger(logger common.Logger) Option {
	return func(tk *Timekeeper) { tk.logger = logger }
}

// NewTimekeeper builds a Timekeeper over the given root agents (the
// Region(s) at the top of the hierarchy) and markets, registering the
// four driver commands on a dedicated mediator instance.
func NewTimekeeper(roots []agent.Capability, markets []*clearing.Market, horizon int, opts ...Option) *Timekeeper {
	tk := &Timekeeper{
		roots:    roots,
		markets:  markets,
		horizon:  horizon,
		mediator: common.NewMediator(),
		clock:    shared.NewRealClock(),
	}
	for _, opt := range opts {
		opt(tk)
	}

	_ = common.RegisterHandler[*RunTickCommand](tk.mediator, runTickHandler{})
	_ = common.RegisterHandler[*ResolveMarketsCommand](tk.mediator, resolveMarketsHandler{})
	_ = common.RegisterHandler[*DrainCommand](tk.mediator, drainHandler{})
	_ = common.RegisterHandler[*RunTockCommand](tk.mediator, runTockHandler{})

	return tk
}

// Use registers middleware (e.g. metrics, logging) around every command
// this Timekeeper dispatches.
func (tk *Timekeeper) Use(middleware common.Middleware) {
	tk.mediator.RegisterMiddleware(middleware)
}

// Run executes the half-open range [0, horizon) in order, aborting on
// the first fatal error raised by any phase.
func (tk *Timekeeper) Run(ctx context.Context) error {
	for t := 0; t < tk.horizon; t++ {
		if tk.throttle != nil {
			if err := tk.throttle.Wait(ctx); err != nil {
				return err
			}
		}

		if err := tk.runPeriod(ctx, t); err != nil {
			return err
		}

		if tk.logger != nil {
			tk.logger.Log("info", "period complete", map[string]interface{}{"period": t})
		}
	}
	return nil
}

func (tk *Timekeeper) runPeriod(ctx context.Context, t int) error {
	if _, err := tk.mediator.Send(ctx, &RunTickCommand{Period: t, Roots: tk.roots}); err != nil {
		return err
	}
	if _, err := tk.mediator.Send(ctx, &ResolveMarketsCommand{Period: t, Markets: tk.markets}); err != nil {
		return err
	}
	if _, err := tk.mediator.Send(ctx, &DrainCommand{}); err != nil {
		return err
	}
	if _, err := tk.mediator.Send(ctx, &RunTockCommand{Period: t, Roots: tk.roots}); err != nil {
		return err
	}
	if _, err := tk.mediator.Send(ctx, &DrainCommand{}); err != nil {
		return err
	}
	return nil
}
