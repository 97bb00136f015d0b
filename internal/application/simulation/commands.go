package simulation

import (
	"context"

	"github.com/cyclus-go/cyclus/internal/adapters/metrics"
	"github.com/cyclus-go/cyclus/internal/application/common"
	"github.com/cyclus-go/cyclus/internal/domain/agent"
	"github.com/cyclus-go/cyclus/internal/domain/clearing"
)

// RunTickCommand drives every root's HandleTick for one period: facility
// request/offer emission, climbing the hierarchy toward its market.
type RunTickCommand struct {
	Period int
	Roots  []agent.Capability
}

// ResolveMarketsCommand drives every market's Resolve for one period.
type ResolveMarketsCommand struct {
	Period  int
	Markets []*clearing.Market
}

// DrainCommand services any messages still in flight after tick/resolve
// or tock. With this core's purely synchronous SendOn recursion (per
// spec.md §5: "all dispatch is synchronous function invocation"),
// nothing is ever left mid-route by the time a tick, resolve, or tock
// call returns — drain_until_done is named here, as spec.md §4.5 and
// §9 require, but its body is a no-op confirmation rather than a real
// pump loop.
type DrainCommand struct{}

// RunTockCommand drives every root's HandleTock for one period: suppliers
// ship, requesters receive.
type RunTockCommand struct {
	Period int
	Roots  []agent.Capability
}

type runTickHandler struct{}

func (runTickHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd := request.(*RunTickCommand)
	for _, root := range cmd.Roots {
		if err := root.HandleTick(cmd.Period); err != nil {
			return nil, &Diagnostic{Period: cmd.Period, Phase: PhaseTick, AgentID: root.ID(), Err: err}
		}
	}
	metrics.RecordTickProcessed(cmd.Period)
	return nil, nil
}

type resolveMarketsHandler struct{}

func (resolveMarketsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd := request.(*ResolveMarketsCommand)
	for _, market := range cmd.Markets {
		if err := market.Resolve(cmd.Period); err != nil {
			return nil, &Diagnostic{Period: cmd.Period, Phase: PhaseResolve, AgentID: market.ID(), Err: err}
		}
	}
	return nil, nil
}

type drainHandler struct{}

func (drainHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	return nil, nil
}

type runTockHandler struct{}

func (runTockHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd := request.(*RunTockCommand)
	for _, root := range cmd.Roots {
		if err := root.HandleTock(cmd.Period); err != nil {
			return nil, &Diagnostic{Period: cmd.Period, Phase: PhaseTock, AgentID: root.ID(), Err: err}
		}
	}
	metrics.RecordTockProcessed(cmd.Period)
	return nil, nil
}
