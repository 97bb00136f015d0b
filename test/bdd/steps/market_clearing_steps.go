package steps

import (
	"context"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"

	"github.com/cyclus-go/cyclus/internal/domain/agent"
	"github.com/cyclus-go/cyclus/internal/domain/clearing"
	"github.com/cyclus-go/cyclus/internal/domain/facility"
	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/routing"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
)

// stubAgent is a minimal registry.Agent + routing.Receiver used by the
// "stub supplier"/"stub requester" steps, which drive the clearing
// algorithm directly without a full facility's stock/inventory behavior.
type stubAgent struct {
	id       registry.AgentID
	name     string
	received []*routing.Message
}

func (s *stubAgent) ID() registry.AgentID { return s.id }
func (s *stubAgent) Name() string         { return s.name }
func (s *stubAgent) Receive(m *routing.Message) error {
	s.received = append(s.received, m)
	return nil
}

// marketClearingContext holds state for the market clearing scenarios.
type marketClearingContext struct {
	ctx         *registry.SimulationContext
	region      *agent.Region
	market      *clearing.Market
	commodityID registry.CommodityID

	sourceFacility *facility.SourceFacility
	sinkFacility   *facility.SinkFacility

	stubSupplier *stubAgent
	stubRequester *stubAgent

	t *testing.T
}

func (mc *marketClearingContext) reset(t *testing.T) {
	mc.t = t
	mc.ctx = nil
	mc.region = nil
	mc.market = nil
	mc.sourceFacility = nil
	mc.sinkFacility = nil
	mc.stubSupplier = nil
	mc.stubRequester = nil
}

func (mc *marketClearingContext) aRegionWithAMarketClearingCommodity(regionName, marketName, commodity string) error {
	mc.ctx = registry.NewSimulationContext()
	market, err := clearing.NewMarket(mc.ctx, marketName)
	if err != nil {
		return err
	}
	mc.market = market
	commodityID, err := mc.ctx.RegisterCommodity(commodity, market.ID())
	if err != nil {
		return err
	}
	mc.commodityID = commodityID

	region, err := agent.NewRegion(mc.ctx, regionName)
	if err != nil {
		return err
	}
	mc.region = region
	return nil
}

func (mc *marketClearingContext) aSourceFacilityOfferingKgOfAtPrice(name string, amount float64, commodity string, price float64) error {
	f, err := facility.NewSourceFacility(mc.ctx, name, mc.region, mc.commodityID, commodity, amount)
	if err != nil {
		return err
	}
	mc.sourceFacility = f
	return nil
}

func (mc *marketClearingContext) aSinkFacilityDemandingKgOfAtPrice(name string, amount float64, commodity string, price float64) error {
	f, err := facility.NewSinkFacility(mc.ctx, name, mc.region, mc.commodityID, amount)
	if err != nil {
		return err
	}
	mc.sinkFacility = f
	return nil
}

func (mc *marketClearingContext) aStubSupplierOfferingKgOfAtPrice(amount float64, commodity string, price float64) error {
	mc.stubSupplier = &stubAgent{id: mc.ctx.NextAgentID(), name: "stub-supplier"}
	require.NoError(mc.t, mc.ctx.RegisterAgent(mc.stubSupplier))
	return mc.sendUp(mc.stubSupplier, amount, price)
}

func (mc *marketClearingContext) aStubRequesterDemandingKgOfAtPrice(amount float64, commodity string, price float64) error {
	mc.stubRequester = &stubAgent{id: mc.ctx.NextAgentID(), name: "stub-requester"}
	require.NoError(mc.t, mc.ctx.RegisterAgent(mc.stubRequester))
	return mc.sendUp(mc.stubRequester, -amount, price)
}

func (mc *marketClearingContext) sendUp(originator *stubAgent, signedAmount, price float64) error {
	tx, err := txn.NewTransaction(mc.commodityID, signedAmount, 0, price)
	if err != nil {
		return err
	}
	msg := routing.NewMessage(originator.ID(), tx)
	if err := msg.SetNextDest(mc.region.ID()); err != nil {
		return err
	}
	return msg.SendOn(mc.resolver())
}

func (mc *marketClearingContext) resolver() routing.Resolver {
	return func(id registry.AgentID) (routing.Receiver, error) {
		a, err := mc.ctx.Agent(id)
		if err != nil {
			return nil, err
		}
		r, ok := a.(routing.Receiver)
		if !ok {
			return nil, fmt.Errorf("agent %d is not a routing.Receiver", id)
		}
		return r, nil
	}
}

func (mc *marketClearingContext) theTickResolveAndTockPhasesRunForPeriod(period int) error {
	if err := mc.sourceFacility.HandleTick(period); err != nil {
		return err
	}
	if err := mc.sinkFacility.HandleTick(period); err != nil {
		return err
	}
	if err := mc.market.Resolve(period); err != nil {
		return err
	}
	if err := mc.sourceFacility.HandleTock(period); err != nil {
		return err
	}
	return mc.sinkFacility.HandleTock(period)
}

func (mc *marketClearingContext) theMarketResolvesPeriod(period int) error {
	return mc.market.Resolve(period)
}

func (mc *marketClearingContext) hasConsumedKgOf(name string, amount float64, commodity string) error {
	require.InDelta(mc.t, amount, mc.sinkFacility.TotalConsumed(), 1e-9)
	return nil
}

func (mc *marketClearingContext) hasKgOfRemainingInInventory(name string, amount float64, commodity string) error {
	inv := mc.sourceFacility.Inventory()
	require.Len(mc.t, inv, 1)
	require.InDelta(mc.t, amount, inv[0].TotalQuantity(), 1e-9)
	return nil
}

func (mc *marketClearingContext) theStubRequesterReceivesAClearedTransferOfKg(amount float64) error {
	for _, m := range mc.stubRequester.received {
		if m.Transaction().Amount() != 0 {
			require.InDelta(mc.t, -amount, m.Transaction().Amount(), 1e-9)
			return nil
		}
	}
	return fmt.Errorf("no cleared transfer found among %d received messages", len(mc.stubRequester.received))
}

func (mc *marketClearingContext) theStubRequesterReceivesAnUnfilledNoticeOfKgForTheResidual(amount float64) error {
	for _, m := range mc.stubRequester.received {
		if m.Transaction().Amount() == amount {
			return nil
		}
	}
	return fmt.Errorf("no unfilled notice of %g found", amount)
}

func (mc *marketClearingContext) theStubSupplierReceivesAnUnfilledNoticeOfKgForTheResidual(amount float64) error {
	for _, m := range mc.stubSupplier.received {
		if m.Transaction().Amount() == amount {
			return nil
		}
	}
	return fmt.Errorf("no unfilled notice of %g found", amount)
}

func (mc *marketClearingContext) theStubRequesterReceivesNoMessages() error {
	require.Empty(mc.t, mc.stubRequester.received)
	return nil
}

// InitializeMarketClearingScenario wires the market-clearing step
// definitions into sc.
func InitializeMarketClearingScenario(sc *godog.ScenarioContext) {
	mc := &marketClearingContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		mc.reset(&testing.T{})
		return ctx, nil
	})

	sc.Step(`^a region "([^"]*)" with a market "([^"]*)" clearing commodity "([^"]*)"$`, mc.aRegionWithAMarketClearingCommodity)
	sc.Step(`^a source facility "([^"]*)" offering (\d+) kg of "([^"]*)" at price (\d+)$`, mc.aSourceFacilityOfferingKgOfAtPrice)
	sc.Step(`^a sink facility "([^"]*)" demanding (\d+) kg of "([^"]*)" at price (\d+)$`, mc.aSinkFacilityDemandingKgOfAtPrice)
	sc.Step(`^a stub supplier offering (\d+) kg of "([^"]*)" at price (\d+)$`, mc.aStubSupplierOfferingKgOfAtPrice)
	sc.Step(`^a stub requester demanding (\d+) kg of "([^"]*)" at price (\d+)$`, mc.aStubRequesterDemandingKgOfAtPrice)
	sc.Step(`^the tick, resolve, and tock phases run for period (\d+)$`, mc.theTickResolveAndTockPhasesRunForPeriod)
	sc.Step(`^the market resolves period (\d+)$`, mc.theMarketResolvesPeriod)
	sc.Step(`^"([^"]*)" has consumed (\d+) kg of "([^"]*)"$`, mc.hasConsumedKgOf)
	sc.Step(`^"([^"]*)" has (\d+) kg of "([^"]*)" remaining in inventory$`, mc.hasKgOfRemainingInInventory)
	sc.Step(`^the stub requester receives a cleared transfer of (\d+) kg$`, mc.theStubRequesterReceivesAClearedTransferOfKg)
	sc.Step(`^the stub requester receives an unfilled notice of (\d+) kg for the residual$`, mc.theStubRequesterReceivesAnUnfilledNoticeOfKgForTheResidual)
	sc.Step(`^the stub supplier receives an unfilled notice of (\d+) kg for the residual$`, mc.theStubSupplierReceivesAnUnfilledNoticeOfKgForTheResidual)
	sc.Step(`^the stub requester receives no messages$`, mc.theStubRequesterReceivesNoMessages)
}
