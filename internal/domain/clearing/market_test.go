package clearing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclus-go/cyclus/internal/domain/agent"
	"github.com/cyclus-go/cyclus/internal/domain/clearing"
	"github.com/cyclus-go/cyclus/internal/domain/facility"
	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/routing"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
)

// stubOriginator is a minimal registry.Agent + routing.Receiver standing
// in for a facility when a test only cares about the clearing algorithm
// itself, not facility-level stock handling. It records every DOWN
// message it's handed.
type stubOriginator struct {
	id       registry.AgentID
	name     string
	received []*routing.Message
}

func newStubOriginator(ctx *registry.SimulationContext, name string) *stubOriginator {
	s := &stubOriginator{id: ctx.NextAgentID(), name: name}
	if err := ctx.RegisterAgent(s); err != nil {
		panic(err)
	}
	return s
}

func (s *stubOriginator) ID() registry.AgentID { return s.id }
func (s *stubOriginator) Name() string         { return s.name }
func (s *stubOriginator) Receive(m *routing.Message) error {
	s.received = append(s.received, m)
	return nil
}

func resolverFor(ctx *registry.SimulationContext) routing.Resolver {
	return func(id registry.AgentID) (routing.Receiver, error) {
		a, err := ctx.Agent(id)
		if err != nil {
			return nil, err
		}
		return a.(routing.Receiver), nil
	}
}

// sendUp wraps amount into a Transaction and routes it UP from originator
// through region to the commodity's market.
func sendUp(t *testing.T, ctx *registry.SimulationContext, region *agent.Region, commodity registry.CommodityID, originator *stubOriginator, amount, minAmount, price float64) {
	t.Helper()
	tx, err := txn.NewTransaction(commodity, amount, minAmount, price)
	require.NoError(t, err)
	msg := routing.NewMessage(originator.ID(), tx)
	require.NoError(t, msg.SetNextDest(region.ID()))
	require.NoError(t, msg.SendOn(resolverFor(ctx)))
}

func TestMarket_SingleHopMatch(t *testing.T) {
	ctx := registry.NewSimulationContext()
	market, err := clearing.NewMarket(ctx, "U-market")
	require.NoError(t, err)
	commodityID, err := ctx.RegisterCommodity("U", market.ID())
	require.NoError(t, err)

	region, err := agent.NewRegion(ctx, "region-1")
	require.NoError(t, err)

	supplier, err := facility.NewSourceFacility(ctx, "supplier", region, commodityID, "U", 100)
	require.NoError(t, err)
	requester, err := facility.NewSinkFacility(ctx, "requester", region, commodityID, 60)
	require.NoError(t, err)

	require.NoError(t, supplier.HandleTick(0))
	require.NoError(t, requester.HandleTick(0))
	require.NoError(t, market.Resolve(0))
	require.NoError(t, supplier.HandleTock(0))
	require.NoError(t, requester.HandleTock(0))

	assert.InDelta(t, 60, requester.TotalConsumed(), 1e-9)
	require.Len(t, supplier.Inventory(), 1)
	assert.InDelta(t, 40, supplier.Inventory()[0].TotalQuantity(), 1e-9)
}

func TestMarket_PartialFulfillment(t *testing.T) {
	ctx := registry.NewSimulationContext()
	market, err := clearing.NewMarket(ctx, "U-market")
	require.NoError(t, err)
	commodityID, err := ctx.RegisterCommodity("U", market.ID())
	require.NoError(t, err)
	region, err := agent.NewRegion(ctx, "region-1")
	require.NoError(t, err)

	supplier := newStubOriginator(ctx, "supplier")
	requester := newStubOriginator(ctx, "requester")

	sendUp(t, ctx, region, commodityID, supplier, 40, 0, 1)   // offer 40 @ 1
	sendUp(t, ctx, region, commodityID, requester, -60, 0, 2) // request 60 @ 2

	require.NoError(t, market.Resolve(0))

	// requester receives one cleared DOWN message for 40 and one
	// zero-amount Unfilled notice for the residual 20.
	require.Len(t, requester.received, 2)
	amounts := []float64{requester.received[0].Transaction().Amount(), requester.received[1].Transaction().Amount()}
	assert.Contains(t, amounts, -40.0)
	assert.Contains(t, amounts, 0.0)
}

func TestMarket_NoCrossWhenRequestPriceBelowOffer(t *testing.T) {
	ctx := registry.NewSimulationContext()
	market, err := clearing.NewMarket(ctx, "U-market")
	require.NoError(t, err)
	commodityID, err := ctx.RegisterCommodity("U", market.ID())
	require.NoError(t, err)
	region, err := agent.NewRegion(ctx, "region-1")
	require.NoError(t, err)

	supplier := newStubOriginator(ctx, "supplier")
	requester := newStubOriginator(ctx, "requester")

	sendUp(t, ctx, region, commodityID, supplier, 100, 0, 5)    // offer @ 5
	sendUp(t, ctx, region, commodityID, requester, -100, 0, 3)  // request @ 3

	require.NoError(t, market.Resolve(0))

	require.Len(t, supplier.received, 1)
	require.Len(t, requester.received, 1)
	assert.Equal(t, 0.0, supplier.received[0].Transaction().Amount())
	assert.Equal(t, 0.0, requester.received[0].Transaction().Amount())
}

func TestMarket_RequestWithZeroAmountIsSilentlyDropped(t *testing.T) {
	ctx := registry.NewSimulationContext()
	market, err := clearing.NewMarket(ctx, "U-market")
	require.NoError(t, err)
	commodityID, err := ctx.RegisterCommodity("U", market.ID())
	require.NoError(t, err)
	region, err := agent.NewRegion(ctx, "region-1")
	require.NoError(t, err)

	requester := newStubOriginator(ctx, "requester")
	tx, err := txn.NewTransaction(commodityID, 0, 0, 1)
	require.NoError(t, err)
	msg := routing.NewMessage(requester.ID(), tx)
	require.NoError(t, msg.SetNextDest(region.ID()))
	require.NoError(t, msg.SendOn(resolverFor(ctx)))

	require.NoError(t, market.Resolve(0))
	assert.Empty(t, requester.received)
}
