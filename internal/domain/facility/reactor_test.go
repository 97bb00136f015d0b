package facility_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclus-go/cyclus/internal/domain/agent"
	"github.com/cyclus-go/cyclus/internal/domain/facility"
	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/resource"
	"github.com/cyclus-go/cyclus/internal/domain/routing"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
)

// captureReceiver is a minimal agent.Capability stand-in recording the
// manifest it was handed by SendMaterial, so tests can assert on the
// split-resource delivery shape without routing a full cleared message.
type captureReceiver struct {
	agent.Base
	manifest []*resource.Resource
}

func (c *captureReceiver) ReceiveMaterial(tx *txn.Transaction, manifest []*resource.Resource) error {
	c.manifest = manifest
	return nil
}

func newReactor(t *testing.T, inventoryCap, monthlyCapacity float64) (*registry.SimulationContext, *agent.Region, *facility.RecipeReactor, registry.CommodityID, registry.CommodityID) {
	t.Helper()
	ctx := registry.NewSimulationContext()
	region, err := agent.NewRegion(ctx, "region-1")
	require.NoError(t, err)

	placeholderMarket := region.ID()
	outID, err := ctx.RegisterCommodity("enriched-U", placeholderMarket)
	require.NoError(t, err)
	inID, err := ctx.RegisterCommodity("raw-U", placeholderMarket)
	require.NoError(t, err)

	reactor, err := facility.NewRecipeReactor(ctx, "reactor-1", region, inID, outID, inventoryCap, monthlyCapacity)
	require.NoError(t, err)
	return ctx, region, reactor, inID, outID
}

func TestRecipeReactor_SplitResourceDelivery(t *testing.T) {
	_, _, reactor, _, outID := newReactor(t, 1000, 1000)

	require.NoError(t, reactor.ReceiveMaterial(nil, []*resource.Resource{
		resource.NewScalar("U", resource.MassBasis, 30),
		resource.NewScalar("U", resource.MassBasis, 50),
	}))
	require.NoError(t, reactor.HandleTock(0))

	inventory := reactor.Inventory()
	require.Len(t, inventory, 2)
	assert.InDelta(t, 30, inventory[0].TotalQuantity(), 1e-9)
	assert.InDelta(t, 50, inventory[1].TotalQuantity(), 1e-9)

	tx, err := txn.NewTransaction(outID, 40, 0, 0)
	require.NoError(t, err)

	requester := &captureReceiver{}
	require.NoError(t, reactor.SendMaterial(tx, requester))

	require.Len(t, requester.manifest, 2)
	assert.InDelta(t, 30, requester.manifest[0].TotalQuantity(), 1e-9)
	assert.InDelta(t, 10, requester.manifest[1].TotalQuantity(), 1e-9)
	require.Len(t, reactor.Inventory(), 1)
	assert.InDelta(t, 40, reactor.Inventory()[0].TotalQuantity(), 1e-9)
}

func TestRecipeReactor_SendMaterial_CommodityMismatch(t *testing.T) {
	_, _, reactor, inID, _ := newReactor(t, 1000, 1000)

	tx, err := txn.NewTransaction(inID, 10, 0, 0)
	require.NoError(t, err)

	err = reactor.SendMaterial(tx, &captureReceiver{})

	assert.ErrorIs(t, err, facility.ErrCommodityMismatch)
}

func TestRecipeReactor_InventoryNeverExceedsCap(t *testing.T) {
	_, _, reactor, _, _ := newReactor(t, 100, 1000)

	require.NoError(t, reactor.ReceiveMaterial(nil, []*resource.Resource{
		resource.NewScalar("U", resource.MassBasis, 90),
	}))
	require.NoError(t, reactor.HandleTock(0))

	total := 0.0
	for _, r := range reactor.Inventory() {
		total += r.TotalQuantity()
	}
	for _, r := range reactor.Stocks() {
		total += r.TotalQuantity()
	}
	assert.LessOrEqual(t, total, 100.0)
}

func TestFacilityReceive_SupplierRoleEnqueuesOrder(t *testing.T) {
	ctx := registry.NewSimulationContext()
	region, err := agent.NewRegion(ctx, "region-1")
	require.NoError(t, err)
	outID, err := ctx.RegisterCommodity("U", region.ID())
	require.NoError(t, err)

	supplier, err := facility.NewSourceFacility(ctx, "supplier", region, outID, "U", 10)
	require.NoError(t, err)
	requesterID := ctx.NextAgentID()

	tx, err := txn.NewTransaction(outID, 5, 0, 1)
	require.NoError(t, err)
	settled := tx.WithEndpoints(supplier.ID(), requesterID)

	msg := routing.NewMessage(requesterID, settled)
	require.NoError(t, msg.ReverseDirection()) // UP -> DOWN: this is a settled message arriving home

	require.NoError(t, supplier.Receive(msg))
}

func TestFacilityReceive_NeitherSupplierNorRequester(t *testing.T) {
	ctx := registry.NewSimulationContext()
	region, err := agent.NewRegion(ctx, "region-1")
	require.NoError(t, err)
	outID, err := ctx.RegisterCommodity("U", region.ID())
	require.NoError(t, err)

	supplier, err := facility.NewSourceFacility(ctx, "supplier", region, outID, "U", 10)
	require.NoError(t, err)

	tx, err := txn.NewTransaction(outID, 5, 0, 1)
	require.NoError(t, err)
	settled := tx.WithEndpoints(ctx.NextAgentID(), ctx.NextAgentID())

	msg := routing.NewMessage(settled.Requester(), settled)
	require.NoError(t, msg.ReverseDirection())

	err = supplier.Receive(msg)

	assert.ErrorIs(t, err, facility.ErrNotSupplier)
}
