package simulation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclus-go/cyclus/internal/application/simulation"
	"github.com/cyclus-go/cyclus/internal/domain/agent"
	"github.com/cyclus-go/cyclus/internal/domain/clearing"
	"github.com/cyclus-go/cyclus/internal/domain/facility"
	"github.com/cyclus-go/cyclus/internal/domain/registry"
)

func TestTimekeeper_RunsFullHorizon(t *testing.T) {
	ctx := registry.NewSimulationContext()
	market, err := clearing.NewMarket(ctx, "U-market")
	require.NoError(t, err)
	commodityID, err := ctx.RegisterCommodity("U", market.ID())
	require.NoError(t, err)

	region, err := agent.NewRegion(ctx, "region-1")
	require.NoError(t, err)
	_, err = facility.NewSourceFacility(ctx, "supplier", region, commodityID, "U", 10)
	require.NoError(t, err)
	requester, err := facility.NewSinkFacility(ctx, "requester", region, commodityID, 10)
	require.NoError(t, err)

	ctx.Freeze()

	tk := simulation.NewTimekeeper([]agent.Capability{region}, []*clearing.Market{market}, 2)

	err = tk.Run(context.Background())

	require.NoError(t, err)
	assert.Greater(t, requester.TotalConsumed(), 0.0)
}

func TestTimekeeper_ZeroHorizonRunsNoPeriods(t *testing.T) {
	ctx := registry.NewSimulationContext()
	market, err := clearing.NewMarket(ctx, "U-market")
	require.NoError(t, err)
	commodityID, err := ctx.RegisterCommodity("U", market.ID())
	require.NoError(t, err)

	region, err := agent.NewRegion(ctx, "region-1")
	require.NoError(t, err)
	_, err = facility.NewSourceFacility(ctx, "supplier", region, commodityID, "U", 10)
	require.NoError(t, err)
	requester, err := facility.NewSinkFacility(ctx, "requester", region, commodityID, 10)
	require.NoError(t, err)

	ctx.Freeze()

	tk := simulation.NewTimekeeper([]agent.Capability{region}, []*clearing.Market{market}, 0)

	err = tk.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0.0, requester.TotalConsumed())
}

func TestTimekeeper_PropagatesHandlerError(t *testing.T) {
	ctx := registry.NewSimulationContext()
	market, err := clearing.NewMarket(ctx, "U-market")
	require.NoError(t, err)
	region, err := agent.NewRegion(ctx, "region-1")
	require.NoError(t, err)

	// No commodity registered for the region's facility to request against:
	// a facility that tries to route UP without a registered commodity
	// can't resolve a market and HandleTick fails, which should surface as
	// a *Diagnostic through the tick phase.
	badCommodity := registry.CommodityID(999)
	_, err = facility.NewSinkFacility(ctx, "requester", region, badCommodity, 10)
	require.NoError(t, err)
	ctx.Freeze()

	tk := simulation.NewTimekeeper([]agent.Capability{region}, []*clearing.Market{market}, 1)

	err = tk.Run(context.Background())

	require.Error(t, err)
	var diag *simulation.Diagnostic
	require.ErrorAs(t, err, &diag)
	assert.Equal(t, simulation.PhaseTick, diag.Phase)
}
