package pluginregistry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclus-go/cyclus/internal/domain/agent"
	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/infrastructure/pluginregistry"
)

func TestRegisterBuiltins_RegistersAllThreeKinds(t *testing.T) {
	k := pluginregistry.NewKindRegistry()

	require.NoError(t, pluginregistry.RegisterBuiltins(k))

	assert.ElementsMatch(t, []string{"RecipeReactor", "SourceFacility", "SinkFacility"}, k.Kinds())
}

func TestRegisterBuiltins_DoubleRegisterFails(t *testing.T) {
	k := pluginregistry.NewKindRegistry()
	require.NoError(t, pluginregistry.RegisterBuiltins(k))

	err := pluginregistry.RegisterBuiltins(k)

	assert.Error(t, err)
}

func TestConstruct_SourceFacility_MissingParam(t *testing.T) {
	k := pluginregistry.NewKindRegistry()
	require.NoError(t, pluginregistry.RegisterBuiltins(k))

	ctx := registry.NewSimulationContext()
	region, err := agent.NewRegion(ctx, "region-1")
	require.NoError(t, err)

	_, err = k.Construct("SourceFacility", ctx, "supplier", region, map[string]any{})

	assert.Error(t, err)
}

func TestConstruct_SourceFacility_Succeeds(t *testing.T) {
	k := pluginregistry.NewKindRegistry()
	require.NoError(t, pluginregistry.RegisterBuiltins(k))

	ctx := registry.NewSimulationContext()
	region, err := agent.NewRegion(ctx, "region-1")
	require.NoError(t, err)
	_, err = ctx.RegisterCommodity("U", region.ID())
	require.NoError(t, err)

	built, err := k.Construct("SourceFacility", ctx, "supplier", region, map[string]any{
		"out_commodity":   "U",
		"unit_tag":        "U",
		"per_tick_output": 10.0,
	})

	require.NoError(t, err)
	assert.Equal(t, "supplier", built.Name())
}

func TestConstruct_UnknownKind(t *testing.T) {
	k := pluginregistry.NewKindRegistry()

	ctx := registry.NewSimulationContext()
	region, err := agent.NewRegion(ctx, "region-1")
	require.NoError(t, err)

	_, err = k.Construct("NoSuchKind", ctx, "x", region, nil)

	assert.Error(t, err)
}
