package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclus-go/cyclus/internal/infrastructure/pluginregistry"
	"github.com/cyclus-go/cyclus/internal/infrastructure/scenario"
)

const fixtureYAML = `
horizon: 2
markets:
  - name: u-market
commodities:
  - name: U
    market_kind: u-market
regions:
  - name: region-1
    institutions:
      - name: inst-1
        facilities:
          - name: supplier
            kind: SourceFacility
            params:
              out_commodity: U
              unit_tag: U
              per_tick_output: 10
          - name: requester
            kind: SinkFacility
            params:
              in_commodity: U
              per_tick_demand: 10
`

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))
	return path
}

func TestLoad_ParsesScenarioDocument(t *testing.T) {
	path := writeFixture(t)

	doc, err := scenario.Load(path)

	require.NoError(t, err)
	assert.Equal(t, 2, doc.Horizon)
	require.Len(t, doc.Regions, 1)
	require.Len(t, doc.Regions[0].Institutions, 1)
	require.Len(t, doc.Regions[0].Institutions[0].Facilities, 2)
}

func TestLoad_RejectsNegativeHorizon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("horizon: -1\n"), 0o644))

	_, err := scenario.Load(path)

	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := scenario.Load("/nonexistent/scenario.yaml")

	assert.Error(t, err)
}

func TestBuild_WiresFullGraph(t *testing.T) {
	path := writeFixture(t)
	doc, err := scenario.Load(path)
	require.NoError(t, err)

	kinds := pluginregistry.NewKindRegistry()
	require.NoError(t, pluginregistry.RegisterBuiltins(kinds))

	sim, err := scenario.Build(doc, kinds)

	require.NoError(t, err)
	assert.Equal(t, 2, sim.Horizon)
	assert.Len(t, sim.Roots, 1)
	assert.Len(t, sim.Markets, 1)

	_, err = sim.Context.CommodityByName("U")
	assert.NoError(t, err)
}

func TestBuild_UnknownFacilityKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad-kind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
horizon: 1
markets:
  - name: u-market
commodities:
  - name: U
    market_kind: u-market
regions:
  - name: region-1
    institutions:
      - name: inst-1
        facilities:
          - name: mystery
            kind: NotARealKind
            params: {}
`), 0o644))
	doc, err := scenario.Load(path)
	require.NoError(t, err)

	kinds := pluginregistry.NewKindRegistry()
	require.NoError(t, pluginregistry.RegisterBuiltins(kinds))

	_, err = scenario.Build(doc, kinds)

	assert.Error(t, err)
}
