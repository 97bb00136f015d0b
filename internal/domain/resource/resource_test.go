package resource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclus-go/cyclus/internal/domain/resource"
)

func TestNewScalar_TotalQuantity(t *testing.T) {
	r := resource.NewScalar("U", resource.MassBasis, 100)

	assert.Equal(t, 100.0, r.TotalQuantity())
	assert.Equal(t, "U", r.UnitTag)
}

func TestExtract_ConservesQuantity(t *testing.T) {
	r := resource.NewScalar("U", resource.MassBasis, 100)

	extracted, err := r.Extract(40)

	require.NoError(t, err)
	assert.InDelta(t, 40, extracted.TotalQuantity(), 1e-9)
	assert.InDelta(t, 60, r.TotalQuantity(), 1e-9)
}

func TestExtract_SplitsCompositionProportionally(t *testing.T) {
	r := resource.New("U", resource.MassBasis, map[string]float64{"U235": 20, "U238": 80})

	extracted, err := r.Extract(50)
	require.NoError(t, err)

	assert.InDelta(t, 10, extracted.Composition()["U235"], 1e-9)
	assert.InDelta(t, 40, extracted.Composition()["U238"], 1e-9)
	assert.InDelta(t, 10, r.Composition()["U235"], 1e-9)
	assert.InDelta(t, 40, r.Composition()["U238"], 1e-9)
}

func TestExtract_NegativeAmount(t *testing.T) {
	r := resource.NewScalar("U", resource.MassBasis, 100)

	_, err := r.Extract(-1)

	assert.ErrorIs(t, err, resource.ErrNegativeAmount)
}

func TestExtract_MoreThanAvailable(t *testing.T) {
	r := resource.NewScalar("U", resource.MassBasis, 10)

	_, err := r.Extract(20)

	assert.ErrorIs(t, err, resource.ErrInsufficientQuantity)
}

func TestAbsorb_ConservesQuantity(t *testing.T) {
	a := resource.NewScalar("U", resource.MassBasis, 30)
	b := resource.NewScalar("U", resource.MassBasis, 50)

	a.Absorb(b)

	assert.InDelta(t, 80, a.TotalQuantity(), 1e-9)
	assert.InDelta(t, 0, b.TotalQuantity(), 1e-9)
}

func TestExtractThenAbsorb_RestoresOriginalQuantity(t *testing.T) {
	r := resource.NewScalar("U", resource.MassBasis, 100)
	before := r.TotalQuantity()

	extracted, err := r.Extract(37)
	require.NoError(t, err)

	r.Absorb(extracted)

	assert.InDelta(t, before, r.TotalQuantity(), 1e-9)
}

func TestClone_SharesNoOwnership(t *testing.T) {
	r := resource.NewScalar("U", resource.MassBasis, 100)

	clone := r.Clone()
	_, err := r.Extract(100)
	require.NoError(t, err)

	assert.NotEqual(t, r.ID, clone.ID)
	assert.InDelta(t, 100, clone.TotalQuantity(), 1e-9)
	assert.InDelta(t, 0, r.TotalQuantity(), 1e-9)
}
