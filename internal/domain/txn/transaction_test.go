package txn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
)

func TestNewTransaction_OfferAndRequest(t *testing.T) {
	offer, err := txn.NewTransaction(registry.CommodityID(1), 100, 0, 1.0)
	require.NoError(t, err)
	assert.True(t, offer.IsOffer())
	assert.False(t, offer.IsRequest())

	request, err := txn.NewTransaction(registry.CommodityID(1), -60, 0, 2.0)
	require.NoError(t, err)
	assert.True(t, request.IsRequest())
}

func TestNewTransaction_BelowMinAmount(t *testing.T) {
	_, err := txn.NewTransaction(registry.CommodityID(1), 5, 10, 1.0)

	assert.ErrorIs(t, err, txn.ErrBelowMinAmount)
}

func TestNewTransaction_NegativeMinAmount(t *testing.T) {
	_, err := txn.NewTransaction(registry.CommodityID(1), 5, -1, 1.0)

	assert.ErrorIs(t, err, txn.ErrNegativeMinAmount)
}

func TestNewTransaction_ZeroAmountWithMinAmount(t *testing.T) {
	_, err := txn.NewTransaction(registry.CommodityID(1), 0, 5, 1.0)

	assert.ErrorIs(t, err, txn.ErrZeroAmount)
}

func TestWithEndpoints_DoesNotMutateOriginal(t *testing.T) {
	original, err := txn.NewTransaction(registry.CommodityID(1), 100, 0, 1.0)
	require.NoError(t, err)

	withEndpoints := original.WithEndpoints(registry.AgentID(1), registry.AgentID(2))

	assert.Equal(t, registry.AgentID(0), original.Supplier())
	assert.Equal(t, registry.AgentID(1), withEndpoints.Supplier())
	assert.Equal(t, registry.AgentID(2), withEndpoints.Requester())
}

func TestWithPayload_RequiresEndpointsSet(t *testing.T) {
	original, err := txn.NewTransaction(registry.CommodityID(1), 100, 0, 1.0)
	require.NoError(t, err)

	_, err = original.WithPayload(nil)

	assert.ErrorIs(t, err, txn.ErrEndpointsNotSet)
}

func TestWithPayload_SucceedsOnceEndpointsSet(t *testing.T) {
	original, err := txn.NewTransaction(registry.CommodityID(1), 100, 0, 1.0)
	require.NoError(t, err)
	settled := original.WithEndpoints(registry.AgentID(1), registry.AgentID(2))

	withPayload, err := settled.WithPayload(nil)

	require.NoError(t, err)
	assert.Nil(t, withPayload.Payload())
}

func TestWithMetadata_ReturnsDefensiveCopy(t *testing.T) {
	original, err := txn.NewTransaction(registry.CommodityID(1), 100, 0, 1.0)
	require.NoError(t, err)

	withMeta := original.WithMetadata("rollover", 2)
	withMeta.Metadata()["rollover"] = 99

	assert.Equal(t, 2, withMeta.Metadata()["rollover"])
	assert.Empty(t, original.Metadata())
}
