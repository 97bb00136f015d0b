package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/routing"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
)

// hop is a minimal routing.Receiver recording the order it was visited in
// and forwarding further hops through a pre-declared chain, letting tests
// drive a Message across several agents without the full agent package.
type hop struct {
	id    registry.AgentID
	chain map[registry.AgentID]registry.AgentID // next UP destination for this hop
	visits *[]registry.AgentID
}

func (h *hop) Receive(m *routing.Message) error {
	*h.visits = append(*h.visits, h.id)
	switch m.Direction() {
	case routing.Up:
		next, ok := h.chain[h.id]
		if !ok {
			return nil
		}
		if err := m.SetNextDest(next); err != nil {
			return err
		}
		return m.SendOn(resolverFor(h))
	case routing.Down:
		return m.SendOn(resolverFor(h))
	default:
		return nil
	}
}

func resolverFor(h *hop) routing.Resolver {
	hops := allHops
	return func(id registry.AgentID) (routing.Receiver, error) {
		r, ok := hops[id]
		if !ok {
			return nil, assert.AnError
		}
		return r, nil
	}
}

var allHops map[registry.AgentID]*hop

func newChain(ids ...registry.AgentID) (*[]registry.AgentID, routing.Resolver) {
	visits := &[]registry.AgentID{}
	allHops = make(map[registry.AgentID]*hop, len(ids))
	chain := make(map[registry.AgentID]registry.AgentID, len(ids))
	for i, id := range ids[:len(ids)-1] {
		chain[id] = ids[i+1]
	}
	for _, id := range ids {
		allHops[id] = &hop{id: id, chain: chain, visits: visits}
	}
	resolve := func(id registry.AgentID) (routing.Receiver, error) {
		r, ok := allHops[id]
		if !ok {
			return nil, assert.AnError
		}
		return r, nil
	}
	return visits, resolve
}

func newTestMessage(originator registry.AgentID) *routing.Message {
	tx, err := txn.NewTransaction(registry.CommodityID(1), 100, 0, 1.0)
	if err != nil {
		panic(err)
	}
	return routing.NewMessage(originator, tx)
}

func TestSendOn_UpLegBuildsPathStack(t *testing.T) {
	facility, inst, region := registry.AgentID(1), registry.AgentID(2), registry.AgentID(3)
	_, resolve := newChain(facility, inst, region)

	msg := newTestMessage(facility)
	require.NoError(t, msg.SetNextDest(inst))
	require.NoError(t, msg.SendOn(resolve))

	assert.Equal(t, []registry.AgentID{facility, inst}, msg.PathStack())
	assert.Equal(t, region, msg.CurrentHolder())
}

func TestReverseDirection_DownLegRetracesUpLegExactly(t *testing.T) {
	facility, inst, region := registry.AgentID(1), registry.AgentID(2), registry.AgentID(3)
	visits, resolve := newChain(facility, inst, region)

	msg := newTestMessage(facility)
	require.NoError(t, msg.SetNextDest(inst))
	require.NoError(t, msg.SendOn(resolve))

	// Each leg's first agent never receives on that leg: the UP leg
	// starts at the originator, the DOWN leg at the agent holding the
	// message when it is reversed.
	upReceives := len(*visits)
	upPath := append([]registry.AgentID{facility}, *visits...)
	reversedAt := msg.CurrentHolder()

	require.NoError(t, msg.ReverseDirection())
	for msg.Direction() != routing.Done {
		require.NoError(t, msg.SendOn(resolve))
	}

	downPath := append([]registry.AgentID{reversedAt}, (*visits)[upReceives:]...)
	reversedUp := make([]registry.AgentID, len(upPath))
	for i, id := range upPath {
		reversedUp[len(upPath)-1-i] = id
	}
	assert.Equal(t, reversedUp, downPath)
}

func TestClone_DoesNotAliasOriginal(t *testing.T) {
	msg := newTestMessage(registry.AgentID(1))
	require.NoError(t, msg.SetNextDest(registry.AgentID(2)))

	clone := msg.Clone()
	clone.SetTransaction(clone.Transaction().WithAmount(5))

	assert.NotEqual(t, msg.Transaction().Amount(), clone.Transaction().Amount())
	assert.NotEqual(t, msg.ID(), clone.ID())
}

func TestSendOn_CircularDestinationAborts(t *testing.T) {
	originator, hop2 := registry.AgentID(1), registry.AgentID(2)
	_, resolve := newChain(originator, hop2)

	msg := newTestMessage(originator)
	require.NoError(t, msg.SetNextDest(hop2))
	require.NoError(t, msg.SendOn(resolve))

	// Now held by hop2; set_next_dest(self) reproduces the circular case
	// from spec.md §8 scenario 5: routing back to the originator mid-UP.
	require.NoError(t, msg.SetNextDest(originator))
	err := msg.SendOn(resolve)
	assert.ErrorIs(t, err, routing.ErrCircular)
}

func TestSendOn_DoneTwiceIsTerminal(t *testing.T) {
	originator, hop2 := registry.AgentID(1), registry.AgentID(2)
	_, resolve := newChain(originator, hop2)

	msg := newTestMessage(originator)
	require.NoError(t, msg.SetNextDest(hop2))
	require.NoError(t, msg.SendOn(resolve))

	require.NoError(t, msg.ReverseDirection())
	err := msg.SendOn(resolve)
	require.NoError(t, err)
	assert.Equal(t, routing.Done, msg.Direction())

	err = msg.SendOn(resolve)
	assert.ErrorIs(t, err, routing.ErrTerminalMessage)
}

func TestSetNextDest_RejectsCurrentHolder(t *testing.T) {
	id := registry.AgentID(1)
	msg := newTestMessage(id)

	err := msg.SetNextDest(id)

	assert.ErrorIs(t, err, routing.ErrInvalidRecipient)
}
