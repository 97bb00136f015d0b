package steps

import (
	"context"
	"testing"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/routing"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
)

// chainHop is a routing.Receiver that records every visit and, on the UP
// leg, auto-forwards to the next hop in a pre-declared chain; on the
// DOWN leg it keeps calling SendOn until the message reaches Done.
type chainHop struct {
	id     registry.AgentID
	name   string
	next   map[registry.AgentID]registry.AgentID
	all    map[registry.AgentID]*chainHop
	visits *[]registry.AgentID
}

func (h *chainHop) ID() registry.AgentID { return h.id }
func (h *chainHop) Name() string         { return h.name }

func (h *chainHop) Receive(m *routing.Message) error {
	*h.visits = append(*h.visits, h.id)
	switch m.Direction() {
	case routing.Up:
		next, ok := h.next[h.id]
		if !ok {
			return nil
		}
		if err := m.SetNextDest(next); err != nil {
			return err
		}
		return m.SendOn(h.resolver())
	case routing.Down:
		return m.SendOn(h.resolver())
	default:
		return nil
	}
}

func (h *chainHop) resolver() routing.Resolver {
	return func(id registry.AgentID) (routing.Receiver, error) {
		r, ok := h.all[id]
		if !ok {
			return nil, routing.ErrNoDestination
		}
		return r, nil
	}
}

// routingContext holds state for the message routing scenarios.
type routingContext struct {
	ctx     *registry.SimulationContext
	names   []string
	hops    map[string]*chainHop
	visits  []registry.AgentID
	msg     *routing.Message
	sendErr error

	t *testing.T
}

func (rc *routingContext) reset(t *testing.T) {
	rc.t = t
	rc.ctx = nil
	rc.names = nil
	rc.hops = nil
	rc.visits = nil
	rc.msg = nil
	rc.sendErr = nil
}

func (rc *routingContext) resolver() routing.Resolver {
	return func(id registry.AgentID) (routing.Receiver, error) {
		for _, h := range rc.hops {
			if h.id == id {
				return h, nil
			}
		}
		return nil, routing.ErrNoDestination
	}
}

func (rc *routingContext) aChainOfAgentsNamed(count int, names string) error {
	rc.ctx = registry.NewSimulationContext()
	rc.names = splitNames(names)
	require.Len(rc.t, rc.names, count)

	rc.hops = make(map[string]*chainHop, len(rc.names))
	all := make(map[registry.AgentID]*chainHop, len(rc.names))
	next := make(map[registry.AgentID]registry.AgentID, len(rc.names))

	for _, name := range rc.names {
		h := &chainHop{id: rc.ctx.NextAgentID(), name: name, next: next, all: all, visits: &rc.visits}
		rc.hops[name] = h
		all[h.id] = h
		require.NoError(rc.t, rc.ctx.RegisterAgent(h))
	}
	for i := 0; i < len(rc.names)-1; i++ {
		next[rc.hops[rc.names[i]].id] = rc.hops[rc.names[i+1]].id
	}
	return nil
}

func (rc *routingContext) aMessageOriginatesAtAndClimbsTo(fromName, toName string) error {
	from := rc.hops[fromName]
	tx, err := txn.NewTransaction(registry.CommodityID(1), 10, 0, 1)
	if err != nil {
		return err
	}
	rc.msg = routing.NewMessage(from.id, tx)

	first, ok := from.next[from.id]
	if !ok {
		return nil
	}
	if err := rc.msg.SetNextDest(first); err != nil {
		return err
	}
	if err := rc.msg.SendOn(rc.resolver()); err != nil {
		return err
	}
	assert.Equal(rc.t, rc.hops[toName].id, rc.msg.CurrentHolder())
	return nil
}

func (rc *routingContext) theMessageIsReversedAndDrivenToCompletion() error {
	if err := rc.msg.ReverseDirection(); err != nil {
		return err
	}
	return rc.msg.SendOn(rc.resolver())
}

func (rc *routingContext) theDownPathEqualsTheReverseOfTheUpPath() error {
	// Each leg's first agent never receives on that leg: the UP leg
	// starts at the first name, the DOWN leg at the last one.
	upCount := len(rc.names) - 1
	upPath := append([]registry.AgentID{rc.hops[rc.names[0]].id}, rc.visits[:upCount]...)
	downPath := append([]registry.AgentID{rc.hops[rc.names[upCount]].id}, rc.visits[upCount:]...)

	reversedUp := make([]registry.AgentID, len(upPath))
	for i, id := range upPath {
		reversedUp[len(upPath)-1-i] = id
	}
	assert.Equal(rc.t, reversedUp, downPath)
	return nil
}

func (rc *routingContext) aMessageHasAlreadyMovedFromTo(fromName, toName string) error {
	return rc.aMessageOriginatesAtAndClimbsTo(fromName, toName)
}

func (rc *routingContext) theMessagesNextDestinationIsSetBackTo(name string) error {
	return rc.msg.SetNextDest(rc.hops[name].id)
}

func (rc *routingContext) theMessageIsSentOn() error {
	rc.sendErr = rc.msg.SendOn(rc.resolver())
	return nil
}

func (rc *routingContext) theSendFailsWithACircularDestinationError() error {
	require.ErrorIs(rc.t, rc.sendErr, routing.ErrCircular)
	return nil
}

func (rc *routingContext) aMessageOriginatingAtHasBeenReversedAndDrivenToDone(name string) error {
	origin := rc.hops[name]
	tx, err := txn.NewTransaction(registry.CommodityID(1), 10, 0, 1)
	if err != nil {
		return err
	}

	// Chain of 1: the message must make one real UP hop to itself's
	// only neighbor before it can legitimately reach Done on the way
	// back down. A single-agent chain has no neighbor, so route the
	// message to itself's own id is invalid; instead simulate the
	// already-settled state directly via ReverseDirection on a message
	// that has never left its originator, then drive it down once.
	rc.msg = routing.NewMessage(origin.id, tx)
	if err := rc.msg.ReverseDirection(); err != nil {
		return err
	}
	err = rc.msg.SendOn(rc.resolver())
	if err != nil && err != routing.ErrTerminalMessage {
		return err
	}
	return nil
}

func (rc *routingContext) theMessageIsSentOnAgain() error {
	rc.sendErr = rc.msg.SendOn(rc.resolver())
	return nil
}

func (rc *routingContext) theSendFailsWithATerminalMessageError() error {
	require.ErrorIs(rc.t, rc.sendErr, routing.ErrTerminalMessage)
	return nil
}

// splitNames parses the quoted, comma-separated name list godog captures
// as a single free-text argument into individual names.
func splitNames(s string) []string {
	var out []string
	var cur []rune
	for _, r := range s {
		switch r {
		case ',', '"':
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = nil
			}
		case ' ':
			// skip
		default:
			cur = append(cur, r)
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

// InitializeRoutingScenario wires the message-routing step definitions
// into sc.
func InitializeRoutingScenario(sc *godog.ScenarioContext) {
	rc := &routingContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		rc.reset(&testing.T{})
		return ctx, nil
	})

	sc.Step(`^a chain of (\d+) agents? named (.+)$`, rc.aChainOfAgentsNamed)
	sc.Step(`^a message originates at "([^"]*)" and climbs to "([^"]*)"$`, rc.aMessageOriginatesAtAndClimbsTo)
	sc.Step(`^the message is reversed and driven to completion$`, rc.theMessageIsReversedAndDrivenToCompletion)
	sc.Step(`^the DOWN path equals the reverse of the UP path$`, rc.theDownPathEqualsTheReverseOfTheUpPath)
	sc.Step(`^a message has already moved from "([^"]*)" to "([^"]*)"$`, rc.aMessageHasAlreadyMovedFromTo)
	sc.Step(`^the message's next destination is set back to "([^"]*)"$`, rc.theMessagesNextDestinationIsSetBackTo)
	sc.Step(`^the message is sent on$`, rc.theMessageIsSentOn)
	sc.Step(`^the send fails with a circular-destination error$`, rc.theSendFailsWithACircularDestinationError)
	sc.Step(`^a message originating at "([^"]*)" has been reversed and driven to DONE$`, rc.aMessageOriginatingAtHasBeenReversedAndDrivenToDone)
	sc.Step(`^the message is sent on again$`, rc.theMessageIsSentOnAgain)
	sc.Step(`^the send fails with a terminal-message error$`, rc.theSendFailsWithATerminalMessageError)
}
