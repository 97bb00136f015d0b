// Package agent implements the common Agent hierarchy described in
// spec.md §4.3: a rooted forest of Region → Institution → Facility,
// with Markets reachable by commodity lookup rather than tree edges.
// Base provides the shared bookkeeping and the default UP-forwarding /
// DOWN-passthrough Receive behavior; Region and Institution use Base
// unmodified, while Facility (internal/domain/facility) and Market
// (internal/domain/clearing) embed Base and override the methods where
// their behavior actually differs, following the teacher's own
// ContainerType-style closed-variant-with-shared-lifecycle pattern.
package agent

import (
	"fmt"

	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/resource"
	"github.com/cyclus-go/cyclus/internal/domain/routing"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
)

// Base is the common state and default behavior shared by every Agent
// variant. It is addressed by a stable registry.AgentID, never by
// pointer: messages and transactions carry the id, and Base resolves
// peers through the SimulationContext rather than holding direct
// references to them.
type Base struct {
	ctx  *registry.SimulationContext
	id   registry.AgentID
	name string
	kind Kind

	parent   Capability
	children []Capability
}

// NewBase allocates a fresh AgentID from ctx for an agent of the given
// kind and returns its Base. It does not register the agent: concrete
// kinds (Region, Institution, and the Facility/Market types in their own
// packages) embed the returned value and call ctx.RegisterAgent
// themselves.
func NewBase(ctx *registry.SimulationContext, kind Kind, name string) (Base, error) {
	id := ctx.NextAgentID()
	b := Base{ctx: ctx, id: id, name: name, kind: kind}
	return b, nil
}

func (b *Base) ID() registry.AgentID { return b.id }
func (b *Base) Name() string         { return b.name }
func (b *Base) Kind() Kind           { return b.kind }
func (b *Base) Parent() Capability   { return b.parent }

// Children returns the ordered list of child agents, in registration
// order — the same order the Timekeeper's pre-order traversal and the
// default HandleTick/HandleTock recursion use.
func (b *Base) Children() []Capability {
	out := make([]Capability, len(b.children))
	copy(out, b.children)
	return out
}

// SetParent records p as this agent's parent. Called by the scenario
// loader while building the forest, before the registry is frozen.
func (b *Base) SetParent(p Capability) { b.parent = p }

// AddChild appends child to this agent's child list, in the order
// declared by the scenario.
func (b *Base) AddChild(child Capability) {
	b.children = append(b.children, child)
}

// Context returns the SimulationContext this agent was registered
// against, for subclasses (Facility, Market) that need to resolve peers
// or commodities themselves.
func (b *Base) Context() *registry.SimulationContext { return b.ctx }

// Resolver builds a routing.Resolver backed by this agent's
// SimulationContext, turning an AgentID into a live routing.Receiver.
func (b *Base) Resolver() routing.Resolver {
	ctx := b.ctx
	return func(id registry.AgentID) (routing.Receiver, error) {
		a, err := ctx.Agent(id)
		if err != nil {
			return nil, err
		}
		r, ok := a.(routing.Receiver)
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrNotReceiver, id)
		}
		return r, nil
	}
}

// HandleTick recurses into children in registration order. Market
// inherits this unchanged; a market has no children, so it does nothing
// (markets clear via Resolve, driven explicitly by the Timekeeper, not
// via tick recursion). Facility overrides it with its own request/offer
// emission.
func (b *Base) HandleTick(t int) error {
	for _, child := range b.children {
		if err := child.HandleTick(t); err != nil {
			return err
		}
	}
	return nil
}

// HandleTock recurses into children in registration order, mirroring
// HandleTick.
func (b *Base) HandleTock(t int) error {
	for _, child := range b.children {
		if err := child.HandleTock(t); err != nil {
			return err
		}
	}
	return nil
}

// ReceiveMaterial is unsupported for Region/Institution/Market: only a
// Facility holds physical inventory.
func (b *Base) ReceiveMaterial(tx *txn.Transaction, manifest []*resource.Resource) error {
	return ErrUnsupportedOperation
}

// SendMaterial is unsupported for Region/Institution/Market.
func (b *Base) SendMaterial(tx *txn.Transaction, requester Capability) error {
	return ErrUnsupportedOperation
}

// Receive is the default self-handler: forward UP toward the parent (or
// the commodity's market, if this agent has none) and pass DOWN messages
// through unchanged, exactly per spec.md §4.1's routing protocol for
// intermediate agents. Facility and Market override this with their own
// terminal behavior.
func (b *Base) Receive(msg *routing.Message) error {
	switch msg.Direction() {
	case routing.Up:
		return b.forwardUp(msg)
	case routing.Down:
		return msg.SendOn(b.Resolver())
	default:
		return nil
	}
}

func (b *Base) forwardUp(msg *routing.Message) error {
	var nextDest registry.AgentID
	if b.parent != nil {
		nextDest = b.parent.ID()
	} else {
		commodity, err := b.ctx.Commodity(msg.Transaction().Commodity())
		if err != nil {
			return err
		}
		nextDest = commodity.MarketID
	}
	if err := msg.SetNextDest(nextDest); err != nil {
		return err
	}
	return msg.SendOn(b.Resolver())
}
