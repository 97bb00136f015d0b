// Package registry implements the process-wide commodity and agent
// registries described in spec.md §5. Both are exposed through a single
// SimulationContext value constructed once at scenario load and frozen
// by its owner (the `run` command) before tick 0 — late registration is a fatal
// RegistryFrozen error, never a silent no-op.
//
// Agents are addressed by a stable AgentID rather than by pointer, per
// the arena+id redesign: messages and transactions carry ids, and the
// registry is the only place an id resolves back to a live Agent.
package registry

import "sync"

// AgentID is a stable, process-unique identifier for an Agent. It is
// comparable and zero-valued-meaningful (AgentID(0) never denotes a real
// agent; NextAgentID starts numbering at 1).
type AgentID int64

// CommodityID is a stable, process-unique identifier for a Commodity.
type CommodityID int64

// Agent is the minimal capability a registry needs from an agent: a
// stable identity. The concrete agent hierarchy (internal/domain/agent)
// implements this alongside its richer Capability interface.
type Agent interface {
	ID() AgentID
	Name() string
}

// Commodity is an identifier plus a reference to exactly one Market that
// clears it. Registered once at scenario load; immutable for the run.
type Commodity struct {
	ID       CommodityID
	Name     string
	MarketID AgentID
}

// SimulationContext holds the process-wide agent and commodity
// registries. It is written only during scenario load; after Freeze it
// rejects further registration with ErrRegistryFrozen.
type SimulationContext struct {
	mu sync.Mutex

	frozen bool

	nextAgentID     AgentID
	nextCommodityID CommodityID

	agents             map[AgentID]Agent
	commodities        map[CommodityID]Commodity
	commodityNameIndex map[string]CommodityID
}

// NewSimulationContext constructs an empty, unfrozen registry pair.
func NewSimulationContext() *SimulationContext {
	return &SimulationContext{
		agents:             make(map[AgentID]Agent),
		commodities:        make(map[CommodityID]Commodity),
		commodityNameIndex: make(map[string]CommodityID),
	}
}

// NextAgentID hands out the next unused AgentID. Callers construct their
// agent with the returned id and then call RegisterAgent.
func (c *SimulationContext) NextAgentID() AgentID {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextAgentID++
	return c.nextAgentID
}

// RegisterAgent stores a, keyed by a.ID(). Fails with ErrRegistryFrozen
// once the context has been frozen.
func (c *SimulationContext) RegisterAgent(a Agent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return ErrRegistryFrozen
	}
	c.agents[a.ID()] = a
	return nil
}

// Agent resolves id to its registered Agent.
func (c *SimulationContext) Agent(id AgentID) (Agent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.agents[id]
	if !ok {
		return nil, ErrUnknownAgent
	}
	return a, nil
}

// RegisterCommodity assigns a fresh CommodityID to name, routed to
// marketID, and returns it. Fails with ErrRegistryFrozen once frozen, or
// ErrDuplicateCommodity if name is already registered.
func (c *SimulationContext) RegisterCommodity(name string, marketID AgentID) (CommodityID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return 0, ErrRegistryFrozen
	}
	if _, exists := c.commodityNameIndex[name]; exists {
		return 0, ErrDuplicateCommodity
	}
	c.nextCommodityID++
	id := c.nextCommodityID
	c.commodities[id] = Commodity{ID: id, Name: name, MarketID: marketID}
	c.commodityNameIndex[name] = id
	return id, nil
}

// Commodity resolves id to its registered Commodity.
func (c *SimulationContext) Commodity(id CommodityID) (Commodity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	commodity, ok := c.commodities[id]
	if !ok {
		return Commodity{}, ErrUnknownCommodity
	}
	return commodity, nil
}

// CommodityByName resolves a commodity by its registered name.
func (c *SimulationContext) CommodityByName(name string) (Commodity, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.commodityNameIndex[name]
	if !ok {
		return Commodity{}, ErrUnknownCommodity
	}
	return c.commodities[id], nil
}

// MarketFor returns the AgentID of the market that clears commodityID.
func (c *SimulationContext) MarketFor(commodityID CommodityID) (AgentID, error) {
	commodity, err := c.Commodity(commodityID)
	if err != nil {
		return 0, err
	}
	return commodity.MarketID, nil
}

// Freeze closes the registries to further registration. Called once by
// the owner of the context after the scenario is built and before the
// Timekeeper runs tick 0; the Timekeeper itself does not call it.
func (c *SimulationContext) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frozen = true
}

// Frozen reports whether Freeze has been called.
func (c *SimulationContext) Frozen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frozen
}
