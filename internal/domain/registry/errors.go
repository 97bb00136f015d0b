package registry

import "fmt"

// ErrRegistryFrozen is returned when a caller attempts to register an
// agent or commodity after the simulation context has been frozen
// (i.e. after tick 0 has begun). Registration is only legal during the
// scenario-load "init" phase.
var ErrRegistryFrozen = fmt.Errorf("registry: frozen, late registration rejected")

// ErrUnknownAgent is returned when an AgentID does not resolve to a
// registered agent.
var ErrUnknownAgent = fmt.Errorf("registry: unknown agent id")

// ErrUnknownCommodity is returned when a CommodityID does not resolve to
// a registered commodity.
var ErrUnknownCommodity = fmt.Errorf("registry: unknown commodity id")

// ErrDuplicateCommodity is returned when a commodity name is registered
// twice.
var ErrDuplicateCommodity = fmt.Errorf("registry: commodity already registered")
