package agent

import (
	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/resource"
	"github.com/cyclus-go/cyclus/internal/domain/routing"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
)

// Capability is the common trait every Agent variant implements: a
// stable identity, hierarchy navigation, routing participation, and the
// tick/tock/material hooks. Region, Institution, and Market get working
// defaults from Base; Facility (internal/domain/facility) overrides
// HandleTick, HandleTock, SendMaterial, and ReceiveMaterial with its
// real behavior, and Market (internal/domain/clearing) overrides Receive
// to collect bids instead of forwarding them.
type Capability interface {
	registry.Agent
	routing.Receiver

	Kind() Kind
	Parent() Capability
	Children() []Capability
	AddChild(child Capability)

	HandleTick(t int) error
	HandleTock(t int) error

	// ReceiveMaterial accepts a physically delivered manifest against an
	// already-settled transaction, pushing each Resource into whatever
	// inventory the receiving kind maintains.
	ReceiveMaterial(tx *txn.Transaction, manifest []*resource.Resource) error

	// SendMaterial ships material against a settled transaction to the
	// given requester, by calling requester.ReceiveMaterial.
	SendMaterial(tx *txn.Transaction, requester Capability) error
}
