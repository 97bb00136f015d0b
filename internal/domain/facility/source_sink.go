package facility

import (
	"github.com/cyclus-go/cyclus/internal/domain/agent"
	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/resource"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
)

// SourceFacility produces a fixed quantity of out_commodity out of
// nothing every tick and offers the whole inventory up for sale. It has
// no input queue: HandleTick both manufactures the Resource and emits
// the offer in the same step.
type SourceFacility struct {
	common

	outCommodity  registry.CommodityID
	unitTag       string
	perTickOutput float64

	inventory []*resource.Resource
}

// NewSourceFacility constructs and registers a SourceFacility under
// parent.
func NewSourceFacility(
	ctx *registry.SimulationContext,
	name string,
	parent agent.Capability,
	outCommodity registry.CommodityID,
	unitTag string,
	perTickOutput float64,
) (*SourceFacility, error) {
	c, err := newCommon(ctx, name, parent)
	if err != nil {
		return nil, err
	}
	s := &SourceFacility{common: c, outCommodity: outCommodity, unitTag: unitTag, perTickOutput: perTickOutput}
	if err := ctx.RegisterAgent(s); err != nil {
		return nil, err
	}
	parent.AddChild(s)
	return s, nil
}

// HandleTick manufactures perTickOutput of out_commodity and offers the
// accumulated inventory UP to the parent.
func (s *SourceFacility) HandleTick(t int) error {
	if s.perTickOutput > 0 {
		s.inventory = append(s.inventory, resource.NewScalar(s.unitTag, resource.MassBasis, s.perTickOutput))
	}
	offerAmount := sumQuantity(s.inventory)
	if offerAmount <= 0 {
		return nil
	}
	return s.sendUp(s.outCommodity, offerAmount, 0, 0)
}

// HandleTock fulfills settled orders against this tick's production.
func (s *SourceFacility) HandleTock(t int) error {
	return s.fulfillOrders(s.SendMaterial)
}

// SendMaterial ships inventory against tx, identical in shape to
// RecipeReactor.SendMaterial.
func (s *SourceFacility) SendMaterial(tx *txn.Transaction, requester agent.Capability) error {
	if tx.Commodity() != s.outCommodity {
		return ErrCommodityMismatch
	}
	target := tx.Amount()
	if target < 0 {
		target = -target
	}
	manifest, err := takeManifest(&s.inventory, target)
	if err != nil {
		return err
	}
	return requester.ReceiveMaterial(tx, manifest)
}

// ReceiveMaterial is unsupported: a source never accepts deliveries.
func (s *SourceFacility) ReceiveMaterial(tx *txn.Transaction, manifest []*resource.Resource) error {
	return agent.ErrUnsupportedOperation
}

// Inventory returns a defensive copy of the source's unsold production,
// for tests and audit reporting.
func (s *SourceFacility) Inventory() []*resource.Resource {
	out := make([]*resource.Resource, len(s.inventory))
	copy(out, s.inventory)
	return out
}

// SinkFacility consumes in_commodity every tick and discards it
// unconditionally: its capacity is unbounded, so ReceiveMaterial never
// declines a delivery.
type SinkFacility struct {
	common

	inCommodity   registry.CommodityID
	perTickDemand float64

	totalConsumed float64
}

// NewSinkFacility constructs and registers a SinkFacility under parent.
func NewSinkFacility(
	ctx *registry.SimulationContext,
	name string,
	parent agent.Capability,
	inCommodity registry.CommodityID,
	perTickDemand float64,
) (*SinkFacility, error) {
	c, err := newCommon(ctx, name, parent)
	if err != nil {
		return nil, err
	}
	sink := &SinkFacility{common: c, inCommodity: inCommodity, perTickDemand: perTickDemand}
	if err := ctx.RegisterAgent(sink); err != nil {
		return nil, err
	}
	parent.AddChild(sink)
	return sink, nil
}

// HandleTick requests perTickDemand of in_commodity UP to the parent.
func (s *SinkFacility) HandleTick(t int) error {
	if s.perTickDemand <= 0 {
		return nil
	}
	return s.sendUp(s.inCommodity, -s.perTickDemand, 0, 0)
}

// HandleTock has nothing to process: a sink ships nothing, and whatever
// it receives is discarded immediately by ReceiveMaterial.
func (s *SinkFacility) HandleTock(t int) error {
	return nil
}

// ReceiveMaterial discards the manifest, crediting its total quantity to
// totalConsumed for reporting.
func (s *SinkFacility) ReceiveMaterial(tx *txn.Transaction, manifest []*resource.Resource) error {
	s.totalConsumed += sumQuantity(manifest)
	return nil
}

// SendMaterial is unsupported: a sink never supplies.
func (s *SinkFacility) SendMaterial(tx *txn.Transaction, requester agent.Capability) error {
	return agent.ErrUnsupportedOperation
}

// TotalConsumed reports the cumulative quantity discarded so far.
func (s *SinkFacility) TotalConsumed() float64 { return s.totalConsumed }
