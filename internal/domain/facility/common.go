// Package facility implements the Facility agent variant described in
// spec.md §4.4: RecipeReactor, the reference tick/tock contract every
// facility kind must honor, plus two trivial kinds (SourceFacility,
// SinkFacility) supplemented so the concrete scenarios in spec.md §8 are
// runnable end-to-end without a hand-rolled test double standing in for
// the rest of a fuel cycle.
package facility

import (
	"github.com/cyclus-go/cyclus/internal/domain/agent"
	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/resource"
	"github.com/cyclus-go/cyclus/internal/domain/routing"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
)

// common holds the state and behavior every facility kind shares: the
// queue of DOWN messages in which it was named supplier, and the
// dispatch that decides whether a returning message is this facility
// acting as supplier (enqueue the order) or as requester (already
// fulfilled out of band via ReceiveMaterial, nothing further to do), or
// a zero-amount Unfilled notice (nothing matched, nothing to do).
type common struct {
	agent.Base
	ordersWaiting []*routing.Message
}

func newCommon(ctx *registry.SimulationContext, name string, parent agent.Capability) (common, error) {
	base, err := agent.NewBase(ctx, agent.KindFacility, name)
	if err != nil {
		return common{}, err
	}
	base.SetParent(parent)
	return common{Base: base}, nil
}

// Receive implements the facility's self-handler: UP messages are
// unexpected (facilities only originate them), DOWN/DONE messages are
// inspected per spec.md §4.4's receive_message contract.
func (c *common) Receive(msg *routing.Message) error {
	if msg.Direction() == routing.Up {
		return ErrUnexpectedDirection
	}
	tx := msg.Transaction()
	switch {
	case tx.Supplier() == c.ID():
		c.ordersWaiting = append(c.ordersWaiting, msg)
		return nil
	case tx.Requester() == c.ID():
		return nil
	case tx.Amount() == 0:
		// Unfilled notice from the market: it carries no endpoints and
		// no order to queue.
		return nil
	default:
		return ErrNotSupplier
	}
}

// sendUp wraps amount into a fresh Transaction and sends it UP to the
// facility's parent, the shape every HandleTick emission in this package
// follows (request or offer alike).
func (c *common) sendUp(commodity registry.CommodityID, amount, minAmount, unitPrice float64) error {
	tx, err := txn.NewTransaction(commodity, amount, minAmount, unitPrice)
	if err != nil {
		return err
	}
	msg := routing.NewMessage(c.ID(), tx)
	if err := msg.SetNextDest(c.Parent().ID()); err != nil {
		return err
	}
	return msg.SendOn(c.Resolver())
}

// fulfillOrders drains ordersWaiting, calling send against each using
// the caller-supplied send_material implementation (RecipeReactor and
// SourceFacility each ship differently, SinkFacility never supplies).
func (c *common) fulfillOrders(send func(tx *txn.Transaction, requester agent.Capability) error) error {
	orders := c.ordersWaiting
	c.ordersWaiting = nil
	for _, msg := range orders {
		tx := msg.Transaction()
		requesterAgent, err := c.Context().Agent(tx.Requester())
		if err != nil {
			return err
		}
		requester, ok := requesterAgent.(agent.Capability)
		if !ok {
			return ErrNotSupplier
		}
		if err := send(tx, requester); err != nil {
			return err
		}
	}
	return nil
}

// takeManifest drains queue (a FIFO of Resources) by the same
// split-or-take loop RecipeReactor.SendMaterial and the processing step
// of HandleTock both use: accumulate whole Resources until target is met
// or the queue runs out, extracting a partial Resource off the front
// when taking it whole would overshoot.
func takeManifest(queue *[]*resource.Resource, target float64) ([]*resource.Resource, error) {
	var manifest []*resource.Resource
	var accumulated float64
	for accumulated < target && len(*queue) > 0 {
		front := (*queue)[0]
		need := target - accumulated
		if front.TotalQuantity() <= need {
			manifest = append(manifest, front)
			accumulated += front.TotalQuantity()
			*queue = (*queue)[1:]
			continue
		}
		part, err := front.Extract(need)
		if err != nil {
			return nil, err
		}
		manifest = append(manifest, part)
		accumulated += part.TotalQuantity()
	}
	return manifest, nil
}

func sumQuantity(resources []*resource.Resource) float64 {
	var total float64
	for _, r := range resources {
		total += r.TotalQuantity()
	}
	return total
}
