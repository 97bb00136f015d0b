package facility

import (
	"github.com/cyclus-go/cyclus/internal/domain/agent"
	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/resource"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
	"github.com/cyclus-go/cyclus/pkg/mathutil"
)

// RecipeReactor is the reference facility implementation from spec.md
// §4.4: it consumes in_commodity from its stocks queue, processes it
// into inventory up to monthly_capacity per tock, and ships inventory
// against settled orders.
type RecipeReactor struct {
	common

	inCommodity     registry.CommodityID
	outCommodity    registry.CommodityID
	inventoryCap    float64
	monthlyCapacity float64

	stocks    []*resource.Resource
	inventory []*resource.Resource
}

// NewRecipeReactor constructs and registers a RecipeReactor under
// parent.
func NewRecipeReactor(
	ctx *registry.SimulationContext,
	name string,
	parent agent.Capability,
	inCommodity, outCommodity registry.CommodityID,
	inventoryCap, monthlyCapacity float64,
) (*RecipeReactor, error) {
	c, err := newCommon(ctx, name, parent)
	if err != nil {
		return nil, err
	}
	r := &RecipeReactor{
		common:          c,
		inCommodity:     inCommodity,
		outCommodity:    outCommodity,
		inventoryCap:    inventoryCap,
		monthlyCapacity: monthlyCapacity,
	}
	if err := ctx.RegisterAgent(r); err != nil {
		return nil, err
	}
	parent.AddChild(r)
	return r, nil
}

// HandleTick emits a request for in_commodity (if there is free space to
// fill) and always emits an offer of whatever out_commodity will be
// available to ship, per spec.md §4.4.
func (r *RecipeReactor) HandleTick(t int) error {
	freeSpace := r.inventoryCap - sumQuantity(r.inventory) - sumQuantity(r.stocks)
	if freeSpace > 0 {
		requestAmount := mathutil.MinFloat(freeSpace, r.monthlyCapacity-sumQuantity(r.stocks))
		if requestAmount > 0 {
			if err := r.sendUp(r.inCommodity, -requestAmount, 0, 0); err != nil {
				return err
			}
		}
	}

	offerAmount := mathutil.MinFloat(sumQuantity(r.inventory)+r.monthlyCapacity, r.inventoryCap)
	if offerAmount > 0 {
		if err := r.sendUp(r.outCommodity, offerAmount, 0, 0); err != nil {
			return err
		}
	}
	return nil
}

// HandleTock processes queued stocks into inventory up to
// monthly_capacity, then fulfills every settled order waiting on this
// reactor as supplier.
func (r *RecipeReactor) HandleTock(t int) error {
	var processed float64
	for processed < r.monthlyCapacity && len(r.stocks) > 0 {
		front := r.stocks[0]
		remaining := r.monthlyCapacity - processed
		if front.TotalQuantity() <= remaining {
			r.inventory = append(r.inventory, front)
			processed += front.TotalQuantity()
			r.stocks = r.stocks[1:]
			continue
		}
		part, err := front.Extract(remaining)
		if err != nil {
			return err
		}
		r.inventory = append(r.inventory, part)
		processed += part.TotalQuantity()
	}

	return r.fulfillOrders(r.SendMaterial)
}

// SendMaterial ships inventory against tx to requester, per spec.md
// §4.4: the manifest is built by the same split-or-take loop used to
// process stocks, until accumulated quantity meets tx.Amount() or
// inventory runs out. Partial fulfillment is permitted and reported, not
// an error.
func (r *RecipeReactor) SendMaterial(tx *txn.Transaction, requester agent.Capability) error {
	if tx.Commodity() != r.outCommodity {
		return ErrCommodityMismatch
	}
	target := tx.Amount()
	if target < 0 {
		target = -target
	}
	manifest, err := takeManifest(&r.inventory, target)
	if err != nil {
		return err
	}
	return requester.ReceiveMaterial(tx, manifest)
}

// ReceiveMaterial pushes each delivered Resource onto stocks in arrival
// order.
func (r *RecipeReactor) ReceiveMaterial(tx *txn.Transaction, manifest []*resource.Resource) error {
	r.stocks = append(r.stocks, manifest...)
	return nil
}

// Inventory returns a defensive copy of the reactor's processed-output
// queue, for tests and audit reporting.
func (r *RecipeReactor) Inventory() []*resource.Resource {
	out := make([]*resource.Resource, len(r.inventory))
	copy(out, r.inventory)
	return out
}

// Stocks returns a defensive copy of the reactor's raw-input queue.
func (r *RecipeReactor) Stocks() []*resource.Resource {
	out := make([]*resource.Resource, len(r.stocks))
	copy(out, r.stocks)
	return out
}
