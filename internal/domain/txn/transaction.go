// Package txn implements the Transaction value record: an intended (and,
// once settled, fulfilled) exchange of a commodity between two agents.
// Transaction is immutable by convention — every mutator returns a copy
// carrying the applied change — mirroring the teacher's ledger.Transaction
// value-object pattern: a validating constructor, private fields, getters
// only, and defensive copies of anything reference-typed (here, the
// metadata map and the optional Resource payload).
package txn

import (
	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/resource"
)

// Transaction describes an intended exchange: commodity, signed amount
// (negative requesting, positive offering), the smallest acceptable
// magnitude, a unit price, and the two endpoints filled in by market
// clearing. An optional Resource payload can be attached with
// WithPayload once both endpoints are set; the market and the facilities
// never attach one, since material moves through direct ReceiveMaterial
// calls at tock.
type Transaction struct {
	id         TransactionID
	commodity  registry.CommodityID
	amount     float64
	minAmount  float64
	unitPrice  float64
	payload    *resource.Resource
	supplier   registry.AgentID
	requester  registry.AgentID
	metadata   map[string]any
}

// NewTransaction validates and constructs a fresh, unsettled Transaction:
// |amount| >= minAmount >= 0. A zero amount is rejected only when
// minAmount is non-zero; (0, 0) is accepted. The market's Unfilled
// notices are built with WithAmount(0), not through this constructor.
func NewTransaction(commodity registry.CommodityID, amount, minAmount, unitPrice float64) (*Transaction, error) {
	if minAmount < 0 {
		return nil, ErrNegativeMinAmount
	}
	if amount == 0 && minAmount != 0 {
		return nil, ErrZeroAmount
	}
	absAmount := amount
	if absAmount < 0 {
		absAmount = -absAmount
	}
	if absAmount < minAmount {
		return nil, ErrBelowMinAmount
	}
	return &Transaction{
		id:        NewTransactionID(),
		commodity: commodity,
		amount:    amount,
		minAmount: minAmount,
		unitPrice: unitPrice,
		metadata:  make(map[string]any),
	}, nil
}

// ReconstructTransaction rebuilds a Transaction from already-validated
// fields, used by Message.Clone when duplicating a transaction
// in-flight. It performs no invariant checks — the caller is expected to
// have produced these fields from a previously-valid Transaction.
func ReconstructTransaction(
	id TransactionID,
	commodity registry.CommodityID,
	amount, minAmount, unitPrice float64,
	payload *resource.Resource,
	supplier, requester registry.AgentID,
	metadata map[string]any,
) *Transaction {
	md := make(map[string]any, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}
	return &Transaction{
		id:        id,
		commodity: commodity,
		amount:    amount,
		minAmount: minAmount,
		unitPrice: unitPrice,
		payload:   payload,
		supplier:  supplier,
		requester: requester,
		metadata:  md,
	}
}

func (t *Transaction) ID() TransactionID              { return t.id }
func (t *Transaction) Commodity() registry.CommodityID { return t.commodity }
func (t *Transaction) Amount() float64                 { return t.amount }
func (t *Transaction) MinAmount() float64              { return t.minAmount }
func (t *Transaction) UnitPrice() float64              { return t.unitPrice }
func (t *Transaction) Supplier() registry.AgentID      { return t.supplier }
func (t *Transaction) Requester() registry.AgentID     { return t.requester }

// IsOffer reports whether this transaction advertises supply (positive
// amount).
func (t *Transaction) IsOffer() bool { return t.amount > 0 }

// IsRequest reports whether this transaction advertises demand (negative
// amount).
func (t *Transaction) IsRequest() bool { return t.amount < 0 }

// Payload returns the Resource attached with WithPayload, or nil if none
// has been attached. Messages routed by the market carry none.
func (t *Transaction) Payload() *resource.Resource { return t.payload }

// Metadata returns a defensive copy of the operation-specific annotation
// map set through WithMetadata. Market clearing writes nothing into it.
func (t *Transaction) Metadata() map[string]any {
	out := make(map[string]any, len(t.metadata))
	for k, v := range t.metadata {
		out[k] = v
	}
	return out
}

// clone produces a shallow copy of the receiver with its own metadata
// map, used as the basis for every With* mutator below.
func (t *Transaction) clone() *Transaction {
	md := make(map[string]any, len(t.metadata))
	for k, v := range t.metadata {
		md[k] = v
	}
	return &Transaction{
		id:        t.id,
		commodity: t.commodity,
		amount:    t.amount,
		minAmount: t.minAmount,
		unitPrice: t.unitPrice,
		payload:   t.payload,
		supplier:  t.supplier,
		requester: t.requester,
		metadata:  md,
	}
}

// WithEndpoints returns a copy with supplier/requester assigned, as the
// market does when writing a match's result into a cloned request or
// offer message.
func (t *Transaction) WithEndpoints(supplier, requester registry.AgentID) *Transaction {
	n := t.clone()
	n.supplier = supplier
	n.requester = requester
	return n
}

// WithAmount returns a copy with a new signed amount (used when writing
// the matched quantity into a clearing result).
func (t *Transaction) WithAmount(amount float64) *Transaction {
	n := t.clone()
	n.amount = amount
	return n
}

// WithUnitPrice returns a copy carrying the clearing price (the offer's
// price, per spec.md §4.2 point 2).
func (t *Transaction) WithUnitPrice(price float64) *Transaction {
	n := t.clone()
	n.unitPrice = price
	return n
}

// WithPayload returns a copy carrying the settled Resource, legal only
// once both endpoints are set.
func (t *Transaction) WithPayload(payload *resource.Resource) (*Transaction, error) {
	if t.supplier == 0 || t.requester == 0 {
		return nil, ErrEndpointsNotSet
	}
	n := t.clone()
	n.payload = payload
	return n, nil
}

// WithMetadata returns a copy with key set to value in its metadata map.
func (t *Transaction) WithMetadata(key string, value any) *Transaction {
	n := t.clone()
	n.metadata[key] = value
	return n
}
