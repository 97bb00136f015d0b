package clearing

import (
	"sort"

	"github.com/cyclus-go/cyclus/internal/domain/routing"
)

// entry is a per-period bid book row: the UP message that proposed it
// and the magnitude still unmatched.
type entry struct {
	msg       *routing.Message
	remaining float64
}

// ClearingBook holds one commodity's per-period offer and request books,
// as (message, remaining_amount) pairs, per spec.md §4.2.
type ClearingBook struct {
	offers   []*entry
	requests []*entry
	rollover map[string]int // message id -> rollover count, for the supplemented bookkeeping
}

func newClearingBook() *ClearingBook {
	return &ClearingBook{rollover: make(map[string]int)}
}

// AddOffer enqueues an UP offer message with its full magnitude
// unmatched.
func (b *ClearingBook) AddOffer(msg *routing.Message, amount float64) {
	b.offers = append(b.offers, &entry{msg: msg, remaining: amount})
}

// AddRequest enqueues an UP request message with its full magnitude
// unmatched.
func (b *ClearingBook) AddRequest(msg *routing.Message, amount float64) {
	b.requests = append(b.requests, &entry{msg: msg, remaining: amount})
}

// sortForMatching orders offers ascending by price and requests
// descending by price (willingness to pay), ties broken by originator
// agent id ascending for deterministic matching.
func (b *ClearingBook) sortForMatching() {
	sort.SliceStable(b.offers, func(i, j int) bool {
		pi, pj := b.offers[i].msg.Transaction().UnitPrice(), b.offers[j].msg.Transaction().UnitPrice()
		if pi != pj {
			return pi < pj
		}
		return b.offers[i].msg.Originator() < b.offers[j].msg.Originator()
	})
	sort.SliceStable(b.requests, func(i, j int) bool {
		pi, pj := b.requests[i].msg.Transaction().UnitPrice(), b.requests[j].msg.Transaction().UnitPrice()
		if pi != pj {
			return pi > pj
		}
		return b.requests[i].msg.Originator() < b.requests[j].msg.Originator()
	})
}

// rollForward keeps entries whose remaining magnitude is positive and
// still meets their transaction's min_amount, dropping the rest, and
// returns the dropped entries. Each kept entry's rollover count (keyed
// by message id) goes up by one, the supplemented bookkeeping
// SPEC_FULL.md adds on top of spec.md's bare "rolled forward" language;
// period is not used. resolveCommodity has already sent an Unfilled
// notice for every unmatched entry before calling this, and ignores the
// returned slice.
func (b *ClearingBook) rollForward(side *[]*entry, period int) (dropped []*entry) {
	kept := (*side)[:0]
	for _, e := range *side {
		if e.remaining >= e.msg.Transaction().MinAmount() && e.remaining > 0 {
			key := e.msg.ID().String()
			b.rollover[key]++
			kept = append(kept, e)
		} else {
			dropped = append(dropped, e)
		}
	}
	*side = kept
	return dropped
}

// RolloverCount reports how many periods the message identified by id
// has survived in this book without fully clearing.
func (b *ClearingBook) RolloverCount(id string) int {
	return b.rollover[id]
}
