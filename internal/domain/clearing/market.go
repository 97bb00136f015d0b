// Package clearing implements the Market agent variant: a per-commodity
// offer/request book and the sort-and-greedily-match clearing algorithm
// described in spec.md §4.2. Matching is grounded on the "sort, pair
// greedily, tie-break by stable id" shape the teacher's own arbitrage
// analyzer uses for priced opportunities, reused here for offer/request
// crossing.
package clearing

import (
	"fmt"
	"sort"

	"github.com/cyclus-go/cyclus/internal/adapters/metrics"
	"github.com/cyclus-go/cyclus/internal/domain/agent"
	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/routing"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
	"github.com/cyclus-go/cyclus/pkg/mathutil"
)

// SettlementObserver is notified of every match a Market clears, so an
// application-layer audit ledger can record it without the domain
// package depending on persistence. Called once per matched pair, after
// both DOWN clones have been sent.
type SettlementObserver func(tx *txn.Transaction, period int)

// Market is an agent that receives UP messages and, once asked to
// Resolve, matches its offer and request books per commodity and pushes
// cleared (or Unfilled) results back DOWN.
type Market struct {
	agent.Base

	books     map[registry.CommodityID]*ClearingBook
	onSettled SettlementObserver
}

// NewMarket constructs and registers a Market with ctx. Markets sit
// outside the Region/Institution/Facility tree; they have no parent and
// are reached by commodity lookup instead.
func NewMarket(ctx *registry.SimulationContext, name string) (*Market, error) {
	base, err := agent.NewBase(ctx, agent.KindMarket, name)
	if err != nil {
		return nil, err
	}
	m := &Market{Base: base, books: make(map[registry.CommodityID]*ClearingBook)}
	if err := ctx.RegisterAgent(m); err != nil {
		return nil, err
	}
	return m, nil
}

// SetSettlementObserver registers obs to be called once per cleared
// match. Passing nil disables notification.
func (m *Market) SetSettlementObserver(obs SettlementObserver) {
	m.onSettled = obs
}

// commodityLabel resolves id to its registered name for use as a metric
// label, falling back to the raw id if the registry lookup fails (it
// never should, since a book only exists for a commodity that already
// routed a message through Receive).
func commodityLabel(ctx *registry.SimulationContext, id registry.CommodityID) string {
	commodity, err := ctx.Commodity(id)
	if err != nil {
		return fmt.Sprintf("commodity-%d", id)
	}
	return commodity.Name
}

func (m *Market) bookFor(id registry.CommodityID) *ClearingBook {
	b, ok := m.books[id]
	if !ok {
		b = newClearingBook()
		m.books[id] = b
	}
	return b
}

// Receive collects an UP message into the appropriate per-commodity
// book. A request with amount 0 is silently dropped, per spec.md §8's
// boundary behavior. DOWN messages are never delivered to a Market: the
// market itself originates every DOWN leg from Resolve.
func (m *Market) Receive(msg *routing.Message) error {
	if msg.Direction() != routing.Up {
		return nil
	}
	tx := msg.Transaction()
	if tx.Amount() == 0 {
		return nil
	}
	book := m.bookFor(tx.Commodity())
	if tx.IsOffer() {
		book.AddOffer(msg, tx.Amount())
	} else {
		book.AddRequest(msg, -tx.Amount())
	}
	return nil
}

// Resolve clears every commodity this market has a book for, in
// ascending commodity-id order, so clearing within one market is
// deterministic. The order in which different markets resolve is the
// order of the market list the Timekeeper is given; scenario.Build
// fills that list from a map, so it is not fixed between runs.
func (m *Market) Resolve(period int) error {
	ids := make([]registry.CommodityID, 0, len(m.books))
	for id := range m.books {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if err := m.resolveCommodity(id, m.books[id], period); err != nil {
			return err
		}
	}
	return nil
}

func (m *Market) resolveCommodity(id registry.CommodityID, book *ClearingBook, period int) error {
	book.sortForMatching()
	resolver := m.Resolver()

	commodityName := commodityLabel(m.Context(), id)

	i, j := 0, 0
	for i < len(book.offers) && j < len(book.requests) {
		offer := book.offers[i]
		request := book.requests[j]

		offerPrice := offer.msg.Transaction().UnitPrice()
		requestPrice := request.msg.Transaction().UnitPrice()
		if !mathutil.GreaterOrEqual(requestPrice, offerPrice, mathutil.DefaultEpsilon) {
			break
		}

		matched := mathutil.MinFloat(offer.remaining, request.remaining)
		supplierID := offer.msg.Originator()
		requesterID := request.msg.Originator()

		if err := sendCleared(request.msg, supplierID, requesterID, matched, offerPrice, resolver); err != nil {
			return err
		}
		if err := sendCleared(offer.msg, supplierID, requesterID, matched, offerPrice, resolver); err != nil {
			return err
		}
		metrics.RecordMatch(commodityName)
		metrics.RecordResourceTransferred(commodityName, matched)
		if m.onSettled != nil {
			settled, err := txn.NewTransaction(offer.msg.Transaction().Commodity(), matched, 0, offerPrice)
			if err == nil {
				settled = settled.WithEndpoints(supplierID, requesterID)
				m.onSettled(settled, period)
			}
		}

		offer.remaining -= matched
		request.remaining -= matched
		if mathutil.ApproxEqual(offer.remaining, 0, mathutil.DefaultEpsilon) {
			i++
		}
		if mathutil.ApproxEqual(request.remaining, 0, mathutil.DefaultEpsilon) {
			j++
		}
	}

	unmatchedOffers := book.offers[i:]
	unmatchedRequests := book.requests[j:]

	for _, e := range unmatchedOffers {
		if err := notifyUnfilled(e, resolver); err != nil {
			return err
		}
	}
	for _, e := range unmatchedRequests {
		if err := notifyUnfilled(e, resolver); err != nil {
			return err
		}
	}

	book.offers = unmatchedOffers
	book.requests = unmatchedRequests

	book.rollForward(&book.offers, period)
	book.rollForward(&book.requests, period)
	return nil
}

// sendCleared clones original, writes the match result into its
// transaction, flips it DOWN, and retraces it back through the path
// stack it already built on the way up.
func sendCleared(original *routing.Message, supplier, requester registry.AgentID, amount, price float64, resolver routing.Resolver) error {
	clone := original.Clone()
	result := clone.Transaction().WithEndpoints(supplier, requester).WithAmount(signedLike(original, amount)).WithUnitPrice(price)
	clone.SetTransaction(result)
	if err := clone.ReverseDirection(); err != nil {
		return err
	}
	return clone.SendOn(resolver)
}

// signedLike reattaches original's sign convention (positive for an
// offer, negative for a request) to a matched magnitude, so the cleared
// transaction a side receives DOWN still reads as that side's own
// offer/request, just resolved to the matched quantity.
func signedLike(original *routing.Message, magnitude float64) float64 {
	if original.Transaction().IsOffer() {
		return magnitude
	}
	return -magnitude
}

// notifyUnfilled sends a zero-amount DOWN clone of e's message reporting
// that it did not fully clear this period, per spec.md §8 scenarios 2
// and 3. The entry's own remaining/min_amount bookkeeping (rollForward)
// separately decides whether it stays queued for next period.
func notifyUnfilled(e *entry, resolver routing.Resolver) error {
	clone := e.msg.Clone()
	zero := clone.Transaction().WithAmount(0)
	clone.SetTransaction(zero)
	if err := clone.ReverseDirection(); err != nil {
		return err
	}
	return clone.SendOn(resolver)
}
