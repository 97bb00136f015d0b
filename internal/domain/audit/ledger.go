// Package audit defines the settlement/audit ledger: a durable record of
// every DOWN-leg transaction that reached DONE, queryable by commodity,
// period, or agent. This is supplemented scope relative to the
// distilled spec.md — the core's own Non-goal is persistence of
// simulation *state* across runs, which this does not touch: a
// settlement once written is never read back into the running
// simulation, only reported on.
package audit

import (
	"context"
	"time"

	"github.com/cyclus-go/cyclus/internal/domain/registry"
	"github.com/cyclus-go/cyclus/internal/domain/txn"
)

// Settlement is one completed transfer, as recorded for reporting.
type Settlement struct {
	TransactionID txn.TransactionID
	Period        int
	Commodity     registry.CommodityID
	CommodityName string
	Amount        float64
	UnitPrice     float64
	Supplier      registry.AgentID
	Requester     registry.AgentID
	Metadata      map[string]any
	SettledAt     time.Time
}

// Repository persists and queries settlements. The default adapter is
// gorm-backed (internal/adapters/persistence); an in-memory
// implementation exists for tests that don't need a real database.
type Repository interface {
	Record(ctx context.Context, s Settlement) error
	GetSettlements(ctx context.Context, commodity registry.CommodityID) ([]Settlement, error)
	GetTransfers(ctx context.Context, agentID registry.AgentID) ([]Settlement, error)
	GetConservationReport(ctx context.Context, period int) (totalMoved float64, err error)
}
