package audit

import (
	"context"
	"sync"

	"github.com/cyclus-go/cyclus/internal/domain/registry"
)

// MemoryRepository is an in-memory Repository, for tests that exercise
// the audit command/query handlers without standing up a real database.
type MemoryRepository struct {
	mu         sync.Mutex
	settlements []Settlement
}

// NewMemoryRepository returns an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Record(ctx context.Context, s Settlement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settlements = append(r.settlements, s)
	return nil
}

func (r *MemoryRepository) GetSettlements(ctx context.Context, commodity registry.CommodityID) ([]Settlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Settlement
	for _, s := range r.settlements {
		if s.Commodity == commodity {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *MemoryRepository) GetTransfers(ctx context.Context, agentID registry.AgentID) ([]Settlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Settlement
	for _, s := range r.settlements {
		if s.Supplier == agentID || s.Requester == agentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *MemoryRepository) GetConservationReport(ctx context.Context, period int) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	for _, s := range r.settlements {
		if s.Period == period {
			total += s.Amount
		}
	}
	return total, nil
}

var _ Repository = (*MemoryRepository)(nil)
